package driver

import "go.uber.org/zap/zapcore"

// Item is the element passed from producers to consumers.
type Item struct {
	ProducerID int `json:"producer_id"`
	Data       int `json:"data"`
}

func (i Item) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("producer_id", i.ProducerID)
	enc.AddInt("data", i.Data)
	return nil
}
