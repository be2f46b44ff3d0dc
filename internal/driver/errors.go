package driver

import "errors"

var (
	ErrInvalidOptions       = errors.New("invalid driver options")
	ErrUnknownQueueType     = errors.New("unknown queue type, use 'unbounded' or 'bounded'")
	ErrUnknownEnqueuePolicy = errors.New("unknown enqueue policy, use 'drop', 'block' or 'strict'")
)
