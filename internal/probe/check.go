package probe

import (
	"context"
)

type Checker interface {
	// Name returns the name of the component being checked.
	Name() string
	// Check performs a health check and returns the status and its details.
	Check(ctx context.Context) ServiceStatus
}

type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsUp() bool {
	return s == StatusUp
}

type ServiceStatus struct {
	Status  Status         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

type queueChecker struct {
	name  string
	queue Sizer
}

// NewQueueChecker reports a queue as DOWN while it is saturated, that is while
// a bounded queue is full and producers are held back.
func NewQueueChecker(name string, q Sizer) Checker {
	return &queueChecker{name: name, queue: q}
}

func (c *queueChecker) Name() string {
	return c.name
}

func (c *queueChecker) Check(context.Context) ServiceStatus {
	stats := statsOf(c.name, c.queue)

	status := StatusUp
	if stats.Full {
		status = StatusDown
	}

	return ServiceStatus{
		Status: status,
		Details: map[string]any{
			"size":     stats.Size,
			"capacity": stats.Capacity,
			"dropped":  stats.Dropped,
		},
	}
}
