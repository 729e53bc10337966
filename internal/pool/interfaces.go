package pool

import "time"

// Message is what the coordinator sends down a worker's channel.
type Message interface {
	isMessage()
}

// Identify tells a worker its index. The worker answers with a ready Result.
type Identify struct {
	Worker int
}

// Work carries one job to run.
type Work[J any] struct {
	Job J
}

func (Identify) isMessage() {}
func (Work[J]) isMessage()  {}

// Result is sent by a worker after every message it handles.
type Result struct {
	Worker  int
	Ready   bool // reply to Identify, carries no timing
	Elapsed time.Duration
}
