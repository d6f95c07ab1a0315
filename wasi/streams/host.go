package streams

import "github.com/wippyai/pollio/resource"

// Host aggregates the I/O hosts sharing one table.
type Host struct {
	Error   *ErrorHost
	Poll    *PollHost
	Streams *StreamsHost
}

func NewHost(table *resource.Table) *Host {
	return &Host{
		Error:   NewErrorHost(table),
		Poll:    NewPollHost(table),
		Streams: NewStreamsHost(table),
	}
}
