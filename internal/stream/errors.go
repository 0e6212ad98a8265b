package stream

import "errors"

// ErrNotConnected is returned when an emit is attempted without an open channel.
var ErrNotConnected = errors.New("stream: not connected")

// ChannelError is a transport-level failure on the real-time channel. It is
// retryable through the reconnect schedule and never crosses into UI code;
// callers observe it through the manager's state.
type ChannelError struct {
	Op  string
	Err error
}

func (e *ChannelError) Error() string {
	return "stream: " + e.Op + ": " + e.Err.Error()
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
