// Package sigchan provides a non-blocking signal channel: it notifies that
// something happened without carrying data, coalescing emits when the
// receiver lags.
package sigchan

// Chan is a buffered notification channel.
type Chan struct {
	c chan struct{}
}

// New creates a signal channel with the given buffer size.
func New(bufferSize int) *Chan {
	return &Chan{
		c: make(chan struct{}, bufferSize),
	}
}

// Emit sends a signal. It never blocks; when the buffer is full the signal
// is dropped, which is fine because one pending signal already means "look".
func (c *Chan) Emit() {
	select {
	case c.c <- struct{}{}:
	default:
	}
}

// C returns the receive side for use in select statements.
func (c *Chan) C() <-chan struct{} {
	return c.c
}
