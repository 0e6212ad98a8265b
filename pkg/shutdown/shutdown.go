// Package shutdown runs registered cleanup callbacks on process exit.
package shutdown

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handler is one cleanup step; it must call wg.Done when finished.
type Handler func(ctx context.Context, wg *sync.WaitGroup)

// Manager collects shutdown callbacks and runs them concurrently.
type Manager struct {
	mu        sync.Mutex
	callbacks []Handler
}

// NewManager returns an empty shutdown manager.
func NewManager() *Manager {
	return &Manager{}
}

// OnShutdown registers a callback to run at shutdown.
func (m *Manager) OnShutdown(handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, handler)
}

// Shutdown runs all callbacks and blocks until they finish or ctx expires.
// Pass a context with a deadline to bound the wait.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	callbacks := m.callbacks
	m.mu.Unlock()

	if len(callbacks) == 0 {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(callbacks))
	for _, cb := range callbacks {
		go cb(ctx, &wg)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("shutdown complete")
	case <-ctx.Done():
		logrus.Warn("shutdown timed out, exiting anyway")
	}
}
