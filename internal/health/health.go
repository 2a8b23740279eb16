package health

import (
	"context"
	"sync"
	"time"
)

const checkTimeout = 2 * time.Second

// Ping is implemented by every dependency the service needs to be up
type Ping interface {
	Ping(ctx context.Context) error
}

// Status struct
type Status struct {
	pingers map[string]Ping
}

// New returns a Health instance checking the named dependencies
func New(pingers map[string]Ping) *Status {
	m := make(map[string]Ping, len(pingers))
	for name, p := range pingers {
		if p != nil {
			m[name] = p
		}
	}
	return &Status{m}
}

// Status pings every dependency concurrently and tells whether each one answered
func (h *Status) Status(ctx context.Context) map[string]bool {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	m := make(map[string]bool, len(h.pingers))
	for name, p := range h.pingers {
		wg.Add(1)
		go func(name string, p Ping) {
			defer wg.Done()
			ok := p.Ping(ctx) == nil
			mu.Lock()
			m[name] = ok
			mu.Unlock()
		}(name, p)
	}
	wg.Wait()
	return m
}

// Healthy reports whether every dependency in status answered
func Healthy(status map[string]bool) bool {
	for _, ok := range status {
		if !ok {
			return false
		}
	}
	return true
}
