package pubsub

import (
	"context"
	"sync"
)

// Published is an event recorded by Mock
type Published struct {
	Topic string
	Msg   Message
}

// Mock is a pubsub client that records what is published and delivers nothing
type Mock struct {
	mu        sync.Mutex
	published []Published
	Err       error
}

// NewMock returns a new mock pubsub client
func NewMock() *Mock {
	return &Mock{}
}

// Publish records the marshalled event. It returns Err when set.
func (m *Mock) Publish(_ context.Context, topic string, payload Event) error {
	if m.Err != nil {
		return m.Err
	}
	msg, err := payload.Marshal()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, Published{Topic: topic, Msg: msg})
	return nil
}

// Subscribe mock
func (m *Mock) Subscribe(_ context.Context, _ string, _ EventHandler) error { return nil }

// Close mock
func (m *Mock) Close() error { return nil }

// Published returns the recorded events in publish order
func (m *Mock) Published() []Published {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Published(nil), m.published...)
}
