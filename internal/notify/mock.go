package notify

import (
	"context"
	"sync"
)

// MockAdapter records announcements for tests.
type MockAdapter struct {
	mu        sync.Mutex
	connected bool
	closed    bool
	sent      []Announcement

	// ConnectErr and SendErr, when set, are returned by the
	// corresponding methods.
	ConnectErr error
	SendErr    error
}

func (m *MockAdapter) Connect(ctx context.Context) error {
	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	m.mu.Lock()
	m.connected = true
	m.mu.Unlock()
	return nil
}

func (m *MockAdapter) Send(ctx context.Context, a Announcement) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	m.sent = append(m.sent, a)
	m.mu.Unlock()
	return nil
}

func (m *MockAdapter) Close() error {
	m.mu.Lock()
	m.closed = true
	m.connected = false
	m.mu.Unlock()
	return nil
}

// Sent returns a copy of the recorded announcements.
func (m *MockAdapter) Sent() []Announcement {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Announcement, len(m.sent))
	copy(out, m.sent)
	return out
}

// Connected reports whether Connect succeeded and Close has not run.
func (m *MockAdapter) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}
