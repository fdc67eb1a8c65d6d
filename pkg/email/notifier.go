// Package email provides the outbound notification channel. The core only
// depends on the Notifier interface; SMTP and a recording mock implement it.
package email

import (
	"context"
	"fmt"
	"sync"
)

// Notifier sends a single message to an address. Implementations must treat
// a returned error as "not delivered" so callers can retry later.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Config holds SMTP settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SentMessage is one message captured by the mock notifier.
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// MockNotifier records messages instead of delivering them. Used in
// development, tests, and dry runs.
type MockNotifier struct {
	mu       sync.Mutex
	messages []SentMessage

	// FailFor makes Send return an error for the given addresses.
	FailFor map[string]bool
}

// NewMockNotifier creates an empty mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{FailFor: make(map[string]bool)}
}

// Send records the message, or fails if the address is marked to fail.
func (m *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailFor[to] {
		return fmt.Errorf("mock delivery failure for %s", to)
	}
	m.messages = append(m.messages, SentMessage{To: to, Subject: subject, Body: body})
	return nil
}

// Messages returns a copy of everything sent so far.
func (m *MockNotifier) Messages() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.messages))
	copy(out, m.messages)
	return out
}
