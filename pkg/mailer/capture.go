package mailer

import (
	"context"
	"sync"
)

// Message is a mail recorded by the Capture mailer.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Capture is an in-memory Mailer that records every message instead of
// sending it. Tests use it to read back dispatched confirmation codes.
type Capture struct {
	mu       sync.Mutex
	messages []Message
	// Err, when set, is returned from Send to simulate transport failure.
	Err error
}

// NewCapture creates a new capture mailer.
func NewCapture() *Capture {
	return &Capture{}
}

// Send records the message.
func (c *Capture) Send(_ context.Context, to, subject, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.messages = append(c.messages, Message{To: to, Subject: subject, Body: body})
	return nil
}

// Messages returns a copy of everything recorded so far.
func (c *Capture) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Last returns the most recently recorded message, or false when empty.
func (c *Capture) Last() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}
