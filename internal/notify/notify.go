// Package notify is the user-facing notification channel (the toast
// layer). Components receive a Notifier explicitly; there is no ambient
// package-level sink, so tests can substitute their own and the HTTP
// layer can scope one per request.
package notify

import "sync"

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Message is one user-visible notification. Text is already localized by
// the caller.
type Message struct {
	Level Level
	Text  string
}

// Notifier receives user-visible messages. Implementations decide how
// they surface (HTMX trigger, test recorder).
type Notifier interface {
	Success(text string)
	Error(text string)
	Info(text string)
}

// Buffer collects messages until drained. The HTTP layer drains it into
// HX-Trigger headers at response time; tests drain it into assertions.
type Buffer struct {
	mu       sync.Mutex
	messages []Message
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) add(level Level, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, Message{Level: level, Text: text})
}

func (b *Buffer) Success(text string) { b.add(LevelSuccess, text) }
func (b *Buffer) Error(text string)   { b.add(LevelError, text) }
func (b *Buffer) Info(text string)    { b.add(LevelInfo, text) }

// Drain returns the collected messages and empties the buffer.
func (b *Buffer) Drain() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.messages
	b.messages = nil
	return out
}
