// Package console is the terminal front end: it renders roster views,
// shows transient action messages, and dispatches typed commands to the
// services. Business logic stays in internal/core; this package only
// formats and forwards.
package console

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultMessageTTL is how long an action message stays current before it
// auto-hides.
const DefaultMessageTTL = 5 * time.Second

// MessageBoard displays one transient message at a time. A new message
// replaces the current one and cancels its pending dismissal, so the last
// message shown always gets its own full visibility window.
type MessageBoard struct {
	out io.Writer
	ttl time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     int
	current string
	kind    string
}

func NewMessageBoard(out io.Writer, ttl time.Duration) *MessageBoard {
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}
	return &MessageBoard{out: out, ttl: ttl}
}

func (b *MessageBoard) Success(text string) { b.show(text, "success") }
func (b *MessageBoard) Error(text string)   { b.show(text, "error") }
func (b *MessageBoard) Info(text string)    { b.show(text, "info") }

// Current returns the message still within its visibility window, with
// its kind. Both are empty once the window has elapsed.
func (b *MessageBoard) Current() (string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.kind
}

func (b *MessageBoard) show(text, kind string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.current = text
	b.kind = kind
	b.gen++

	// The generation guard covers the window where an old timer fired
	// but hasn't taken the lock yet: it must not hide a newer message.
	gen := b.gen
	b.timer = time.AfterFunc(b.ttl, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen != gen {
			return
		}
		b.current = ""
		b.kind = ""
	})

	fmt.Fprintf(b.out, "[%s] %s\n", kind, text)
}
