package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/apiconsole/internal/console"
)

type notice struct {
	kind console.NoticeKind
	text string
}

// noticeQueue collects notifications raised on command goroutines. Every
// controller call notifies before it returns, so the model drains the
// queue when the call's completion message arrives.
type noticeQueue struct {
	mu      sync.Mutex
	pending []notice
}

func (q *noticeQueue) Notify(kind console.NoticeKind, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, notice{kind: kind, text: message})
}

func (q *noticeQueue) drain() []notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// confirmRequestMsg asks the model to show the confirm overlay. The
// answer goes back on reply.
type confirmRequestMsg struct {
	message string
	reply   chan<- bool
}

// promptConfirmer blocks the calling controller until the user answers the
// confirm overlay. Without an attached program every request is declined.
type promptConfirmer struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

func (c *promptConfirmer) attach(send func(tea.Msg)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = send
}

func (c *promptConfirmer) Confirm(message string) bool {
	c.mu.RLock()
	send := c.send
	c.mu.RUnlock()
	if send == nil {
		return false
	}

	reply := make(chan bool, 1)
	send(confirmRequestMsg{message: message, reply: reply})
	return <-reply
}
