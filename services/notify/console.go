package notifysvc

import (
	"fmt"
	"io"
	"sync"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

// Level of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarn    Level = "warning"
	LevelError   Level = "error"
)

// Notification is a message shown to the user.
type Notification struct {
	Level   Level
	Message string
}

type consoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

var _ core.Notifier = (*consoleNotifier)(nil)

// NewConsoleNotifier prints notifications as "[level] message" lines on out.
func NewConsoleNotifier(out io.Writer) core.Notifier {
	return &consoleNotifier{out: out}
}

func (n *consoleNotifier) notify(lvl Level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "[%s] %s\n", lvl, msg)
}

func (n *consoleNotifier) Success(msg string) { n.notify(LevelSuccess, msg) }
func (n *consoleNotifier) Info(msg string)    { n.notify(LevelInfo, msg) }
func (n *consoleNotifier) Warn(msg string)    { n.notify(LevelWarn, msg) }
func (n *consoleNotifier) Error(msg string)   { n.notify(LevelError, msg) }

// Recorder keeps every notification in memory.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

var _ core.Notifier = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(lvl Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Notification{Level: lvl, Message: msg})
}

func (r *Recorder) Success(msg string) { r.record(LevelSuccess, msg) }
func (r *Recorder) Info(msg string)    { r.record(LevelInfo, msg) }
func (r *Recorder) Warn(msg string)    { r.record(LevelWarn, msg) }
func (r *Recorder) Error(msg string)   { r.record(LevelError, msg) }

// Sent returns a copy of the recorded notifications.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	sent := make([]Notification, len(r.sent))
	copy(sent, r.sent)
	return sent
}

// Messages returns the recorded messages of the given level.
func (r *Recorder) Messages(lvl Level) []string {
	var msgs []string
	for _, n := range r.Sent() {
		if n.Level == lvl {
			msgs = append(msgs, n.Message)
		}
	}
	return msgs
}

// Reset forgets every recorded notification.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
