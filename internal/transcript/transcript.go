// Package transcript keeps the ordered record of lines shown in the
// simulated terminal. Lines are append-only: ids and timestamps grow
// monotonically and a line is never changed after it was added.
package transcript

import (
	"sync"
	"time"
)

// Category classifies a transcript line for rendering purposes.
type Category string

const (
	CategorySystem  Category = "system"
	CategoryUser    Category = "user"
	CategorySuccess Category = "success"
	CategoryError   Category = "error"
	CategoryInfo    Category = "info"
	CategoryPrompt  Category = "prompt"
	CategoryWarning Category = "warning"
)

// Line is a single emitted terminal line.
type Line struct {
	ID        int64
	Text      string
	Category  Category
	Timestamp time.Time
}

// Log is the append-only transcript of a session.
//
// Reset starts a fresh run (e.g. after a restart) but never rewinds the id
// counter, so ids stay monotonic across the whole session lifetime.
type Log struct {
	mu       sync.Mutex
	lines    []Line
	nextID   int64
	lastTS   time.Time
	now      func() time.Time
	onAppend func(Line)
}

func NewLog() *Log {
	return &Log{now: time.Now}
}

// SetObserver registers a callback invoked for every appended line.
// A renderer uses this to print lines as they arrive.
func (l *Log) SetObserver(fn func(Line)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onAppend = fn
}

// Append adds a line and returns it. Timestamps are clamped so they never
// run backwards even if the wall clock does.
func (l *Log) Append(cat Category, text string) Line {
	l.mu.Lock()

	ts := l.now()
	if ts.Before(l.lastTS) {
		ts = l.lastTS
	}
	l.lastTS = ts

	l.nextID++
	line := Line{ID: l.nextID, Text: text, Category: cat, Timestamp: ts}
	l.lines = append(l.lines, line)
	observer := l.onAppend
	l.mu.Unlock()

	if observer != nil {
		observer(line)
	}
	return line
}

// Lines returns a copy of the current run's lines in append order.
func (l *Log) Lines() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of lines in the current run.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// Last returns the most recent line, if any.
func (l *Log) Last() (Line, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == 0 {
		return Line{}, false
	}
	return l.lines[len(l.lines)-1], true
}

// Reset clears the visible lines for a fresh run. The id counter is kept so
// lines from a later run always carry larger ids than lines from an earlier
// one.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
}
