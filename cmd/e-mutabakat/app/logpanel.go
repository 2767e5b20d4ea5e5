package app

import (
	"strings"
	"sync"
	"time"
)

type Severity int

const (
	Info Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "info"
}

type LogEntry struct {
	Time     time.Time
	Message  string
	Severity Severity
}

const errorMarker = "[HATA] "

// Line is the entry as a text panel shows it. Error entries carry a marker
// after any leading blank lines.
func (e LogEntry) Line() string {
	if e.Severity != Error {
		return e.Message
	}
	body := strings.TrimLeft(e.Message, "\n")
	return e.Message[:len(e.Message)-len(body)] + errorMarker + body
}

// LogPanel keeps the most recent entries in a fixed-size ring. Listeners are
// called synchronously, outside the lock, for every appended entry.
type LogPanel struct {
	mu        sync.Mutex
	entries   []LogEntry
	head      int
	count     int
	listeners []func(LogEntry)
	now       func() time.Time
}

func NewLogPanel(capacity int) *LogPanel {
	if capacity < 1 {
		capacity = 1
	}
	return &LogPanel{entries: make([]LogEntry, capacity), now: time.Now}
}

// Subscribe registers fn for entries appended from now on.
func (p *LogPanel) Subscribe(fn func(LogEntry)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func (p *LogPanel) Append(message string, severity Severity) {
	p.add(message, severity, false)
}

func (p *LogPanel) add(message string, severity Severity, reset bool) {
	p.mu.Lock()
	if reset {
		p.head, p.count = 0, 0
	}
	entry := LogEntry{Time: p.now(), Message: message, Severity: severity}
	p.push(entry)
	listeners := append([]func(LogEntry){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(entry)
	}
}

func (p *LogPanel) push(entry LogEntry) {
	capacity := len(p.entries)
	if p.count < capacity {
		p.entries[(p.head+p.count)%capacity] = entry
		p.count++
		return
	}
	p.entries[p.head] = entry
	p.head = (p.head + 1) % capacity
}

// Clear drops every entry and leaves marker as the only one.
func (p *LogPanel) Clear(marker string) {
	p.add(marker, Info, true)
}

// Entries returns the retained entries, oldest first.
func (p *LogPanel) Entries() []LogEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]LogEntry, 0, p.count)
	for i := 0; i < p.count; i++ {
		out = append(out, p.entries[(p.head+i)%len(p.entries)])
	}
	return out
}

func (p *LogPanel) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}
