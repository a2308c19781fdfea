package ws

import (
	"sort"
	"sync"
	"time"
)

const (
	defaultBufferMaxLen = 100
	defaultBufferMaxAge = 1 * time.Hour
)

// EventBuffer keeps recent events for replay on reconnect. IDs are strictly increasing.
type EventBuffer struct {
	mu     sync.RWMutex
	events []Event
	maxAge time.Duration
	maxLen int
}

// NewEventBuffer creates an EventBuffer holding at most maxLen events no older than maxAge.
func NewEventBuffer(maxLen int, maxAge time.Duration) *EventBuffer {
	return &EventBuffer{maxLen: maxLen, maxAge: maxAge}
}

// Append stores an event, evicting expired and excess entries.
func (eb *EventBuffer) Append(event Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	cutoff := time.Now().Add(-eb.maxAge)
	expired := sort.Search(len(eb.events), func(i int) bool { return !eb.events[i].Time.Before(cutoff) })
	buf := append(eb.events[expired:], event)

	if len(buf) > eb.maxLen {
		buf = buf[len(buf)-eb.maxLen:]
	}

	eb.events = buf
}

// Since returns a copy of the events with ID > lastEventID.
func (eb *EventBuffer) Since(lastEventID uint64) []Event {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	i := sort.Search(len(eb.events), func(i int) bool { return eb.events[i].ID > lastEventID })
	if i >= len(eb.events) {
		return nil
	}

	return append([]Event(nil), eb.events[i:]...)
}

// OldestID returns the oldest buffered event ID, or 0 if empty.
func (eb *EventBuffer) OldestID() uint64 {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if len(eb.events) == 0 {
		return 0
	}
	return eb.events[0].ID
}
