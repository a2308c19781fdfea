package ws

import (
	"testing"
	"time"
)

func TestEventBuffer_SinceAndOldest(t *testing.T) {
	eb := NewEventBuffer(10, time.Hour)
	if eb.OldestID() != 0 || eb.Since(0) != nil {
		t.Fatal("expected empty buffer")
	}

	for id := uint64(1); id <= 3; id++ {
		eb.Append(Event{ID: id, Time: time.Now()})
	}

	got := eb.Since(1)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("Since(1) = %+v", got)
	}

	if eb.Since(3) != nil {
		t.Error("expected nothing after the newest event")
	}

	if eb.OldestID() != 1 {
		t.Errorf("OldestID = %d, want 1", eb.OldestID())
	}
}

func TestEventBuffer_EvictsByLength(t *testing.T) {
	eb := NewEventBuffer(2, time.Hour)
	for id := uint64(1); id <= 5; id++ {
		eb.Append(Event{ID: id, Time: time.Now()})
	}

	if eb.OldestID() != 4 || len(eb.Since(0)) != 2 {
		t.Errorf("expected events 4 and 5, got %+v", eb.Since(0))
	}
}

func TestEventBuffer_EvictsByAge(t *testing.T) {
	eb := NewEventBuffer(10, time.Minute)
	eb.Append(Event{ID: 1, Time: time.Now().Add(-2 * time.Minute)})
	eb.Append(Event{ID: 2, Time: time.Now()})

	if eb.OldestID() != 2 {
		t.Errorf("OldestID = %d, want 2", eb.OldestID())
	}
}
