// Package events fans out ledger state changes to interested listeners.
package events

import (
	"sync"
	"time"
)

// Kind identifies what changed.
type Kind string

const (
	ProfilesChanged Kind = "profiles_changed"
	ActiveChanged   Kind = "active_changed"
	ListUpdated     Kind = "list_updated"
	SummaryUpdated  Kind = "summary_updated"
	MirrorFailed    Kind = "mirror_failed"
	DataImported    Kind = "data_imported"
)

// Event is one published change. Profile is the profile it concerns, when
// there is one.
type Event struct {
	Kind      Kind
	Profile   string
	Message   string
	Timestamp time.Time
}

// Publisher is the side of the bus the services depend on.
type Publisher interface {
	Publish(e Event)
}

const defaultBuffer = 16

// Bus is a non-blocking fan-out. A subscriber whose buffer is full misses
// the event instead of stalling the publisher.
type Bus struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]chan Event
	buffer  int
	dropped int
}

// NewBus creates a bus whose subscriber channels hold buffer events.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{subs: make(map[int]chan Event), buffer: buffer}
}

// Subscribe registers a listener. cancel closes the channel and is safe to
// call more than once.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Publish delivers e to every subscriber without blocking.
func (b *Bus) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped++
		}
	}
}

// Dropped reports how many deliveries were skipped because a subscriber was
// full.
func (b *Bus) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(Event) {}
