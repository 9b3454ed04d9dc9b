package view

import (
	"encoding/json"
	"fmt"
)

// Store holds the current set of synced events. Each sync fully replaces
// the sequence, which stays in the server-provided order (ascending by
// start time per the upstream query).
type Store struct {
	events []Event
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace atomically swaps the held sequence.
func (s *Store) Replace(events []Event) {
	s.events = events
}

// All returns the current sequence in insertion order.
func (s *Store) All() []Event {
	return s.events
}

// Len returns the number of held events.
func (s *Store) Len() int {
	return len(s.events)
}

// Get returns the event with the given id.
func (s *Store) Get(id string) (Event, bool) {
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}

// TeamsMeetings returns, in store order, the events carrying a usable online
// meeting link.
func (s *Store) TeamsMeetings() []Event {
	var meetings []Event
	for _, ev := range s.events {
		if ev.IsOnlineMeeting && ev.OnlineMeetingURL != "" {
			meetings = append(meetings, ev)
		}
	}
	return meetings
}

// Snapshot serialises the held sequence for the durable cache.
func (s *Store) Snapshot() ([]byte, error) {
	data, err := json.Marshal(s.events)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// LoadSnapshot restores a previously serialised sequence. On malformed data
// the store is left empty and an error is returned for the caller to log;
// a cache miss is never fatal.
func (s *Store) LoadSnapshot(data []byte) error {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		s.events = nil
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	s.events = events
	return nil
}
