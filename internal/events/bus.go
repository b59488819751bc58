// Package events keeps a bounded, sequenced history of panel events that the
// frontend polls or receives as pushes.
package events

import (
	"sync"
	"time"
)

// Type classifies messages published by the panel backend.
type Type string

const (
	TypeSettingsLoaded    Type = "settings_loaded"
	TypeSettingsSaved     Type = "settings_saved"
	TypeSettingsImported  Type = "settings_imported"
	TypeSettingsExported  Type = "settings_exported"
	TypeBackupCreated     Type = "backup_created"
	TypeClipboardImported Type = "clipboard_imported"
	TypeScriptRun         Type = "script_run"
	TypeError             Type = "error"
)

// Event is a sequenced payload consumed by UI subscribers.
type Event struct {
	Seq       int64     `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Type      Type      `json:"type"`
	Source    string    `json:"source,omitempty"`
	Message   string    `json:"message,omitempty"`
	Path      string    `json:"path,omitempty"`
}

// Bus stores recent events and provides incremental reads.
type Bus struct {
	mu        sync.RWMutex
	nextSeq   int64
	maxEvents int
	events    []Event
}

// NewBus creates a bounded in-memory event buffer.
func NewBus(maxEvents int) *Bus {
	if maxEvents <= 0 {
		maxEvents = 200
	}

	return &Bus{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Publish appends one event and assigns sequence and timestamp.
func (b *Bus) Publish(event Event) Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	event.Seq = b.nextSeq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.events = append(b.events, event)
	if len(b.events) > b.maxEvents {
		trim := len(b.events) - b.maxEvents
		b.events = append([]Event(nil), b.events[trim:]...)
	}

	return event
}

// Since returns events with sequence strictly greater than seq.
func (b *Bus) Since(seq int64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Event, 0, len(b.events))
	for _, event := range b.events {
		if event.Seq > seq {
			out = append(out, event)
		}
	}
	return out
}

// Last returns the most recent event of type t.
func (b *Bus) Last(t Type) (Event, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i := len(b.events) - 1; i >= 0; i-- {
		if b.events[i].Type == t {
			return b.events[i], true
		}
	}
	return Event{}, false
}
