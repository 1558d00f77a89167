// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/navigation"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventDrillDown    EventType = EventType(navigation.TransitionDrillDown)
	EventBack         EventType = EventType(navigation.TransitionBack)
	EventHome         EventType = EventType(navigation.TransitionHome)
	EventHoverZoomIn  EventType = EventType(navigation.TransitionPreview)
	EventHoverZoomOut EventType = EventType(navigation.TransitionUnpreview)
	EventArrived      EventType = EventType(navigation.TransitionArrived)

	EventTooltipShow  EventType = "TOOLTIP_SHOW"
	EventTooltipHide  EventType = "TOOLTIP_HIDE"
	EventReload       EventType = "RELOAD"
	EventReloadFailed EventType = "RELOAD_FAILED"
	EventViewInit     EventType = "VIEW_INIT"
	EventViewDispose  EventType = "VIEW_DISPOSE"
)

// Event represents a change in the navigation surface.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	ViewID    string    `json:"view_id,omitempty"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	ObjectID  string    `json:"object_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// FrameStats is what a view reports after every frame.
type FrameStats struct {
	Nav           cosmos.NavState
	Camera        cosmos.Camera
	SunHoverID    string
	BodyHoverID   string
	SunTooltipID  string
	BodyTooltipID string
	Bodies        int
	Duration      time.Duration
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared application state with thread-safe access.
// The render loop writes, the UI and headless writers read snapshots.
type Manager struct {
	mu sync.RWMutex

	viewID string

	// Current state
	current    *FrameStats
	lastFrame  time.Time
	frames     uint64
	source     string
	lastReload time.Time
	lastError  error

	// Zoom history (ring of the last maxHistoryLen frames)
	zoomHistory   []TimeSeries
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen int
	MaxEvents     int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen: 120, // ~4s at 30 fps
		MaxEvents:     50,  // Last 50 events
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxHist := cfg.MaxHistoryLen
	if maxHist <= 0 {
		maxHist = 120
	}
	return &Manager{
		maxHistoryLen: maxHist,
		maxEvents:     maxEvents,
		events:        make([]Event, 0, maxEvents),
		zoomHistory:   make([]TimeSeries, 0, maxHist),
		now:           time.Now,
	}
}

// SetViewID tags subsequent events with the view instance id.
func (m *Manager) SetViewID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewID = id
}

// Update atomically stores the outcome of one frame.
func (m *Manager) Update(stats FrameStats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := stats
	m.current = &s
	m.lastFrame = now
	m.frames++

	m.zoomHistory = append(m.zoomHistory, TimeSeries{Timestamp: now, Value: stats.Camera.Zoom})
	if len(m.zoomHistory) > m.maxHistoryLen {
		m.zoomHistory = m.zoomHistory[1:]
	}
}

// RecordTransition logs a navigation transition. It satisfies
// navigation.Recorder.
func (m *Manager) RecordTransition(t navigation.Transition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(Event{
		Type:     EventType(t.Kind),
		From:     t.From.String(),
		To:       t.To.String(),
		ObjectID: t.ObjectID,
	})
}

// RecordTooltip logs a tooltip show or hide. kind is "sun" or "body".
func (m *Manager) RecordTooltip(kind, id string, shown bool) {
	typ := EventTooltipHide
	if shown {
		typ = EventTooltipShow
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(Event{Type: typ, ObjectID: id, Detail: kind})
}

// RecordReload logs a hierarchy (re)load. A failed reload keeps the
// previous source.
func (m *Manager) RecordReload(source string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastReload = m.now()
	m.lastError = err
	if err != nil {
		m.addEvent(Event{Type: EventReloadFailed, Detail: err.Error()})
		return
	}
	m.source = source
	m.addEvent(Event{Type: EventReload, Detail: source})
}

// RecordLifecycle logs view init or dispose.
func (m *Manager) RecordLifecycle(typ EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(Event{Type: typ})
}

// addEvent adds an event to the ring buffer. Caller holds the lock.
func (m *Manager) addEvent(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = m.now()
	}
	if e.ViewID == "" {
		e.ViewID = m.viewID
	}
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	ViewID     string
	Frame      *FrameStats
	LastFrame  time.Time
	Frames     uint64
	Source     string
	LastReload time.Time
	LastError  error
	Events     []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var frame *FrameStats
	if m.current != nil {
		f := *m.current
		frame = &f
	}

	return Snapshot{
		ViewID:     m.viewID,
		Frame:      frame,
		LastFrame:  m.lastFrame,
		Frames:     m.frames,
		Source:     m.source,
		LastReload: m.lastReload,
		LastError:  m.lastError,
		Events:     m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// ZoomHistory returns a copy of the recent camera zoom samples.
func (m *Manager) ZoomHistory() []TimeSeries {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]TimeSeries, len(m.zoomHistory))
	copy(out, m.zoomHistory)
	return out
}

// HasData returns true once at least one frame has been recorded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
