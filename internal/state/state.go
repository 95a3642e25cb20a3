// Package state provides thread-safe live almanac state for long-running
// views such as the dashboard.
package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/calendar"
)

// ErrOutOfRange is returned by Update for instants outside 2000-2099.
var ErrOutOfRange = errors.New("instant outside 2000-2099")

// EventType represents the type of state change event.
type EventType string

const (
	EventSunrise  EventType = "SUNRISE"
	EventSunset   EventType = "SUNSET"
	EventDSTStart EventType = "DST_START"
	EventDSTEnd   EventType = "DST_END"
	EventSeason   EventType = "SEASON"
	EventNewMoon  EventType = "NEW_MOON"
	EventFullMoon EventType = "FULL_MOON"
)

// Event represents a change noticed between two updates.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}

// Snapshot is an immutable view of the almanac at the last update. Clock
// fields are standard local time unless named otherwise.
type Snapshot struct {
	Site       string
	Updated    time.Time
	Local      calendar.Time
	Civil      calendar.Time
	UTC        calendar.Time
	GMST       calendar.Time
	LMST       calendar.Time
	Sunrise    calendar.Time
	Sunset     calendar.Time
	HasSunrise bool
	HasSunset  bool
	DST        bool

	MoonPhase    float64
	MoonName     string
	Illumination float64
	Season       almanac.Season

	Events []Event
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:       50,
		RefreshInterval: time.Second,
	}
}

// Manager owns an Almanac and the readings derived from it. The Almanac is
// only touched under the manager's lock.
type Manager struct {
	mu sync.RWMutex

	alm  *almanac.Almanac
	site string

	current Snapshot
	hasData bool
	lastErr error

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// NewManager creates a manager evaluating a for the named site.
func NewManager(a *almanac.Almanac, site string, cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		alm:             a,
		site:            site,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
	}
}

// Standard converts an instant to the almanac's standard local time.
func Standard(a *almanac.Almanac, now time.Time) (calendar.Time, error) {
	local := now.UTC().Add(time.Duration(a.UTCOffset()) * time.Minute)
	if y := local.Year(); y < calendar.BaseYear || y > calendar.BaseYear+99 {
		return calendar.Time{}, fmt.Errorf("standard time for %s: %w", now.Format(time.RFC3339), ErrOutOfRange)
	}
	return calendar.FromTime(local), nil
}

// Update evaluates the almanac at now and records any events crossed since
// the previous update.
func (m *Manager) Update(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := Standard(m.alm, now)
	if err != nil {
		m.lastErr = err
		return err
	}
	m.lastErr = nil

	next := m.evaluate(t)
	next.Updated = now

	if m.hasData {
		m.detectEvents(m.current, next, now)
	}
	m.current = next
	m.hasData = true
	return nil
}

func (m *Manager) evaluate(t calendar.Time) Snapshot {
	a := m.alm
	s := Snapshot{
		Site:  m.site,
		Local: t,
		Civil: t,
		UTC:   t,
		GMST:  t,
		LMST:  t,
		DST:   a.InDST(t),
	}
	a.DST(&s.Civil)
	a.GMT(&s.UTC)
	a.Sidereal(&s.GMST, false)
	a.Sidereal(&s.LMST, true)

	s.Sunrise, s.Sunset = t, t
	s.HasSunrise = a.SunRise(&s.Sunrise)
	s.HasSunset = a.SunSet(&s.Sunset)

	s.MoonPhase = a.MoonPhase(&t)
	s.MoonName = astro.PhaseName(s.MoonPhase)
	s.Illumination = astro.Illumination(s.MoonPhase)
	s.Season = a.Season(&t)
	return s
}

// seconds counts seconds since 2000-01-01 00:00 for ordering buffers.
func seconds(t calendar.Time) int64 {
	days := calendar.DayNumber(t.FullYear(), int(t.Month), int(t.Day)) - calendar.DayNumber(calendar.BaseYear, 1, 1)
	return days*86400 + int64(t.Clock())
}

func crossed(prev, cur, event calendar.Time) bool {
	e := seconds(event)
	return seconds(prev) < e && e <= seconds(cur)
}

// detectEvents compares consecutive readings and logs what changed.
func (m *Manager) detectEvents(prev, cur Snapshot, now time.Time) {
	if prev.DST != cur.DST {
		typ := EventDSTEnd
		if cur.DST {
			typ = EventDSTStart
		}
		m.addEvent(Event{Type: typ, Timestamp: now, Detail: "clock " + cur.Civil.ClockString()})
	}

	if prev.Season != cur.Season {
		m.addEvent(Event{Type: EventSeason, Timestamp: now, Detail: cur.Season.String()})
	}

	if cur.HasSunrise && crossed(prev.Local, cur.Local, cur.Sunrise) {
		m.addEvent(Event{Type: EventSunrise, Timestamp: now, Detail: civilClock(m.alm, cur.Sunrise)})
	}
	if cur.HasSunset && crossed(prev.Local, cur.Local, cur.Sunset) {
		m.addEvent(Event{Type: EventSunset, Timestamp: now, Detail: civilClock(m.alm, cur.Sunset)})
	}

	// Phase only wraps at new moon; a backwards step means the clock went
	// back, not a lunation.
	forward := seconds(cur.Local) > seconds(prev.Local)
	switch {
	case forward && cur.MoonPhase < prev.MoonPhase:
		m.addEvent(Event{Type: EventNewMoon, Timestamp: now})
	case forward && prev.MoonPhase < 0.5 && cur.MoonPhase >= 0.5:
		m.addEvent(Event{Type: EventFullMoon, Timestamp: now})
	}
}

func civilClock(a *almanac.Almanac, t calendar.Time) string {
	a.DST(&t)
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.current
	s.Events = m.getEventsOrdered()
	return s
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

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

// LastError returns the error from the most recent Update, if any.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once Update has succeeded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasData
}
