package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	almanac "github.com/litescript/ls-almanac"
)

func utc(year, month, day, hour, minute int) time.Time {
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
}

func newTampa(cfg Config) *Manager {
	return NewManager(almanac.New(), "tampa", cfg)
}

func hasEvent(events []Event, typ EventType) (Event, bool) {
	for _, e := range events {
		if e.Type == typ {
			return e, true
		}
	}
	return Event{}, false
}

func mustUpdate(t *testing.T, m *Manager, now time.Time) {
	t.Helper()
	if err := m.Update(now); err != nil {
		t.Fatalf("Update(%v): %v", now, err)
	}
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := newTampa(cfg)

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.RefreshInterval() != cfg.RefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), cfg.RefreshInterval)
	}
	if m.HasData() {
		t.Error("HasData should be false initially")
	}
}

func TestManager_Update(t *testing.T) {
	m := newTampa(DefaultConfig())
	now := utc(2023, 3, 12, 17, 0)
	mustUpdate(t, m, now)

	if !m.HasData() {
		t.Error("HasData should be true after Update")
	}

	snap := m.Snapshot()
	checks := []struct {
		name, got, want string
	}{
		{"Local", snap.Local.String(), "2023-03-12 12:00:00"},
		{"Civil", snap.Civil.String(), "2023-03-12 13:00:00"},
		{"UTC", snap.UTC.String(), "2023-03-12 17:00:00"},
		{"GMST", snap.GMST.ClockString(), "04:20:19"},
		{"LMST", snap.LMST.ClockString(), "22:52:19"},
		{"Sunrise", snap.Sunrise.ClockString(), "06:39:00"},
		{"Sunset", snap.Sunset.ClockString(), "18:36:00"},
		{"MoonName", snap.MoonName, "last quarter"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if !snap.DST {
		t.Error("DST should be true on the afternoon of 2023-03-12")
	}
	if snap.Season != almanac.Winter {
		t.Errorf("Season = %v, want winter", snap.Season)
	}
	if !snap.Updated.Equal(now) {
		t.Errorf("Updated = %v, want %v", snap.Updated, now)
	}
	if len(snap.Events) != 0 {
		t.Errorf("first update produced events: %v", snap.Events)
	}
}

func TestManager_UpdateOutOfRange(t *testing.T) {
	m := newTampa(DefaultConfig())

	err := m.Update(utc(1999, 12, 31, 12, 0))
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
	if m.HasData() {
		t.Error("HasData should stay false after a failed Update")
	}
	if !errors.Is(m.LastError(), ErrOutOfRange) {
		t.Errorf("LastError = %v", m.LastError())
	}

	mustUpdate(t, m, utc(2024, 1, 1, 0, 0))
	if m.LastError() != nil {
		t.Errorf("LastError = %v after a good Update", m.LastError())
	}
}

func TestManager_EventDetection_DSTAndSunrise(t *testing.T) {
	m := newTampa(DefaultConfig())
	mustUpdate(t, m, utc(2023, 3, 12, 6, 0))  // 01:00 standard
	mustUpdate(t, m, utc(2023, 3, 12, 12, 0)) // 07:00 standard

	events := m.RecentEvents(10)
	if len(events) != 2 {
		t.Fatalf("events = %v, want DST_START and SUNRISE", events)
	}
	if events[0].Type != EventDSTStart {
		t.Errorf("events[0] = %q, want DST_START", events[0].Type)
	}
	if events[1].Type != EventSunrise || events[1].Detail != "07:39" {
		t.Errorf("events[1] = %+v, want SUNRISE at 07:39", events[1])
	}
}

func TestManager_EventDetection_Sunset(t *testing.T) {
	m := newTampa(DefaultConfig())
	mustUpdate(t, m, utc(2023, 3, 12, 23, 0)) // 18:00 standard
	mustUpdate(t, m, utc(2023, 3, 13, 0, 0))  // 19:00 standard

	e, ok := hasEvent(m.RecentEvents(10), EventSunset)
	if !ok {
		t.Fatal("expected SUNSET event")
	}
	if e.Detail != "19:36" {
		t.Errorf("sunset detail = %q, want 19:36", e.Detail)
	}
}

func TestManager_EventDetection_Moon(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     EventType
	}{
		{"full", utc(2023, 3, 6, 17, 0), utc(2023, 3, 6, 18, 0), EventFullMoon},
		{"new", utc(2023, 3, 21, 11, 0), utc(2023, 3, 21, 12, 0), EventNewMoon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTampa(DefaultConfig())
			mustUpdate(t, m, tt.from)
			mustUpdate(t, m, tt.to)
			if _, ok := hasEvent(m.RecentEvents(10), tt.want); !ok {
				t.Errorf("missing %s in %v", tt.want, m.RecentEvents(10))
			}
		})
	}
}

func TestManager_EventDetection_Season(t *testing.T) {
	m := newTampa(DefaultConfig())
	mustUpdate(t, m, utc(2023, 3, 22, 4, 0)) // Mar 21 23:00 standard
	mustUpdate(t, m, utc(2023, 3, 22, 6, 0)) // Mar 22 01:00 standard

	e, ok := hasEvent(m.RecentEvents(10), EventSeason)
	if !ok {
		t.Fatal("expected SEASON event")
	}
	if e.Detail != "spring" {
		t.Errorf("season detail = %q, want spring", e.Detail)
	}
}

func TestManager_EventDetection_NoneWhenIdle(t *testing.T) {
	m := newTampa(DefaultConfig())
	mustUpdate(t, m, utc(2023, 7, 4, 17, 0))
	mustUpdate(t, m, utc(2023, 7, 4, 17, 1))

	if events := m.RecentEvents(10); len(events) != 0 {
		t.Errorf("events = %v, want none", events)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 3
	m := newTampa(cfg)

	// Stepping back and forth across the DST start and sunrise logs
	// DST_START and SUNRISE going forward and DST_END going back.
	for i := 0; i < 10; i++ {
		now := utc(2023, 3, 12, 6, 0)
		if i%2 == 1 {
			now = utc(2023, 3, 12, 12, 0)
		}
		mustUpdate(t, m, now)
	}

	events := m.RecentEvents(100)
	if len(events) != cfg.MaxEvents {
		t.Fatalf("events count = %d, want %d", len(events), cfg.MaxEvents)
	}
	want := []EventType{EventDSTEnd, EventDSTStart, EventSunrise}
	for i, typ := range want {
		if events[i].Type != typ {
			t.Errorf("events[%d] = %q, want %q", i, events[i].Type, typ)
		}
	}

	if got := m.RecentEvents(1); len(got) != 1 || got[0].Type != EventSunrise {
		t.Errorf("RecentEvents(1) = %v", got)
	}
}

func TestManager_Snapshot_IncludesEvents(t *testing.T) {
	m := newTampa(DefaultConfig())
	mustUpdate(t, m, utc(2023, 3, 12, 6, 0))
	mustUpdate(t, m, utc(2023, 3, 12, 12, 0))

	snap := m.Snapshot()
	if len(snap.Events) == 0 {
		t.Fatal("Snapshot should include events")
	}
	if snap.Events[0].Type != EventDSTStart {
		t.Errorf("event type = %q, want DST_START", snap.Events[0].Type)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := newTampa(DefaultConfig())
	start := utc(2024, 6, 1, 0, 0)

	var wg sync.WaitGroup
	iterations := 100

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_ = m.Update(start.Add(time.Duration(i) * time.Minute))
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.HasData()
				_ = m.RecentEvents(5)
				_ = m.RefreshInterval()
			}
		}()
	}

	wg.Wait()
}

func TestManager_SetRefreshInterval(t *testing.T) {
	m := newTampa(DefaultConfig())

	newInterval := 30 * time.Second
	m.SetRefreshInterval(newInterval)

	if m.RefreshInterval() != newInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), newInterval)
	}
}
