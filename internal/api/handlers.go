// Package api serves almanac readings over HTTP as JSON.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/calendar"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/store"
)

// DayStore caches computed days. *store.DB satisfies it.
type DayStore interface {
	SaveDays(ctx context.Context, key store.Key, days []report.Daily) error
	Days(ctx context.Context, key store.Key, from, to calendar.Time) ([]report.Daily, error)
	PingContext(ctx context.Context) error
}

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	mu     sync.Mutex
	alm    *almanac.Almanac
	site   string
	key    store.Key
	store  DayStore
	now    func() time.Time
	logger *slog.Logger
}

// Option configures Handlers.
type Option func(*Handlers)

// WithStore caches day readings in s.
func WithStore(s DayStore) Option {
	return func(h *Handlers) { h.store = s }
}

// WithClock replaces time.Now for the "now" endpoints.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) { h.now = now }
}

// NewHandlers creates handlers evaluating a for the named site.
func NewHandlers(a *almanac.Almanac, site string, logger *slog.Logger, opts ...Option) *Handlers {
	h := &Handlers{
		alm:    a,
		site:   site,
		key:    store.KeyFor(site, a),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SiderealReading is the body of GET /api/v1/sidereal.
type SiderealReading struct {
	Standard  string  `json:"standard"`
	UTC       string  `json:"utc"`
	GMST      string  `json:"gmst"`
	LMST      string  `json:"lmst"`
	Longitude float64 `json:"longitude"`
}

// MoonReading is the body of GET /api/v1/moon.
type MoonReading struct {
	Standard     string  `json:"standard"`
	Phase        float64 `json:"phase"`
	Name         string  `json:"name"`
	Illumination float64 `json:"illumination"`
	AgeDays      float64 `json:"age_days"`
}

// instant resolves the ?at= query parameter, defaulting to the current
// standard local time.
func (h *Handlers) instant(r *http.Request) (calendar.Time, error) {
	if at := r.URL.Query().Get("at"); at != "" {
		return calendar.Parse(at)
	}
	return state.Standard(h.alm, h.now())
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := h.store.PingContext(ctx); err != nil {
			h.logger.Warn("health check failed", slog.Any("error", err))
			WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
			return
		}
	}
	WriteSuccess(w, map[string]string{"status": "healthy", "site": h.site})
}

// GetNow handles GET /api/v1/now
func (h *Handlers) GetNow(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, err := state.Standard(h.alm, h.now())
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "OUT_OF_RANGE")
		return
	}
	WriteSuccess(w, report.BuildInstant(h.alm, h.site, t))
}

// GetDay handles GET /api/v1/day/{date}
func (h *Handlers) GetDay(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	t, err := calendar.Parse(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date: %s. Use YYYY-MM-DD", dateStr))
		return
	}
	t.Hour, t.Minute, t.Second = 12, 0, 0

	ctx := r.Context()
	if h.store != nil {
		days, err := h.store.Days(ctx, h.key, t, t)
		if err != nil {
			h.logger.Error("failed to read stored day", slog.String("date", dateStr), slog.Any("error", err))
		} else if len(days) == 1 {
			WriteSuccess(w, days[0])
			return
		}
	}

	h.mu.Lock()
	d := report.Build(h.alm, h.site, t)
	h.mu.Unlock()

	if h.store != nil {
		if err := h.store.SaveDays(ctx, h.key, []report.Daily{d}); err != nil {
			h.logger.Error("failed to store day", slog.String("date", dateStr), slog.Any("error", err))
		}
	}
	WriteSuccess(w, d)
}

// GetSidereal handles GET /api/v1/sidereal[?at=YYYY-MM-DD HH:MM:SS]
func (h *Handlers) GetSidereal(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, err := h.instant(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	utc, gmst, lmst := t, t, t
	h.alm.GMT(&utc)
	h.alm.Sidereal(&gmst, false)
	h.alm.Sidereal(&lmst, true)

	WriteSuccess(w, SiderealReading{
		Standard:  t.String(),
		UTC:       utc.String(),
		GMST:      gmst.ClockString(),
		LMST:      lmst.ClockString(),
		Longitude: h.alm.Longitude(),
	})
}

// GetMoon handles GET /api/v1/moon[?at=YYYY-MM-DD HH:MM:SS]
func (h *Handlers) GetMoon(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, err := h.instant(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	p := h.alm.MoonPhase(&t)
	WriteSuccess(w, MoonReading{
		Standard:     t.String(),
		Phase:        p,
		Name:         astro.PhaseName(p),
		Illumination: astro.Illumination(p),
		AgeDays:      astro.MoonAge(p),
	})
}
