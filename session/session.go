// Package session holds the per-user search screen state: the query and its
// suggestions, fetched weather, neighborhood discounts, and the timers that
// drive the unlock notification and decorative backdrop.
package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Elephante152/habitat/backdrop"
	"github.com/Elephante152/habitat/discounts"
	"github.com/Elephante152/habitat/fetcher"
	"github.com/Elephante152/habitat/models"
	"github.com/Elephante152/habitat/suggest"
	"github.com/Elephante152/habitat/units"

	"github.com/jonboulle/clockwork"
)

var (
	ErrNotFound            = errors.New("session not found")
	ErrClosed              = errors.New("session closed")
	ErrSuperseded          = errors.New("search superseded by a newer request")
	ErrUnknownNeighborhood = errors.New("neighborhood is not offered for the current search")
	ErrInvalidTab          = errors.New("invalid tab")
)

// Tab is the panel shown under the weather card
type Tab string

const (
	TabForecast  Tab = "forecast"
	TabDiscounts Tab = "discounts"
)

// Searcher runs a weather search; *fetcher.Fetcher satisfies it
type Searcher interface {
	Search(ctx context.Context, city string, unit models.UnitSystem) (fetcher.Result, error)
}

// Deps are the collaborators shared by every session
type Deps struct {
	Searcher         Searcher
	Normalizer       *suggest.Normalizer
	Resolver         *discounts.Resolver
	Clock            clockwork.Clock
	BackdropInterval time.Duration
	UnlockDuration   time.Duration
}

// Session is one user's screen state
type Session struct {
	id   string
	deps Deps

	backdrop *backdrop.Cycler
	unlock   *unlockTimer

	mu            sync.Mutex
	query         string
	suggestions   suggest.Suggestions
	celsius       bool
	tab           Tab
	loading       bool
	result        fetcher.Result
	neighborhoods []string
	selected      string
	businesses    []models.Business
	seq           uint64
	cancel        context.CancelFunc
	lastActive    time.Time
	closed        bool
}

// New creates a session with an empty query and a cycling backdrop
func New(id string, deps Deps) *Session {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	s := &Session{
		id:         id,
		deps:       deps,
		backdrop:   backdrop.NewCycler(deps.Clock, deps.BackdropInterval),
		unlock:     newUnlockTimer(deps.Clock, deps.UnlockDuration),
		celsius:    true,
		tab:        TabForecast,
		lastActive: deps.Clock.Now(),
	}
	s.clearLocked()
	s.backdrop.Resume()
	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// LastActive returns the time of the most recent operation
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// View returns a snapshot of the session state
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Input records raw as the query text. Emptying the query resets the session
// and restarts the backdrop cycle.
func (s *Session) Input(ctx context.Context, raw string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return View{}, ErrClosed
	}
	s.touchLocked()
	s.query = raw

	if raw == "" {
		s.supersedeLocked()
		s.clearLocked()
		s.backdrop.Resume()
		slog.DebugContext(ctx, "session reset", "session", s.id)
		return s.viewLocked(), nil
	}

	s.backdrop.Pause()
	s.suggestions = s.deps.Normalizer.OnInputChange(ctx, raw)
	return s.viewLocked(), nil
}

// SelectSuggestion makes city the query and searches for it
func (s *Session) SelectSuggestion(ctx context.Context, city string) (View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return View{}, ErrClosed
	}
	s.query = city
	s.suggestions.Show = false
	if city != "" {
		s.backdrop.Pause()
	}
	return s.searchLocked(ctx, city)
}

// Submit searches for the current query. A blank query does nothing.
func (s *Session) Submit(ctx context.Context) (View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return View{}, ErrClosed
	}
	return s.searchLocked(ctx, s.query)
}

// searchLocked runs a search for query. It must be called with s.mu held and
// releases it before returning.
func (s *Session) searchLocked(ctx context.Context, query string) (View, error) {
	if strings.TrimSpace(query) == "" {
		defer s.mu.Unlock()
		return s.viewLocked(), nil
	}

	s.touchLocked()
	s.supersedeLocked()
	seq := s.seq
	searchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loading = true
	unit := models.UnitFor(s.celsius)
	s.mu.Unlock()

	defer cancel()

	result, err := s.deps.Searcher.Search(searchCtx, query, unit)

	neighborhoods, nErr := s.deps.Resolver.Neighborhoods(context.WithoutCancel(ctx), query)
	if nErr != nil {
		slog.WarnContext(ctx, "neighborhood lookup failed", "session", s.id, "error", nErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		slog.DebugContext(ctx, "discarding stale search", "session", s.id, "query", query, "seq", seq, "latest", s.seq)
		return s.viewLocked(), ErrSuperseded
	}
	s.cancel = nil
	s.loading = false

	// the neighborhood reset applies to every attempt, including failed ones
	s.neighborhoods = neighborhoods
	if s.neighborhoods == nil {
		s.neighborhoods = []string{}
	}
	s.selected = ""
	s.businesses = []models.Business{}
	s.suggestions.Show = false

	if err != nil {
		return s.viewLocked(), err
	}

	s.result = result
	if result.Weather != nil {
		s.backdrop.Pin(result.Weather.Condition)
	}
	return s.viewLocked(), nil
}

// SetCelsius switches the display unit. Stored values are not refetched.
func (s *Session) SetCelsius(celsius bool) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return View{}, ErrClosed
	}
	s.touchLocked()
	s.celsius = celsius
	return s.viewLocked(), nil
}

// SetTab selects the forecast or discounts panel
func (s *Session) SetTab(tab Tab) (View, error) {
	if tab != TabForecast && tab != TabDiscounts {
		return View{}, ErrInvalidTab
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return View{}, ErrClosed
	}
	s.touchLocked()
	s.tab = tab
	return s.viewLocked(), nil
}

// SelectNeighborhood loads the partners in name and raises the unlock
// notification. name must be one of the neighborhoods from the last search.
func (s *Session) SelectNeighborhood(ctx context.Context, name string) (View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return View{}, ErrClosed
	}
	if !slices.Contains(s.neighborhoods, name) {
		s.mu.Unlock()
		return View{}, ErrUnknownNeighborhood
	}
	s.touchLocked()
	seq := s.seq
	s.mu.Unlock()

	businesses, err := s.deps.Resolver.SelectNeighborhood(ctx, name)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return s.viewLocked(), ErrSuperseded
	}
	s.selected = name
	s.businesses = businesses
	s.unlock.Trigger()
	return s.viewLocked(), nil
}

// Close cancels any in-flight search and releases the session timers
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.supersedeLocked()
	s.mu.Unlock()

	s.backdrop.Stop()
	s.unlock.Stop()
}

// supersedeLocked invalidates any in-flight search
func (s *Session) supersedeLocked() {
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loading = false
}

func (s *Session) clearLocked() {
	s.suggestions = suggest.Suggestions{Items: []string{}}
	s.result = fetcher.Result{Forecast: []models.ForecastDay{}}
	s.neighborhoods = []string{}
	s.selected = ""
	s.businesses = []models.Business{}
}

func (s *Session) touchLocked() {
	s.lastActive = s.deps.Clock.Now()
}

func (s *Session) viewLocked() View {
	v := View{
		ID:                   s.id,
		Query:                s.query,
		Suggestions:          append([]string{}, s.suggestions.Items...),
		ShowSuggestions:      s.suggestions.Show,
		Loading:              s.loading,
		Celsius:              s.celsius,
		Tab:                  s.tab,
		Forecast:             make([]ForecastView, 0, len(s.result.Forecast)),
		Error:                s.result.Message,
		WeatherError:         s.result.WeatherError,
		ForecastError:        s.result.ForecastError,
		Neighborhoods:        append([]string{}, s.neighborhoods...),
		SelectedNeighborhood: s.selected,
		Businesses:           append([]models.Business{}, s.businesses...),
		Unlocked:             s.unlock.Active(),
		Backdrop:             s.backdrop.State(),
		BackdropCycling:      s.backdrop.Cycling(),
	}

	if w := s.result.Weather; w != nil {
		v.Weather = &WeatherView{
			WeatherSnapshot:    *w,
			DisplayTemperature: units.Display(w.Temperature, w.Unit, s.celsius),
			WindUnit:           units.WindUnit(w.Unit),
		}
	}
	for _, d := range s.result.Forecast {
		v.Forecast = append(v.Forecast, ForecastView{
			ForecastDay:        d,
			DisplayTemperature: units.Display(d.Temperature, d.Unit, s.celsius),
		})
	}
	return v
}
