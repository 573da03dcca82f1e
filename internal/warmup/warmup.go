// Package warmup pre-populates the reference-data cache so the first user
// request after a deploy does not pay the upstream round-trip. It runs the
// same sequence on process start, on a fixed interval, and on demand via
// the admin endpoint: fetch the three rosters, then pre-fetch a bounded
// prefix of portraits, paced to avoid bursting the image origin.
//
// Warmup is advisory. Every failure is logged and swallowed; requests are
// served from whatever was cached before, falling back to on-demand
// fetches on a cold cache.
package warmup

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/aerogym/go-registration-backend/internal/cache"
	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/registry"
)

var (
	warmupRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warmup_runs_total",
			Help: "Total warmup runs by outcome.",
		},
		[]string{"outcome"},
	)

	warmupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "warmup_duration_seconds",
			Help:    "Duration of warmup runs in seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	warmupImages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "warmup_images_prefetched_total",
			Help: "Total portraits fetched by the warmup image pre-fetch.",
		},
	)
)

func init() {
	prometheus.MustRegister(warmupRuns, warmupDuration, warmupImages)
}

// Registry is the synchronizer contract the scheduler drives. Satisfied by
// *registry.Service.
type Registry interface {
	GetRoster(ctx context.Context, kind domain.PersonKind) ([]domain.Person, error)
	GetImage(ctx context.Context, externalID string) ([]byte, string, error)
	ImageCached(externalID string) bool
	CacheStats() registry.Stats
}

// Options configures a Scheduler.
type Options struct {
	// Interval between periodic runs. Zero disables the periodic trigger;
	// Run stays available.
	Interval time.Duration
	// ImageLimit caps how many portraits one run pre-fetches, counted over
	// the combined roster prefix.
	ImageLimit int
	// ImagePause is the pacing interval between portrait fetches.
	ImagePause time.Duration
	// ImageBurst is how many portrait fetches may go out back to back
	// before pacing kicks in.
	ImageBurst int
	// Clock supplies timestamps; nil means the system clock.
	Clock cache.Clock
}

// Status is the scheduler's externally visible state.
type Status struct {
	Warmed      bool           `json:"warmed"`
	LastSuccess *time.Time     `json:"last_success,omitempty"`
	LastError   string         `json:"last_error,omitempty"`
	Cache       registry.Stats `json:"cache"`
}

// Scheduler owns the warmup sequence and its periodic trigger. Concurrent
// runs (periodic overlapping a manual trigger) proceed independently; both
// write the same cache keys and last write wins.
type Scheduler struct {
	reg  Registry
	opts Options
	log  zerolog.Logger

	mu          sync.Mutex
	warmed      bool
	lastSuccess time.Time
	lastError   string
}

// New constructs a Scheduler.
func New(reg Registry, opts Options, log zerolog.Logger) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = cache.SystemClock{}
	}
	if opts.ImagePause <= 0 {
		opts.ImagePause = 200 * time.Millisecond
	}
	if opts.ImageBurst <= 0 {
		opts.ImageBurst = 5
	}
	return &Scheduler{reg: reg, opts: opts, log: log}
}

// Start runs one warmup immediately, then repeats on the configured
// interval until ctx is canceled. Intended to be called on its own
// goroutine; it never returns an error because warmup failures must not
// take the process down.
func (s *Scheduler) Start(ctx context.Context) {
	if err := s.Run(ctx); err != nil {
		s.log.Warn().Err(err).Msg("startup warmup failed; serving cold")
	}
	if s.opts.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				s.log.Warn().Err(err).Msg("periodic warmup failed")
			}
		}
	}
}

// Run executes one warmup sequence synchronously and returns its outcome:
// fetch the three rosters in order, then pre-fetch portraits for the first
// ImageLimit people of the combined rosters. A roster failure aborts the
// run; image failures are logged per entry and do not.
func (s *Scheduler) Run(ctx context.Context) error {
	started := s.opts.Clock.Now()

	var combined []domain.Person
	for _, kind := range domain.Kinds {
		roster, err := s.reg.GetRoster(ctx, kind)
		if err != nil {
			s.recordFailure(err)
			warmupRuns.WithLabelValues("failure").Inc()
			return err
		}
		s.log.Debug().Str("kind", string(kind)).Int("count", len(roster)).Msg("roster warmed")
		combined = append(combined, roster...)
	}

	s.prefetchImages(ctx, combined)

	now := s.opts.Clock.Now()
	s.mu.Lock()
	s.warmed = true
	s.lastSuccess = now
	s.lastError = ""
	s.mu.Unlock()

	warmupRuns.WithLabelValues("success").Inc()
	warmupDuration.Observe(now.Sub(started).Seconds())
	s.log.Info().Dur("took", now.Sub(started)).Msg("warmup complete")
	return nil
}

// prefetchImages walks the combined roster prefix and fetches portraits
// not already cached, paced by the limiter.
func (s *Scheduler) prefetchImages(ctx context.Context, people []domain.Person) {
	if s.opts.ImageLimit <= 0 {
		return
	}
	limiter := rate.NewLimiter(rate.Every(s.opts.ImagePause), s.opts.ImageBurst)

	fetched := 0
	for _, p := range people {
		if fetched >= s.opts.ImageLimit {
			return
		}
		if p.ID == "" || s.reg.ImageCached(p.ID) {
			continue
		}
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		if _, _, err := s.reg.GetImage(ctx, p.ID); err != nil {
			s.log.Debug().Err(err).Str("external_id", p.ID).Msg("image prefetch failed")
			continue
		}
		warmupImages.Inc()
		fetched++
	}
}

// Status reports the current warmup state plus live cache counts.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	st := Status{Warmed: s.warmed, LastError: s.lastError}
	if !s.lastSuccess.IsZero() {
		t := s.lastSuccess
		st.LastSuccess = &t
	}
	s.mu.Unlock()

	st.Cache = s.reg.CacheStats()
	return st
}

func (s *Scheduler) recordFailure(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}
