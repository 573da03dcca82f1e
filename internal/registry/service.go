// Package registry implements the reference-data synchronizer: the single
// component allowed to talk to the external registry client and the
// reference-data cache. It serves full roster snapshots (cache hit or
// fetch+transform+store), country filtering in memory, single-person
// lookups, cache invalidation, and cached person images.
//
// Failure semantics: upstream errors on a cache miss propagate unchanged
// to the caller. There are no retries and no fallback to stale data beyond
// what the TTL already allows; nothing is cached on a failed fetch.
package registry

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aerogym/go-registration-backend/internal/cache"
	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/fig"
)

const (
	rosterKeyPrefix = "roster:"
	imageKeyPrefix  = "image:"
)

// Client is the narrow contract the synchronizer needs from the external
// registry client. Satisfied by *fig.Client.
type Client interface {
	Athletes(ctx context.Context) ([]fig.RawAthlete, error)
	Coaches(ctx context.Context) ([]fig.RawCoach, error)
	Judges(ctx context.Context) ([]fig.RawJudge, error)
}

// ImageClient fetches raw portrait bytes. Satisfied by *fig.ImageClient.
type ImageClient interface {
	Image(ctx context.Context, externalID string) ([]byte, string, error)
}

// Options configures a Service.
type Options struct {
	RosterTTL    time.Duration
	ImageTTL     time.Duration
	ImageBaseURL string // prefix for derived Person.ImageURL values
	Clock        cache.Clock
}

// Service is the reference-data synchronizer. Explicitly constructed with
// its cache handle and clock so TTL behavior is testable; there is no
// package-level state.
//
// Concurrent cache misses for the same kind may both fetch and both write
// the cache. The writes contain equivalent data and last write wins, so
// the duplicated fetch cost is accepted rather than guarded with a
// per-key mutex.
type Service struct {
	client Client
	images ImageClient
	store  *cache.Store
	opts   Options
}

// NewService constructs a Service. A nil clock defaults to the system
// clock.
func NewService(client Client, images ImageClient, store *cache.Store, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = cache.SystemClock{}
	}
	return &Service{client: client, images: images, store: store, opts: opts}
}

// rosterKey returns the cache key holding the full roster snapshot for a
// kind.
func rosterKey(kind domain.PersonKind) string { return rosterKeyPrefix + string(kind) }

// imageKey returns the cache key holding one person's portrait.
func imageKey(externalID string) string { return imageKeyPrefix + externalID }

// GetRoster returns the full roster of one kind. On a cache hit the
// snapshot is returned as-is; on a miss the raw records are fetched,
// transformed (records without an external identifier are dropped),
// stored with the configured TTL, and returned.
func (s *Service) GetRoster(ctx context.Context, kind domain.PersonKind) ([]domain.Person, error) {
	tr := otel.Tracer("registry/Service")
	ctx, span := tr.Start(ctx, "GetRoster",
		trace.WithAttributes(attribute.String("roster.kind", string(kind))),
	)
	defer span.End()

	if blob, ok := s.store.Get(rosterKey(kind)); ok {
		var roster []domain.Person
		if err := json.Unmarshal(blob, &roster); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return roster, nil
		}
		// Undecodable snapshot: treat as a miss and refetch.
		s.store.Delete(rosterKey(kind))
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	roster, err := s.fetchAndTransform(ctx, kind)
	if err != nil {
		return nil, err
	}

	if blob, err := json.Marshal(roster); err == nil {
		s.store.Set(rosterKey(kind), blob, s.opts.RosterTTL)
	}
	return roster, nil
}

// GetRosterByCountry returns the roster of one kind filtered by
// case-insensitive country-code equality. It always resolves the full
// roster through GetRoster first and filters in memory: upstream load
// stays constant no matter how many countries are queried.
func (s *Service) GetRosterByCountry(ctx context.Context, kind domain.PersonKind, country string) ([]domain.Person, error) {
	roster, err := s.GetRoster(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Person, 0, len(roster))
	for _, p := range roster {
		if strings.EqualFold(p.Country, country) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetOne returns the person with the given external identifier, or nil
// when the roster does not contain it. Linear search over the cached
// snapshot; roster sizes are in the hundreds.
func (s *Service) GetOne(ctx context.Context, kind domain.PersonKind, externalID string) (*domain.Person, error) {
	roster, err := s.GetRoster(ctx, kind)
	if err != nil {
		return nil, err
	}
	for i := range roster {
		if roster[i].ID == externalID {
			return &roster[i], nil
		}
	}
	return nil, nil
}

// Invalidate deletes the roster snapshot of one kind unconditionally. The
// next access refetches lazily.
func (s *Service) Invalidate(kind domain.PersonKind) {
	s.store.Delete(rosterKey(kind))
}

// InvalidateAll clears every cached entry, rosters and images alike.
func (s *Service) InvalidateAll() {
	s.store.DeleteAll()
}

// Stats reports how many entities are currently cached per roster plus the
// number of cached images.
type Stats struct {
	Athletes int `json:"athletes"`
	Coaches  int `json:"coaches"`
	Judges   int `json:"judges"`
	Images   int `json:"images"`
}

// CacheStats counts cached entities without triggering any fetch. A kind
// whose snapshot is absent or expired counts as zero.
func (s *Service) CacheStats() Stats {
	return Stats{
		Athletes: s.cachedCount(domain.KindAthlete),
		Coaches:  s.cachedCount(domain.KindCoach),
		Judges:   s.cachedCount(domain.KindJudge),
		Images:   s.store.CountPrefix(imageKeyPrefix),
	}
}

func (s *Service) cachedCount(kind domain.PersonKind) int {
	blob, ok := s.store.Get(rosterKey(kind))
	if !ok {
		return 0
	}
	var roster []domain.Person
	if err := json.Unmarshal(blob, &roster); err != nil {
		return 0
	}
	return len(roster)
}

// fetchAndTransform pulls the raw array for a kind and runs the ingestion
// transform over every record.
func (s *Service) fetchAndTransform(ctx context.Context, kind domain.PersonKind) ([]domain.Person, error) {
	now := s.opts.Clock.Now()
	switch kind {
	case domain.KindCoach:
		raw, err := s.client.Coaches(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Person, 0, len(raw))
		for _, r := range raw {
			if p, ok := s.transformCoach(r); ok {
				out = append(out, p)
			}
		}
		return out, nil
	case domain.KindJudge:
		raw, err := s.client.Judges(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Person, 0, len(raw))
		for _, r := range raw {
			if p, ok := s.transformJudge(r); ok {
				out = append(out, p)
			}
		}
		return out, nil
	default:
		raw, err := s.client.Athletes(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Person, 0, len(raw))
		for _, r := range raw {
			if p, ok := s.transformAthlete(r, now); ok {
				out = append(out, p)
			}
		}
		return out, nil
	}
}
