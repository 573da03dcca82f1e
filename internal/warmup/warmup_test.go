package warmup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/registry"
)

type fakeRegistry struct {
	rosters    map[domain.PersonKind][]domain.Person
	rosterErr  map[domain.PersonKind]error
	rosterHits map[domain.PersonKind]int
	images     map[string]bool
	imageErr   map[string]error
	imageHits  int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		rosters:    map[domain.PersonKind][]domain.Person{},
		rosterErr:  map[domain.PersonKind]error{},
		rosterHits: map[domain.PersonKind]int{},
		images:     map[string]bool{},
		imageErr:   map[string]error{},
	}
}

func (f *fakeRegistry) GetRoster(ctx context.Context, kind domain.PersonKind) ([]domain.Person, error) {
	f.rosterHits[kind]++
	if err := f.rosterErr[kind]; err != nil {
		return nil, err
	}
	return f.rosters[kind], nil
}

func (f *fakeRegistry) GetImage(ctx context.Context, externalID string) ([]byte, string, error) {
	if err := f.imageErr[externalID]; err != nil {
		return nil, "", err
	}
	f.imageHits++
	f.images[externalID] = true
	return []byte{0x1}, "image/jpeg", nil
}

func (f *fakeRegistry) ImageCached(externalID string) bool { return f.images[externalID] }

func (f *fakeRegistry) CacheStats() registry.Stats {
	return registry.Stats{
		Athletes: len(f.rosters[domain.KindAthlete]),
		Coaches:  len(f.rosters[domain.KindCoach]),
		Judges:   len(f.rosters[domain.KindJudge]),
		Images:   len(f.images),
	}
}

func fastOpts() Options {
	return Options{ImageLimit: 50, ImagePause: time.Microsecond, ImageBurst: 50}
}

func people(ids ...string) []domain.Person {
	out := make([]domain.Person, len(ids))
	for i, id := range ids {
		out[i] = domain.Person{ID: id, Kind: domain.KindAthlete}
	}
	return out
}

func TestRun_WarmsAllRostersAndImages(t *testing.T) {
	reg := newFakeRegistry()
	reg.rosters[domain.KindAthlete] = people("A1", "A2")
	reg.rosters[domain.KindCoach] = people("C1")
	reg.rosters[domain.KindJudge] = people("J1")

	s := New(reg, fastOpts(), zerolog.Nop())
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, kind := range domain.Kinds {
		if reg.rosterHits[kind] != 1 {
			t.Fatalf("roster %s fetched %d times; want 1", kind, reg.rosterHits[kind])
		}
	}
	if reg.imageHits != 4 {
		t.Fatalf("images fetched = %d; want 4", reg.imageHits)
	}

	st := s.Status()
	if !st.Warmed || st.LastSuccess == nil || st.LastError != "" {
		t.Fatalf("status = %+v", st)
	}
	if st.Cache.Athletes != 2 || st.Cache.Images != 4 {
		t.Fatalf("cache stats = %+v", st.Cache)
	}
}

func TestRun_ImageLimitBoundsPrefetch(t *testing.T) {
	reg := newFakeRegistry()
	reg.rosters[domain.KindAthlete] = people("A1", "A2", "A3", "A4", "A5")

	opts := fastOpts()
	opts.ImageLimit = 2
	s := New(reg, opts, zerolog.Nop())
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reg.imageHits != 2 {
		t.Fatalf("images fetched = %d; want limit of 2", reg.imageHits)
	}
}

func TestRun_SkipsCachedImages(t *testing.T) {
	reg := newFakeRegistry()
	reg.rosters[domain.KindAthlete] = people("A1", "A2")
	reg.images["A1"] = true

	s := New(reg, fastOpts(), zerolog.Nop())
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reg.imageHits != 1 {
		t.Fatalf("images fetched = %d; want only the uncached one", reg.imageHits)
	}
}

func TestRun_RosterFailureAborts(t *testing.T) {
	boom := errors.New("upstream down")
	reg := newFakeRegistry()
	reg.rosters[domain.KindAthlete] = people("A1")
	reg.rosterErr[domain.KindCoach] = boom

	s := New(reg, fastOpts(), zerolog.Nop())
	if err := s.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v; want roster error", err)
	}

	st := s.Status()
	if st.Warmed || st.LastSuccess != nil {
		t.Fatalf("status after failed run = %+v", st)
	}
	if st.LastError == "" {
		t.Fatal("failure not recorded in status")
	}
	// Judges are never reached; the run aborts at the first failure.
	if reg.rosterHits[domain.KindJudge] != 0 {
		t.Fatal("run continued past a roster failure")
	}
}

func TestRun_ImageFailureDoesNotAbort(t *testing.T) {
	reg := newFakeRegistry()
	reg.rosters[domain.KindAthlete] = people("A1", "A2")
	reg.imageErr["A1"] = errors.New("404")

	s := New(reg, fastOpts(), zerolog.Nop())
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reg.imageHits != 1 {
		t.Fatalf("images fetched = %d; want the survivor", reg.imageHits)
	}
	if !s.Status().Warmed {
		t.Fatal("image failure must not block warmed state")
	}
}

func TestRun_RecoversAfterFailure(t *testing.T) {
	boom := errors.New("flaky")
	reg := newFakeRegistry()
	reg.rosterErr[domain.KindAthlete] = boom

	s := New(reg, fastOpts(), zerolog.Nop())
	_ = s.Run(context.Background())

	reg.rosterErr[domain.KindAthlete] = nil
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	st := s.Status()
	if !st.Warmed || st.LastError != "" {
		t.Fatalf("status after recovery = %+v", st)
	}
}

func TestStart_ContextCancelStops(t *testing.T) {
	reg := newFakeRegistry()
	opts := fastOpts()
	opts.Interval = time.Hour

	s := New(reg, opts, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not stop on context cancel")
	}
}
