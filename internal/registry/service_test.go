package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aerogym/go-registration-backend/internal/cache"
	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/fig"
)

// ----- Fakes -----

// fakeClock is a settable clock shared by the cache and the service.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// countingClient counts upstream calls and serves canned raw records.
type countingClient struct {
	athletes []fig.RawAthlete
	coaches  []fig.RawCoach
	judges   []fig.RawJudge

	athleteErr error
	judgeErr   error

	athleteCalls int
	coachCalls   int
	judgeCalls   int
}

func (c *countingClient) Athletes(context.Context) ([]fig.RawAthlete, error) {
	c.athleteCalls++
	return c.athletes, c.athleteErr
}

func (c *countingClient) Coaches(context.Context) ([]fig.RawCoach, error) {
	c.coachCalls++
	return c.coaches, nil
}

func (c *countingClient) Judges(context.Context) ([]fig.RawJudge, error) {
	c.judgeCalls++
	return c.judges, c.judgeErr
}

// countingImages serves one canned image per ID.
type countingImages struct {
	calls int
	err   error
}

func (c *countingImages) Image(_ context.Context, externalID string) ([]byte, string, error) {
	c.calls++
	if c.err != nil {
		return nil, "", c.err
	}
	return []byte("img-" + externalID), "image/jpeg", nil
}

func newTestService(client Client, images ImageClient, clk cache.Clock) (*Service, *cache.Store) {
	store := cache.New(clk)
	svc := NewService(client, images, store, Options{
		RosterTTL:    12 * time.Hour,
		ImageTTL:     7 * 24 * time.Hour,
		ImageBaseURL: "https://img.example.org/",
		Clock:        clk,
	})
	return svc, store
}

// ----- Tests -----

func TestGetRoster_IngestionTransform(t *testing.T) {
	clk := &fakeClock{now: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)}
	client := &countingClient{
		athletes: []fig.RawAthlete{{
			GymnastID:          "FIG1",
			PreferredFirstName: "John",
			PreferredLastName:  "Doe",
			Gender:             "male",
			Country:            "usa",
			Discipline:         "AER",
			Birth:              "1995-05-01",
			ValidTo:            "2030-12-31",
			Status:             "valid",
		}},
	}
	svc, _ := newTestService(client, &countingImages{}, clk)

	roster, err := svc.GetRoster(context.Background(), domain.KindAthlete)
	if err != nil {
		t.Fatalf("GetRoster error: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("roster size = %d; want 1", len(roster))
	}
	p := roster[0]
	if p.Country != "USA" {
		t.Errorf("country not upper-cased: %q", p.Country)
	}
	if p.Gender != domain.GenderMale {
		t.Errorf("gender = %v; want MALE", p.Gender)
	}
	if p.Age != 29 { // 2024 - 1995, birthday irrelevant
		t.Errorf("competition age = %d; want 29", p.Age)
	}
	if p.Category != domain.CategorySenior {
		t.Errorf("category = %v; want SENIOR", p.Category)
	}
	if p.FullName != "John Doe" {
		t.Errorf("full name = %q", p.FullName)
	}
	if p.ImageURL != "https://img.example.org/FIG1" {
		t.Errorf("image url = %q", p.ImageURL)
	}
	if !p.ValidLicense {
		t.Error("valid license flag not set")
	}
}

func TestGetRoster_DropsRecordsWithoutExternalID(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	client := &countingClient{
		athletes: []fig.RawAthlete{
			{GymnastID: "", PreferredLastName: "Ghost"},
			{GymnastID: "  ", PreferredLastName: "Blank"},
			{GymnastID: "FIG2", PreferredLastName: "Real"},
		},
	}
	svc, _ := newTestService(client, &countingImages{}, clk)

	roster, err := svc.GetRoster(context.Background(), domain.KindAthlete)
	if err != nil {
		t.Fatalf("GetRoster error: %v", err)
	}
	if len(roster) != 1 || roster[0].ID != "FIG2" {
		t.Fatalf("roster = %+v; want only FIG2", roster)
	}
}

func TestGetRoster_SecondCallWithinTTLHitsCache(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	client := &countingClient{judges: []fig.RawJudge{{ID: "J1"}}}
	svc, _ := newTestService(client, &countingImages{}, clk)

	ctx := context.Background()
	if _, err := svc.GetRoster(ctx, domain.KindJudge); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetRoster(ctx, domain.KindJudge); err != nil {
		t.Fatal(err)
	}
	if client.judgeCalls != 1 {
		t.Fatalf("upstream calls = %d; want exactly 1 within TTL", client.judgeCalls)
	}

	clk.advance(13 * time.Hour) // past the 12h roster TTL
	if _, err := svc.GetRoster(ctx, domain.KindJudge); err != nil {
		t.Fatal(err)
	}
	if client.judgeCalls != 2 {
		t.Fatalf("upstream calls after expiry = %d; want 2", client.judgeCalls)
	}
}

func TestGetRoster_UpstreamErrorLeavesCacheUnset(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	client := &countingClient{judgeErr: fig.ErrUpstreamTimeout}
	svc, store := newTestService(client, &countingImages{}, clk)

	_, err := svc.GetRoster(context.Background(), domain.KindJudge)
	if !errors.Is(err, fig.ErrUpstreamTimeout) {
		t.Fatalf("err = %v; want ErrUpstreamTimeout", err)
	}
	if _, ok := store.Get("roster:judge"); ok {
		t.Fatal("judges cache key set despite upstream failure")
	}

	// Recovery: upstream healthy again, next access fetches lazily.
	client.judgeErr = nil
	client.judges = []fig.RawJudge{{ID: "J1"}}
	roster, err := svc.GetRoster(context.Background(), domain.KindJudge)
	if err != nil || len(roster) != 1 {
		t.Fatalf("recovery fetch = %v, %v", roster, err)
	}
}

func TestGetRosterByCountry_FiltersInMemory(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	client := &countingClient{athletes: []fig.RawAthlete{
		{GymnastID: "A1", Country: "GRE"},
		{GymnastID: "A2", Country: "USA"},
		{GymnastID: "A3", Country: "gre"},
	}}
	svc, _ := newTestService(client, &countingImages{}, clk)

	ctx := context.Background()
	got, err := svc.GetRosterByCountry(ctx, domain.KindAthlete, "gre")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("filtered roster size = %d; want 2", len(got))
	}
	// A second country query must not hit upstream again.
	if _, err := svc.GetRosterByCountry(ctx, domain.KindAthlete, "USA"); err != nil {
		t.Fatal(err)
	}
	if client.athleteCalls != 1 {
		t.Fatalf("upstream calls = %d; want 1 regardless of country fan-out", client.athleteCalls)
	}
}

func TestGetOne_FindsByExternalID(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	client := &countingClient{coaches: []fig.RawCoach{
		{ID: "C1", PreferredLastName: "First"},
		{ID: "C2", PreferredLastName: "Second"},
	}}
	svc, _ := newTestService(client, &countingImages{}, clk)

	p, err := svc.GetOne(context.Background(), domain.KindCoach, "C2")
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.LastName != "Second" {
		t.Fatalf("GetOne = %+v; want coach C2", p)
	}

	miss, err := svc.GetOne(context.Background(), domain.KindCoach, "C9")
	if err != nil || miss != nil {
		t.Fatalf("GetOne miss = %+v, %v; want nil, nil", miss, err)
	}
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	client := &countingClient{athletes: []fig.RawAthlete{{GymnastID: "A1"}}}
	svc, _ := newTestService(client, &countingImages{}, clk)

	ctx := context.Background()
	svc.GetRoster(ctx, domain.KindAthlete)
	svc.Invalidate(domain.KindAthlete)
	svc.GetRoster(ctx, domain.KindAthlete)

	if client.athleteCalls != 2 {
		t.Fatalf("upstream calls = %d; want 2 after invalidation", client.athleteCalls)
	}
}

func TestCacheStats_CountsEntitiesAndImages(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	client := &countingClient{
		athletes: []fig.RawAthlete{{GymnastID: "A1"}, {GymnastID: "A2"}},
		judges:   []fig.RawJudge{{ID: "J1"}},
	}
	svc, _ := newTestService(client, &countingImages{}, clk)

	ctx := context.Background()
	svc.GetRoster(ctx, domain.KindAthlete)
	svc.GetRoster(ctx, domain.KindJudge)
	svc.GetImage(ctx, "A1")

	st := svc.CacheStats()
	if st.Athletes != 2 || st.Judges != 1 || st.Coaches != 0 || st.Images != 1 {
		t.Fatalf("stats = %+v", st)
	}

	svc.InvalidateAll()
	st = svc.CacheStats()
	if st.Athletes != 0 || st.Images != 0 {
		t.Fatalf("stats after InvalidateAll = %+v", st)
	}
}

func TestGetImage_CachesWithImageTTL(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	images := &countingImages{}
	svc, _ := newTestService(&countingClient{}, images, clk)

	ctx := context.Background()
	data, ct, err := svc.GetImage(ctx, "A1")
	if err != nil || string(data) != "img-A1" || ct != "image/jpeg" {
		t.Fatalf("GetImage = %q, %q, %v", data, ct, err)
	}

	// Within image TTL but past roster TTL: still cached.
	clk.advance(24 * time.Hour)
	if _, _, err := svc.GetImage(ctx, "A1"); err != nil {
		t.Fatal(err)
	}
	if images.calls != 1 {
		t.Fatalf("origin calls = %d; want 1", images.calls)
	}
	if !svc.ImageCached("A1") {
		t.Fatal("ImageCached = false; want true")
	}

	clk.advance(7 * 24 * time.Hour)
	if svc.ImageCached("A1") {
		t.Fatal("image survived past its TTL")
	}
}

func TestGetImage_OriginFailurePropagates(t *testing.T) {
	images := &countingImages{err: fig.ErrUpstreamUnavailable}
	svc, _ := newTestService(&countingClient{}, images, &fakeClock{now: time.Now()})

	if _, _, err := svc.GetImage(context.Background(), "A1"); !errors.Is(err, fig.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v; want ErrUpstreamUnavailable", err)
	}
}
