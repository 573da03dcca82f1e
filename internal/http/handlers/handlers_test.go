package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/registry"
	"github.com/aerogym/go-registration-backend/internal/services"
	"github.com/aerogym/go-registration-backend/internal/warmup"
)

// ---------- function-field stubs for every service contract ----------

type stubPeople struct {
	listAll func(context.Context, domain.PersonKind, string) ([]domain.Person, error)
	findOne func(context.Context, domain.PersonKind, string) (*domain.Person, error)
}

func (s stubPeople) ListAll(ctx context.Context, kind domain.PersonKind, country string) ([]domain.Person, error) {
	if s.listAll != nil {
		return s.listAll(ctx, kind, country)
	}
	return nil, nil
}

func (s stubPeople) FindOne(ctx context.Context, kind domain.PersonKind, id string) (*domain.Person, error) {
	if s.findOne != nil {
		return s.findOne(ctx, kind, id)
	}
	return &domain.Person{ID: id, Kind: kind}, nil
}

type stubLocal struct {
	create func(context.Context, domain.PersonKind, services.LocalPersonInput) (*domain.LocalPerson, error)
	update func(context.Context, domain.PersonKind, string, services.LocalPersonInput) (*domain.LocalPerson, error)
	del    func(context.Context, domain.PersonKind, string) error
}

func (s stubLocal) Create(ctx context.Context, kind domain.PersonKind, in services.LocalPersonInput) (*domain.LocalPerson, error) {
	if s.create != nil {
		return s.create(ctx, kind, in)
	}
	return &domain.LocalPerson{ID: "lp1", Kind: kind, ExternalID: in.ExternalID}, nil
}

func (s stubLocal) Update(ctx context.Context, kind domain.PersonKind, id string, in services.LocalPersonInput) (*domain.LocalPerson, error) {
	if s.update != nil {
		return s.update(ctx, kind, id, in)
	}
	return &domain.LocalPerson{ID: "lp1", Kind: kind, ExternalID: id}, nil
}

func (s stubLocal) Delete(ctx context.Context, kind domain.PersonKind, id string) error {
	if s.del != nil {
		return s.del(ctx, kind, id)
	}
	return nil
}

type stubTournaments struct {
	create func(context.Context, string, string, string, time.Time) (*domain.Tournament, error)
	get    func(context.Context, string) (*domain.Tournament, error)
	list   func(context.Context) ([]domain.Tournament, error)
}

func (s stubTournaments) Create(ctx context.Context, name, typ, location string, date time.Time) (*domain.Tournament, error) {
	if s.create != nil {
		return s.create(ctx, name, typ, location, date)
	}
	return &domain.Tournament{ID: "t1", Name: name, Type: domain.TournamentNational, Location: location, Date: date}, nil
}

func (s stubTournaments) Get(ctx context.Context, id string) (*domain.Tournament, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.Tournament{ID: id}, nil
}

func (s stubTournaments) List(ctx context.Context) ([]domain.Tournament, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

type stubReg struct {
	register func(context.Context, services.RegistrationInput) (*domain.Registration, error)
	listPage func(context.Context, string, int, int) ([]domain.Registration, int64, error)
}

func (s stubReg) Register(ctx context.Context, in services.RegistrationInput) (*domain.Registration, error) {
	if s.register != nil {
		return s.register(ctx, in)
	}
	return &domain.Registration{ID: "r1", TournamentID: in.TournamentID}, nil
}

func (s stubReg) ListPage(ctx context.Context, tournamentID string, page, pageSize int) ([]domain.Registration, int64, error) {
	if s.listPage != nil {
		return s.listPage(ctx, tournamentID, page, pageSize)
	}
	return nil, 0, nil
}

type stubImages struct {
	getImage func(context.Context, string) ([]byte, string, error)
}

func (s stubImages) GetImage(ctx context.Context, id string) ([]byte, string, error) {
	if s.getImage != nil {
		return s.getImage(ctx, id)
	}
	return []byte{0xFF, 0xD8}, "image/jpeg", nil
}

type stubCacheAdmin struct {
	invalidated    []domain.PersonKind
	invalidatedAll bool
	stats          registry.Stats
}

func (s *stubCacheAdmin) Invalidate(kind domain.PersonKind) { s.invalidated = append(s.invalidated, kind) }
func (s *stubCacheAdmin) InvalidateAll()                    { s.invalidatedAll = true }
func (s *stubCacheAdmin) CacheStats() registry.Stats        { return s.stats }

type stubWarmup struct {
	run    func(context.Context) error
	status warmup.Status
}

func (s *stubWarmup) Run(ctx context.Context) error {
	if s.run != nil {
		return s.run(ctx)
	}
	return nil
}

func (s *stubWarmup) Status() warmup.Status { return s.status }

// ---------- router wiring ----------

// newTestRouter registers the handler set on a bare engine using the same
// paths the real router uses.
func newTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/people/:kind", h.ListPeople)
	r.POST("/people/:kind", h.CreateLocalPerson)
	r.GET("/people/:kind/:id", h.GetPerson)
	r.PUT("/people/:kind/:id", h.UpdateLocalPerson)
	r.DELETE("/people/:kind/:id", h.DeleteLocalPerson)
	r.GET("/people/:kind/:id/image", h.GetPersonImage)

	r.POST("/tournaments", h.CreateTournament)
	r.GET("/tournaments", h.ListTournaments)
	r.GET("/tournaments/:id", h.GetTournament)
	r.POST("/tournaments/:id/registrations", h.CreateRegistration)
	r.GET("/tournaments/:id/registrations", h.ListRegistrations)

	r.GET("/admin/cache", h.CacheStats)
	r.DELETE("/admin/cache", h.ClearCache)
	r.POST("/admin/warmup", h.TriggerWarmup)
	r.GET("/admin/warmup", h.WarmupStatus)

	return r
}

func defaultHandlers() (*Handlers, *stubCacheAdmin, *stubWarmup) {
	ca := &stubCacheAdmin{}
	wa := &stubWarmup{}
	h := New(stubPeople{}, stubLocal{}, stubTournaments{}, stubReg{}, stubImages{}, ca, wa)
	return h, ca, wa
}

func doRequest(r *gin.Engine, method, path string, body *string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(*body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPathKind_Unknown(t *testing.T) {
	h, _, _ := defaultHandlers()
	r := newTestRouter(h)

	w := doRequest(r, http.MethodGet, "/people/referees", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %d", w.Code)
	}
}

func TestClampPagination_Bounds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=0&page_size=9999", nil)

	page, pageSize := clampPagination(c)
	if page != 1 {
		t.Fatalf("page not clamped to 1: %d", page)
	}
	if pageSize != 100 {
		t.Fatalf("page_size not clamped to 100: %d", pageSize)
	}

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	page, pageSize = clampPagination(c2)
	if page != 1 || pageSize != 20 {
		t.Fatalf("defaults wrong: page=%d size=%d", page, pageSize)
	}
}
