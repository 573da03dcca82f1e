// Handler wiring: service contracts and the Handlers aggregate.
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Business rules (merge precedence,
// eligibility validation, cache TTLs) live below this layer.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/registry"
	"github.com/aerogym/go-registration-backend/internal/services"
	"github.com/aerogym/go-registration-backend/internal/utils"
	"github.com/aerogym/go-registration-backend/internal/warmup"
)

//
// Service contracts (context-aware)
//

// PeopleService exposes the merged roster consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PeopleService interface {
	// ListAll returns the merged external+local roster of a kind, optionally
	// filtered by country code.
	ListAll(ctx context.Context, kind domain.PersonKind, country string) ([]domain.Person, error)
	// FindOne resolves one person by external identifier.
	FindOne(ctx context.Context, kind domain.PersonKind, externalID string) (*domain.Person, error)
}

// LocalPersonService manages locally created override persons.
type LocalPersonService interface {
	Create(ctx context.Context, kind domain.PersonKind, in services.LocalPersonInput) (*domain.LocalPerson, error)
	Update(ctx context.Context, kind domain.PersonKind, externalID string, in services.LocalPersonInput) (*domain.LocalPerson, error)
	Delete(ctx context.Context, kind domain.PersonKind, externalID string) error
}

// TournamentService manages competition records.
type TournamentService interface {
	Create(ctx context.Context, name, typ, location string, date time.Time) (*domain.Tournament, error)
	Get(ctx context.Context, id string) (*domain.Tournament, error)
	List(ctx context.Context) ([]domain.Tournament, error)
}

// RegistrationService validates and persists choreography registrations.
type RegistrationService interface {
	Register(ctx context.Context, in services.RegistrationInput) (*domain.Registration, error)
	ListPage(ctx context.Context, tournamentID string, page, pageSize int) ([]domain.Registration, int64, error)
}

// ImageService serves cached person portraits.
type ImageService interface {
	GetImage(ctx context.Context, externalID string) ([]byte, string, error)
}

// CacheAdmin exposes reference-data cache management.
type CacheAdmin interface {
	Invalidate(kind domain.PersonKind)
	InvalidateAll()
	CacheStats() registry.Stats
}

// WarmupAdmin exposes the warmup scheduler's manual trigger and status.
type WarmupAdmin interface {
	Run(ctx context.Context) error
	Status() warmup.Status
}

// Handlers groups HTTP endpoints for people, tournaments, registrations, and
// the admin surface. It depends on abstract service interfaces to keep
// transport concerns separate from business logic.
type Handlers struct {
	people      PeopleService
	localSvc    LocalPersonService
	tournaments TournamentService
	regSvc      RegistrationService
	images      ImageService
	cacheAdmin  CacheAdmin
	warmupAdmin WarmupAdmin
}

// New constructs a Handlers instance bound to the given services.
func New(
	people PeopleService,
	localSvc LocalPersonService,
	tournaments TournamentService,
	regSvc RegistrationService,
	images ImageService,
	cacheAdmin CacheAdmin,
	warmupAdmin WarmupAdmin,
) *Handlers {
	return &Handlers{
		people:      people,
		localSvc:    localSvc,
		tournaments: tournaments,
		regSvc:      regSvc,
		images:      images,
		cacheAdmin:  cacheAdmin,
		warmupAdmin: warmupAdmin,
	}
}

//
// Helpers
//

// pathKind parses the :kind path parameter; writes a 400 and returns false
// on an unknown kind.
func pathKind(c *gin.Context) (domain.PersonKind, bool) {
	kind, err := domain.ParsePersonKind(c.Param("kind"))
	if err != nil {
		fail(c, 400, ErrCodeBadRequest, "kind must be one of athletes, coaches, judges")
		return "", false
	}
	return kind, true
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
