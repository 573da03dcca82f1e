// PeopleService: the roster merge layer. Combines external-registry
// rosters (via the synchronizer) with locally created override persons,
// applying a strict precedence rule: an external record always wins over a
// local override sharing the same external identifier.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aerogym/go-registration-backend/internal/derive"
	"github.com/aerogym/go-registration-backend/internal/domain"
)

// RosterProvider is the synchronizer contract PeopleService consumes.
// Satisfied by *registry.Service.
type RosterProvider interface {
	GetRoster(ctx context.Context, kind domain.PersonKind) ([]domain.Person, error)
	GetRosterByCountry(ctx context.Context, kind domain.PersonKind, country string) ([]domain.Person, error)
	GetOne(ctx context.Context, kind domain.PersonKind, externalID string) (*domain.Person, error)
}

// LocalPersonRepo is the persistence contract for local override persons.
type LocalPersonRepo interface {
	// ListLocalPersons returns local persons of a kind, newest first;
	// country filters when non-empty.
	ListLocalPersons(ctx context.Context, db *gorm.DB, kind domain.PersonKind, country string) ([]domain.LocalPerson, error)
	// GetLocalByExternalID returns the most recently created local person
	// with the given external identifier.
	GetLocalByExternalID(ctx context.Context, db *gorm.DB, kind domain.PersonKind, externalID string) (*domain.LocalPerson, error)
}

// PeopleService merges external and local rosters.
type PeopleService struct {
	DB       *gorm.DB
	Registry RosterProvider
	Repo     LocalPersonRepo
}

// NewPeopleService constructs a PeopleService.
func NewPeopleService(db *gorm.DB, reg RosterProvider, repo LocalPersonRepo) *PeopleService {
	return &PeopleService{DB: db, Registry: reg, Repo: repo}
}

// ListAll returns the merged roster of one kind, optionally filtered by
// country (case-insensitive). External entries are inserted first; a local
// override is appended only when its external identifier is not already
// present. When several local rows share an external identifier only the
// most recently created one is considered.
func (s *PeopleService) ListAll(ctx context.Context, kind domain.PersonKind, country string) ([]domain.Person, error) {
	tr := otel.Tracer("services/PeopleService")
	ctx, span := tr.Start(ctx, "ListAll",
		trace.WithAttributes(
			attribute.String("people.kind", string(kind)),
			attribute.String("people.country", country),
		),
	)
	defer span.End()

	var (
		external []domain.Person
		err      error
	)
	if country != "" {
		external, err = s.Registry.GetRosterByCountry(ctx, kind, country)
	} else {
		external, err = s.Registry.GetRoster(ctx, kind)
	}
	if err != nil {
		return nil, err
	}

	locals, err := s.Repo.ListLocalPersons(ctx, s.DB, kind, normalizeCountry(country))
	if err != nil {
		return nil, err
	}

	// External first: the precedence invariant lives in this ordering.
	merged := make([]domain.Person, 0, len(external)+len(locals))
	seen := make(map[string]struct{}, len(external)+len(locals))
	for _, p := range external {
		merged = append(merged, p)
		seen[p.ID] = struct{}{}
	}
	// Locals are newest-first, so the first occurrence of a duplicated
	// external identifier is the one to keep.
	for _, lp := range locals {
		if _, dup := seen[lp.ExternalID]; dup {
			continue
		}
		seen[lp.ExternalID] = struct{}{}
		merged = append(merged, localToPerson(lp))
	}
	return merged, nil
}

// FindOne resolves a person by external identifier: the external registry
// first, then the local override store. Returns ErrPersonNotFound when
// neither has it.
func (s *PeopleService) FindOne(ctx context.Context, kind domain.PersonKind, externalID string) (*domain.Person, error) {
	tr := otel.Tracer("services/PeopleService")
	ctx, span := tr.Start(ctx, "FindOne",
		trace.WithAttributes(
			attribute.String("people.kind", string(kind)),
			attribute.String("people.external_id", externalID),
		),
	)
	defer span.End()

	p, err := s.Registry.GetOne(ctx, kind, externalID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	lp, err := s.Repo.GetLocalByExternalID(ctx, s.DB, kind, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	out := localToPerson(*lp)
	return &out, nil
}

// localToPerson converts a stored override row into the merged Person
// shape, flagged IsLocal.
func localToPerson(lp domain.LocalPerson) domain.Person {
	p := domain.Person{
		ID:            lp.ExternalID,
		Kind:          lp.Kind,
		FirstName:     lp.FirstName,
		LastName:      lp.LastName,
		Gender:        lp.Gender,
		Country:       lp.Country,
		Discipline:    lp.Discipline,
		Birth:         lp.Birth,
		ValidLicense:  lp.ValidLicense,
		LicenseExpiry: lp.LicenseExpiry,

		Level:            lp.Level,
		LevelDescription: lp.LevelDescription,

		JudgeCategory:            lp.JudgeCategory,
		JudgeCategoryDescription: lp.JudgeCategoryDescription,

		IsLocal: true,
	}
	p.FullName = joinName(lp.FirstName, lp.LastName)
	if lp.Birth != nil {
		p.Age = derive.CompetitionYearAge(*lp.Birth, time.Now().UTC())
		p.Category = derive.CategoryFromAge(p.Age)
	}
	return p
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func normalizeCountry(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}
