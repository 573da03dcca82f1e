package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aerogym/go-registration-backend/internal/derive"
	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/rules"
)

// PersonResolver resolves registration members by external identifier.
// Satisfied by *PeopleService.
type PersonResolver interface {
	FindOne(ctx context.Context, kind domain.PersonKind, externalID string) (*domain.Person, error)
}

// RegistrationStore is the persistence contract for registrations.
type RegistrationStore interface {
	CreateRegistration(ctx context.Context, db *gorm.DB, reg *domain.Registration) (*domain.Registration, error)
	CountRegistrationsBucket(ctx context.Context, db *gorm.DB, tournamentID, country string, category domain.Category, choreoType domain.ChoreographyType) (int64, error)
	CountRegistrations(ctx context.Context, db *gorm.DB, tournamentID string) (int64, error)
	ListRegistrationsPage(ctx context.Context, db *gorm.DB, tournamentID string, offset, limit int) ([]domain.Registration, error)
	GetTournament(ctx context.Context, db *gorm.DB, id string) (*domain.Tournament, error)
}

// RegistrationInput is a proposed choreography registration. Members are
// athlete external identifiers in selection order; that order drives the
// derived display name. Country may be blank, in which case the first
// member's country is used.
type RegistrationInput struct {
	TournamentID string
	Country      string
	MemberIDs    []string
}

// RegistrationService creates choreography registrations: it resolves
// members through the merged roster, derives the choreography type,
// category and display name, validates eligibility against the
// tournament's rule-set and persists the result.
type RegistrationService struct {
	DB     *gorm.DB
	People PersonResolver
	Store  RegistrationStore
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(db *gorm.DB, people PersonResolver, store RegistrationStore) *RegistrationService {
	return &RegistrationService{DB: db, People: people, Store: store}
}

// Register validates and persists a proposed registration.
//
// The quota count and the insert are not one atomic unit: two concurrent
// registrations for the same bucket may both pass validation. Same
// accepted last-write-wins posture as the roster cache; the bucket is
// re-countable and over-quota rows are operator-visible.
func (s *RegistrationService) Register(ctx context.Context, in RegistrationInput) (*domain.Registration, error) {
	tr := otel.Tracer("services/RegistrationService")
	ctx, span := tr.Start(ctx, "Register",
		trace.WithAttributes(
			attribute.String("registration.tournament_id", in.TournamentID),
			attribute.Int("registration.members", len(in.MemberIDs)),
		),
	)
	defer span.End()

	tournament, err := s.Store.GetTournament(ctx, s.DB, in.TournamentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	members := make([]domain.Person, 0, len(in.MemberIDs))
	for _, id := range in.MemberIDs {
		p, err := s.People.FindOne(ctx, domain.KindAthlete, id)
		if err != nil {
			if errors.Is(err, ErrPersonNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownMember, id)
			}
			return nil, err
		}
		members = append(members, *p)
	}

	country := normalizeCountry(in.Country)
	if country == "" && len(members) > 0 {
		country = members[0].Country
	}

	// An empty member list is the rule engine's call (checked after quota
	// and country); only non-empty invalid sizes fail here.
	choreoType, err := derive.TypeFromGroup(members)
	if err != nil && len(members) > 0 {
		return nil, err
	}

	category := groupCategory(members)

	existing, err := s.Store.CountRegistrationsBucket(ctx, s.DB, tournament.ID, country, category, choreoType)
	if err != nil {
		return nil, err
	}

	if err := rules.Validate(tournament.Type, rules.Request{
		Country:  country,
		Category: category,
		Type:     choreoType,
		Members:  members,
	}, existing); err != nil {
		return nil, err
	}

	surnames := make([]string, 0, len(members))
	memberRows := make([]domain.RegistrationMember, 0, len(members))
	for _, m := range members {
		surnames = append(surnames, m.LastName)
		memberRows = append(memberRows, domain.RegistrationMember{
			ExternalID: m.ID,
			FullName:   m.FullName,
			Gender:     m.Gender,
		})
	}

	return s.Store.CreateRegistration(ctx, s.DB, &domain.Registration{
		TournamentID: tournament.ID,
		Name:         derive.ChoreographyName(surnames),
		Country:      country,
		Category:     category,
		Type:         choreoType,
		Members:      memberRows,
	})
}

// ListPage returns a page of a tournament's registrations plus the total
// count for pagination metadata.
func (s *RegistrationService) ListPage(ctx context.Context, tournamentID string, page, pageSize int) ([]domain.Registration, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	if _, err := s.Store.GetTournament(ctx, s.DB, tournamentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrTournamentNotFound
		}
		return nil, 0, err
	}

	total, err := s.Store.CountRegistrations(ctx, s.DB, tournamentID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Registration{}, 0, nil
	}

	items, err := s.Store.ListRegistrationsPage(ctx, s.DB, tournamentID, offset, pageSize)
	return items, total, err
}

// groupCategory assigns the group's competition category from the oldest
// member's competition-year age. Members carry ages derived at roster
// ingestion.
func groupCategory(members []domain.Person) domain.Category {
	maxAge := 0
	for _, m := range members {
		if m.Age > maxAge {
			maxAge = m.Age
		}
	}
	return derive.CategoryFromAge(maxAge)
}
