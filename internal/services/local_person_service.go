package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

// LocalPersonStore is the persistence contract for the local override
// lifecycle. Satisfied by the repo package's free functions via a shim.
type LocalPersonStore interface {
	CreateLocalPerson(ctx context.Context, db *gorm.DB, p *domain.LocalPerson) (*domain.LocalPerson, error)
	GetLocalByExternalID(ctx context.Context, db *gorm.DB, kind domain.PersonKind, externalID string) (*domain.LocalPerson, error)
	UpdateLocalPerson(ctx context.Context, db *gorm.DB, p *domain.LocalPerson) error
	DeleteLocalPerson(ctx context.Context, db *gorm.DB, id string) error
}

// ExternalLookup answers whether an external identifier is owned by the
// external registry. Satisfied by *registry.Service.
type ExternalLookup interface {
	GetOne(ctx context.Context, kind domain.PersonKind, externalID string) (*domain.Person, error)
}

// LocalPersonInput carries the mutable fields of a local override person.
type LocalPersonInput struct {
	ExternalID string
	FirstName  string
	LastName   string
	Gender     string
	Country    string
	Discipline string

	Birth         *time.Time
	ValidLicense  bool
	LicenseExpiry *time.Time

	Level            string
	LevelDescription string

	JudgeCategory            string
	JudgeCategoryDescription string
}

// LocalPersonService manages locally created override persons. Records
// owned by the external registry are immutable here: mutations targeting
// an external identifier the registry knows fail with ErrPersonNotLocal.
type LocalPersonService struct {
	DB       *gorm.DB
	Store    LocalPersonStore
	Registry ExternalLookup
}

// NewLocalPersonService constructs a LocalPersonService.
func NewLocalPersonService(db *gorm.DB, store LocalPersonStore, reg ExternalLookup) *LocalPersonService {
	return &LocalPersonService{DB: db, Store: store, Registry: reg}
}

// Create inserts a local override person. The external identifier is
// mandatory because it is the only key a registration can reference.
func (s *LocalPersonService) Create(ctx context.Context, kind domain.PersonKind, in LocalPersonInput) (*domain.LocalPerson, error) {
	externalID := strings.TrimSpace(in.ExternalID)
	if externalID == "" {
		return nil, ErrMissingExternalID
	}

	p := &domain.LocalPerson{
		Kind:       kind,
		ExternalID: externalID,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Gender:     domain.ParseGender(in.Gender),
		Country:    normalizeCountry(in.Country),
		Discipline: strings.TrimSpace(in.Discipline),

		Birth:         in.Birth,
		ValidLicense:  in.ValidLicense,
		LicenseExpiry: in.LicenseExpiry,

		Level:            strings.TrimSpace(in.Level),
		LevelDescription: strings.TrimSpace(in.LevelDescription),

		JudgeCategory:            strings.TrimSpace(in.JudgeCategory),
		JudgeCategoryDescription: strings.TrimSpace(in.JudgeCategoryDescription),
	}
	return s.Store.CreateLocalPerson(ctx, s.DB, p)
}

// Update modifies the newest local override with the given external
// identifier. It refuses to touch identifiers the external registry owns.
func (s *LocalPersonService) Update(ctx context.Context, kind domain.PersonKind, externalID string, in LocalPersonInput) (*domain.LocalPerson, error) {
	existing, err := s.resolveLocal(ctx, kind, externalID)
	if err != nil {
		return nil, err
	}

	existing.FirstName = strings.TrimSpace(in.FirstName)
	existing.LastName = strings.TrimSpace(in.LastName)
	existing.Gender = domain.ParseGender(in.Gender)
	existing.Country = normalizeCountry(in.Country)
	existing.Discipline = strings.TrimSpace(in.Discipline)
	existing.Birth = in.Birth
	existing.ValidLicense = in.ValidLicense
	existing.LicenseExpiry = in.LicenseExpiry
	existing.Level = strings.TrimSpace(in.Level)
	existing.LevelDescription = strings.TrimSpace(in.LevelDescription)
	existing.JudgeCategory = strings.TrimSpace(in.JudgeCategory)
	existing.JudgeCategoryDescription = strings.TrimSpace(in.JudgeCategoryDescription)

	if err := s.Store.UpdateLocalPerson(ctx, s.DB, existing); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return existing, nil
}

// Delete removes the newest local override with the given external
// identifier. Registry-owned identifiers cannot be deleted.
func (s *LocalPersonService) Delete(ctx context.Context, kind domain.PersonKind, externalID string) error {
	existing, err := s.resolveLocal(ctx, kind, externalID)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteLocalPerson(ctx, s.DB, existing.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return err
	}
	return nil
}

// resolveLocal enforces the mutation ownership rules: a registry-owned
// identifier is immutable, an unknown one is not found.
func (s *LocalPersonService) resolveLocal(ctx context.Context, kind domain.PersonKind, externalID string) (*domain.LocalPerson, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, ErrMissingExternalID
	}

	ext, err := s.Registry.GetOne(ctx, kind, externalID)
	if err != nil {
		return nil, err
	}
	if ext != nil {
		return nil, ErrPersonNotLocal
	}

	existing, err := s.Store.GetLocalByExternalID(ctx, s.DB, kind, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return existing, nil
}
