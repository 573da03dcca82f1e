package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

// TournamentStore is the persistence contract for tournaments.
type TournamentStore interface {
	CreateTournament(ctx context.Context, db *gorm.DB, t *domain.Tournament) (*domain.Tournament, error)
	GetTournament(ctx context.Context, db *gorm.DB, id string) (*domain.Tournament, error)
	ListTournaments(ctx context.Context, db *gorm.DB) ([]domain.Tournament, error)
}

// TournamentService manages competition records. Creation validates the
// tournament type against the rule-set registry indirectly: an unknown
// type is rejected before any registration could hit a configuration
// error at validation time.
type TournamentService struct {
	DB    *gorm.DB
	Store TournamentStore
}

// NewTournamentService constructs a TournamentService.
func NewTournamentService(db *gorm.DB, store TournamentStore) *TournamentService {
	return &TournamentService{DB: db, Store: store}
}

// Create inserts a tournament.
func (s *TournamentService) Create(ctx context.Context, name, typ, location string, date time.Time) (*domain.Tournament, error) {
	tt, err := domain.ParseTournamentType(typ)
	if err != nil {
		return nil, err
	}
	return s.Store.CreateTournament(ctx, s.DB, &domain.Tournament{
		Name:     strings.TrimSpace(name),
		Type:     tt,
		Location: strings.TrimSpace(location),
		Date:     date.UTC(),
	})
}

// Get fetches one tournament by ID.
func (s *TournamentService) Get(ctx context.Context, id string) (*domain.Tournament, error) {
	t, err := s.Store.GetTournament(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns all tournaments, most recent first.
func (s *TournamentService) List(ctx context.Context) ([]domain.Tournament, error) {
	return s.Store.ListTournaments(ctx, s.DB)
}
