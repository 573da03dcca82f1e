// Tournament persistence.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

// CreateTournament inserts a new tournament with a generated UUID.
func CreateTournament(ctx context.Context, db *gorm.DB, t *domain.Tournament) (*domain.Tournament, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTournament fetches one tournament by primary key.
func GetTournament(ctx context.Context, db *gorm.DB, id string) (*domain.Tournament, error) {
	var t domain.Tournament
	if err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTournaments returns all tournaments ordered by date descending.
func ListTournaments(ctx context.Context, db *gorm.DB) ([]domain.Tournament, error) {
	var out []domain.Tournament
	err := db.WithContext(ctx).Order("date desc").Find(&out).Error
	return out, err
}
