// Registration persistence, including the quota-bucket count the rule
// engine validates against.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

// CreateRegistration inserts a registration together with its member rows
// in the caller's transaction scope. IDs are generated here.
func CreateRegistration(ctx context.Context, db *gorm.DB, reg *domain.Registration) (*domain.Registration, error) {
	reg.ID = uuid.NewString()
	reg.CreatedAt = time.Now().UTC()
	for i := range reg.Members {
		reg.Members[i].ID = uuid.NewString()
		reg.Members[i].RegistrationID = reg.ID
		reg.Members[i].CreatedAt = reg.CreatedAt
	}
	if err := db.WithContext(ctx).Create(reg).Error; err != nil {
		return nil, err
	}
	return reg, nil
}

// CountRegistrationsBucket returns the number of registrations already
// persisted for a country+category+type bucket within one tournament.
// This is the existingCount input of the eligibility rule engine.
func CountRegistrationsBucket(ctx context.Context, db *gorm.DB, tournamentID, country string, category domain.Category, choreoType domain.ChoreographyType) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Registration{}).
		Where("tournament_id = ? AND country = ? AND category = ? AND type = ?",
			tournamentID, country, category, choreoType).
		Count(&total).Error
	return total, err
}

// CountRegistrations returns the total number of registrations for a
// tournament, for pagination metadata.
func CountRegistrations(ctx context.Context, db *gorm.DB, tournamentID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Registration{}).
		Where("tournament_id = ?", tournamentID).
		Count(&total).Error
	return total, err
}

// ListRegistrationsPage returns a page of registrations for a tournament,
// newest first, with members preloaded.
func ListRegistrationsPage(ctx context.Context, db *gorm.DB, tournamentID string, offset, limit int) ([]domain.Registration, error) {
	var out []domain.Registration
	err := db.WithContext(ctx).
		Preload("Members").
		Where("tournament_id = ?", tournamentID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
