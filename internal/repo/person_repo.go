// Local override person persistence. Thin repository: no business logic,
// only CRUD and query composition over *gorm.DB. The merge service reads
// this table; creation/mutation happens through LocalPersonService.
//
// Error semantics:
//   - Missing rows surface gorm.ErrRecordNotFound (exported as ErrNotFound).
//   - Other DB errors propagate raw.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist. It
// aliases gorm.ErrRecordNotFound for consistency across the service layer
// and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateLocalPerson inserts a new local override person. The primary key
// is a generated UUID; CreatedAt is set to UTC.
func CreateLocalPerson(ctx context.Context, db *gorm.DB, p *domain.LocalPerson) (*domain.LocalPerson, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListLocalPersons returns all local persons of one kind, newest first.
// country, when non-empty, filters by exact (upper-cased) country code.
// Newest-first ordering lets the merge service keep the most recently
// created row when several share an external identifier.
func ListLocalPersons(ctx context.Context, db *gorm.DB, kind domain.PersonKind, country string) ([]domain.LocalPerson, error) {
	q := db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("created_at desc")
	if country != "" {
		q = q.Where("country = ?", country)
	}
	var out []domain.LocalPerson
	err := q.Find(&out).Error
	return out, err
}

// GetLocalPerson fetches one local person by primary key.
func GetLocalPerson(ctx context.Context, db *gorm.DB, id string) (*domain.LocalPerson, error) {
	var p domain.LocalPerson
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetLocalByExternalID fetches the most recently created local person of a
// kind carrying the given external identifier, or ErrNotFound.
func GetLocalByExternalID(ctx context.Context, db *gorm.DB, kind domain.PersonKind, externalID string) (*domain.LocalPerson, error) {
	var p domain.LocalPerson
	err := db.WithContext(ctx).
		Where("kind = ? AND external_id = ?", kind, externalID).
		Order("created_at desc").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateLocalPerson saves the mutable fields of an existing local person.
// Returns ErrNotFound when no row matches.
func UpdateLocalPerson(ctx context.Context, db *gorm.DB, p *domain.LocalPerson) error {
	res := db.WithContext(ctx).
		Model(&domain.LocalPerson{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"external_id":                p.ExternalID,
			"first_name":                 p.FirstName,
			"last_name":                  p.LastName,
			"gender":                     p.Gender,
			"country":                    p.Country,
			"discipline":                 p.Discipline,
			"birth":                      p.Birth,
			"valid_license":              p.ValidLicense,
			"license_expiry":             p.LicenseExpiry,
			"level":                      p.Level,
			"level_description":          p.LevelDescription,
			"judge_category":             p.JudgeCategory,
			"judge_category_description": p.JudgeCategoryDescription,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLocalPerson soft-deletes a local person by primary key. Returns
// ErrNotFound when no row matches.
func DeleteLocalPerson(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.LocalPerson{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
