package domain

import "time"

// Person is the normalized record for an athlete, coach or judge as served
// to the rest of the application. Records sourced from the external
// registry are transformed into this shape once, at ingestion; records
// created locally are converted from LocalPerson by the merge service.
//
// ID is the external registry identifier (stable, assigned upstream). It is
// never a locally generated database key. A Person without an ID cannot be
// used for registration and is dropped at the ingestion boundary.
//
// All derived fields (FullName, Age, Category, ImageURL) are computed by
// the ingestion transform, which is the single source of truth for
// derivation. Consumers must not recompute them.
type Person struct {
	ID         string     `json:"id"`
	Kind       PersonKind `json:"kind"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	Gender     Gender     `json:"gender"`
	Country    string     `json:"country"` // ISO-3166 alpha-3, upper-cased
	Discipline string     `json:"discipline"`
	ImageURL   string     `json:"image_url,omitempty"`

	// Athlete-specific.
	Birth         *time.Time `json:"birth,omitempty"`
	ValidLicense  bool       `json:"valid_license,omitempty"`
	LicenseExpiry *time.Time `json:"license_expiry,omitempty"`
	Age           int        `json:"age,omitempty"`      // competition-year age
	Category      Category   `json:"category,omitempty"` // derived from Age

	// Coach-specific.
	Level            string `json:"level,omitempty"`
	LevelDescription string `json:"level_description,omitempty"`

	// Judge-specific.
	JudgeCategory            string `json:"judge_category,omitempty"`
	JudgeCategoryDescription string `json:"judge_category_description,omitempty"`

	// IsLocal marks records owned by the local override store rather than
	// the external registry.
	IsLocal bool `json:"is_local"`
}
