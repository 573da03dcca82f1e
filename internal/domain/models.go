// GORM persistence models. Locally owned data only: the external rosters
// live in the reference-data cache, never in the database.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// LocalPerson is a manually entered person not present in the external
// registry (or entered ahead of their registry record appearing). It
// carries the same conceptual shape as Person plus a locally generated
// primary key. When an external record and a LocalPerson share the same
// ExternalID, the merge service prefers the external record.
//
// LocalPerson rows are mutable; external records are not.
type LocalPerson struct {
	ID         string     `json:"id"          gorm:"type:char(36);primaryKey"`
	Kind       PersonKind `json:"kind"        gorm:"type:varchar(16);not null;index:idx_local_kind"`
	ExternalID string     `json:"external_id" gorm:"type:varchar(64);not null;index:idx_local_external"`
	FirstName  string     `json:"first_name"  gorm:"type:varchar(128);not null"`
	LastName   string     `json:"last_name"   gorm:"type:varchar(128);not null"`
	Gender     Gender     `json:"gender"      gorm:"type:varchar(8);not null"`
	Country    string     `json:"country"     gorm:"type:char(3);not null;index"`
	Discipline string     `json:"discipline"  gorm:"type:varchar(8);not null"`

	Birth         *time.Time `json:"birth,omitempty"`
	ValidLicense  bool       `json:"valid_license"`
	LicenseExpiry *time.Time `json:"license_expiry,omitempty"`

	Level            string `json:"level,omitempty"             gorm:"type:varchar(16)"`
	LevelDescription string `json:"level_description,omitempty" gorm:"type:varchar(128)"`

	JudgeCategory            string `json:"judge_category,omitempty"             gorm:"type:varchar(16)"`
	JudgeCategoryDescription string `json:"judge_category_description,omitempty" gorm:"type:varchar(128)"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for LocalPerson.
func (LocalPerson) TableName() string { return "local_persons" }

// Tournament is a scheduled competition. Its Type selects the eligibility
// rule-set applied to every registration.
type Tournament struct {
	ID        string         `json:"id"       gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name"     gorm:"type:varchar(255);not null"`
	Type      TournamentType `json:"type"     gorm:"type:varchar(16);not null"`
	Location  string         `json:"location" gorm:"type:varchar(255)"`
	Date      time.Time      `json:"date"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for Tournament.
func (Tournament) TableName() string { return "tournaments" }

// Registration is a choreography registered for a tournament. Country,
// Category and Type identify the quota bucket the rule engine counts
// against; Name is derived from the members' surnames at creation time.
type Registration struct {
	ID           string           `json:"id"            gorm:"type:char(36);primaryKey"`
	TournamentID string           `json:"tournament_id" gorm:"type:char(36);not null;index:idx_reg_tournament"`
	Name         string           `json:"name"          gorm:"type:varchar(255);not null"`
	Country      string           `json:"country"       gorm:"type:char(3);not null;index:idx_reg_bucket,priority:1"`
	Category     Category         `json:"category"      gorm:"type:varchar(16);not null;index:idx_reg_bucket,priority:2"`
	Type         ChoreographyType `json:"type"          gorm:"type:varchar(8);not null;index:idx_reg_bucket,priority:3"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `json:"-" gorm:"index"`

	Members []RegistrationMember `json:"members" gorm:"foreignKey:RegistrationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Tournament is the parent competition. Registrations are
	// cascade-deleted with their tournament.
	Tournament Tournament `json:"-" gorm:"foreignKey:TournamentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Registration.
func (Registration) TableName() string { return "registrations" }

// RegistrationMember links a registration to one participating gymnast,
// identified by their external registry ID. The full name is denormalized
// so listings do not need a roster lookup.
type RegistrationMember struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	RegistrationID string    `json:"registration_id" gorm:"type:char(36);not null;index:idx_member_reg"`
	ExternalID     string    `json:"external_id"     gorm:"type:varchar(64);not null"`
	FullName       string    `json:"full_name"       gorm:"type:varchar(255);not null"`
	Gender         Gender    `json:"gender"          gorm:"type:varchar(8);not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name for RegistrationMember.
func (RegistrationMember) TableName() string { return "registration_members" }
