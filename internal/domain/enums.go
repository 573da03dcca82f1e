// Package domain defines the core types shared across the application:
// enumerations for person kinds, genders, competition categories and
// choreography types, the cached person record sourced from the external
// registry, and the GORM persistence models for locally owned data.
package domain

import (
	"fmt"
	"strings"
)

// PersonKind distinguishes the three rosters kept in sync with the
// external registry.
type PersonKind string

const (
	KindAthlete PersonKind = "athlete"
	KindCoach   PersonKind = "coach"
	KindJudge   PersonKind = "judge"
)

// Kinds lists every PersonKind in warmup order.
var Kinds = []PersonKind{KindAthlete, KindCoach, KindJudge}

// ParsePersonKind normalizes a path/query value into a PersonKind.
// It accepts singular and plural forms, case-insensitive.
func ParsePersonKind(s string) (PersonKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "athlete", "athletes":
		return KindAthlete, nil
	case "coach", "coaches":
		return KindCoach, nil
	case "judge", "judges":
		return KindJudge, nil
	}
	return "", fmt.Errorf("unknown person kind %q", s)
}

// Gender is the binary gender enum used by the external registry.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ParseGender maps raw registry gender strings ("male", "m", …) onto the
// Gender enum. Unrecognized values default to FEMALE, matching the
// registry's own convention for unset gender fields.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	default:
		return GenderFemale
	}
}

// Category is the competition age category, derived from the
// competition-year age at ingestion time.
type Category string

const (
	CategoryYouth  Category = "YOUTH"
	CategoryJunior Category = "JUNIOR"
	CategorySenior Category = "SENIOR"
)

// ChoreographyType tags the competition format of a registration. It is
// determined purely by group size and, for individuals, gender.
type ChoreographyType string

const (
	TypeIndividualMen   ChoreographyType = "MIND"
	TypeIndividualWomen ChoreographyType = "WIND"
	TypeMixedPair       ChoreographyType = "MXP"
	TypeTrio            ChoreographyType = "TRIO"
	TypeGroup           ChoreographyType = "GRP"
	TypeDance           ChoreographyType = "DNCE"
)

// TournamentType selects the eligibility rule-set applied to registrations
// for a tournament.
type TournamentType string

const (
	// TournamentNational is restricted to the domestic federation and its
	// affiliates.
	TournamentNational TournamentType = "NATIONAL"
	// TournamentOpen admits any invited federation.
	TournamentOpen TournamentType = "OPEN"
)

// ParseTournamentType normalizes a raw string into a TournamentType.
func ParseTournamentType(s string) (TournamentType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TournamentNational):
		return TournamentNational, nil
	case string(TournamentOpen):
		return TournamentOpen, nil
	}
	return "", fmt.Errorf("unknown tournament type %q", s)
}
