// Package derive holds the pure derivation rules used at roster-ingestion
// and registration time: competition-year age, age category, choreography
// type and choreography display names. No I/O, no clocks of its own; the
// caller supplies the reference time so results are deterministic in tests.
package derive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

// ErrInvalidGroupSize is returned by TypeFromGroup for any group size
// outside {1, 2, 3, 5, 8}.
var ErrInvalidGroupSize = errors.New("invalid group size")

// CompetitionYearAge returns the age the person turns during now's
// calendar year: now.Year() - birth.Year(). Competition eligibility is
// defined by year of birth alone, so this intentionally ignores whether
// the birthday has already occurred. Use DisplayAge for day-aware ages.
func CompetitionYearAge(birth, now time.Time) int {
	return now.Year() - birth.Year()
}

// DisplayAge returns the day-aware age as of now: one less than the
// year difference while the birthday is still ahead. Display only; never
// use this for category assignment.
func DisplayAge(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// CategoryFromAge maps a competition-year age onto the competition
// category. Total function: every int maps to a category.
//
//	age <= 14 -> YOUTH
//	15..17    -> JUNIOR
//	age >= 18 -> SENIOR
func CategoryFromAge(age int) domain.Category {
	switch {
	case age <= 14:
		return domain.CategoryYouth
	case age <= 17:
		return domain.CategoryJunior
	default:
		return domain.CategorySenior
	}
}

// TypeFromGroup maps a member list onto its choreography type:
//
//	1 member  -> MIND when any member is male, WIND otherwise
//	2 members -> MXP
//	3 members -> TRIO
//	5 members -> GRP
//	8 members -> DNCE
//
// Any other size fails with ErrInvalidGroupSize; there is no rounding or
// clamping.
func TypeFromGroup(members []domain.Person) (domain.ChoreographyType, error) {
	switch len(members) {
	case 1:
		for _, m := range members {
			if m.Gender == domain.GenderMale {
				return domain.TypeIndividualMen, nil
			}
		}
		return domain.TypeIndividualWomen, nil
	case 2:
		return domain.TypeMixedPair, nil
	case 3:
		return domain.TypeTrio, nil
	case 5:
		return domain.TypeGroup, nil
	case 8:
		return domain.TypeDance, nil
	}
	return "", fmt.Errorf("%w: %d members", ErrInvalidGroupSize, len(members))
}

// upperCaser performs Unicode-correct upper-casing independent of locale.
var upperCaser = cases.Upper(language.Und)

// ChoreographyName builds the registration display name: each surname
// upper-cased, joined with "-", in the order given by the caller
// (typically selection order, not alphabetical).
func ChoreographyName(surnames []string) string {
	parts := make([]string, 0, len(surnames))
	for _, s := range surnames {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		parts = append(parts, upperCaser.String(s))
	}
	return strings.Join(parts, "-")
}
