// Package rules implements the eligibility rule engine: an immutable
// registry of rule-sets keyed by tournament type, and the validation
// applied to a proposed choreography registration before it is persisted.
//
// Rule-sets are data, not behavior: both registered sets share the same
// validation logic and differ only in quota and eligible-country list. New
// tournament types are added by extending the registry map; calling code
// never changes.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

var (
	// ErrUnknownTournamentType indicates no rule-set is registered for a
	// tournament type. This is a configuration error, not a user error.
	ErrUnknownTournamentType = errors.New("unknown tournament type")

	// ErrQuotaExceeded indicates the country already holds the maximum
	// number of registrations for the category/type bucket.
	ErrQuotaExceeded = errors.New("registration quota exceeded")

	// ErrCountryNotEligible indicates the country is not in the
	// tournament's eligible set.
	ErrCountryNotEligible = errors.New("country not eligible")

	// ErrEmptyGroup indicates the proposed registration has no members.
	ErrEmptyGroup = errors.New("registration has no members")
)

// RuleSet is the immutable per-tournament-type rule data. Looked up at
// validation time, never mutated.
type RuleSet struct {
	// MaxPerCountryPerCategory caps registrations per country per
	// category per choreography type.
	MaxPerCountryPerCategory int
	// EligibleCountries is the allow-list of ISO-3166 alpha-3 codes.
	EligibleCountries map[string]struct{}
}

// Eligible reports whether a country code is in the allow-list
// (case-insensitive).
func (r RuleSet) Eligible(country string) bool {
	_, ok := r.EligibleCountries[strings.ToUpper(strings.TrimSpace(country))]
	return ok
}

func countries(codes ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return m
}

// ruleSets maps every known tournament type to its rule-set. Both current
// sets carry the same quota of 4 and differ only in eligible countries.
var ruleSets = map[domain.TournamentType]RuleSet{
	domain.TournamentNational: {
		MaxPerCountryPerCategory: 4,
		EligibleCountries:        countries("GRE", "CYP"),
	},
	domain.TournamentOpen: {
		MaxPerCountryPerCategory: 4,
		EligibleCountries: countries(
			"GRE", "CYP", "BUL", "ROU", "SRB", "ALB", "MKD", "ITA",
			"ESP", "FRA", "GER", "AUT", "HUN", "POL", "CZE", "TUR",
		),
	},
}

// For returns the rule-set registered for a tournament type, or
// ErrUnknownTournamentType when none exists.
func For(t domain.TournamentType) (RuleSet, error) {
	rs, ok := ruleSets[t]
	if !ok {
		return RuleSet{}, fmt.Errorf("%w: %q", ErrUnknownTournamentType, t)
	}
	return rs, nil
}

// Request is a proposed choreography registration as seen by the engine.
type Request struct {
	Country  string
	Category domain.Category
	Type     domain.ChoreographyType
	Members  []domain.Person
}

// Validate checks a proposed registration against the rule-set of the
// tournament type. existingCount is the number of already-registered
// choreographies for the same country+category+type+tournament, computed
// by the caller from storage.
//
// All checks are evaluated; the first failure in declared order wins:
// quota, then country, then group size. Error messages carry the
// offending country/category/type/count so operators can self-diagnose.
func Validate(t domain.TournamentType, req Request, existingCount int64) error {
	rs, err := For(t)
	if err != nil {
		return err
	}

	var quotaErr, countryErr, groupErr error

	if existingCount >= int64(rs.MaxPerCountryPerCategory) {
		quotaErr = fmt.Errorf("%w: country %s already has %d registrations for category %s type %s (max %d)",
			ErrQuotaExceeded, req.Country, existingCount, req.Category, req.Type, rs.MaxPerCountryPerCategory)
	}
	if !rs.Eligible(req.Country) {
		countryErr = fmt.Errorf("%w: country %s cannot register for %s tournaments",
			ErrCountryNotEligible, req.Country, t)
	}
	if len(req.Members) == 0 {
		groupErr = fmt.Errorf("%w: country %s category %s type %s",
			ErrEmptyGroup, req.Country, req.Category, req.Type)
	}

	switch {
	case quotaErr != nil:
		return quotaErr
	case countryErr != nil:
		return countryErr
	case groupErr != nil:
		return groupErr
	}
	return nil
}
