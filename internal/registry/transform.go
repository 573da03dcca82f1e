package registry

import (
	"strings"
	"time"

	"github.com/aerogym/go-registration-backend/internal/derive"
	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/fig"
)

// The ingestion transform is the only place raw registry shapes are
// interpreted. Every derived field (full name, upper-cased country,
// competition age, category, image URL) is computed here exactly once;
// downstream consumers never recompute them.
//
// A record without an external identifier cannot be used for registration
// and is dropped (ok == false).

const birthLayout = "2006-01-02"

// transformAthlete converts a raw athlete license record into a Person.
// now anchors the competition-year age derivation.
func (s *Service) transformAthlete(raw fig.RawAthlete, now time.Time) (domain.Person, bool) {
	id := strings.TrimSpace(raw.GymnastID)
	if id == "" {
		return domain.Person{}, false
	}

	p := domain.Person{
		ID:           id,
		Kind:         domain.KindAthlete,
		FirstName:    strings.TrimSpace(raw.PreferredFirstName),
		LastName:     strings.TrimSpace(raw.PreferredLastName),
		Gender:       domain.ParseGender(raw.Gender),
		Country:      strings.ToUpper(strings.TrimSpace(raw.Country)),
		Discipline:   strings.TrimSpace(raw.Discipline),
		ValidLicense: strings.EqualFold(strings.TrimSpace(raw.Status), "valid"),
	}
	p.FullName = joinName(p.FirstName, p.LastName)
	p.ImageURL = s.opts.ImageBaseURL + id

	if birth, err := time.Parse(birthLayout, strings.TrimSpace(raw.Birth)); err == nil {
		p.Birth = &birth
		p.Age = derive.CompetitionYearAge(birth, now)
		p.Category = derive.CategoryFromAge(p.Age)
	}
	if exp, err := time.Parse(birthLayout, strings.TrimSpace(raw.ValidTo)); err == nil {
		p.LicenseExpiry = &exp
	}
	return p, true
}

// transformCoach converts a raw coach record into a Person.
func (s *Service) transformCoach(raw fig.RawCoach) (domain.Person, bool) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return domain.Person{}, false
	}

	p := domain.Person{
		ID:               id,
		Kind:             domain.KindCoach,
		FirstName:        strings.TrimSpace(raw.PreferredFirstName),
		LastName:         strings.TrimSpace(raw.PreferredLastName),
		Gender:           domain.ParseGender(raw.Gender),
		Country:          strings.ToUpper(strings.TrimSpace(raw.Country)),
		Discipline:       strings.TrimSpace(raw.Discipline),
		Level:            strings.TrimSpace(raw.Level),
		LevelDescription: strings.TrimSpace(raw.LevelDescription),
	}
	p.FullName = joinName(p.FirstName, p.LastName)
	p.ImageURL = s.opts.ImageBaseURL + id
	return p, true
}

// transformJudge converts a raw judge record into a Person.
func (s *Service) transformJudge(raw fig.RawJudge) (domain.Person, bool) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return domain.Person{}, false
	}

	p := domain.Person{
		ID:                       id,
		Kind:                     domain.KindJudge,
		FirstName:                strings.TrimSpace(raw.PreferredFirstName),
		LastName:                 strings.TrimSpace(raw.PreferredLastName),
		Gender:                   domain.ParseGender(raw.Gender),
		Country:                  strings.ToUpper(strings.TrimSpace(raw.Country)),
		Discipline:               strings.TrimSpace(raw.Discipline),
		JudgeCategory:            strings.TrimSpace(raw.Category),
		JudgeCategoryDescription: strings.TrimSpace(raw.CategoryDescription),
	}
	p.FullName = joinName(p.FirstName, p.LastName)
	p.ImageURL = s.opts.ImageBaseURL + id
	return p, true
}

// joinName builds the display full name, tolerating a missing half.
func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
