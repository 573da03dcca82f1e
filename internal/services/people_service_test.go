package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

type fakeRoster struct {
	people     map[domain.PersonKind][]domain.Person
	err        error
	byCountry  int
	fullRoster int
}

func (f *fakeRoster) GetRoster(ctx context.Context, kind domain.PersonKind) ([]domain.Person, error) {
	f.fullRoster++
	if f.err != nil {
		return nil, f.err
	}
	return f.people[kind], nil
}

func (f *fakeRoster) GetRosterByCountry(ctx context.Context, kind domain.PersonKind, country string) ([]domain.Person, error) {
	f.byCountry++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Person
	for _, p := range f.people[kind] {
		if p.Country == country {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRoster) GetOne(ctx context.Context, kind domain.PersonKind, externalID string) (*domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.people[kind] {
		if p.ID == externalID {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeLocalRepo struct {
	rows []domain.LocalPerson
	err  error
}

func (f *fakeLocalRepo) ListLocalPersons(ctx context.Context, db *gorm.DB, kind domain.PersonKind, country string) ([]domain.LocalPerson, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.LocalPerson
	for _, r := range f.rows {
		if r.Kind != kind {
			continue
		}
		if country != "" && r.Country != country {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeLocalRepo) GetLocalByExternalID(ctx context.Context, db *gorm.DB, kind domain.PersonKind, externalID string) (*domain.LocalPerson, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.rows {
		if r.Kind == kind && r.ExternalID == externalID {
			cp := r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestListAll_ExternalWinsOverLocal(t *testing.T) {
	reg := &fakeRoster{people: map[domain.PersonKind][]domain.Person{
		domain.KindAthlete: {
			{ID: "FIG1", Kind: domain.KindAthlete, FullName: "Anna Registry", Country: "GRE"},
			{ID: "FIG2", Kind: domain.KindAthlete, FullName: "External Name", Country: "GRE"},
		},
	}}
	local := &fakeLocalRepo{rows: []domain.LocalPerson{
		// Same external ID as a registry record: must be shadowed.
		{ID: "L1", Kind: domain.KindAthlete, ExternalID: "FIG2", FirstName: "Local", LastName: "Shadow", Country: "GRE"},
		{ID: "L2", Kind: domain.KindAthlete, ExternalID: "LOCAL9", FirstName: "Only", LastName: "Local", Country: "GRE"},
	}}
	svc := NewPeopleService(nil, reg, local)

	got, err := svc.ListAll(context.Background(), domain.KindAthlete, "")
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("merged = %d people; want 3", len(got))
	}
	// External entries come first, in roster order.
	if got[0].ID != "FIG1" || got[1].ID != "FIG2" || got[2].ID != "LOCAL9" {
		t.Fatalf("merge order = %s,%s,%s", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[1].FullName != "External Name" {
		t.Fatalf("FIG2 = %q; external record must win", got[1].FullName)
	}
	if !got[2].IsLocal || got[2].FullName != "Only Local" {
		t.Fatalf("local entry not mapped: %+v", got[2])
	}
}

func TestListAll_LocalDuplicatesKeepNewest(t *testing.T) {
	reg := &fakeRoster{people: map[domain.PersonKind][]domain.Person{}}
	// Repo contract: rows arrive newest-first.
	local := &fakeLocalRepo{rows: []domain.LocalPerson{
		{ID: "L2", Kind: domain.KindAthlete, ExternalID: "DUP", FirstName: "Newer", LastName: "Row", Country: "GRE"},
		{ID: "L1", Kind: domain.KindAthlete, ExternalID: "DUP", FirstName: "Older", LastName: "Row", Country: "GRE"},
	}}
	svc := NewPeopleService(nil, reg, local)

	got, err := svc.ListAll(context.Background(), domain.KindAthlete, "")
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("merged = %d; want 1 (deduped)", len(got))
	}
	if got[0].FirstName != "Newer" {
		t.Fatalf("kept %q; want the most recently created row", got[0].FirstName)
	}
}

func TestListAll_CountryFilterUsesRegistryFilter(t *testing.T) {
	reg := &fakeRoster{people: map[domain.PersonKind][]domain.Person{
		domain.KindCoach: {
			{ID: "C1", Kind: domain.KindCoach, Country: "GRE"},
			{ID: "C2", Kind: domain.KindCoach, Country: "CYP"},
		},
	}}
	local := &fakeLocalRepo{rows: []domain.LocalPerson{
		{ID: "L1", Kind: domain.KindCoach, ExternalID: "LC1", Country: "CYP"},
	}}
	svc := NewPeopleService(nil, reg, local)

	got, err := svc.ListAll(context.Background(), domain.KindCoach, "CYP")
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if reg.byCountry != 1 || reg.fullRoster != 0 {
		t.Fatalf("calls: byCountry=%d full=%d; want the filtered path", reg.byCountry, reg.fullRoster)
	}
	if len(got) != 2 {
		t.Fatalf("CYP people = %d; want 2", len(got))
	}
}

func TestListAll_RegistryErrorPropagates(t *testing.T) {
	boom := errors.New("upstream down")
	svc := NewPeopleService(nil, &fakeRoster{err: boom}, &fakeLocalRepo{})

	if _, err := svc.ListAll(context.Background(), domain.KindAthlete, ""); !errors.Is(err, boom) {
		t.Fatalf("err = %v; want the registry error", err)
	}
}

func TestFindOne_ExternalFirstThenLocal(t *testing.T) {
	birth := time.Date(2008, time.March, 2, 0, 0, 0, 0, time.UTC)
	reg := &fakeRoster{people: map[domain.PersonKind][]domain.Person{
		domain.KindAthlete: {{ID: "FIG1", Kind: domain.KindAthlete, FullName: "From Registry"}},
	}}
	local := &fakeLocalRepo{rows: []domain.LocalPerson{
		{ID: "L1", Kind: domain.KindAthlete, ExternalID: "LOCAL1",
			FirstName: "Maria", LastName: "Ioannou", Country: "CYP", Birth: &birth},
	}}
	svc := NewPeopleService(nil, reg, local)
	ctx := context.Background()

	p, err := svc.FindOne(ctx, domain.KindAthlete, "FIG1")
	if err != nil || p.FullName != "From Registry" {
		t.Fatalf("external lookup = %+v, %v", p, err)
	}

	p, err = svc.FindOne(ctx, domain.KindAthlete, "LOCAL1")
	if err != nil {
		t.Fatalf("local fallback: %v", err)
	}
	if !p.IsLocal || p.FullName != "Maria Ioannou" {
		t.Fatalf("local person not mapped: %+v", p)
	}
	if p.Age == 0 || p.Category == "" {
		t.Fatalf("age/category not derived for local person: %+v", p)
	}

	if _, err := svc.FindOne(ctx, domain.KindAthlete, "NOPE"); !errors.Is(err, ErrPersonNotFound) {
		t.Fatalf("missing person err = %v; want ErrPersonNotFound", err)
	}
}
