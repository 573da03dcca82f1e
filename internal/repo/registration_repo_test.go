package repo

import (
	"context"
	"testing"
	"time"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

func TestCreateRegistration_PersistsMembers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tour, err := CreateTournament(ctx, db, &domain.Tournament{
		Name: "Spring Cup", Type: domain.TournamentNational, Date: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}

	reg, err := CreateRegistration(ctx, db, &domain.Registration{
		TournamentID: tour.ID,
		Name:         "DOE-SMITH",
		Country:      "GRE",
		Category:     domain.CategorySenior,
		Type:         domain.TypeMixedPair,
		Members: []domain.RegistrationMember{
			{ExternalID: "A1", FullName: "John Doe", Gender: domain.GenderMale},
			{ExternalID: "A2", FullName: "Jane Smith", Gender: domain.GenderFemale},
		},
	})
	if err != nil {
		t.Fatalf("CreateRegistration: %v", err)
	}
	if reg.ID == "" || reg.Members[0].RegistrationID != reg.ID {
		t.Fatalf("member rows not linked: %+v", reg)
	}

	page, err := ListRegistrationsPage(ctx, db, tour.ID, 0, 10)
	if err != nil {
		t.Fatalf("ListRegistrationsPage: %v", err)
	}
	if len(page) != 1 || len(page[0].Members) != 2 {
		t.Fatalf("page = %+v; want 1 registration with 2 members", page)
	}
}

func TestCountRegistrationsBucket(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tour, _ := CreateTournament(ctx, db, &domain.Tournament{
		Name: "Open", Type: domain.TournamentOpen, Date: time.Now().UTC(),
	})
	other, _ := CreateTournament(ctx, db, &domain.Tournament{
		Name: "Other", Type: domain.TournamentOpen, Date: time.Now().UTC(),
	})

	mk := func(tournamentID, country string, cat domain.Category, typ domain.ChoreographyType) {
		if _, err := CreateRegistration(ctx, db, &domain.Registration{
			TournamentID: tournamentID, Name: "X", Country: country, Category: cat, Type: typ,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mk(tour.ID, "GRE", domain.CategorySenior, domain.TypeGroup)
	mk(tour.ID, "GRE", domain.CategorySenior, domain.TypeGroup)
	mk(tour.ID, "GRE", domain.CategoryJunior, domain.TypeGroup) // other category
	mk(tour.ID, "CYP", domain.CategorySenior, domain.TypeGroup) // other country
	mk(other.ID, "GRE", domain.CategorySenior, domain.TypeGroup) // other tournament

	n, err := CountRegistrationsBucket(ctx, db, tour.ID, "GRE", domain.CategorySenior, domain.TypeGroup)
	if err != nil {
		t.Fatalf("CountRegistrationsBucket: %v", err)
	}
	if n != 2 {
		t.Fatalf("bucket count = %d; want 2", n)
	}

	total, err := CountRegistrations(ctx, db, tour.ID)
	if err != nil {
		t.Fatalf("CountRegistrations: %v", err)
	}
	if total != 4 {
		t.Fatalf("total = %d; want 4", total)
	}
}

func TestListRegistrationsPage_Pagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tour, _ := CreateTournament(ctx, db, &domain.Tournament{
		Name: "Cup", Type: domain.TournamentNational, Date: time.Now().UTC(),
	})
	for i := 0; i < 5; i++ {
		CreateRegistration(ctx, db, &domain.Registration{
			TournamentID: tour.ID, Name: "R", Country: "GRE",
			Category: domain.CategoryYouth, Type: domain.TypeTrio,
		})
	}

	page, err := ListRegistrationsPage(ctx, db, tour.ID, 3, 2)
	if err != nil {
		t.Fatalf("ListRegistrationsPage: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d; want 2", len(page))
	}
}
