package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/fig"
	"github.com/aerogym/go-registration-backend/internal/services"
)

func TestListPeople_OK_CountryForwarded(t *testing.T) {
	var gotKind domain.PersonKind
	var gotCountry string
	h := New(stubPeople{
		listAll: func(_ context.Context, kind domain.PersonKind, country string) ([]domain.Person, error) {
			gotKind, gotCountry = kind, country
			return []domain.Person{{ID: "1", Kind: kind, FullName: "A B"}}, nil
		},
	}, stubLocal{}, stubTournaments{}, stubReg{}, stubImages{}, &stubCacheAdmin{}, &stubWarmup{})
	r := newTestRouter(h)

	w := doRequest(r, http.MethodGet, "/people/athletes?country=gre", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotKind != domain.KindAthlete || gotCountry != "gre" {
		t.Fatalf("service received kind=%q country=%q", gotKind, gotCountry)
	}

	var out []domain.Person
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestListPeople_UpstreamErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fig.ErrRateLimited, http.StatusTooManyRequests, ErrCodeRateLimited},
		{fig.ErrUpstreamTimeout, http.StatusGatewayTimeout, ErrCodeUpstreamTimeout},
		{fig.ErrUpstreamFormat, http.StatusBadGateway, ErrCodeUpstreamFormat},
		{fig.ErrUpstreamUnavailable, http.StatusBadGateway, ErrCodeUpstreamUnavailable},
	}
	for _, tc := range cases {
		h := New(stubPeople{
			listAll: func(context.Context, domain.PersonKind, string) ([]domain.Person, error) {
				return nil, fmt.Errorf("athletes: %w", tc.err)
			},
		}, stubLocal{}, stubTournaments{}, stubReg{}, stubImages{}, &stubCacheAdmin{}, &stubWarmup{})
		r := newTestRouter(h)

		w := doRequest(r, http.MethodGet, "/people/athletes", nil)
		if w.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if body["code"] != tc.code {
			t.Fatalf("%v: expected code %q, got %v", tc.err, tc.code, body["code"])
		}
	}
}

func TestGetPerson_NotFound(t *testing.T) {
	h := New(stubPeople{
		findOne: func(context.Context, domain.PersonKind, string) (*domain.Person, error) {
			return nil, services.ErrPersonNotFound
		},
	}, stubLocal{}, stubTournaments{}, stubReg{}, stubImages{}, &stubCacheAdmin{}, &stubWarmup{})
	r := newTestRouter(h)

	w := doRequest(r, http.MethodGet, "/people/judges/99999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetPersonImage_OK_And_ContentTypeFallback(t *testing.T) {
	h := New(stubPeople{}, stubLocal{}, stubTournaments{}, stubReg{}, stubImages{
		getImage: func(_ context.Context, id string) ([]byte, string, error) {
			return []byte("img-" + id), "", nil
		},
	}, &stubCacheAdmin{}, &stubWarmup{})
	r := newTestRouter(h)

	w := doRequest(r, http.MethodGet, "/people/athletes/43210/image", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/octet-stream" {
		t.Fatalf("expected octet-stream fallback, got %q", got)
	}
	if w.Body.String() != "img-43210" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
}

func TestGetPersonImage_UpstreamFailure(t *testing.T) {
	h := New(stubPeople{}, stubLocal{}, stubTournaments{}, stubReg{}, stubImages{
		getImage: func(context.Context, string) ([]byte, string, error) {
			return nil, "", errors.New("boom")
		},
	}, &stubCacheAdmin{}, &stubWarmup{})
	r := newTestRouter(h)

	w := doRequest(r, http.MethodGet, "/people/athletes/43210/image", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestCreateLocalPerson_OK(t *testing.T) {
	var got services.LocalPersonInput
	h := New(stubPeople{}, stubLocal{
		create: func(_ context.Context, kind domain.PersonKind, in services.LocalPersonInput) (*domain.LocalPerson, error) {
			got = in
			return &domain.LocalPerson{ID: "lp1", Kind: kind, ExternalID: in.ExternalID}, nil
		},
	}, stubTournaments{}, stubReg{}, stubImages{}, &stubCacheAdmin{}, &stubWarmup{})
	r := newTestRouter(h)

	body := `{"external_id":"43210","first_name":"Maria","last_name":"Ioannou","gender":"FEMALE","country":"CYP","birth":"2008-03-02"}`
	w := doRequest(r, http.MethodPost, "/people/athletes", &body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if got.ExternalID != "43210" || got.Birth == nil {
		t.Fatalf("input not forwarded: %+v", got)
	}
	if got.Birth.Year() != 2008 || got.Birth.Month() != 3 {
		t.Fatalf("birth parsed wrong: %v", got.Birth)
	}
}

func TestCreateLocalPerson_BadDate(t *testing.T) {
	h, _, _ := defaultHandlers()
	r := newTestRouter(h)

	body := `{"external_id":"1","first_name":"A","last_name":"B","birth":"02/03/2008"}`
	w := doRequest(r, http.MethodPost, "/people/athletes", &body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", w.Code)
	}
}

func TestCreateLocalPerson_MissingRequiredFields(t *testing.T) {
	h, _, _ := defaultHandlers()
	r := newTestRouter(h)

	body := `{"external_id":"1"}`
	w := doRequest(r, http.MethodPost, "/people/athletes", &body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing names, got %d", w.Code)
	}
}

func TestCreateLocalPerson_MissingExternalID(t *testing.T) {
	h := New(stubPeople{}, stubLocal{
		create: func(context.Context, domain.PersonKind, services.LocalPersonInput) (*domain.LocalPerson, error) {
			return nil, services.ErrMissingExternalID
		},
	}, stubTournaments{}, stubReg{}, stubImages{}, &stubCacheAdmin{}, &stubWarmup{})
	r := newTestRouter(h)

	body := `{"first_name":"A","last_name":"B"}`
	w := doRequest(r, http.MethodPost, "/people/athletes", &body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateLocalPerson_ExternalImmutable(t *testing.T) {
	h := New(stubPeople{}, stubLocal{
		update: func(context.Context, domain.PersonKind, string, services.LocalPersonInput) (*domain.LocalPerson, error) {
			return nil, services.ErrPersonNotLocal
		},
	}, stubTournaments{}, stubReg{}, stubImages{}, &stubCacheAdmin{}, &stubWarmup{})
	r := newTestRouter(h)

	body := `{"first_name":"A","last_name":"B"}`
	w := doRequest(r, http.MethodPut, "/people/athletes/43210", &body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out["code"] != ErrCodeForbidden {
		t.Fatalf("expected forbidden code, got %v", out["code"])
	}
}

func TestDeleteLocalPerson_NoContent(t *testing.T) {
	h, _, _ := defaultHandlers()
	r := newTestRouter(h)

	w := doRequest(r, http.MethodDelete, "/people/coaches/777", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestDeleteLocalPerson_NotFound(t *testing.T) {
	h := New(stubPeople{}, stubLocal{
		del: func(context.Context, domain.PersonKind, string) error {
			return services.ErrPersonNotFound
		},
	}, stubTournaments{}, stubReg{}, stubImages{}, &stubCacheAdmin{}, &stubWarmup{})
	r := newTestRouter(h)

	w := doRequest(r, http.MethodDelete, "/people/coaches/777", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
