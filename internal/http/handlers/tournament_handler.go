// Tournament and registration HTTP handlers.
//
// This file exposes REST endpoints for competitions and their choreography
// registrations:
//   - POST /tournaments
//   - GET  /tournaments
//   - GET  /tournaments/{id}
//   - POST /tournaments/{id}/registrations  (eligibility-validated)
//   - GET  /tournaments/{id}/registrations  (paginated)
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aerogym/go-registration-backend/internal/derive"
	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/rules"
	"github.com/aerogym/go-registration-backend/internal/services"
)

//
// DTOs
//

// CreateTournamentRequest is the JSON payload for creating a tournament.
type CreateTournamentRequest struct {
	Name string `json:"name" binding:"required" example:"Panhellenic Championship"`
	// Type selects the eligibility rule-set (NATIONAL or OPEN).
	Type     string `json:"type" binding:"required" example:"NATIONAL"`
	Location string `json:"location" example:"Athens"`
	// Date uses the YYYY-MM-DD layout.
	Date string `json:"date" binding:"required" example:"2026-10-10"`
}

// CreateRegistrationRequest is the JSON payload for registering a
// choreography. Member IDs are athlete external identifiers in selection
// order; the derived display name follows that order.
type CreateRegistrationRequest struct {
	// Country optionally overrides the first member's country.
	Country   string   `json:"country" example:"GRE"`
	MemberIDs []string `json:"member_ids" binding:"required" example:"43210,43211"`
}

// ListRegistrationsResponse wraps a page of registrations and pagination
// information.
type ListRegistrationsResponse struct {
	Registrations []domain.Registration `json:"registrations"`
	Pagination    Pagination            `json:"pagination"`
}

//
// Handlers
//

// CreateTournament godoc
// @ID          createTournament
// @Summary     Create a tournament
// @Description Creates a competition. The type selects the eligibility rule-set applied to every registration.
// @Tags        Tournaments
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateTournamentRequest  true  "Tournament payload"
//
// @Success     201  {object}  domain.Tournament
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /tournaments [post]
func (h *Handlers) CreateTournament(c *gin.Context) {
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must use YYYY-MM-DD")
		return
	}

	t, err := h.tournaments.Create(c.Request.Context(), req.Name, req.Type, req.Location, date)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	ok(c, http.StatusCreated, t)
}

// ListTournaments godoc
// @ID          listTournaments
// @Summary     List tournaments
// @Tags        Tournaments
// @Produce     json
//
// @Success     200  {array}   domain.Tournament
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tournaments [get]
func (h *Handlers) ListTournaments(c *gin.Context) {
	out, err := h.tournaments.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, out)
}

// GetTournament godoc
// @ID          getTournament
// @Summary     Get one tournament
// @Tags        Tournaments
// @Produce     json
//
// @Param       id  path  string  true  "Tournament ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Tournament
// @Failure     404  {object}  handlers.ErrorResponse  "Tournament not found"
// @Router      /tournaments/{id} [get]
func (h *Handlers) GetTournament(c *gin.Context) {
	t, err := h.tournaments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTournamentNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "tournament not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, t)
}

// CreateRegistration godoc
// @ID          createRegistration
// @Summary     Register a choreography
// @Description Resolves members through the merged roster, derives type/category/name, validates eligibility (quota, country, group size) and persists the registration.
// @Tags        Registrations
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Tournament ID (UUID)"  format(uuid)
// @Param       body  body  handlers.CreateRegistrationRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.Registration
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure (quota_exceeded, country_not_eligible, empty_group, invalid_group_size, unknown_member)"
// @Failure     404  {object}  handlers.ErrorResponse  "Tournament not found"
// @Failure     502  {object}  handlers.ErrorResponse  "Registry unavailable"
// @Router      /tournaments/{id}/registrations [post]
func (h *Handlers) CreateRegistration(c *gin.Context) {
	var req CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	reg, err := h.regSvc.Register(c.Request.Context(), services.RegistrationInput{
		TournamentID: c.Param("id"),
		Country:      req.Country,
		MemberIDs:    req.MemberIDs,
	})
	if err != nil {
		h.failRegistration(c, err)
		return
	}
	ok(c, http.StatusCreated, reg)
}

// ListRegistrations godoc
// @ID          listRegistrations
// @Summary     List a tournament's registrations (paginated)
// @Tags        Registrations
// @Produce     json
//
// @Param       id         path   string  true   "Tournament ID (UUID)"  format(uuid)
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListRegistrationsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Tournament not found"
// @Router      /tournaments/{id}/registrations [get]
func (h *Handlers) ListRegistrations(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.regSvc.ListPage(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrTournamentNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "tournament not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListRegistrationsResponse{
		Registrations: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// failRegistration maps registration failures onto stable error codes.
// Rule-engine failures are user-input-class 400s whose messages carry the
// offending country/category/type/count.
func (h *Handlers) failRegistration(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTournamentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "tournament not found")
	case errors.Is(err, services.ErrUnknownMember):
		fail(c, http.StatusBadRequest, ErrCodeUnknownMember, err.Error())
	case errors.Is(err, rules.ErrQuotaExceeded):
		fail(c, http.StatusBadRequest, ErrCodeQuotaExceeded, err.Error())
	case errors.Is(err, rules.ErrCountryNotEligible):
		fail(c, http.StatusBadRequest, ErrCodeCountryNotEligible, err.Error())
	case errors.Is(err, rules.ErrEmptyGroup):
		fail(c, http.StatusBadRequest, ErrCodeEmptyGroup, err.Error())
	case errors.Is(err, derive.ErrInvalidGroupSize):
		fail(c, http.StatusBadRequest, ErrCodeInvalidGroupSize, err.Error())
	case errors.Is(err, rules.ErrUnknownTournamentType):
		// No rule-set registered for a persisted type: configuration error.
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	default:
		if failUpstream(c, err) {
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	}
}
