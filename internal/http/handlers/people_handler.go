// People HTTP handlers.
//
// This file exposes REST endpoints for the merged person rosters:
//   - GET    /people/{kind}              (merged roster, optional country filter)
//   - GET    /people/{kind}/{id}         (single person by external ID)
//   - GET    /people/{kind}/{id}/image   (cached portrait bytes)
//   - POST   /people/{kind}              (create local override)
//   - PUT    /people/{kind}/{id}         (update local override)
//   - DELETE /people/{kind}/{id}         (delete local override)
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aerogym/go-registration-backend/internal/services"
)

//
// DTOs
//

// LocalPersonRequest is the JSON payload for creating or updating a local
// override person. Dates use the YYYY-MM-DD layout.
type LocalPersonRequest struct {
	// ExternalID keys the person for registrations and for merge precedence.
	ExternalID string `json:"external_id" example:"43210"`
	FirstName  string `json:"first_name" binding:"required" example:"Maria"`
	LastName   string `json:"last_name" binding:"required" example:"Ioannou"`
	Gender     string `json:"gender" example:"FEMALE"`
	Country    string `json:"country" example:"CYP"`
	Discipline string `json:"discipline" example:"AER"`

	Birth         string `json:"birth,omitempty" example:"2008-03-02"`
	ValidLicense  bool   `json:"valid_license"`
	LicenseExpiry string `json:"license_expiry,omitempty" example:"2027-12-31"`

	Level            string `json:"level,omitempty" example:"L2"`
	LevelDescription string `json:"level_description,omitempty"`

	JudgeCategory            string `json:"judge_category,omitempty"`
	JudgeCategoryDescription string `json:"judge_category_description,omitempty"`
}

const dateLayout = "2006-01-02"

// toInput converts the request into the service-layer input, validating
// date fields.
func (r LocalPersonRequest) toInput() (services.LocalPersonInput, error) {
	in := services.LocalPersonInput{
		ExternalID: r.ExternalID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Gender:     r.Gender,
		Country:    r.Country,
		Discipline: r.Discipline,

		ValidLicense: r.ValidLicense,

		Level:            r.Level,
		LevelDescription: r.LevelDescription,

		JudgeCategory:            r.JudgeCategory,
		JudgeCategoryDescription: r.JudgeCategoryDescription,
	}
	if s := strings.TrimSpace(r.Birth); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return in, err
		}
		in.Birth = &t
	}
	if s := strings.TrimSpace(r.LicenseExpiry); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return in, err
		}
		in.LicenseExpiry = &t
	}
	return in, nil
}

//
// Handlers
//

// ListPeople godoc
// @ID          listPeople
// @Summary     List people of a kind
// @Description Returns the merged external+local roster. External registry data wins over local overrides sharing an external ID.
// @Tags        People
// @Produce     json
//
// @Param       kind     path   string  true   "Person kind"  Enums(athletes, coaches, judges)
// @Param       country  query  string  false  "ISO-3166 alpha-3 country filter"  example(GRE)
//
// @Success     200  {array}   domain.Person
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     429  {object}  handlers.ErrorResponse  "Registry rate limited"
// @Failure     502  {object}  handlers.ErrorResponse  "Registry unavailable"
// @Failure     504  {object}  handlers.ErrorResponse  "Registry timeout"
// @Router      /people/{kind} [get]
func (h *Handlers) ListPeople(c *gin.Context) {
	kind, okKind := pathKind(c)
	if !okKind {
		return
	}

	people, err := h.people.ListAll(c.Request.Context(), kind, strings.TrimSpace(c.Query("country")))
	if err != nil {
		if failUpstream(c, err) {
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, people)
}

// GetPerson godoc
// @ID          getPerson
// @Summary     Get one person
// @Description Resolves a person by external identifier: external registry first, then local overrides.
// @Tags        People
// @Produce     json
//
// @Param       kind  path  string  true  "Person kind"  Enums(athletes, coaches, judges)
// @Param       id    path  string  true  "External identifier"  example(43210)
//
// @Success     200  {object}  domain.Person
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Person not found"
// @Router      /people/{kind}/{id} [get]
func (h *Handlers) GetPerson(c *gin.Context) {
	kind, okKind := pathKind(c)
	if !okKind {
		return
	}

	p, err := h.people.FindOne(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "person not found")
			return
		}
		if failUpstream(c, err) {
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// GetPersonImage godoc
// @ID          getPersonImage
// @Summary     Get a person's portrait
// @Description Serves the cached portrait bytes, fetching from the image origin on a cache miss.
// @Tags        People
// @Produce     image/jpeg
//
// @Param       kind  path  string  true  "Person kind"  Enums(athletes, coaches, judges)
// @Param       id    path  string  true  "External identifier"  example(43210)
//
// @Success     200  {file}    file
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Image origin unavailable"
// @Router      /people/{kind}/{id}/image [get]
func (h *Handlers) GetPersonImage(c *gin.Context) {
	if _, okKind := pathKind(c); !okKind {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "external id required")
		return
	}

	data, contentType, err := h.images.GetImage(c.Request.Context(), id)
	if err != nil {
		if failUpstream(c, err) {
			return
		}
		fail(c, http.StatusBadGateway, ErrCodeUpstreamUnavailable, "image fetch failed")
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

// CreateLocalPerson godoc
// @ID          createLocalPerson
// @Summary     Create a local override person
// @Description Creates a person record owned by this application. If the external registry later serves the same external ID, the registry record wins in merged listings.
// @Tags        People
// @Accept      json
// @Produce     json
//
// @Param       kind  path  string  true  "Person kind"  Enums(athletes, coaches, judges)
// @Param       body  body  handlers.LocalPersonRequest  true  "Person payload"
//
// @Success     201  {object}  domain.LocalPerson
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /people/{kind} [post]
func (h *Handlers) CreateLocalPerson(c *gin.Context) {
	kind, okKind := pathKind(c)
	if !okKind {
		return
	}

	var req LocalPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dates must use YYYY-MM-DD")
		return
	}

	p, err := h.localSvc.Create(c.Request.Context(), kind, in)
	if err != nil {
		if errors.Is(err, services.ErrMissingExternalID) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "external_id is required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, p)
}

// UpdateLocalPerson godoc
// @ID          updateLocalPerson
// @Summary     Update a local override person
// @Description Updates a locally owned person. Records served by the external registry are immutable and yield 403.
// @Tags        People
// @Accept      json
// @Produce     json
//
// @Param       kind  path  string  true  "Person kind"  Enums(athletes, coaches, judges)
// @Param       id    path  string  true  "External identifier"  example(43210)
// @Param       body  body  handlers.LocalPersonRequest  true  "Person payload"
//
// @Success     200  {object}  domain.LocalPerson
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "External record immutable"
// @Failure     404  {object}  handlers.ErrorResponse  "Person not found"
// @Router      /people/{kind}/{id} [put]
func (h *Handlers) UpdateLocalPerson(c *gin.Context) {
	kind, okKind := pathKind(c)
	if !okKind {
		return
	}

	var req LocalPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dates must use YYYY-MM-DD")
		return
	}

	p, err := h.localSvc.Update(c.Request.Context(), kind, c.Param("id"), in)
	if err != nil {
		h.failLocalMutation(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeleteLocalPerson godoc
// @ID          deleteLocalPerson
// @Summary     Delete a local override person
// @Description Deletes a locally owned person. Records served by the external registry are immutable and yield 403.
// @Tags        People
// @Produce     json
//
// @Param       kind  path  string  true  "Person kind"  Enums(athletes, coaches, judges)
// @Param       id    path  string  true  "External identifier"  example(43210)
//
// @Success     204  {string}  string  "No Content"
// @Failure     403  {object}  handlers.ErrorResponse  "External record immutable"
// @Failure     404  {object}  handlers.ErrorResponse  "Person not found"
// @Router      /people/{kind}/{id} [delete]
func (h *Handlers) DeleteLocalPerson(c *gin.Context) {
	kind, okKind := pathKind(c)
	if !okKind {
		return
	}

	if err := h.localSvc.Delete(c.Request.Context(), kind, c.Param("id")); err != nil {
		h.failLocalMutation(c, err)
		return
	}
	noContent(c)
}

// failLocalMutation writes the response for a failed local-person mutation.
func (h *Handlers) failLocalMutation(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPersonNotLocal):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "external registry records are immutable")
	case errors.Is(err, services.ErrPersonNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "person not found")
	case errors.Is(err, services.ErrMissingExternalID):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "external_id is required")
	default:
		if failUpstream(c, err) {
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
