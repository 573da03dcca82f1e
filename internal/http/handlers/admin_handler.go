// Admin HTTP handlers: reference-data cache management and the warmup
// scheduler's manual trigger and status.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aerogym/go-registration-backend/internal/domain"
)

// CacheStats godoc
// @ID          cacheStats
// @Summary     Reference-data cache statistics
// @Description Reports how many entities are currently cached per roster plus cached image count. Never triggers a fetch.
// @Tags        Admin
// @Produce     json
//
// @Success     200  {object}  registry.Stats
// @Router      /admin/cache [get]
func (h *Handlers) CacheStats(c *gin.Context) {
	ok(c, http.StatusOK, h.cacheAdmin.CacheStats())
}

// ClearCache godoc
// @ID          clearCache
// @Summary     Clear the reference-data cache
// @Description Without a kind, clears every cached entry (rosters and images). With ?kind=, clears only that roster; the next access refetches lazily.
// @Tags        Admin
// @Produce     json
//
// @Param       kind  query  string  false  "Roster to clear"  Enums(athletes, coaches, judges)
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown kind"
// @Router      /admin/cache [delete]
func (h *Handlers) ClearCache(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("kind"))
	if raw == "" {
		h.cacheAdmin.InvalidateAll()
		noContent(c)
		return
	}

	kind, err := domain.ParsePersonKind(raw)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "kind must be one of athletes, coaches, judges")
		return
	}
	h.cacheAdmin.Invalidate(kind)
	noContent(c)
}

// TriggerWarmup godoc
// @ID          triggerWarmup
// @Summary     Run warmup synchronously
// @Description Runs the warmup sequence (roster fetch + image pre-fetch) and returns its outcome. Failures are reported, never fatal.
// @Tags        Admin
// @Produce     json
//
// @Success     200  {object}  warmup.Status
// @Failure     502  {object}  handlers.ErrorResponse  "Warmup run failed"
// @Router      /admin/warmup [post]
func (h *Handlers) TriggerWarmup(c *gin.Context) {
	if err := h.warmupAdmin.Run(c.Request.Context()); err != nil {
		if failUpstream(c, err) {
			return
		}
		fail(c, http.StatusBadGateway, ErrCodeUpstreamUnavailable, err.Error())
		return
	}
	ok(c, http.StatusOK, h.warmupAdmin.Status())
}

// WarmupStatus godoc
// @ID          warmupStatus
// @Summary     Warmup status
// @Description Reports the warmed flag, last success timestamp, last error, and live cache counts.
// @Tags        Admin
// @Produce     json
//
// @Success     200  {object}  warmup.Status
// @Router      /admin/warmup [get]
func (h *Handlers) WarmupStatus(c *gin.Context) {
	ok(c, http.StatusOK, h.warmupAdmin.Status())
}
