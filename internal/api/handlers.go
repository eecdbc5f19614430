package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/ignite/touchpoint-analytics/internal/pkg/httputil"
	"github.com/ignite/touchpoint-analytics/internal/pkg/logger"
	"github.com/ignite/touchpoint-analytics/internal/service/engagement"
)

// StatusClientClosedRequest is written when the caller went away before
// the response was ready, so access logs do not record a 200.
const StatusClientClosedRequest = 499

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers contains HTTP handlers for the analytics API
type Handlers struct {
	svc *engagement.Service
	db  Pinger
	log *logger.Logger
}

// NewHandlers creates a new handlers instance. db may be nil.
func NewHandlers(svc *engagement.Service, db Pinger) *Handlers {
	return &Handlers{svc: svc, db: db, log: logger.With("api")}
}

// HealthCheck returns server health status
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	db := "not_configured"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status, db = "degraded", "unreachable"
			h.log.Warn("health check ping failed", "error", err.Error())
		} else {
			db = "ok"
		}
	}
	httputil.OK(w, map[string]interface{}{
		"status":    status,
		"database":  db,
		"timestamp": time.Now().UTC(),
	})
}

// GetCampaignAnalytics returns the campaign aggregate.
func (h *Handlers) GetCampaignAnalytics(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.CampaignAnalytics(r.Context(), getOrgIDString(r), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httputil.OK(w, out)
}

// GetRecipients returns every recipient with derived summaries.
func (h *Handlers) GetRecipients(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Recipients(r.Context(), getOrgIDString(r), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{
		"recipients": out,
		"total":      len(out),
	})
}

// GetRecipientTimeline returns one recipient's rendered journey.
func (h *Handlers) GetRecipientTimeline(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Timeline(r.Context(),
		getOrgIDString(r),
		chi.URLParam(r, "campaignID"),
		chi.URLParam(r, "recipientID"),
		r.URL.Query().Get("expanded"),
	)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httputil.OK(w, view)
}

type aggregateRequest struct {
	Recipients []domain.RecipientAnalytics `json:"recipients"`
}

// AggregateFeed aggregates a recipient list posted by the caller.
func (h *Handlers) AggregateFeed(w http.ResponseWriter, r *http.Request) {
	var req aggregateRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	httputil.OK(w, h.svc.AggregateFeed(r.Context(), req.Recipients))
}

type stageRequest struct {
	Events []domain.TouchpointEvent `json:"events"`
}

// DetermineStage returns the current stage for a posted event list.
func (h *Handlers) DetermineStage(w http.ResponseWriter, r *http.Request) {
	var req stageRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	httputil.OK(w, map[string]string{"currentStage": h.svc.Stage(req.Events)})
}

func (h *Handlers) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engagement.ErrNotFound):
		httputil.NotFound(w, err.Error())
	case errors.Is(err, engagement.ErrMissingOrg), errors.Is(err, engagement.ErrMissingCampaign):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, context.Canceled):
		h.log.Debug("request canceled")
		httputil.Error(w, StatusClientClosedRequest, "request canceled")
	default:
		httputil.InternalError(w, err)
	}
}
