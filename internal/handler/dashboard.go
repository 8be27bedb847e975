package handler

import (
	"log/slog"
	"net/http"

	"pawtrack/internal/domain/services"
	"pawtrack/internal/httputil"
)

// DashboardHandler handles the aggregate views
type DashboardHandler struct {
	service services.DashboardService
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service services.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// Overview returns the owner's home-screen aggregate
// GET /api/dashboard
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Overview(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, dashboard)
}

// AdminAnalytics returns the cross-owner aggregate (admin only)
// GET /api/admin/analytics
func (h *DashboardHandler) AdminAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.AdminAnalytics(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, analytics)
}
