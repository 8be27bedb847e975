package handler

import (
	"log/slog"
	"net/http"

	"pawtrack/internal/domain/services"
	"pawtrack/internal/httputil"
)

// InsuranceHandler handles policy catalog and subscription requests
type InsuranceHandler struct {
	service services.InsuranceService
	logger  *slog.Logger
}

// NewInsuranceHandler creates a new insurance handler
func NewInsuranceHandler(service services.InsuranceService, logger *slog.Logger) *InsuranceHandler {
	return &InsuranceHandler{
		service: service,
		logger:  logger,
	}
}

// CreatePolicy adds a catalog policy (admin only)
// POST /api/insurance/policies
func (h *InsuranceHandler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req services.PolicyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	policy, err := h.service.CreatePolicy(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, policy)
}

// ListPolicies returns the policy catalog
// GET /api/insurance/policies
func (h *InsuranceHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.service.ListPolicies(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, policies)
}

// UpdatePolicy rewrites a catalog policy (admin only)
// PUT /api/insurance/policies/{id}
func (h *InsuranceHandler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req services.PolicyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	policy, err := h.service.UpdatePolicy(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, policy)
}

// DeletePolicy removes a catalog policy (admin only)
// DELETE /api/insurance/policies/{id}
func (h *InsuranceHandler) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePolicy(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Policy deleted successfully"})
}

// Subscribe enrolls a pet in a policy
// POST /api/insurance/subscribe
func (h *InsuranceHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req services.SubscribeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.service.Subscribe(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, sub)
}

// ListByPet returns a pet's subscriptions
// GET /api/insurance/pet/{petId}
func (h *InsuranceHandler) ListByPet(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListByPet(r.Context(), httputil.GetPrincipal(r), r.PathValue("petId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, subs)
}

// ListAll returns every subscription (admin only)
// GET /api/insurance/subscriptions
func (h *InsuranceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListAll(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, subs)
}

// UpdateClaimStatus transitions a claim (admin only)
// PUT /api/insurance/subscriptions/{id}/claim
func (h *InsuranceHandler) UpdateClaimStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClaimStatus string `json:"claim_status"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateClaimStatus(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"), req.ClaimStatus); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Claim status updated"})
}
