// Package rest exposes the risk service over HTTP/JSON.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/application/usecase"
	"github.com/contractwatch/riskengine/pkg/auth"
)

const maxBodyBytes = 1 << 20

// Handler serves the risk API routes.
type Handler struct {
	evaluateContract    *usecase.EvaluateContract
	assessContract      *usecase.AssessContract
	getAssessment       *usecase.GetAssessment
	summarizeCompliance *usecase.SummarizeCompliance
	getDashboardStats   *usecase.GetDashboardStats
	listHighRisk        *usecase.ListHighRiskContracts
	enforceRoles        bool
	logger              *slog.Logger
}

// NewHandler creates the API handler. Role checks apply only when
// enforceRoles is set, i.e. when auth.HTTPMiddleware wraps the mux.
func NewHandler(
	evaluateContract *usecase.EvaluateContract,
	assessContract *usecase.AssessContract,
	getAssessment *usecase.GetAssessment,
	summarizeCompliance *usecase.SummarizeCompliance,
	getDashboardStats *usecase.GetDashboardStats,
	listHighRisk *usecase.ListHighRiskContracts,
	enforceRoles bool,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		evaluateContract:    evaluateContract,
		assessContract:      assessContract,
		getAssessment:       getAssessment,
		summarizeCompliance: summarizeCompliance,
		getDashboardStats:   getDashboardStats,
		listHighRisk:        listHighRisk,
		enforceRoles:        enforceRoles,
		logger:              logger,
	}
}

// RegisterRoutes registers the API endpoints on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/dashboard/stats", h.DashboardStats)
	mux.HandleFunc("GET /api/v1/compliance/summary", h.ComplianceSummary)
	mux.HandleFunc("GET /api/v1/contracts/high-risk", h.HighRiskContracts)
	mux.HandleFunc("GET /api/v1/contracts/{id}/risk-assessment", h.GetRiskAssessment)
	mux.HandleFunc("POST /api/v1/contracts/{id}/risk-assessment", h.AssessContract)
	mux.HandleFunc("POST /api/v1/risk/evaluate", h.Evaluate)
}

var (
	evaluateRoles   = []string{auth.RoleAdmin, auth.RoleContractManager, auth.RoleComplianceOfficer}
	assessRoles     = []string{auth.RoleAdmin, auth.RoleContractManager}
	readRoles       = []string{auth.RoleAdmin, auth.RoleContractManager, auth.RoleComplianceOfficer, auth.RoleAuditor, auth.RoleViewer}
	complianceRoles = []string{auth.RoleAdmin, auth.RoleContractManager, auth.RoleComplianceOfficer, auth.RoleAuditor}
)

// authorize writes 401/403 and returns false when the caller lacks every role.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, roles []string) bool {
	if !h.enforceRoles {
		return true
	}
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if !claims.HasAnyRole(roles...) {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return false
	}
	return true
}

// fail maps use case errors to HTTP status codes. Unexpected errors are
// logged and answered with a generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the response.
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.WarnContext(r.Context(), "request timed out",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// DashboardStats handles GET /api/v1/dashboard/stats.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, readRoles) {
		return
	}
	stats, err := h.getDashboardStats.Execute(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HighRiskContracts handles GET /api/v1/contracts/high-risk.
func (h *Handler) HighRiskContracts(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, readRoles) {
		return
	}
	contracts, err := h.listHighRisk.Execute(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

// ComplianceSummary handles GET /api/v1/compliance/summary[?contract_id=].
func (h *Handler) ComplianceSummary(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, complianceRoles) {
		return
	}
	summary, err := h.summarizeCompliance.Execute(r.Context(), r.URL.Query().Get("contract_id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetRiskAssessment handles GET /api/v1/contracts/{id}/risk-assessment.
func (h *Handler) GetRiskAssessment(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, readRoles) {
		return
	}
	assessment, err := h.getAssessment.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// AssessContract handles POST /api/v1/contracts/{id}/risk-assessment.
func (h *Handler) AssessContract(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, assessRoles) {
		return
	}
	req := dto.AssessContractRequest{ContractID: r.PathValue("id")}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		req.AssessedBy = claims.UserID
	}

	assessment, err := h.assessContract.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, assessment)
}

// Evaluate handles POST /api/v1/risk/evaluate with a contract in the body.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, evaluateRoles) {
		return
	}

	var in dto.ContractInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.evaluateContract.Execute(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
