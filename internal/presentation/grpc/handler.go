package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/application/usecase"
	"github.com/contractwatch/riskengine/pkg/auth"
)

// Roles allowed per method.
var (
	evaluateRoles   = []string{auth.RoleAdmin, auth.RoleContractManager, auth.RoleComplianceOfficer}
	assessRoles     = []string{auth.RoleAdmin, auth.RoleContractManager}
	readRoles       = []string{auth.RoleAdmin, auth.RoleContractManager, auth.RoleComplianceOfficer, auth.RoleAuditor, auth.RoleViewer}
	complianceRoles = []string{auth.RoleAdmin, auth.RoleContractManager, auth.RoleComplianceOfficer, auth.RoleAuditor}
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	if !claims.HasAnyRole(roles...) {
		return status.Error(codes.PermissionDenied, "insufficient permissions")
	}
	return nil
}

// userIDFromContext returns the caller's user ID, or "" without claims.
func userIDFromContext(ctx context.Context) string {
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return ""
}

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	evaluateContract    *usecase.EvaluateContract
	assessContract      *usecase.AssessContract
	getAssessment       *usecase.GetAssessment
	summarizeCompliance *usecase.SummarizeCompliance
	getDashboardStats   *usecase.GetDashboardStats
	listHighRisk        *usecase.ListHighRiskContracts
	enforceRoles        bool
	logger              *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler. Role checks are enforced
// only when enforceRoles is set, i.e. when the auth interceptor is installed.
func NewRiskServiceHandler(
	evaluateContract *usecase.EvaluateContract,
	assessContract *usecase.AssessContract,
	getAssessment *usecase.GetAssessment,
	summarizeCompliance *usecase.SummarizeCompliance,
	getDashboardStats *usecase.GetDashboardStats,
	listHighRisk *usecase.ListHighRiskContracts,
	enforceRoles bool,
	logger *slog.Logger,
) *RiskServiceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RiskServiceHandler{
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

// Request/response message types.

// EvaluateContractRequest carries an inline contract to score.
type EvaluateContractRequest struct {
	Contract *dto.ContractInput `json:"contract"`
}

// EvaluateContractResponse holds the ephemeral evaluation.
type EvaluateContractResponse struct {
	Evaluation dto.EvaluationResponse `json:"evaluation"`
}

// AssessContractRequest names a stored contract to assess.
type AssessContractRequest struct {
	ContractID string `json:"contract_id"`
}

// AssessContractResponse holds the stored assessment.
type AssessContractResponse struct {
	Assessment dto.AssessmentResponse `json:"assessment"`
}

// GetAssessmentRequest names the contract whose latest assessment is wanted.
type GetAssessmentRequest struct {
	ContractID string `json:"contract_id"`
}

// GetAssessmentResponse holds the latest stored assessment.
type GetAssessmentResponse struct {
	Assessment dto.AssessmentResponse `json:"assessment"`
}

// SummarizeComplianceRequest optionally scopes the summary to one contract.
type SummarizeComplianceRequest struct {
	ContractID string `json:"contract_id,omitempty"`
}

// SummarizeComplianceResponse holds per-category compliance rates.
type SummarizeComplianceResponse struct {
	Summary dto.ComplianceSummaryResponse `json:"summary"`
}

// GetDashboardStatsRequest is empty.
type GetDashboardStatsRequest struct{}

// GetDashboardStatsResponse holds portfolio-wide statistics.
type GetDashboardStatsResponse struct {
	Stats dto.DashboardStatsResponse `json:"stats"`
}

// ListHighRiskContractsRequest is empty.
type ListHighRiskContractsRequest struct{}

// ListHighRiskContractsResponse lists high-risk contracts, highest score first.
type ListHighRiskContractsResponse struct {
	Contracts []dto.ContractSummary `json:"contracts"`
}

func (h *RiskServiceHandler) authorize(ctx context.Context, roles []string) error {
	if !h.enforceRoles {
		return nil
	}
	return requireRole(ctx, roles...)
}

// toStatus maps use case errors to gRPC status errors. Unexpected errors are
// logged and reported as Internal without detail.
func (h *RiskServiceHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	h.logger.ErrorContext(ctx, "request failed",
		slog.String("method", method),
		slog.String("error", err.Error()),
	)
	return status.Error(codes.Internal, "internal error")
}

// EvaluateContract scores an inline contract without storing anything.
func (h *RiskServiceHandler) EvaluateContract(ctx context.Context, req *EvaluateContractRequest) (*EvaluateContractResponse, error) {
	if err := h.authorize(ctx, evaluateRoles); err != nil {
		return nil, err
	}
	if req == nil || req.Contract == nil {
		return nil, status.Error(codes.InvalidArgument, "contract is required")
	}

	result, err := h.evaluateContract.Execute(ctx, *req.Contract)
	if err != nil {
		return nil, h.toStatus(ctx, "EvaluateContract", err)
	}
	return &EvaluateContractResponse{Evaluation: result}, nil
}

// AssessContract scores a stored contract and records the assessment.
func (h *RiskServiceHandler) AssessContract(ctx context.Context, req *AssessContractRequest) (*AssessContractResponse, error) {
	if err := h.authorize(ctx, assessRoles); err != nil {
		return nil, err
	}
	if req == nil || req.ContractID == "" {
		return nil, status.Error(codes.InvalidArgument, "contract_id is required")
	}

	h.logger.InfoContext(ctx, "assessing contract", slog.String("contract_id", req.ContractID))

	result, err := h.assessContract.Execute(ctx, dto.AssessContractRequest{
		ContractID: req.ContractID,
		AssessedBy: userIDFromContext(ctx),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "AssessContract", err)
	}
	return &AssessContractResponse{Assessment: result}, nil
}

// GetAssessment returns the latest stored assessment of a contract.
func (h *RiskServiceHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if err := h.authorize(ctx, readRoles); err != nil {
		return nil, err
	}
	if req == nil || req.ContractID == "" {
		return nil, status.Error(codes.InvalidArgument, "contract_id is required")
	}

	result, err := h.getAssessment.Execute(ctx, req.ContractID)
	if err != nil {
		return nil, h.toStatus(ctx, "GetAssessment", err)
	}
	return &GetAssessmentResponse{Assessment: result}, nil
}

// SummarizeCompliance returns compliance rates per rule category.
func (h *RiskServiceHandler) SummarizeCompliance(ctx context.Context, req *SummarizeComplianceRequest) (*SummarizeComplianceResponse, error) {
	if err := h.authorize(ctx, complianceRoles); err != nil {
		return nil, err
	}
	var contractID string
	if req != nil {
		contractID = req.ContractID
	}

	result, err := h.summarizeCompliance.Execute(ctx, contractID)
	if err != nil {
		return nil, h.toStatus(ctx, "SummarizeCompliance", err)
	}
	return &SummarizeComplianceResponse{Summary: result}, nil
}

// GetDashboardStats returns portfolio-wide statistics.
func (h *RiskServiceHandler) GetDashboardStats(ctx context.Context, _ *GetDashboardStatsRequest) (*GetDashboardStatsResponse, error) {
	if err := h.authorize(ctx, readRoles); err != nil {
		return nil, err
	}

	result, err := h.getDashboardStats.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "GetDashboardStats", err)
	}
	return &GetDashboardStatsResponse{Stats: result}, nil
}

// ListHighRiskContracts returns contracts whose stored level is high.
func (h *RiskServiceHandler) ListHighRiskContracts(ctx context.Context, _ *ListHighRiskContractsRequest) (*ListHighRiskContractsResponse, error) {
	if err := h.authorize(ctx, readRoles); err != nil {
		return nil, err
	}

	contracts, err := h.listHighRisk.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "ListHighRiskContracts", err)
	}
	return &ListHighRiskContractsResponse{Contracts: contracts}, nil
}
