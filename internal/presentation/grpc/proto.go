package grpc

// proto.go defines the gRPC server interface for contractwatch.risk.v1.RiskService.
// Messages travel as JSON (see codec.go), so the service descriptor is kept
// by hand instead of being generated.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "contractwatch.risk.v1.RiskService"

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	EvaluateContract(context.Context, *EvaluateContractRequest) (*EvaluateContractResponse, error)
	AssessContract(context.Context, *AssessContractRequest) (*AssessContractResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	SummarizeCompliance(context.Context, *SummarizeComplianceRequest) (*SummarizeComplianceResponse, error)
	GetDashboardStats(context.Context, *GetDashboardStatsRequest) (*GetDashboardStatsResponse, error)
	ListHighRiskContracts(context.Context, *ListHighRiskContractsRequest) (*ListHighRiskContractsResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) EvaluateContract(context.Context, *EvaluateContractRequest) (*EvaluateContractResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateContract not implemented")
}
func (UnimplementedRiskServiceServer) AssessContract(context.Context, *AssessContractRequest) (*AssessContractResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessContract not implemented")
}
func (UnimplementedRiskServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedRiskServiceServer) SummarizeCompliance(context.Context, *SummarizeComplianceRequest) (*SummarizeComplianceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SummarizeCompliance not implemented")
}
func (UnimplementedRiskServiceServer) GetDashboardStats(context.Context, *GetDashboardStatsRequest) (*GetDashboardStatsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDashboardStats not implemented")
}
func (UnimplementedRiskServiceServer) ListHighRiskContracts(context.Context, *ListHighRiskContractsRequest) (*ListHighRiskContractsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListHighRiskContracts not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s grpclib.ServiceRegistrar, srv RiskServiceServer) {
	s.RegisterService(&riskServiceDesc, srv)
}

var riskServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "EvaluateContract", Handler: unaryHandler(RiskServiceServer.EvaluateContract, "EvaluateContract")},
		{MethodName: "AssessContract", Handler: unaryHandler(RiskServiceServer.AssessContract, "AssessContract")},
		{MethodName: "GetAssessment", Handler: unaryHandler(RiskServiceServer.GetAssessment, "GetAssessment")},
		{MethodName: "SummarizeCompliance", Handler: unaryHandler(RiskServiceServer.SummarizeCompliance, "SummarizeCompliance")},
		{MethodName: "GetDashboardStats", Handler: unaryHandler(RiskServiceServer.GetDashboardStats, "GetDashboardStats")},
		{MethodName: "ListHighRiskContracts", Handler: unaryHandler(RiskServiceServer.ListHighRiskContracts, "ListHighRiskContracts")},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "contractwatch/risk/v1/risk.proto",
}

// unaryHandler adapts a typed RiskServiceServer method to grpc's method
// handler signature, running it through the server's interceptor chain.
func unaryHandler[Req, Resp any](
	call func(RiskServiceServer, context.Context, *Req) (*Resp, error),
	method string,
) grpclib.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RiskServiceServer), ctx, req)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(RiskServiceServer), ctx, req.(*Req))
		})
	}
}
