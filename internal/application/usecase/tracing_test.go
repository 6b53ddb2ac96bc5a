package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/application/usecase"
	"github.com/contractwatch/riskengine/internal/domain/service"
)

func TestUseCaseSpans_RecordErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	uc := usecase.NewEvaluateContract(service.DefaultRiskEngine())
	_, err := uc.Execute(context.Background(), dto.ContractInput{Status: "archived"})
	require.Error(t, err)
	_, err = uc.Execute(context.Background(), dto.ContractInput{Vendor: "IBM"})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "EvaluateContract", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.NotEmpty(t, spans[0].Events(), "error is recorded as a span event")

	assert.Equal(t, codes.Unset, spans[1].Status().Code)
}
