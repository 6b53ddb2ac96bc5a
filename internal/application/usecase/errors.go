package usecase

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/contractwatch/riskengine/internal/domain/port"
)

var (
	// ErrNotFound is returned when a requested contract or assessment does not exist.
	ErrNotFound = port.ErrNotFound

	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

var tracer = otel.Tracer("github.com/contractwatch/riskengine/internal/application/usecase")

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
