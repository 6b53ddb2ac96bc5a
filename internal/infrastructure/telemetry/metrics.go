// Package telemetry records risk engine metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/contractwatch/riskengine/internal/domain/valueobject"
)

const meterName = "github.com/contractwatch/riskengine"

// AssessmentMetrics implements port.AssessmentMetrics.
type AssessmentMetrics struct {
	assessments metric.Int64Counter
	scores      metric.Float64Histogram
}

// NewAssessmentMetrics registers the assessment instruments on provider.
func NewAssessmentMetrics(provider metric.MeterProvider) (*AssessmentMetrics, error) {
	meter := provider.Meter(meterName)

	assessments, err := meter.Int64Counter("risk_assessments",
		metric.WithDescription("Completed contract risk assessments by level."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessments counter: %w", err)
	}

	scores, err := meter.Float64Histogram("risk_assessment_score",
		metric.WithDescription("Distribution of contract risk scores."),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 5, 6, 7, 8, 9, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create score histogram: %w", err)
	}

	return &AssessmentMetrics{assessments: assessments, scores: scores}, nil
}

// RecordAssessment counts one assessment and observes its score.
func (m *AssessmentMetrics) RecordAssessment(ctx context.Context, level valueobject.RiskLevel, score float64) {
	attrs := metric.WithAttributes(attribute.String("level", level.String()))
	m.assessments.Add(ctx, 1, attrs)
	m.scores.Record(ctx, score, attrs)
}
