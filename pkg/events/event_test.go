package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := "c0a8012e-0000-4000-8000-000000000001"

	before := time.Now().UTC()
	event := NewBaseEvent("risk.assessment.completed", aggregateID, "RiskAssessment")
	after := time.Now().UTC()

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}
	if event.EventType() != "risk.assessment.completed" {
		t.Errorf("expected event type %q, got %q", "risk.assessment.completed", event.EventType())
	}
	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}
	if event.AggregateType() != "RiskAssessment" {
		t.Errorf("expected aggregate type %q, got %q", "RiskAssessment", event.AggregateType())
	}
	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	a := NewBaseEvent("x", "agg", "Agg")
	b := NewBaseEvent("x", "agg", "Agg")
	if a.EventID() == b.EventID() {
		t.Error("expected distinct event IDs")
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestRecorder_DrainEmptiesBuffer(t *testing.T) {
	var r Recorder
	assert.Nil(t, r.Pending())

	r.Record(NewBaseEvent("risk.assessment.completed", "c-1", "Contract"))
	r.Record(NewBaseEvent("risk.high.detected", "c-1", "Contract"), NewBaseEvent("risk.assessment.completed", "c-2", "Contract"))

	pending := r.Pending()
	require.Len(t, pending, 3)
	assert.Equal(t, "risk.high.detected", pending[1].EventType())

	pending[0] = nil
	assert.NotNil(t, r.Pending()[0], "pending must be a copy")

	drained := r.Drain()
	assert.Len(t, drained, 3)
	assert.Nil(t, r.Pending())
	assert.Nil(t, r.Drain())
}
