package service

import (
	"fmt"

	"github.com/contractwatch/riskengine/internal/domain/model"
)

// RiskEngine scores contracts against an immutable rule set. The zero value
// is not usable; construct with NewRiskEngine or DefaultRiskEngine.
// A RiskEngine is safe for concurrent use.
type RiskEngine struct {
	rules Rules
}

var defaultEngine = RiskEngine{rules: DefaultRules().normalized()}

// DefaultRiskEngine returns an engine using DefaultRules.
func DefaultRiskEngine() RiskEngine {
	return defaultEngine
}

// NewRiskEngine validates rules and returns an engine holding a private copy.
func NewRiskEngine(rules Rules) (RiskEngine, error) {
	if err := rules.Validate(); err != nil {
		return RiskEngine{}, fmt.Errorf("invalid risk rules: %w", err)
	}
	return RiskEngine{rules: rules.normalized()}, nil
}

// Rules returns a copy of the engine's rule set.
func (e RiskEngine) Rules() Rules {
	return e.rules.Clone()
}

// ComputeFactors scores each risk dimension of c.
func (e RiskEngine) ComputeFactors(c model.Contract) []model.RiskFactor {
	return e.rules.computeFactors(c)
}

// AssessContract computes factors, score, level and recommendations for c.
// The level is classified on the unrounded mean; only the reported score is
// rounded, so a mean of 4.95 reports 5.0 and stays medium.
func (e RiskEngine) AssessContract(c model.Contract) model.RiskAssessmentResult {
	factors := e.rules.computeFactors(c)
	mean := WeightedMean(factors)
	meanValue, _ := mean.Float64()
	score := roundScore(mean)
	level := ClassifyLevel(meanValue)

	return model.RiskAssessmentResult{
		Score:           score,
		Level:           level,
		Factors:         factors,
		Recommendations: GenerateRecommendations(factors, level),
	}
}
