package service

import (
	"github.com/shopspring/decimal"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
)

// WeightedMean returns the exact weighted mean of factor values. An empty or
// weightless factor list yields 0.
func WeightedMean(factors []model.RiskFactor) decimal.Decimal {
	weighted, weight := decimal.Zero, decimal.Zero
	for _, f := range factors {
		w := decimal.NewFromFloat(f.Weight)
		weighted = weighted.Add(decimal.NewFromFloat(f.Value).Mul(w))
		weight = weight.Add(w)
	}

	if weight.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(weight)
}

// ComputeScore returns the weighted mean rounded half-up to one decimal.
func ComputeScore(factors []model.RiskFactor) float64 {
	return roundScore(WeightedMean(factors))
}

func roundScore(mean decimal.Decimal) float64 {
	score, _ := mean.Round(1).Float64()
	return score
}

// ClassifyLevel maps a score to its risk level.
func ClassifyLevel(score float64) valueobject.RiskLevel {
	return valueobject.RiskLevelFromScore(score)
}
