package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	pgshared "github.com/contractwatch/riskengine/pkg/postgres"
)

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Save inserts the assessment and copies its score and level onto the
// contract row in the same transaction.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.RiskAssessment) error {
	factors, err := json.Marshal(assessment.Factors())
	if err != nil {
		return fmt.Errorf("failed to encode risk factors: %w", err)
	}

	return pgshared.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// The contract update runs first so a missing contract surfaces as
		// ErrNotFound rather than a foreign key violation.
		if err := updateContractRisk(ctx, tx, assessment.ContractID(), assessment.Score(), assessment.Level()); err != nil {
			return err
		}

		query := `
			INSERT INTO risk_assessments (
				id, contract_id, factors, score, level,
				recommendations, assessed_at, assessed_by
			) VALUES ($1, $2, $3, $4, $5::risk_level, $6, $7, NULLIF($8, ''))
		`
		_, err := tx.Exec(ctx, query,
			assessment.ID(),
			assessment.ContractID(),
			factors,
			assessment.Score(),
			assessment.Level().String(),
			assessment.Recommendations(),
			assessment.AssessedAt(),
			assessment.AssessedBy(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert assessment: %w", err)
		}
		return nil
	})
}

// FindLatestByContractID returns the most recent assessment for a contract,
// or nil when the contract has never been assessed.
func (r *AssessmentRepository) FindLatestByContractID(ctx context.Context, contractID string) (*model.RiskAssessment, error) {
	query := `
		SELECT id, contract_id, factors, score::float8, level::text,
			COALESCE(recommendations, '{}'), assessed_at, COALESCE(assessed_by, '')
		FROM risk_assessments
		WHERE contract_id = $1
		ORDER BY assessed_at DESC, id DESC
		LIMIT 1
	`

	var (
		id, cID, level, assessedBy string
		factorsJSON                []byte
		result                     model.RiskAssessmentResult
		assessedAt                 time.Time
	)
	err := r.pool.QueryRow(ctx, query, contractID).Scan(
		&id, &cID, &factorsJSON, &result.Score, &level,
		&result.Recommendations, &assessedAt, &assessedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment for contract %s: %w", contractID, err)
	}

	if err := json.Unmarshal(factorsJSON, &result.Factors); err != nil {
		return nil, fmt.Errorf("assessment %s: failed to decode risk factors: %w", id, err)
	}
	if result.Level, err = valueobject.RiskLevelFromString(level); err != nil {
		return nil, fmt.Errorf("assessment %s: %w", id, err)
	}

	return model.Reconstruct(id, cID, assessedBy, result, assessedAt), nil
}
