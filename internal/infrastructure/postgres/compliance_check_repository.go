package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
)

// ComplianceCheckRepository implements port.ComplianceCheckRepository using PostgreSQL.
type ComplianceCheckRepository struct {
	pool *pgxpool.Pool
}

// NewComplianceCheckRepository creates a new PostgreSQL-backed compliance check repository.
func NewComplianceCheckRepository(pool *pgxpool.Pool) *ComplianceCheckRepository {
	return &ComplianceCheckRepository{pool: pool}
}

// List returns compliance checks with their rule category, in check order.
// An empty contractID returns checks for every contract.
func (r *ComplianceCheckRepository) List(ctx context.Context, contractID string) ([]model.ComplianceCheck, error) {
	query := `
		SELECT cc.id, cc.contract_id, cc.rule_id, cc.status::text,
			COALESCE(cr.category, ''), COALESCE(cc.details, ''), cc.checked_at
		FROM compliance_checks cc
		LEFT JOIN compliance_rules cr ON cr.id = cc.rule_id
		WHERE $1 = '' OR cc.contract_id = $1
		ORDER BY cc.checked_at, cc.id
	`

	rows, err := r.pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance checks: %w", err)
	}
	defer rows.Close()

	var checks []model.ComplianceCheck
	for rows.Next() {
		var (
			c      model.ComplianceCheck
			status string
		)
		if err := rows.Scan(&c.ID, &c.ContractID, &c.RuleID, &status, &c.RuleCategory, &c.Details, &c.CheckedAt); err != nil {
			return nil, fmt.Errorf("failed to scan compliance check: %w", err)
		}
		if c.Status, err = valueobject.ComplianceStatusFromString(status); err != nil {
			return nil, fmt.Errorf("compliance check %s: %w", c.ID, err)
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list compliance checks: %w", err)
	}
	return checks, nil
}
