// Package postgres implements the risk engine repositories on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/port"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/money"
	pgshared "github.com/contractwatch/riskengine/pkg/postgres"
)

const contractColumns = `
	id, contract_number, title, vendor, COALESCE(category, ''),
	value, currency, status::text,
	start_date, end_date, risk_score::float8, risk_level::text,
	created_at, updated_at`

// ContractRepository implements port.ContractRepository using PostgreSQL.
type ContractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository creates a new PostgreSQL-backed contract repository.
func NewContractRepository(pool *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{pool: pool}
}

// FindByID retrieves a contract by its identifier.
func (r *ContractRepository) FindByID(ctx context.Context, id string) (model.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`

	c, err := scanContract(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Contract{}, fmt.Errorf("contract %s: %w", id, port.ErrNotFound)
	}
	if err != nil {
		return model.Contract{}, fmt.Errorf("failed to load contract %s: %w", id, err)
	}
	return c, nil
}

// List returns all contracts, oldest first.
func (r *ContractRepository) List(ctx context.Context) ([]model.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts ORDER BY created_at, id`
	return r.query(ctx, query)
}

// ListByRiskLevel returns contracts whose stored level equals level, highest
// stored score first.
func (r *ContractRepository) ListByRiskLevel(ctx context.Context, level valueobject.RiskLevel) ([]model.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts
		WHERE risk_level = $1::risk_level
		ORDER BY risk_score DESC NULLS LAST, id`
	return r.query(ctx, query, level.String())
}

func (r *ContractRepository) query(ctx context.Context, query string, args ...any) ([]model.Contract, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []model.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// updateContractRisk stores the latest assessment outcome on the contract row.
func updateContractRisk(ctx context.Context, q pgshared.Querier, id string, score float64, level valueobject.RiskLevel) error {
	tag, err := q.Exec(ctx, `
		UPDATE contracts
		SET risk_score = $2, risk_level = $3::risk_level, updated_at = now()
		WHERE id = $1`,
		id, score, level.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update contract risk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contract %s: %w", id, port.ErrNotFound)
	}
	return nil
}

func scanContract(row pgx.Row) (model.Contract, error) {
	var (
		c          model.Contract
		value      decimal.Decimal
		currency   string
		status     string
		riskLevel  *string
		start, end *time.Time
	)
	err := row.Scan(
		&c.ID, &c.ContractNumber, &c.Title, &c.Vendor, &c.Category,
		&value, &currency, &status,
		&start, &end, &c.RiskScore, &riskLevel,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return model.Contract{}, err
	}

	cur, err := money.NewCurrency(currency)
	if err != nil {
		return model.Contract{}, fmt.Errorf("contract %s: %w", c.ID, err)
	}
	c.Value = money.New(value, cur)

	if c.Status, err = valueobject.ContractStatusFromString(status); err != nil {
		return model.Contract{}, fmt.Errorf("contract %s: %w", c.ID, err)
	}
	if riskLevel != nil {
		if c.RiskLevel, err = valueobject.RiskLevelFromString(*riskLevel); err != nil {
			return model.Contract{}, fmt.Errorf("contract %s: %w", c.ID, err)
		}
	}
	c.StartDate, c.EndDate = start, end
	return c, nil
}
