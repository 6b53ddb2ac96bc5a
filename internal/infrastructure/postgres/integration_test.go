//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/port"
	"github.com/contractwatch/riskengine/internal/domain/service"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/testutil"
)

func seed(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	stmts := []string{
		`INSERT INTO contracts (id, contract_number, title, vendor, value, status, category, start_date, end_date, created_by, created_at)
		 VALUES ('` + testutil.TestContractID1 + `', 'CW-001', 'Depot build', 'Initech', 1200000, 'active', 'Construction',
		         '2024-01-01', '2027-01-01', '` + testutil.TestUserID + `', '2024-01-01')`,
		`INSERT INTO contracts (id, contract_number, title, vendor, value, currency, status, created_by, created_at)
		 VALUES ('` + testutil.TestContractID2 + `', 'CW-002', 'Licences', 'Microsoft', 20000, 'USD', 'draft',
		         '` + testutil.TestUserID + `', '2024-02-01')`,
		`INSERT INTO compliance_rules (id, name, category, rule_type) VALUES
		 ('` + testutil.TestRuleID1 + `', 'Encryption at rest', 'Security', 'clause_required'),
		 ('` + testutil.TestRuleID2 + `', 'Retention', 'Data', 'timeline')`,
		`INSERT INTO compliance_checks (contract_id, rule_id, status, checked_at) VALUES
		 ('` + testutil.TestContractID1 + `', '` + testutil.TestRuleID1 + `', 'compliant', '2024-03-01'),
		 ('` + testutil.TestContractID1 + `', '` + testutil.TestRuleID2 + `', 'non_compliant', '2024-03-02'),
		 ('` + testutil.TestContractID2 + `', '` + testutil.TestRuleID1 + `', 'pending_review', '2024-03-03')`,
	}
	for _, stmt := range stmts {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}
}

func TestRepositories_Integration(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	pg.Migrate(t, "../../../migrations")
	seed(ctx, t, pg.Pool)

	contracts := NewContractRepository(pg.Pool)
	checks := NewComplianceCheckRepository(pg.Pool)
	assessments := NewAssessmentRepository(pg.Pool)

	t.Run("find contract", func(t *testing.T) {
		c, err := contracts.FindByID(ctx, testutil.TestContractID1)
		require.NoError(t, err)
		assert.Equal(t, "Construction", c.Category)
		assert.Equal(t, valueobject.ContractStatusActive, c.Status)
		assert.Equal(t, "1200000.00 EUR", c.Value.String())
		months, ok := c.DurationMonths()
		assert.True(t, ok)
		assert.Greater(t, months, 36.0)
		assert.Nil(t, c.RiskScore)
		assert.True(t, c.RiskLevel.IsZero())
	})

	t.Run("missing contract", func(t *testing.T) {
		_, err := contracts.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, port.ErrNotFound)
	})

	t.Run("list contracts", func(t *testing.T) {
		all, err := contracts.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, testutil.TestContractID1, all[0].ID)
		assert.Equal(t, "USD", all[1].Value.Currency().Code())
		assert.False(t, all[1].HasCategory())
		assert.False(t, all[1].HasSchedule())
	})

	t.Run("list compliance checks", func(t *testing.T) {
		all, err := checks.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Security", all[0].Category())
		assert.Equal(t, "Data", all[1].Category())

		one, err := checks.List(ctx, testutil.TestContractID2)
		require.NoError(t, err)
		require.Len(t, one, 1)
		assert.Equal(t, valueobject.ComplianceStatusPendingReview, one[0].Status)
	})

	t.Run("save and load assessment", func(t *testing.T) {
		c, err := contracts.FindByID(ctx, testutil.TestContractID1)
		require.NoError(t, err)

		result := service.DefaultRiskEngine().AssessContract(c)
		assessment, err := model.NewRiskAssessment(c.ID, testutil.TestUserID, result)
		require.NoError(t, err)
		require.NoError(t, assessments.Save(ctx, assessment))

		loaded, err := assessments.FindLatestByContractID(ctx, c.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, assessment.ID(), loaded.ID())
		testutil.AssertScore(t, result.Score, loaded.Score())
		assert.Equal(t, result.Level, loaded.Level())
		assert.Equal(t, result.Factors, loaded.Factors())
		assert.Equal(t, result.Recommendations, loaded.Recommendations())
		assert.Equal(t, testutil.TestUserID, loaded.AssessedBy())

		updated, err := contracts.FindByID(ctx, c.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.RiskScore)
		testutil.AssertScore(t, result.Score, *updated.RiskScore)
		assert.Equal(t, result.Level, updated.RiskLevel)
	})

	t.Run("save for missing contract rolls back", func(t *testing.T) {
		assessment, err := model.NewRiskAssessment("missing", "", model.RiskAssessmentResult{
			Score: 2.0, Level: valueobject.RiskLevelLow,
		})
		require.NoError(t, err)
		assert.ErrorIs(t, assessments.Save(ctx, assessment), port.ErrNotFound)
	})

	t.Run("never assessed", func(t *testing.T) {
		loaded, err := assessments.FindLatestByContractID(ctx, testutil.TestContractID2)
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("list by risk level", func(t *testing.T) {
		_, err := pg.Pool.Exec(ctx, `UPDATE contracts SET risk_score = 6.8, risk_level = 'high' WHERE id = $1`, testutil.TestContractID2)
		require.NoError(t, err)
		_, err = pg.Pool.Exec(ctx, `
			INSERT INTO contracts (id, contract_number, title, vendor, value, status, risk_score, risk_level, created_by)
			VALUES ($1, 'CW-003', 'Perimeter security', 'Globex', 900000, 'active', 7.5, 'critical', $2)`,
			testutil.TestContractID3, testutil.TestUserID)
		require.NoError(t, err)

		high, err := contracts.ListByRiskLevel(ctx, valueobject.RiskLevelHigh)
		require.NoError(t, err)
		require.Len(t, high, 2)
		assert.Equal(t, testutil.TestContractID2, high[0].ID)
		assert.Equal(t, testutil.TestContractID1, high[1].ID)

		critical, err := contracts.ListByRiskLevel(ctx, valueobject.RiskLevelCritical)
		require.NoError(t, err)
		require.Len(t, critical, 1)
		assert.Equal(t, testutil.TestContractID3, critical[0].ID)
	})
}

func TestMigrations_Reversible(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	pg.Migrate(t, "../../../migrations")
	pg.Rollback(t, "../../../migrations")

	var tables int
	err := pg.Pool.QueryRow(ctx,
		`SELECT count(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_name <> 'schema_migrations'`,
	).Scan(&tables)
	require.NoError(t, err)
	assert.Zero(t, tables)

	pg.Migrate(t, "../../../migrations")
	_, err = NewContractRepository(pg.Pool).List(ctx)
	assert.NoError(t, err)
}
