package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/service"
)

type complianceReport struct {
	Categories      []model.ComplianceCategorySummary `json:"categories" yaml:"categories"`
	ComplianceScore float64                           `json:"compliance_score" yaml:"compliance_score"`
}

func newComplianceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compliance <checks.yaml|checks.json|->",
		Short: "Summarize compliance check outcomes per category",
		Long: `Summarize compliance checks from a YAML or JSON list such as:

  - {status: compliant, category: Security}
  - {status: non_compliant, category: Security}
  - {status: pending_review}

Checks without a category are grouped under General.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			inputs, err := decodeOneOrMany[dto.ComplianceCheckInput](data)
			if err != nil {
				return fmt.Errorf("failed to parse compliance checks: %w", err)
			}
			checks, err := dto.ChecksToModel(inputs)
			if err != nil {
				return err
			}

			return a.write(cmd.OutOrStdout(), complianceReport{
				Categories:      service.SummarizeCompliance(checks),
				ComplianceScore: service.ComputeDashboardStats(nil, checks).ComplianceScore,
			})
		},
	}
}
