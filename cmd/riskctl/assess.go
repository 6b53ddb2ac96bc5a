package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contractwatch/riskengine/internal/application/dto"
)

// contractReport pairs an input contract with its evaluation.
type contractReport struct {
	ID                     string `json:"id,omitempty" yaml:"id,omitempty"`
	Vendor                 string `json:"vendor" yaml:"vendor"`
	dto.EvaluationResponse `yaml:",inline"`
}

func newAssessCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assess <contract.yaml|contract.json|->",
		Short: "Score one contract or a list of contracts",
		Long: `Score contracts described in a YAML or JSON file.

The file holds a single contract or a list of contracts:

  vendor: Initech
  category: Construction
  value: 1200000
  status: active
  start_date: 2024-01-01
  end_date: 2027-01-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			inputs, err := decodeOneOrMany[dto.ContractInput](data)
			if err != nil {
				return fmt.Errorf("failed to parse contracts: %w", err)
			}

			reports := make([]contractReport, 0, len(inputs))
			for i, in := range inputs {
				contract, err := in.ToModel()
				if err != nil {
					return fmt.Errorf("contract %d: %w", i, err)
				}
				result := a.engine.AssessContract(contract)
				a.logger.Debug("contract scored", "index", i, "score", result.Score, "level", result.Level.String())
				reports = append(reports, contractReport{
					ID:                 in.ID,
					Vendor:             in.Vendor,
					EvaluationResponse: dto.FromResult(result),
				})
			}

			if len(reports) == 1 {
				return a.write(cmd.OutOrStdout(), reports[0])
			}
			return a.write(cmd.OutOrStdout(), reports)
		},
	}
}
