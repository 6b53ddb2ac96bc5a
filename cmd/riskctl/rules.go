package main

import (
	"github.com/spf13/cobra"

	"github.com/contractwatch/riskengine/internal/infrastructure/config"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the active scoring rules as YAML",
		Long:  "Print the scoring rules in effect after applying --rules, in the rules file format.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.MarshalRules(a.engine.Rules())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
