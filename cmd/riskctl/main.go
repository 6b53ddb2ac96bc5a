// Command riskctl scores contracts and summarizes compliance checks offline,
// using the same rules as the risk service.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/contractwatch/riskengine/internal/domain/service"
	"github.com/contractwatch/riskengine/internal/infrastructure/config"
	"github.com/contractwatch/riskengine/pkg/observability"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	rulesFile string
	output    string
	logLevel  string

	engine service.RiskEngine
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "riskctl",
		Short:         "Contract risk scoring and compliance summaries",
		Long:          "Evaluates contract descriptions and compliance check outcomes from YAML or JSON files with the risk engine rules.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.rulesFile, "rules", os.Getenv("RISK_RULES_FILE"), "YAML rules file overriding the default scoring tables")
	f.StringVarP(&a.output, "output", "o", "yaml", "output format: yaml or json")
	f.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(newAssessCmd(a), newComplianceCmd(a), newRulesCmd(a))
	return root
}

func (a *app) init(stderr io.Writer) error {
	a.logger = observability.InitLogger(observability.LogConfig{
		Level:  a.logLevel,
		Format: "text",
		Output: stderr,
	})

	if a.output != "yaml" && a.output != "json" {
		return fmt.Errorf("unsupported output format %q", a.output)
	}

	rules, err := config.LoadRules(a.rulesFile)
	if err != nil {
		return err
	}
	engine, err := service.NewRiskEngine(rules)
	if err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	a.engine = engine

	if a.rulesFile != "" {
		a.logger.Debug("loaded rules", "file", a.rulesFile)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
