package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/portfolio"
)

var (
	estDevHours float64
	estFile     string
	estJSON     bool
)

func init() {
	estimateCmd.Flags().Float64Var(&estDevHours, "dev-hours", 0, "Development hours to expand (required)")
	estimateCmd.Flags().StringVarP(&estFile, "file", "f", "", "Portfolio YAML file whose planning section supplies the ratios")
	estimateCmd.Flags().BoolVar(&estJSON, "json", false, "Output the estimate as JSON")
	_ = estimateCmd.MarkFlagRequired("dev-hours")
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Derive phase hours, cost and duration from a development estimate",
	Long: `Expand a development-hours figure into design, testing, deployment and
support hours using the configured ratios, then roll it up into cost,
capex/opex split, recommended team size and duration.

Examples:
  planctl estimate --dev-hours 400
  planctl estimate --dev-hours 400 -f portfolio.yaml`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

type estimateOutput struct {
	Phases    planning.PhaseHours `json:"phases"`
	Aggregate planning.Aggregate  `json:"aggregate"`
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	cfg := planning.DefaultConfig()
	if estFile != "" {
		p, err := portfolio.LoadFile(estFile)
		if err != nil {
			return err
		}
		cfg = p.Planning
	}

	phases, err := planning.EstimatePhases(estDevHours, cfg)
	if err != nil {
		return err
	}
	result := estimateOutput{
		Phases:    phases,
		Aggregate: planning.AggregateEstimates([]model.TeamEstimate{phases.TeamEstimate("")}, cfg),
	}

	out := cmd.OutOrStdout()
	if estJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Fprintln(out, renderEstimate(result.Phases, result.Aggregate))
	return nil
}
