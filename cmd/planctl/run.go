package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/portfolio"
)

var (
	runFile     string
	runScenario string
	runCompare  bool
	runJSON     bool
)

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "Portfolio YAML file (required)")
	runCmd.Flags().StringVar(&runScenario, "scenario", "", "Apply the named scenario")
	runCmd.Flags().BoolVar(&runCompare, "compare", false, "Show the scenario against the baseline")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Output the result as JSON")
	_ = runCmd.MarkFlagRequired("file")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Allocate the portfolio and show the red line",
	Long: `Run the allocation engine over a portfolio file and print each project's
schedule in priority order. Projects below the red line do not fit in the
planning horizon.

Examples:
  # Baseline
  planctl run -f portfolio.yaml

  # Scenario, compared with the baseline
  planctl run -f portfolio.yaml --scenario "Hire QA" --compare`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, _ []string) error {
	p, err := portfolio.LoadFile(runFile)
	if err != nil {
		return err
	}
	if runCompare && runScenario == "" {
		return fmt.Errorf("--compare requires --scenario")
	}

	in := p.Input()
	title := "Baseline"
	if runScenario != "" {
		s, ok := p.Scenario(runScenario)
		if !ok {
			return fmt.Errorf("scenario %q not found", runScenario)
		}
		in = planning.ApplyScenario(in, s)
		title = "Scenario: " + s.Name
	}
	res := planning.Run(in, p.Planning)

	var diff *planning.Comparison
	if runCompare {
		c := planning.Compare(planning.Run(p.Input(), p.Planning), res)
		diff = &c
	}

	out := cmd.OutOrStdout()
	if runJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if diff != nil {
			return enc.Encode(struct {
				Result     *planning.Result     `json:"result"`
				Comparison *planning.Comparison `json:"comparison"`
			}{res, diff})
		}
		return enc.Encode(res)
	}

	fmt.Fprintln(out, titleStyle.Render(title))
	fmt.Fprintln(out, renderAllocations(res))
	fmt.Fprintln(out, renderTeams(planning.Summarize(res)))
	if diff != nil {
		fmt.Fprintln(out, titleStyle.Render("Compared with baseline"))
		fmt.Fprintln(out, renderComparison(diff))
	}
	return nil
}
