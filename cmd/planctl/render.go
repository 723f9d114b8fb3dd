package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = cellStyle.Foreground(lipgloss.Color("46"))
	redStyle    = cellStyle.Foreground(lipgloss.Color("196"))
	dimStyle    = cellStyle.Foreground(lipgloss.Color("245"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// renderAllocations lists projects in engine order. Rows from the red line
// down are drawn in red.
func renderAllocations(res *planning.Result) string {
	t := newTable("#", "Project", "Priority", "Start", "End", "Hours", "Unscheduled", "Fits")
	for i, a := range res.Allocations {
		fits := "yes"
		if !a.Feasible {
			fits = "NO"
		}
		priority := strconv.Itoa(a.Priority)
		if a.Priority != a.StoredPriority {
			priority = fmt.Sprintf("%d (was %d)", a.Priority, a.StoredPriority)
		}
		t.Row(strconv.Itoa(i+1), a.ProjectName, priority,
			strconv.Itoa(a.StartWeek), strconv.Itoa(a.EndWeek),
			hours(a.Hours), hours(a.UnscheduledHours), fits)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case res.RedLineIndex >= 0 && row >= res.RedLineIndex:
			return redStyle
		case col == 7:
			return okStyle
		default:
			return cellStyle
		}
	})

	footer := fmt.Sprintf("horizon: %d weeks", res.HorizonWeeks)
	if res.RedLineIndex >= 0 {
		footer += fmt.Sprintf(" | red line before #%d (%d infeasible)", res.RedLineIndex+1, len(res.Infeasible()))
	} else {
		footer += " | everything fits"
	}
	if len(res.Excluded) > 0 {
		footer += fmt.Sprintf(" | %d closed project(s) excluded", len(res.Excluded))
	}
	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), dimStyle.Render(footer))
}

func renderTeams(summaries []planning.TeamSummary) string {
	t := newTable("Team", "Weekly h", "Capacity h", "Allocated h", "Available h", "Util %", "Full weeks", "Peak week")
	for _, s := range summaries {
		peak := "-"
		if s.PeakWeek >= 0 {
			peak = strconv.Itoa(s.PeakWeek)
		}
		t.Row(s.TeamName, hours(s.WeeklyHours), hours(s.CapacityHours), hours(s.AllocatedHours),
			hours(s.AvailableHours), hours(s.UtilizationPct), strconv.Itoa(s.FullyBookedWeeks), peak)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return t.Render()
}

func renderComparison(diff *planning.Comparison) string {
	t := newTable("Project", "Baseline end", "Scenario end", "Shift", "Fits (base → scen)")
	for _, d := range diff.Deltas {
		t.Row(d.ProjectName, strconv.Itoa(d.BaselineEnd), strconv.Itoa(d.ScenarioEnd),
			fmt.Sprintf("%+d", d.EndShift), fmt.Sprintf("%t → %t", d.BaselineFeasible, d.ScenarioFeasible))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		d := diff.Deltas[row]
		switch {
		case d.EndShift < 0 || (!d.BaselineFeasible && d.ScenarioFeasible):
			return okStyle
		case d.EndShift > 0 || (d.BaselineFeasible && !d.ScenarioFeasible):
			return redStyle
		default:
			return cellStyle
		}
	})
	footer := fmt.Sprintf("infeasible: %d → %d | improved %d | worsened %d",
		diff.BaselineInfeasible, diff.ScenarioInfeasible, diff.Improved, diff.Worsened)
	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), dimStyle.Render(footer))
}

func renderEstimate(p planning.PhaseHours, agg planning.Aggregate) string {
	phases := newTable("Phase", "Hours").
		Row("Technical design", hours(p.TechnicalDesign)).
		Row("Development", hours(p.Development)).
		Row("Testing", hours(p.Testing)).
		Row("Deployment", hours(p.Deployment)).
		Row("Post-deploy support", hours(p.Support)).
		Row("Total", hours(p.Total()))
	phases.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow || row == 5 {
			return headerStyle
		}
		return cellStyle
	})

	summary := newTable("Measure", "Value").
		Row("Total cost", fmt.Sprintf("%.2f", agg.TotalCost)).
		Row("Capex", fmt.Sprintf("%.2f", agg.TotalCapex)).
		Row("Opex", fmt.Sprintf("%.2f", agg.TotalOpex)).
		Row("Recommended team size", strconv.Itoa(agg.RecommendedTeamSize)).
		Row("Estimated weeks", strconv.Itoa(agg.EstimatedWeeks)).
		Row("Testing model", string(agg.TestingModel))
	summary.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})

	return lipgloss.JoinHorizontal(lipgloss.Top, phases.Render(), "  ", summary.Render())
}
