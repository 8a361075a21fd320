package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/gradebot/autograder/types"
)

// RenderSummary renders the human-readable tabular summary: one row per
// test (name, points or "-", pass/fail marker, excerpt) plus a score
// footer.
func RenderSummary(report *types.Report) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Grading Results: %s (%s)", report.SuiteName, formatDuration(report.Duration)))

	t.AppendHeader(table.Row{"Test", "Points", "Status", "Details"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Points", Align: text.AlignRight},
		{Name: "Details", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, res := range report.Results {
		t.AppendRow(table.Row{
			res.Name,
			pointsCell(res),
			statusCell(res.Status),
			firstLine(res.Excerpt),
		})
	}

	switch report.Status() {
	case types.TestStatusPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.TestStatusSkip:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		totalPointsCell(report),
		statusCell(report.Status()),
		report.ScoreLine(),
	})

	return t.Render() + "\n"
}

// RenderReward renders the reward banner. Call only on full pass;
// rewards are presentational and never affect scoring.
func RenderReward(reward *types.Reward) string {
	if reward == nil {
		return ""
	}
	var b strings.Builder
	if reward.Title != "" {
		b.WriteString(fmt.Sprintf("🏆 %s\n", reward.Title))
	}
	if reward.Image != "" {
		b.WriteString(reward.Image + "\n")
	}
	if reward.Link != "" {
		b.WriteString(reward.Link + "\n")
	}
	return b.String()
}

func pointsCell(res types.TestResult) string {
	if !res.Weighted {
		return "-"
	}
	return types.FormatPoints(res.PointsEarned) + "/" + types.FormatPoints(res.PointsAvailable)
}

func totalPointsCell(report *types.Report) string {
	if !report.HasPoints {
		return "-"
	}
	return types.FormatPoints(report.Points) + "/" + types.FormatPoints(report.AvailablePoints)
}

// statusCell returns a marker string for the test result
func statusCell(status types.TestStatus) string {
	switch status {
	case types.TestStatusPass:
		return "✓ pass"
	case types.TestStatusSkip:
		return "- skip"
	default:
		return "✗ fail"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// formatDuration formats the duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
