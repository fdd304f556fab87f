package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// textInsightLimit caps the insights listed in text reports.
const textInsightLimit = 5

func renderReport(w io.Writer, r *domain.IntelligenceReport) {
	fmt.Fprintf(w, "Intelligence report for %s (%s)\n", r.Target, r.Objective)
	fmt.Fprintf(w, "Generated %s  Depth: %s  Confidence: %.2f\n",
		r.GeneratedAt.Local().Format(time.DateTime), r.DepthLabel, r.ConfidenceScore)
	fmt.Fprintf(w, "Sources: %s  Data points: %d  Findings: %d  Anomalies: %d\n",
		joinOrNone(r.Ingestion.SourcesUsed), r.Ingestion.TotalDataPoints,
		r.Ingestion.KeyFindingCount, r.Ingestion.AnomalyCount)

	if r.Summary.Narrative != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Summary")
		fmt.Fprintf(w, "  %s\n", r.Summary.Narrative)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Patterns: %d (%d meta)\n", len(r.Patterns)+len(r.MetaPatterns), len(r.MetaPatterns))
	for i, p := range r.MetaPatterns {
		fmt.Fprintf(w, "  * %s (confidence %.2f)\n", p.Description, p.Confidence)
		if i == textInsightLimit-1 {
			break
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Top insights (%d total)\n", len(r.Insights))
	if len(r.Insights) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for i, in := range r.Insights {
		if i == textInsightLimit {
			break
		}
		fmt.Fprintf(w, "  %d. [%s, %s] %s (priority %.2f)\n",
			i+1, in.Category, in.TimeSensitivity, in.Title, in.PriorityScore)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Action plan (%d actions)\n", len(r.Actions))
	byID := make(map[string]domain.Action, len(r.Actions))
	for _, a := range r.Actions {
		byID[a.ID] = a
	}
	for _, phase := range r.Plan.Phases {
		if len(phase.ActionIDs) == 0 {
			continue
		}
		fmt.Fprintf(w, "  Phase %d: %s (%s)\n", phase.Number, phase.Name, phase.Window)
		for _, id := range phase.ActionIDs {
			a := byID[id]
			fmt.Fprintf(w, "    - [%s] %s (owner: %s, %s)\n", a.Priority, a.Title, a.Owner, a.Timeline)
		}
	}
	if len(r.Resources.CriticalResources) > 0 {
		fmt.Fprintf(w, "  Critical resources: %s\n", strings.Join(r.Resources.CriticalResources, ", "))
	}

	if len(r.Changes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Changes since last run")
		for _, c := range r.Changes {
			fmt.Fprintf(w, "  - %s\n", c.Description)
		}
	}
}

func renderComparison(w io.Writer, c *domain.ComparisonReport) {
	fmt.Fprintf(w, "Baseline comparison for %s\n\n", c.Target)
	fmt.Fprintf(w, "  %-16s %10s %10s\n", "", "Foresight", "Manual")
	fmt.Fprintf(w, "  %-16s %10d %10d\n", "Sources", c.SourcesUsed, c.Baseline.DataSources)
	fmt.Fprintf(w, "  %-16s %10d %10d\n", "Findings", c.DataPoints, c.Baseline.Findings)
	fmt.Fprintf(w, "  %-16s %10s %10s\n", "Depth", c.DepthLabel, c.Baseline.DepthLabel)
	fmt.Fprintf(w, "  %-16s %10.2f %10s\n", "Confidence", c.Confidence, "-")
	fmt.Fprintln(w)
	for _, h := range c.Highlights {
		fmt.Fprintf(w, "  * %s\n", h)
	}
	fmt.Fprintf(w, "\nBaseline: %s (%s)\n", c.Baseline.Description, c.Baseline.Turnaround)
}

func renderHistory(w io.Writer, target string, reports []domain.IntelligenceReport) {
	if len(reports) == 0 {
		fmt.Fprintf(w, "No reports for %s.\n", target)
		return
	}
	fmt.Fprintf(w, "%d reports for %s (oldest first)\n\n", len(reports), target)
	for _, r := range reports {
		fmt.Fprintf(w, "  %s  %-22s %-12s conf %.2f  %2d insights  %2d actions  %d changes\n",
			r.GeneratedAt.Local().Format(time.DateTime), r.Objective, r.DepthLabel,
			r.ConfidenceScore, len(r.Insights), len(r.Actions), len(r.Changes))
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
