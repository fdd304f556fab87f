package generators

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// priorityFor derives action priority from how urgent and valuable the insight is.
func priorityFor(in domain.Insight) domain.Priority {
	switch in.TimeSensitivity {
	case domain.TimeImmediate:
		if strings.Contains(strings.ToLower(in.BusinessValue), "high") {
			return domain.PriorityCritical
		}
		return domain.PriorityHigh
	case domain.TimeShortTerm:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// timelineFor picks a timeline that falls in the matching plan phase.
// quick selects the earlier window for short-term work.
func timelineFor(in domain.Insight, quick bool) string {
	switch in.TimeSensitivity {
	case domain.TimeImmediate:
		return "Immediate"
	case domain.TimeShortTerm:
		if quick {
			return "Week 1"
		}
		return "Weeks 2-3"
	default:
		return "Month 2+"
	}
}

// inIndustry appends the industry to a sentence when one is known.
func inIndustry(sentence string, bc domain.BusinessContext) string {
	if bc.Industry == "" {
		return sentence
	}
	return fmt.Sprintf("%s in the %s market", sentence, bc.Industry)
}
