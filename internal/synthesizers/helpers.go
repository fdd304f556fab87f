package synthesizers

import (
	"strings"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// maxTitleSubject bounds how much of a pattern description goes into a title.
const maxTitleSubject = 80

// subject shortens a pattern description for use in an insight title.
func subject(description string) string {
	s := strings.TrimSpace(description)
	runes := []rune(s)
	if len(runes) <= maxTitleSubject {
		return s
	}
	return strings.TrimSpace(string(runes[:maxTitleSubject-3])) + "..."
}

func containsAny(text string, keywords ...string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isRisk(p domain.Pattern) bool {
	return containsAny(p.Description, "risk", "threat", "churn", "declin", "fading")
}

func isOpportunity(p domain.Pattern) bool {
	return containsAny(p.Description, "opportunit", "growth", "growing", "emerging", "adoption")
}

func highImpact(p domain.Pattern) bool {
	level := p.ImpactLevel()
	return level == domain.ImpactCritical || level == domain.ImpactHigh
}

func refs(p domain.Pattern) []string {
	if p.ID == "" {
		return nil
	}
	return []string{p.ID}
}
