package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// confidenceChangeThreshold is the smallest confidence move worth reporting.
const confidenceChangeThreshold = 0.1

// DetectChanges lists what moved between the previous report for a target
// and the current one. A nil previous report yields no changes.
func DetectChanges(prev, curr *domain.IntelligenceReport) []domain.ReportChange {
	if prev == nil || curr == nil {
		return nil
	}
	var changes []domain.ReportChange

	before := stringSet(prev.Ingestion.CrossSourceTopics)
	after := stringSet(curr.Ingestion.CrossSourceTopics)
	for _, topic := range sortedKeys(after) {
		if _, ok := before[topic]; !ok {
			changes = append(changes, domain.ReportChange{
				Kind:        domain.ChangeNewTopic,
				Description: fmt.Sprintf("New cross-source topic: %s", topic),
			})
		}
	}
	for _, topic := range sortedKeys(before) {
		if _, ok := after[topic]; !ok {
			changes = append(changes, domain.ReportChange{
				Kind:        domain.ChangeDroppedTopic,
				Description: fmt.Sprintf("Topic no longer corroborated: %s", topic),
			})
		}
	}

	if prev.DepthLabel != curr.DepthLabel {
		changes = append(changes, domain.ReportChange{
			Kind:        domain.ChangeDepth,
			Description: fmt.Sprintf("Depth moved from %s to %s", prev.DepthLabel, curr.DepthLabel),
		})
	}

	delta := curr.ConfidenceScore - prev.ConfidenceScore
	// Round before comparing so 0.1 steps between two-decimal scores count.
	if math.Abs(domain.Round2(delta)) >= confidenceChangeThreshold {
		changes = append(changes, domain.ReportChange{
			Kind: domain.ChangeConfidence,
			Description: fmt.Sprintf("Confidence moved from %.2f to %.2f",
				prev.ConfidenceScore, curr.ConfidenceScore),
		})
	}

	known := make(map[string]struct{})
	for _, a := range prev.Actions {
		if a.Priority == domain.PriorityCritical {
			known[a.Title] = struct{}{}
		}
	}
	for _, a := range curr.Actions {
		if a.Priority != domain.PriorityCritical {
			continue
		}
		if _, ok := known[a.Title]; ok {
			continue
		}
		known[a.Title] = struct{}{}
		changes = append(changes, domain.ReportChange{
			Kind:        domain.ChangeCriticalAction,
			Description: fmt.Sprintf("New critical action: %s", a.Title),
		})
	}
	return changes
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
