package detectors

import (
	"sort"
	"strings"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// topicSummary aggregates the findings for one topic.
type topicSummary struct {
	topic      string
	count      int
	confidence float64
	sources    []string
	strongest  domain.Finding
}

// summariseTopics groups key findings by topic, sorted by topic.
func summariseTopics(findings []domain.Finding) []topicSummary {
	byTopic := make(map[string]*topicSummary)
	seen := make(map[string]map[string]bool)
	for _, f := range findings {
		if f.Topic == "" {
			continue
		}
		s, ok := byTopic[f.Topic]
		if !ok {
			s = &topicSummary{topic: f.Topic}
			byTopic[f.Topic] = s
			seen[f.Topic] = make(map[string]bool)
		}
		s.count++
		s.confidence += f.Confidence
		if !seen[f.Topic][f.SourceName] {
			seen[f.Topic][f.SourceName] = true
			s.sources = append(s.sources, f.SourceName)
		}
		if s.count == 1 || f.Confidence > s.strongest.Confidence {
			s.strongest = f
		}
	}

	out := make([]topicSummary, 0, len(byTopic))
	for _, s := range byTopic {
		s.confidence /= float64(s.count)
		sort.Strings(s.sources)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].topic < out[j].topic })
	return out
}

// topicIndex returns summaries keyed by topic.
func topicIndex(findings []domain.Finding) map[string]topicSummary {
	idx := make(map[string]topicSummary)
	for _, s := range summariseTopics(findings) {
		idx[s.topic] = s
	}
	return idx
}

// containsAny reports whether text contains any keyword, case-insensitively.
func containsAny(text string, keywords ...string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// evidence builds a supporting-evidence entry from a finding.
func evidence(f domain.Finding) map[string]any {
	return map[string]any{
		"topic":       f.Topic,
		"source":      f.SourceName,
		"description": f.Description,
		"confidence":  f.Confidence,
	}
}
