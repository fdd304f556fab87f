package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

func TestHistory_Text(t *testing.T) {
	older := *sampleReport()
	newer := *sampleReport()
	newer.ID = "report-2"
	newer.Changes = []domain.ReportChange{{Kind: domain.ChangeDepth, Description: "Depth moved"}}
	intel := &fakeIntelligence{history: []domain.IntelligenceReport{older, newer}}

	stdout, _, err := runCLI(t, &Services{Intelligence: intel}, "history", "acme.com")

	require.NoError(t, err)
	assert.Equal(t, "acme.com", intel.lastTarget)
	assert.Contains(t, stdout, "2 reports for acme.com")
	assert.Contains(t, stdout, "1 changes")
}

func TestHistory_Empty(t *testing.T) {
	intel := &fakeIntelligence{}

	stdout, _, err := runCLI(t, &Services{Intelligence: intel}, "history", "unknown.io")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No reports for unknown.io.")
}

func TestHistory_RequiresTarget(t *testing.T) {
	_, _, err := runCLI(t, &Services{Intelligence: &fakeIntelligence{}}, "history")
	assert.Error(t, err)
}

func TestCompare_Text(t *testing.T) {
	intel := &fakeIntelligence{comparison: &domain.ComparisonReport{
		Target:      "acme.com",
		SourcesUsed: 4,
		DataPoints:  40,
		DepthLabel:  domain.DepthDeep,
		Confidence:  0.8,
		Baseline: domain.Baseline{
			Description: "Manual desk research by a single analyst",
			DataSources: 2,
			Findings:    8,
			DepthLabel:  domain.DepthSurface,
			Turnaround:  "2-3 weeks",
		},
		Highlights: []string{"4 sources consulted versus 2 for manual research"},
	}}

	stdout, _, err := runCLI(t, &Services{Intelligence: intel}, "compare", "acme.com")

	require.NoError(t, err)
	assert.Equal(t, "acme.com", intel.lastTarget)
	assert.Contains(t, stdout, "Baseline comparison for acme.com")
	assert.Contains(t, stdout, "4 sources consulted versus 2 for manual research")
	assert.Contains(t, stdout, "2-3 weeks")
}

func TestCompare_Error(t *testing.T) {
	intel := &fakeIntelligence{err: errors.New("sources down")}

	_, _, err := runCLI(t, &Services{Intelligence: intel}, "compare", "acme.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sources down")
}

func TestMonitor_AddListRemove(t *testing.T) {
	settings := &fakeSettings{}
	svc := &Services{Intelligence: &fakeIntelligence{}, Settings: settings}

	_, _, err := runCLI(t, svc, "monitor", "--add", "acme.com:competitive_analysis", "--add", "globex.io")
	require.NoError(t, err)
	assert.True(t, settings.saved)
	assert.Equal(t, []domain.WatchTarget{
		{Target: "acme.com", Objective: "competitive_analysis"},
		{Target: "globex.io", Objective: domain.ObjectiveComprehensive},
	}, settings.targets)

	settings.saved = false
	stdout, _, err := runCLI(t, svc, "monitor", "--list")
	require.NoError(t, err)
	assert.False(t, settings.saved)
	assert.Contains(t, stdout, "acme.com\tcompetitive_analysis")
	assert.Contains(t, stdout, "globex.io\tcomprehensive")

	_, _, err = runCLI(t, svc, "monitor", "--remove", "acme.com")
	require.NoError(t, err)
	assert.Equal(t, []domain.WatchTarget{{Target: "globex.io", Objective: domain.ObjectiveComprehensive}}, settings.targets)
}

func TestMonitor_ListEmpty(t *testing.T) {
	svc := &Services{Intelligence: &fakeIntelligence{}, Settings: &fakeSettings{}}

	stdout, _, err := runCLI(t, svc, "monitor", "--list")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No watched targets")
}

func TestMonitor_WithoutScheduler(t *testing.T) {
	_, _, err := runCLI(t, &Services{Intelligence: &fakeIntelligence{}}, "monitor")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler not available")
}

func TestEditTargets(t *testing.T) {
	current := []domain.WatchTarget{{Target: "acme.com", Objective: "comprehensive"}}

	got, err := editTargets(current, []string{"acme.com:product_strategy"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.WatchTarget{{Target: "acme.com", Objective: "product_strategy"}}, got)
	assert.Equal(t, "comprehensive", current[0].Objective)

	_, err = editTargets(current, []string{" :growth"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		assert.NoError(t, validateFormat(f))
	}
	assert.Error(t, validateFormat("xml"))
}

func TestUnknownFormatRejected(t *testing.T) {
	_, _, err := runCLI(t, &Services{Intelligence: &fakeIntelligence{}}, "history", "acme.com", "-o", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestToYAML_UsesJSONFieldNames(t *testing.T) {
	data, err := toYAML(sampleReport())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "acme.com", got["target"])
	assert.Equal(t, "moderate", got["depth_label"])
	assert.Contains(t, string(data), "sources_used:\n")
}
