// Package fixture provides a source backed by a YAML file of canned findings.
// It needs no network access and can stand in for any source name.
//
// File format:
//
//	latency_ms: 0          # optional delay per call
//	targets:
//	  acme.com:
//	    raw_count: 40
//	    findings:
//	      - topic: pricing
//	        description: Competitor cut prices by 20%
//	        confidence: 0.8
//	        objectives: [competitive_analysis]   # optional
//	  "*":                 # applies to every target
//	    findings: [...]
//	    fail: "upstream down"                    # optional simulated failure
package fixture

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/plugins"
)

// Kind is the source kind name used in configuration.
const Kind = "fixture"

// Wildcard is the target key that matches every target.
const Wildcard = "*"

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// File is the decoded fixture file.
type File struct {
	LatencyMS int                    `yaml:"latency_ms"`
	Targets   map[string]TargetEntry `yaml:"targets"`
}

// TargetEntry holds the canned answer for one target.
type TargetEntry struct {
	RawCount int     `yaml:"raw_count"`
	Findings []Entry `yaml:"findings"`
	Fail     string  `yaml:"fail"`
}

// Entry is one canned finding.
type Entry struct {
	Topic        string   `yaml:"topic"`
	Description  string   `yaml:"description"`
	Confidence   float64  `yaml:"confidence"`
	Implications string   `yaml:"implications"`
	Objectives   []string `yaml:"objectives"`
}

// Source answers from a fixture file.
type Source struct {
	name    string
	file    File
	latency time.Duration
}

// New builds a fixture source. Config keys:
//   - path (string, required): YAML fixture file
func New(name string, cfg map[string]any) (driven.Source, error) {
	path := plugins.StringFromConfig(cfg, "path", "")
	if path == "" {
		return nil, fmt.Errorf("%w: fixture path is required", domain.ErrInvalidInput)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(name, data)
}

// Parse builds a fixture source from YAML.
func Parse(name string, data []byte) (*Source, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	targets := make(map[string]TargetEntry, len(file.Targets))
	for k, v := range file.Targets {
		targets[strings.ToLower(strings.TrimSpace(k))] = v
	}
	file.Targets = targets
	return &Source{
		name:    name,
		file:    file,
		latency: time.Duration(file.LatencyMS) * time.Millisecond,
	}, nil
}

// Name returns the configured source name.
func (s *Source) Name() string { return s.name }

// Ingest returns the target's findings followed by wildcard findings.
// Findings scoped to other objectives are skipped, and non-empty focus
// areas keep only findings whose topic or description mentions one.
func (s *Source) Ingest(ctx context.Context, target, objective string, focusAreas []string) (*domain.SourceResult, error) {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.latency):
		}
	}

	result := &domain.SourceResult{SourceName: s.name, Findings: []domain.Finding{}}
	for _, key := range []string{strings.ToLower(strings.TrimSpace(target)), Wildcard} {
		entry, ok := s.file.Targets[key]
		if !ok {
			continue
		}
		if entry.Fail != "" {
			return nil, fmt.Errorf("%w: %s: %s", domain.ErrSourceUnavailable, s.name, entry.Fail)
		}
		result.RawCount += entry.RawCount
		for _, f := range entry.Findings {
			if len(f.Objectives) > 0 && !containsFold(f.Objectives, objective) {
				continue
			}
			if !matchesFocus(f, focusAreas) {
				continue
			}
			result.Findings = append(result.Findings, domain.Finding{
				Topic:        f.Topic,
				Description:  f.Description,
				Confidence:   f.Confidence,
				SourceName:   s.name,
				Implications: f.Implications,
			})
		}
	}
	return result, nil
}

func matchesFocus(f Entry, focusAreas []string) bool {
	if len(focusAreas) == 0 {
		return true
	}
	text := strings.ToLower(f.Topic + " " + f.Description)
	for _, area := range focusAreas {
		if area = strings.ToLower(strings.TrimSpace(area)); area != "" && strings.Contains(text, area) {
			return true
		}
	}
	return false
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
