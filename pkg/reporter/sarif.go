package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIF levels.
const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one fixer.
type SARIFRule struct {
	ID               string               `json:"id"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult is one fixer that changed, or would change, one file.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected lines.
type SARIFRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	if result == nil {
		return 0, nil
	}
	return result.Stats.FilesChanged, nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           "gophpfix",
			Version:        r.opts.ToolVersion,
			InformationURI: "https://github.com/yaklabco/gophpfix",
			Rules:          make([]SARIFRule, 0),
		}},
		Results: make([]SARIFResult, 0),
	}
	output := &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
	if result == nil {
		return output
	}

	level := sarifLevelNote
	if r.opts.DryRun {
		level = sarifLevelWarning
	}

	var ruleIDs []string
	addRule := func(id string) {
		if !slices.Contains(ruleIDs, id) {
			ruleIDs = append(ruleIDs, id)
		}
	}

	for _, file := range result.Files {
		uri := r.opts.displayPath(file.Path)

		switch status := pretty.OutcomeStatus(file); status {
		case pretty.StatusError:
			ruleID := "internal-error"
			if fe, ok := file.FixerError(); ok {
				ruleID = fe.Fixer
			}
			addRule(ruleID)
			run.Results = append(run.Results, newSARIFResult(ruleID, sarifLevelError, file.Error.Error(), uri, SARIFRegion{StartLine: 1}))

		case pretty.StatusFixed, pretty.StatusPending, pretty.StatusUnstable:
			region := changedRegion(file)
			for _, name := range file.Result.Applied {
				addRule(name)
				msg := fmt.Sprintf("%s rewrote this file", name)
				if r.opts.DryRun {
					msg = fmt.Sprintf("%s would rewrite this file", name)
				}
				run.Results = append(run.Results, newSARIFResult(name, level, msg, uri, region))
			}
			if status == pretty.StatusUnstable {
				run.Results = append(run.Results, newSARIFResult("unstable", sarifLevelWarning,
					fmt.Sprintf("fixing did not converge after %d passes", file.Result.Passes), uri, region))
				addRule("unstable")
			}
		}
	}

	for _, id := range ruleIDs {
		desc := r.opts.FixerDescriptions[id]
		switch {
		case desc != "":
		case id == "unstable":
			desc = "The fixers kept changing the file until the pass limit"
		case id == "internal-error":
			desc = "The file could not be processed"
		default:
			desc = id
		}
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
			ID:               id,
			ShortDescription: SARIFMultiformatText{Text: desc},
			DefaultConfig:    &SARIFRuleConfig{Level: level},
		})
	}

	output.Runs[0] = run
	return output
}

func newSARIFResult(ruleID, level, msg, uri string, region SARIFRegion) SARIFResult {
	return SARIFResult{
		RuleID:  ruleID,
		Level:   level,
		Message: SARIFMessage{Text: msg},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: uri},
				Region:           region,
			},
		}},
	}
}

// changedRegion spans the original lines touched by the file's diff, or
// line 1 when no diff was computed.
func changedRegion(file runner.FileOutcome) SARIFRegion {
	diff := file.Result.Diff
	if diff == nil || len(diff.Hunks) == 0 {
		return SARIFRegion{StartLine: 1}
	}
	first := diff.Hunks[0]
	last := diff.Hunks[len(diff.Hunks)-1]
	start := max(first.OriginalStart, 1)
	end := max(last.OriginalStart+last.OriginalCount-1, start)
	return SARIFRegion{StartLine: start, EndLine: end}
}
