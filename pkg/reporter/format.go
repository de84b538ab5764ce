package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
)

// Format names a reporter. It is the configuration's output format.
type Format = config.OutputFormat

const (
	FormatText    = config.FormatText
	FormatTable   = config.FormatTable
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatDiff    = config.FormatDiff
	FormatSummary = config.FormatSummary
)

// ParseFormat maps name to a Format. The empty name means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	f := Format(strings.ToLower(name))
	if !f.IsValid() {
		valid := make([]string, 0, len(config.Formats()))
		for _, known := range config.Formats() {
			valid = append(valid, string(known))
		}
		return "", fmt.Errorf("unknown format %q (valid: %s)", name, strings.Join(valid, ", "))
	}
	return f, nil
}
