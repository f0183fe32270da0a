// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notescan/pkg/types"
)

// ScanFile is the on-disk representation of one scan: the keyword, the
// filter settings, the raw payloads the search tool returned, and the
// processed results. A saved scan can be re-processed offline without
// re-querying the search tool.
type ScanFile struct {
	Keyword  string             `yaml:"keyword"`
	Filter   FilterParams       `yaml:"filter"`
	Payloads []string           `yaml:"payloads,omitempty"`
	Results  []types.NoteExport `yaml:"results"`
	Summary  ScanSummary        `yaml:"summary"`
}

// FilterParams stores the filter settings in a serializable form.
type FilterParams struct {
	Policy     string `yaml:"policy"`
	Days       int    `yaml:"days"`
	MaxResults int    `yaml:"max_results"`
}

// ScanSummary stores batch statistics and a timestamp.
type ScanSummary struct {
	Candidates  int       `yaml:"candidates"`
	Kept        int       `yaml:"kept"`
	HighQuality int       `yaml:"high_quality"`
	TargetDate  string    `yaml:"target_date,omitempty"`
	Timestamp   time.Time `yaml:"timestamp"`
}

const dayFmt = "2006-01-02"

// PolicyName renders a policy for serialization and display.
func PolicyName(p Policy) string {
	switch p {
	case PolicyToday:
		return "today"
	case PolicyLatest:
		return "latest"
	default:
		return "window"
	}
}

// ParsePolicy is the inverse of PolicyName.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "today":
		return PolicyToday, nil
	case "latest":
		return PolicyLatest, nil
	case "window", "":
		return PolicyWindow, nil
	}
	return PolicyWindow, fmt.Errorf("unknown filter policy %q", name)
}

// WriteScanFile saves a scan to a YAML file.
func WriteScanFile(path, keyword string, opts Options, payloads []string, res Result) error {
	sf := ScanFile{
		Keyword: keyword,
		Filter: FilterParams{
			Policy:     PolicyName(opts.Policy),
			Days:       opts.Days,
			MaxResults: opts.MaxResults,
		},
		Payloads: payloads,
		Summary: ScanSummary{
			Candidates:  res.Candidates,
			Kept:        res.Kept,
			HighQuality: res.HighQuality,
			Timestamp:   time.Now(),
		},
	}
	for i := range res.Notes {
		sf.Results = append(sf.Results, res.Notes[i].Export())
	}
	if !res.TargetDate.IsZero() {
		sf.Summary.TargetDate = res.TargetDate.Format(dayFmt)
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling scan file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadScanFile loads a previously saved scan file from disk.
func ReadScanFile(path string) (*ScanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scan file: %w", err)
	}
	var sf ScanFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing scan file: %w", err)
	}
	return &sf, nil
}

// PayloadValues parses the stored raw payload chunks. Chunks that are not
// valid JSON are skipped, matching how live tool output is handled.
func (sf *ScanFile) PayloadValues() []Value {
	return ParsePayloads(sf.Payloads)
}

// ParsePayloads decodes text chunks into payload Values, ignoring chunks
// that do not parse as JSON.
func ParsePayloads(chunks []string) []Value {
	var values []Value
	for _, chunk := range chunks {
		v, err := Parse([]byte(chunk))
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// ToOptions converts stored FilterParams back into Options.
func (p FilterParams) ToOptions() (Options, error) {
	policy, err := ParsePolicy(p.Policy)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Days:       p.Days,
		MaxResults: p.MaxResults,
		Policy:     policy,
	}, nil
}
