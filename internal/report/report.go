// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report collects the decisions of a batch run, scores them
// against the gold labels and writes them out as text, YAML or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/qtype/internal/dataset"
	"github.com/pdiddy/qtype/pkg/types"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, yaml or json)", s)
}

// Row is the outcome for one question.
type Row struct {
	Index    int            `json:"index" yaml:"index"`
	Question string         `json:"question" yaml:"question"`
	Gold     string         `json:"gold,omitempty" yaml:"gold,omitempty"`
	Features types.Features `json:"features" yaml:"features"`
	Decision types.Decision `json:"decision" yaml:"decision"`
	Correct  bool           `json:"correct" yaml:"correct"`
}

// Summary holds the run totals.
type Summary struct {
	Total      int                  `json:"total" yaml:"total"`
	Decided    int                  `json:"decided" yaml:"decided"`
	NoDecision map[types.Reason]int `json:"no_decision,omitempty" yaml:"no_decision,omitempty"`

	// Labelled counts rows with a gold label; Correct counts decided
	// rows whose label equals it. CoarseCorrect compares only the part
	// before the colon.
	Labelled       int     `json:"labelled" yaml:"labelled"`
	Correct        int     `json:"correct" yaml:"correct"`
	CoarseCorrect  int     `json:"coarse_correct" yaml:"coarse_correct"`
	Accuracy       float64 `json:"accuracy" yaml:"accuracy"`
	CoarseAccuracy float64 `json:"coarse_accuracy" yaml:"coarse_accuracy"`
}

// Report is the persisted result of one classification run.
type Report struct {
	RunID     string                 `json:"run_id" yaml:"run_id"`
	CreatedAt time.Time              `json:"created_at" yaml:"created_at"`
	Config    types.ClassifierConfig `json:"config" yaml:"config"`
	Summary   Summary                `json:"summary" yaml:"summary"`
	Rows      []Row                  `json:"rows" yaml:"rows"`
}

// New builds a report from records and the decisions made for them,
// paired by index.
func New(cfg types.ClassifierConfig, records []dataset.Record, decisions []types.Decision) (*Report, error) {
	if len(records) != len(decisions) {
		return nil, fmt.Errorf("%d records but %d decisions", len(records), len(decisions))
	}

	r := &Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
		Rows:      make([]Row, len(records)),
	}
	s := &r.Summary
	s.Total = len(records)

	for i, rec := range records {
		d := decisions[i]
		row := Row{
			Index:    i,
			Question: rec.Question.Text,
			Gold:     rec.Question.Gold,
			Features: rec.Features,
			Decision: d,
		}

		if d.Decided() {
			s.Decided++
		} else {
			if s.NoDecision == nil {
				s.NoDecision = make(map[types.Reason]int)
			}
			s.NoDecision[d.Reason]++
		}

		if row.Gold != "" {
			s.Labelled++
			if d.Decided() {
				if d.Label == row.Gold {
					row.Correct = true
					s.Correct++
				}
				if coarseOf(d.Label) == rec.Question.Coarse() {
					s.CoarseCorrect++
				}
			}
		}
		r.Rows[i] = row
	}

	if s.Labelled > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Labelled)
		s.CoarseAccuracy = float64(s.CoarseCorrect) / float64(s.Labelled)
	}
	return r, nil
}

func coarseOf(label string) string {
	coarse, _, _ := strings.Cut(label, ":")
	return coarse
}

// SummaryLine renders the totals on one line.
func (r *Report) SummaryLine() string {
	s := r.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "%d questions, %d decided", s.Total, s.Decided)

	reasons := make([]string, 0, len(s.NoDecision))
	for reason := range s.NoDecision {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(&b, ", %d %s", s.NoDecision[types.Reason(reason)], reason)
	}

	if s.Labelled > 0 {
		fmt.Fprintf(&b, "; accuracy %.1f%% (%d/%d), coarse %.1f%%",
			100*s.Accuracy, s.Correct, s.Labelled, 100*s.CoarseAccuracy)
	}
	return b.String()
}

// Marshal encodes the report in format.
func (r *Report) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		var b strings.Builder
		if err := r.WriteText(&b); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	}
}

// WriteText prints one line per question followed by the summary.
func (r *Report) WriteText(w io.Writer) error {
	for _, row := range r.Rows {
		label := row.Decision.Label
		if !row.Decision.Decided() {
			label = "-(" + string(row.Decision.Reason) + ")"
		}
		mark := " "
		if row.Correct {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%4d %s %-16s %-16s %s\n", row.Index+1, mark, label, row.Gold, row.Question); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "run %s: %s\n", r.RunID, r.SummaryLine())
	return err
}

// Write encodes the report to w.
func (r *Report) Write(w io.Writer, format Format) error {
	data, err := r.Marshal(format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteYAML writes the report to path as YAML.
func (r *Report) WriteYAML(path string) error {
	return r.WriteFile(path, FormatYAML)
}

// WriteJSON writes the report to path as JSON.
func (r *Report) WriteJSON(path string) error {
	return r.WriteFile(path, FormatJSON)
}

// WriteFile writes the report to path in format.
func (r *Report) WriteFile(path string, format Format) error {
	data, err := r.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// Read loads a YAML or JSON report written by WriteYAML or WriteJSON.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}
