// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the inputs of a classification run: the
// category table, the labelled questions and the pre-computed head word
// features.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/qtype/pkg/types"
)

// Question is one line of a TREC-style question file.
type Question struct {
	// Gold is the reference label, e.g. "LOC:city". Empty when the line
	// carries no label.
	Gold string `json:"gold,omitempty" yaml:"gold,omitempty"`
	Text string `json:"text" yaml:"text"`
}

// Coarse returns the part of the gold label before the colon.
func (q Question) Coarse() string {
	coarse, _, _ := strings.Cut(q.Gold, ":")
	return coarse
}

// Record pairs a question with its features.
type Record struct {
	Question Question       `json:"question" yaml:"question"`
	Features types.Features `json:"features" yaml:"features"`
}

// goldLabel matches the first COARSE:fine token of a question line.
var goldLabel = regexp.MustCompile(`\w+:\w+`)

// LoadCategories reads a category table. Files ending in .yaml or .yml
// hold a types.CategoryTable or a plain list of categories; anything
// else is read as tab-separated lines of a label and its space-separated
// keywords. Coarse labels go to the coarse group, all others to the fine
// group.
func LoadCategories(path string) (types.CategoryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CategoryTable{}, fmt.Errorf("reading categories: %w", err)
	}

	var table types.CategoryTable
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		table, err = parseCategoriesYAML(data)
	default:
		table, err = ParseCategories(string(data))
	}
	if err != nil {
		return table, fmt.Errorf("parsing categories %s: %w", path, err)
	}
	return table, nil
}

// ParseCategories parses tab-separated category lines. Blank lines are
// skipped; a line without keywords or a repeated label is an error.
func ParseCategories(data string) (types.CategoryTable, error) {
	var table types.CategoryTable
	seen := make(map[string]int)
	for i, line := range lines(data) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		label, rest, _ := strings.Cut(line, "\t")
		label = strings.TrimSpace(label)
		keywords := strings.Fields(rest)
		switch {
		case label == "":
			return table, fmt.Errorf("line %d: empty label", i+1)
		case len(keywords) == 0:
			return table, fmt.Errorf("line %d: category %s has no keywords", i+1, label)
		}
		if prev, dup := seen[label]; dup {
			return table, fmt.Errorf("line %d: category %s already defined on line %d", i+1, label, prev)
		}
		seen[label] = i + 1
		table.Add(types.Category{Label: label, Keywords: keywords})
	}
	return table, nil
}

func parseCategoriesYAML(data []byte) (types.CategoryTable, error) {
	var table types.CategoryTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		var list []types.Category
		if listErr := yaml.Unmarshal(data, &list); listErr != nil {
			return table, err
		}
		table = types.CategoryTable{}
		for _, c := range list {
			table.Add(c)
		}
	}
	return table, table.Validate()
}

// LoadFeatures reads tab-separated feature lines of the form
// whWord<TAB>headWord<TAB>posTag. Missing trailing fields are empty and
// blank lines are skipped.
func LoadFeatures(path string) ([]types.Features, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading features: %w", err)
	}
	return ParseFeatures(string(data)), nil
}

// ParseFeatures parses feature lines.
func ParseFeatures(data string) []types.Features {
	var out []types.Features
	for _, line := range lines(data) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		for len(fields) < 3 {
			fields = append(fields, "")
		}
		out = append(out, types.Features{
			WhWord:   strings.TrimSpace(fields[0]),
			HeadWord: strings.TrimSpace(fields[1]),
			POSTag:   strings.TrimSpace(fields[2]),
		})
	}
	return out
}

// LoadQuestions reads a TREC-style question file where each line starts
// with its gold label, e.g. "LOC:city What is the capital of France ?".
func LoadQuestions(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading questions: %w", err)
	}
	return ParseQuestions(string(data)), nil
}

// ParseQuestions parses question lines. The gold label is split off at
// the first COARSE:fine token and the remaining text is cleaned with
// CleanText. Blank lines are skipped.
func ParseQuestions(data string) []Question {
	var out []Question
	for _, line := range lines(data) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var q Question
		text := line
		if loc := goldLabel.FindStringIndex(line); loc != nil {
			q.Gold = line[loc[0]:loc[1]]
			text = line[loc[1]:]
		}
		q.Text = CleanText(text)
		out = append(out, q)
	}
	return out
}

// CleanText applies NFKC normalization, replaces every remaining
// non-ASCII rune with a space, drops control characters and collapses
// runs of whitespace.
func CleanText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r > unicode.MaxASCII:
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Load reads questions and features and pairs them by line. The two
// files must have the same number of non-blank lines.
func Load(questionsPath, featuresPath string) ([]Record, error) {
	questions, err := LoadQuestions(questionsPath)
	if err != nil {
		return nil, err
	}
	features, err := LoadFeatures(featuresPath)
	if err != nil {
		return nil, err
	}
	return Pair(questions, features)
}

// Pair zips questions with features.
func Pair(questions []Question, features []types.Features) ([]Record, error) {
	if len(questions) != len(features) {
		return nil, fmt.Errorf("%d questions but %d feature lines", len(questions), len(features))
	}
	out := make([]Record, len(questions))
	for i := range questions {
		out[i] = Record{Question: questions[i], Features: features[i]}
	}
	return out, nil
}

func lines(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	return strings.Split(data, "\n")
}
