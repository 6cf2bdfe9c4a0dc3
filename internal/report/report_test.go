// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/qtype/internal/dataset"
	"github.com/pdiddy/qtype/pkg/types"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	records := []dataset.Record{
		{Question: dataset.Question{Gold: "LOC:city", Text: "What is the capital of France ?"}, Features: types.Features{HeadWord: "capital", POSTag: "NN"}},
		{Question: dataset.Question{Gold: "LOC:country", Text: "Which country has the most people ?"}, Features: types.Features{HeadWord: "country", POSTag: "NN"}},
		{Question: dataset.Question{Gold: "HUM:ind", Text: "Who wrote Hamlet ?"}, Features: types.Features{HeadWord: "null"}},
		{Question: dataset.Question{Gold: "DESC:def", Text: "What is a xyzzy ?"}, Features: types.Features{HeadWord: "xyzzy", POSTag: "NN"}},
		{Question: dataset.Question{Text: "What is the biggest city ?"}, Features: types.Features{HeadWord: "city", POSTag: "NN"}},
	}
	decisions := []types.Decision{
		{Outcome: types.OutcomeDecided, Label: "LOC:city", Sense: "capital.n.03", Generalized: "region.n.03", Score: 0.5, Tied: []string{"LOC:city"}},
		{Outcome: types.OutcomeDecided, Label: "LOC:city", Score: 0.25, Tied: []string{"LOC:city", "LOC:other"}, TieBreakScore: 0.2, WordsUsed: 2},
		types.NoDecision(types.ReasonNoHeadWord),
		types.NoDecision(types.ReasonUndetermined),
		{Outcome: types.OutcomeDecided, Label: "LOC:city", Score: 1},
	}
	r, err := New(types.DefaultConfig().Classifier, records, decisions)
	require.NoError(t, err)
	return r
}

func TestNewSummary(t *testing.T) {
	r := sampleReport(t)

	_, err := uuid.Parse(r.RunID)
	assert.NoError(t, err)
	assert.False(t, r.CreatedAt.IsZero())

	s := r.Summary
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Decided)
	assert.Equal(t, map[types.Reason]int{
		types.ReasonNoHeadWord:   1,
		types.ReasonUndetermined: 1,
	}, s.NoDecision)
	assert.Equal(t, 4, s.Labelled)
	assert.Equal(t, 1, s.Correct)
	assert.Equal(t, 2, s.CoarseCorrect)
	assert.InDelta(t, 0.25, s.Accuracy, 1e-9)
	assert.InDelta(t, 0.5, s.CoarseAccuracy, 1e-9)

	assert.True(t, r.Rows[0].Correct)
	assert.False(t, r.Rows[1].Correct)
	assert.False(t, r.Rows[4].Correct, "unlabelled rows are never correct")
}

func TestNewLengthMismatch(t *testing.T) {
	_, err := New(types.ClassifierConfig{}, make([]dataset.Record, 2), make([]types.Decision, 1))
	require.Error(t, err)
}

func TestNewWithoutGoldLabels(t *testing.T) {
	records := []dataset.Record{{Question: dataset.Question{Text: "what"}}}
	r, err := New(types.ClassifierConfig{}, records, []types.Decision{types.NoDecision(types.ReasonNoHeadWord)})
	require.NoError(t, err)
	assert.Zero(t, r.Summary.Accuracy)
	assert.NotContains(t, r.SummaryLine(), "accuracy")
}

func TestSummaryLine(t *testing.T) {
	r := sampleReport(t)
	assert.Equal(t,
		"5 questions, 3 decided, 1 no_head_word, 1 undetermined; accuracy 25.0% (1/4), coarse 50.0%",
		r.SummaryLine())
}

func TestWriteText(t *testing.T) {
	r := sampleReport(t)
	var b strings.Builder
	require.NoError(t, r.WriteText(&b))

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "*")
	assert.Contains(t, lines[0], "What is the capital of France ?")
	assert.Contains(t, lines[2], "-(no_head_word)")
	assert.True(t, strings.HasPrefix(lines[5], "run "+r.RunID))
}

func TestWriteAndReadFiles(t *testing.T) {
	r := sampleReport(t)
	dir := t.TempDir()

	for _, name := range []string{"report.yaml", "report.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if strings.HasSuffix(name, ".json") {
				require.NoError(t, r.WriteJSON(path))
			} else {
				require.NoError(t, r.WriteYAML(path))
			}

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, r.RunID, got.RunID)
			assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
			assert.Equal(t, r.Summary, got.Summary)
			assert.Equal(t, r.Config, got.Config)
			require.Len(t, got.Rows, len(r.Rows))
			assert.Equal(t, r.Rows[1].Decision.Tied, got.Rows[1].Decision.Tied)
		})
	}
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"text": FormatText, "YAML": FormatYAML, "yml": FormatYAML, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
