// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/qtype/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCategories(t *testing.T) {
	data := "LOC\tlocation place\n" +
		"\n" +
		" LOC:city \tcity  town\r\n" +
		"NUM:count\tnumber quantity\n" +
		"NUM\tnumber\n"

	table, err := ParseCategories(data)
	require.NoError(t, err)
	assert.Equal(t, []types.Category{
		{Label: "LOC", Keywords: []string{"location", "place"}},
		{Label: "NUM", Keywords: []string{"number"}},
	}, table.Coarse)
	assert.Equal(t, []types.Category{
		{Label: "LOC:city", Keywords: []string{"city", "town"}},
		{Label: "NUM:count", Keywords: []string{"number", "quantity"}},
	}, table.Fine)
}

func TestParseCategoriesErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		errMsg string
	}{
		{"no keywords", "LOC:city\t\n", "line 1: category LOC:city has no keywords"},
		{"no tab", "LOC:city\n", "has no keywords"},
		{"empty label", "\tcity\n", "line 1: empty label"},
		{"duplicate", "LOC:city\tcity\nHUM:ind\tperson\nLOC:city\ttown\n", "line 3: category LOC:city already defined on line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCategories(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadCategoriesYAML(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		path := writeFile(t, "categories.yaml", `
coarse:
  - label: LOC
    keywords: [location]
fine:
  - label: LOC:city
    keywords: [city, town]
`)
		table, err := LoadCategories(path)
		require.NoError(t, err)
		assert.Len(t, table.Coarse, 1)
		require.Len(t, table.Fine, 1)
		assert.Equal(t, []string{"city", "town"}, table.Fine[0].Keywords)
	})

	t.Run("list", func(t *testing.T) {
		path := writeFile(t, "categories.yml", `
- label: LOC
  keywords: [location]
- label: HUM:ind
  keywords: [person]
`)
		table, err := LoadCategories(path)
		require.NoError(t, err)
		assert.Equal(t, "LOC", table.Coarse[0].Label)
		assert.Equal(t, "HUM:ind", table.Fine[0].Label)
	})

	t.Run("invalid", func(t *testing.T) {
		path := writeFile(t, "categories.yaml", "fine:\n  - label: LOC:city\n")
		_, err := LoadCategories(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no keywords")
	})
}

func TestLoadCategoriesMissingFile(t *testing.T) {
	_, err := LoadCategories(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading categories")
}

func TestParseFeatures(t *testing.T) {
	got := ParseFeatures("what\tcapital\tNN\nwho\tnull\n\nhow\n")
	assert.Equal(t, []types.Features{
		{WhWord: "what", HeadWord: "capital", POSTag: "NN"},
		{WhWord: "who", HeadWord: "null"},
		{WhWord: "how"},
	}, got)
}

func TestParseQuestions(t *testing.T) {
	data := "LOC:city What is the capital of France ?\n" +
		"DESC:def What does ｃａｆé mean ?\r\n" +
		"\n" +
		"no label here\n" +
		"HUM:ind Who wrote\u00a0\"Hamlet\" ?\x07\n"

	got := ParseQuestions(data)
	require.Len(t, got, 4)

	assert.Equal(t, Question{Gold: "LOC:city", Text: "What is the capital of France ?"}, got[0])
	assert.Equal(t, "LOC", got[0].Coarse())

	// Full-width letters fold to ASCII; the accented letter does not.
	assert.Equal(t, "What does caf mean ?", got[1].Text)

	assert.Empty(t, got[2].Gold)
	assert.Equal(t, "no label here", got[2].Text)

	// NFKC turns the no-break space into a plain space.
	assert.Equal(t, `Who wrote "Hamlet" ?`, got[3].Text)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"  padded\ttext  ", "padded text"},
		{"naïve café", "na ve caf"},
		{"ﬁle", "file"},
		{"bell\x07", "bell"},
		{"日本", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.in), tt.in)
	}
}

func TestLoadPairsQuestionsAndFeatures(t *testing.T) {
	questions := writeFile(t, "questions.label", "LOC:city What is the capital of France ?\nHUM:ind Who wrote Hamlet ?\n")
	features := writeFile(t, "features.txt", "What\tcapital\tNN\nWho\tnull\tNN\n")

	records, err := Load(questions, features)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "LOC:city", records[0].Question.Gold)
	assert.Equal(t, "capital", records[0].Features.HeadWord)
	assert.Equal(t, "null", records[1].Features.HeadWord)
}

func TestLoadCountMismatch(t *testing.T) {
	questions := writeFile(t, "questions.label", "LOC:city What is the capital of France ?\n")
	features := writeFile(t, "features.txt", "What\tcapital\tNN\nWho\tnull\tNN\n")

	_, err := Load(questions, features)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 questions but 2 feature lines")
}
