// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/qtype/internal/classify"
	"github.com/pdiddy/qtype/internal/dataset"
	"github.com/pdiddy/qtype/pkg/types"
)

var explainCmd = &cobra.Command{
	Use:   "explain [question]",
	Short: "Classify one question and show every stage",
	Long: `Explain runs the classifier on a single question and prints the
candidate senses of the head word with their overlap scores, the hypernym
chain, the generalized sense, the score of every category and the tie-break
when one was needed.`,
	Example: `  qtype explain --categories data/categories.txt --head capital --pos NN "what is the capital of france"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	bindClassifierFlags(cmd)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	head, _ := cmd.Flags().GetString("head")
	posTag, _ := cmd.Flags().GetString("pos")
	wh, _ := cmd.Flags().GetString("wh")
	format, _ := cmd.Flags().GetString("format")

	c, err := newClassifier(context.Background(), cmd, cfg)
	if err != nil {
		return err
	}

	question := dataset.CleanText(strings.Join(args, " "))
	tr := c.Explain(question, types.Features{WhWord: wh, HeadWord: head, POSTag: posTag})

	switch format {
	case "text", "":
		return printTrace(os.Stdout, c, tr)
	case "yaml":
		data, err := yaml.Marshal(tr)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tr)
	default:
		return fmt.Errorf("unsupported format %q: use text, yaml or json", format)
	}
}

func printTrace(w io.Writer, c *classify.Classifier, tr classify.Trace) error {
	cfg := c.Config()
	fmt.Fprintf(w, "Question:     %s\n", tr.Question)
	fmt.Fprintf(w, "Head word:    %s (tag %q, pos %s)\n", tr.Features.HeadWord, tr.Features.POSTag, tr.POS)

	res := tr.Disambiguation
	if res.Determined() {
		scope := "restricted"
		if !res.Restricted {
			scope = "unrestricted fallback"
		}
		fmt.Fprintf(w, "\nCandidate senses (%s):\n", scope)
		for i, s := range res.Candidates {
			mark := " "
			if s == res.Sense {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %-20s %5d  %s\n", mark, s.ID, res.Scores[i], truncate(s.Gloss, 60))
		}
	}

	if tr.Generalized != nil {
		fmt.Fprintf(w, "\nProjection (%s, depth %d):\n", cfg.Strategy, cfg.Depth)
		if len(tr.Chain) > 0 {
			ids := make([]string, len(tr.Chain))
			for i, s := range tr.Chain {
				ids[i] = s.ID
			}
			fmt.Fprintf(w, "  %s > %s\n", res.Sense.ID, strings.Join(ids, " > "))
		}
		fmt.Fprintf(w, "  generalized: %s\n", tr.Generalized.ID)
	}

	if tr.Match != nil {
		fmt.Fprintf(w, "\nCategory scores:\n")
		for _, s := range tr.Match.Scored {
			mark := " "
			if s.Score == tr.Match.Score {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %-20s %.4f\n", mark, s.Label, s.Score)
		}
	}

	if tr.TieBreak != nil {
		fmt.Fprintf(w, "\nTie-break: %s (average %.4f over %d keywords)\n",
			tr.TieBreak.Category.Label, tr.TieBreak.Score, tr.TieBreak.WordsUsed)
	}

	d := tr.Decision
	if d.Decided() {
		fmt.Fprintf(w, "\nDecision: %s\n", d.Label)
	} else {
		fmt.Fprintf(w, "\nNo decision: %s\n", d.Reason)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	addClassifierFlags(explainCmd)
	explainCmd.Flags().String("head", "", "head word of the question")
	explainCmd.Flags().String("pos", "", "part-of-speech tag of the head word (e.g. NN, VBZ, JJ)")
	explainCmd.Flags().String("wh", "", "wh-word of the question")
	explainCmd.Flags().String("format", "text", "output format: text, yaml or json")
	explainCmd.MarkFlagRequired("head")

	rootCmd.AddCommand(explainCmd)
}
