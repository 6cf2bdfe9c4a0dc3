// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/qtype/internal/classify"
	"github.com/pdiddy/qtype/internal/dataset"
	"github.com/pdiddy/qtype/internal/lexicon"
	"github.com/pdiddy/qtype/internal/report"
	"github.com/pdiddy/qtype/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a file of questions",
	Long: `Classify reads a TREC-style question file, the matching head word
feature file and a category table, classifies every question against the
fine-grained categories and reports the decisions with accuracy against
the gold labels.

Questions and features are paired by line. The feature file holds
whWord<TAB>headWord<TAB>posTag per question; a head word of "null" or one
containing a colon is skipped.`,
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	bindClassifierFlags(cmd)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	questionsPath, _ := cmd.Flags().GetString("questions")
	featuresPath, _ := cmd.Flags().GetString("features")
	formatName, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	records, err := dataset.Load(questionsPath, featuresPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := newClassifier(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	items := make([]classify.Item, len(records))
	for i, r := range records {
		items[i] = classify.Item{Question: r.Question.Text, Features: r.Features}
	}

	fmt.Fprintf(os.Stderr, "Classifying %d questions against %d categories with %d workers\n",
		len(items), len(c.Categories()), c.Config().Workers)
	decisions := classify.ClassifyBatch(ctx, c, items, c.Config().Workers)

	rep, err := report.New(c.Config(), records, decisions)
	if err != nil {
		return err
	}

	if output == "" {
		return rep.Write(os.Stdout, format)
	}
	if err := rep.WriteFile(output, format); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n%s\n", output, rep.SummaryLine())
	return nil
}

// --- shared helpers ---

// newClassifier loads the lexicon from the store and the category table
// named by --categories, and builds a classifier over the fine-grained
// categories, or the coarse ones with --coarse.
func newClassifier(ctx context.Context, cmd *cobra.Command, cfg types.Config) (*classify.Classifier, error) {
	categoriesPath, _ := cmd.Flags().GetString("categories")
	coarse, _ := cmd.Flags().GetBool("coarse")

	table, err := dataset.LoadCategories(categoriesPath)
	if err != nil {
		return nil, err
	}
	categories, group := table.Fine, "fine-grained"
	if coarse {
		categories, group = table.Coarse, "coarse"
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%s has no %s categories", categoriesPath, group)
	}

	lex, err := openLexicon(ctx, cfg.Lexicon)
	if err != nil {
		return nil, err
	}
	return classify.New(lex, categories, classify.WithConfig(cfg.Classifier))
}

func openLexicon(ctx context.Context, cfg types.LexiconConfig) (*lexicon.Lexicon, error) {
	store, err := lexicon.NewStore(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx)
}

// addClassifierFlags registers the flags shared by classify and explain.
func addClassifierFlags(cmd *cobra.Command) {
	cmd.Flags().String("categories", "", "category table (TSV label<TAB>keywords, or YAML)")
	cmd.Flags().Bool("coarse", false, "match against the coarse categories instead of the fine-grained ones")
	cmd.Flags().Int("depth", types.DefaultDepth, "hypernym steps taken before matching")
	cmd.Flags().String("strategy", string(types.StrategyFirstPath), "projection strategy: first-path or frontier")
	cmd.Flags().Bool("exclude-target", false, "leave the head word out of its own disambiguation context")
	cmd.MarkFlagRequired("categories")
}

// bindClassifierFlags binds the classifier flags of the running command
// to their config keys. Binding happens at run time because classify and
// explain define the same flags.
func bindClassifierFlags(cmd *cobra.Command) {
	viper.BindPFlag("classifier.depth", cmd.Flags().Lookup("depth"))
	viper.BindPFlag("classifier.strategy", cmd.Flags().Lookup("strategy"))
	viper.BindPFlag("classifier.exclude_target", cmd.Flags().Lookup("exclude-target"))
	if f := cmd.Flags().Lookup("workers"); f != nil {
		viper.BindPFlag("classifier.workers", f)
	}
}

func init() {
	addClassifierFlags(classifyCmd)
	classifyCmd.Flags().String("questions", "", "question file (LABEL:fine question text per line)")
	classifyCmd.Flags().String("features", "", "feature file (whWord<TAB>headWord<TAB>posTag per line)")
	classifyCmd.Flags().Int("workers", 0, "parallel workers (0 = number of CPUs)")
	classifyCmd.Flags().String("format", "text", "output format: text, yaml or json")
	classifyCmd.Flags().String("output", "", "write the report to this file instead of stdout")
	classifyCmd.MarkFlagRequired("questions")
	classifyCmd.MarkFlagRequired("features")

	rootCmd.AddCommand(classifyCmd)
}
