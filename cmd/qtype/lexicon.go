// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/qtype/internal/lexicon"
	"github.com/pdiddy/qtype/pkg/types"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Manage the lexicon (import, lookup, export, stats)",
	Long: `Lexicon manages the SQLite lexicon the classifier reads: word senses
with glosses, hypernym links and inflection exceptions. A lexicon is
imported from a YAML seed file and can be exported back to one.`,
}

// --- import subcommand ---

var lexiconImportCmd = &cobra.Command{
	Use:   "import <seed.yaml>",
	Short: "Import a YAML lexicon seed into the store",
	Long: `Import validates a YAML lexicon seed and replaces the stored lexicon
with it in one transaction. A seed file unchanged since the last import
is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runLexiconImport,
}

func runLexiconImport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Import(context.Background(), args[0], os.Stdout)
	return err
}

// --- lookup subcommand ---

var lexiconLookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Show the stored senses of a word",
	Long: `Lookup prints the senses stored for a word with their glosses and
direct hypernyms. With --resolve the word is first reduced to its base
forms the way the classifier does, so inflected forms such as "cities"
or "is" are found too.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLexiconLookup,
}

func runLexiconLookup(cmd *cobra.Command, args []string) error {
	posTag, _ := cmd.Flags().GetString("pos")
	resolve, _ := cmd.Flags().GetBool("resolve")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	word := strings.Join(args, " ")
	pos := types.POSAny
	if posTag != "" {
		pos = types.ParsePOSTag(posTag)
		if p := types.POS(strings.ToLower(posTag)); p.Valid() {
			pos = p
		}
	}

	if resolve {
		return lookupResolved(word, pos, jsonOutput)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Lookup(context.Background(), word, pos)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	if len(results) == 0 {
		fmt.Printf("No senses stored for %q.\n", word)
		return nil
	}
	for _, r := range results {
		fmt.Printf("%-20s %-9s %s\n", r.ID, r.POS, r.Gloss)
		if len(r.Hypernyms) > 0 {
			fmt.Printf("%-20s is-a      %s\n", "", strings.Join(r.Hypernyms, ", "))
		}
	}
	return nil
}

func lookupResolved(word string, pos types.POS, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lex, err := openLexicon(context.Background(), cfg.Lexicon)
	if err != nil {
		return err
	}

	senses := lex.Senses(word, pos)
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(senses)
	}
	if len(senses) == 0 {
		fmt.Printf("No senses found for %q.\n", word)
		return nil
	}
	for _, s := range senses {
		fmt.Printf("%-20s %-9s %s\n", s.ID, s.POS, s.Gloss)
	}
	return nil
}

// --- export subcommand ---

var lexiconExportCmd = &cobra.Command{
	Use:   "export <seed.yaml>",
	Short: "Export the stored lexicon to a YAML seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ExportSeed(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", args[0])
		return nil
	},
}

// --- stats subcommand ---

var lexiconStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print lexicon row counts and the last import",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		st, err := store.Stats(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Synsets:    %d\n", st.Synsets)
		fmt.Printf("Words:      %d\n", st.Words)
		fmt.Printf("Hypernyms:  %d\n", st.Hypernyms)
		fmt.Printf("Exceptions: %d\n", st.Exceptions)
		if st.Source != "" {
			fmt.Printf("Imported:   %s from %s\n", st.ImportedAt, st.Source)
		}
		return nil
	},
}

// --- shared helpers ---

func openStore() (*lexicon.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return lexicon.NewStore(cfg.Lexicon)
}

func init() {
	lexiconLookupCmd.Flags().String("pos", "", "restrict to a part of speech (n, v, a, r or a tag such as NN)")
	lexiconLookupCmd.Flags().Bool("resolve", false, "reduce inflected forms before looking up")
	lexiconLookupCmd.Flags().Bool("json", false, "output results as JSON")

	lexiconCmd.AddCommand(lexiconImportCmd)
	lexiconCmd.AddCommand(lexiconLookupCmd)
	lexiconCmd.AddCommand(lexiconExportCmd)
	lexiconCmd.AddCommand(lexiconStatsCmd)

	rootCmd.AddCommand(lexiconCmd)
}
