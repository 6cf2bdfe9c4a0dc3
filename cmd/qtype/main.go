// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the qtype CLI, which classifies
// questions by the lexical sense of their head word and manages the
// lexicon the classifier reads.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/qtype/internal/envfile"
	"github.com/pdiddy/qtype/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the qtype CLI.
var rootCmd = &cobra.Command{
	Use:   "qtype",
	Short: "Classify questions by the lexical sense of their head word",
	Long: `qtype assigns a category such as LOC:city or NUM:count to a question.
The head word's sense is disambiguated against the question, generalized
along its hypernym chain and compared with the keywords of each category.

Import a lexicon once with 'qtype lexicon import', then run 'qtype classify'
on a question file and its pre-computed head word features, or
'qtype explain' to see every stage for a single question.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("env-file")
		keys, err := envfile.Load(path)
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded environment from %s: %v\n", path, keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./qtype.yaml or ~/.config/qtype/qtype.yaml)")
	rootCmd.PersistentFlags().String("lexicon-dir", "lexicon", "directory holding lexicon.db")
	rootCmd.PersistentFlags().String("env-file", envfile.DefaultFile, "dotenv file with QTYPE_* settings")

	viper.BindPFlag("lexicon.dir", rootCmd.PersistentFlags().Lookup("lexicon-dir"))

	viper.SetDefault("lexicon.cache_size", types.DefaultCacheSize)
	viper.SetDefault("classifier.depth", types.DefaultDepth)
	viper.SetDefault("classifier.strategy", string(types.StrategyFirstPath))
	viper.SetDefault("classifier.exclude_target", false)
	viper.SetDefault("classifier.workers", 0)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("qtype")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "qtype"))
		}
	}

	viper.SetEnvPrefix("QTYPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration from flags, the
// environment, the config file and the defaults, in that order.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		Lexicon: types.LexiconConfig{
			Dir:       viper.GetString("lexicon.dir"),
			CacheSize: viper.GetInt("lexicon.cache_size"),
		},
		Classifier: types.ClassifierConfig{
			Depth:         viper.GetInt("classifier.depth"),
			Strategy:      types.ProjectionStrategy(viper.GetString("classifier.strategy")),
			ExcludeTarget: viper.GetBool("classifier.exclude_target"),
			Workers:       viper.GetInt("classifier.workers"),
		},
	}
	cfg.ApplyDefaults()
	if !cfg.Classifier.Strategy.Valid() {
		return cfg, fmt.Errorf("unknown projection strategy %q: use %s or %s",
			cfg.Classifier.Strategy, types.StrategyFirstPath, types.StrategyFrontier)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
