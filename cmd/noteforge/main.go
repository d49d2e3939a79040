// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the noteforge CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/noteforge/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the noteforge CLI.
var rootCmd = &cobra.Command{
	Use:   "noteforge",
	Short: "Turn free-form notes into clean, organized documents",
	Long: `noteforge reformats messy free-form text into structured documents:
meeting notes, task lists, shopping lists, journal entries, research notes,
and study notes. Formatting is heuristic and fully local; the same input
always produces the same output.

Use "format" for a single document, "batch" to process many files on the
worker pool, and "formats" to list the supported document types.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./noteforge.yaml or ~/.config/noteforge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("noteforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "noteforge"))
		}
	}

	viper.SetEnvPrefix("NOTEFORGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig maps the viper state onto the plain config structs the library
// layers take. Zero values fall back to the documented defaults.
func loadConfig() types.Config {
	return types.Config{
		Engine: types.EngineConfig{
			Weights: loadScoreWeights(),
		},
		Pool: types.PoolConfig{
			MinWorkers:   viper.GetInt("pool.min_workers"),
			MaxWorkers:   viper.GetInt("pool.max_workers"),
			MaxQueueSize: viper.GetInt("pool.max_queue_size"),
			IdleTimeout:  viper.GetDuration("pool.idle_timeout"),
		},
		Recovery: types.RecoveryConfig{
			MaxRetries:      viper.GetInt("recovery.max_retries"),
			RetryDelay:      viper.GetDuration("recovery.retry_delay"),
			Jitter:          viper.GetBool("recovery.jitter"),
			EnableFallback:  !viper.IsSet("recovery.enable_fallback") || viper.GetBool("recovery.enable_fallback"),
			EnableCaching:   !viper.IsSet("recovery.enable_caching") || viper.GetBool("recovery.enable_caching"),
			CacheExpiration: viper.GetDuration("recovery.cache_expiration"),
		},
	}
}

// loadScoreWeights reads per-format confidence weight overrides from keys
// like engine.weights.research-notes.base. Fields left unset keep their
// defaults; formats with no keys at all stay off the override map.
func loadScoreWeights() map[types.FormatType]types.ScoreWeights {
	var weights map[types.FormatType]types.ScoreWeights
	for _, f := range types.AllFormats {
		prefix := "engine.weights." + string(f) + "."
		w := types.DefaultScoreWeights()
		found := false
		read := func(key string, dst *int) {
			if viper.IsSet(prefix + key) {
				*dst = viper.GetInt(prefix + key)
				found = true
			}
		}
		read("base", &w.Base)
		read("per_entity", &w.PerEntity)
		read("entity_cap", &w.EntityCap)
		read("per_section", &w.PerSection)
		read("section_cap", &w.SectionCap)
		read("structural_bonus", &w.StructuralBonus)
		if found {
			if weights == nil {
				weights = map[types.FormatType]types.ScoreWeights{}
			}
			weights[f] = w
		}
	}
	return weights
}

// parseFormat validates a --format flag value against the supported set.
func parseFormat(s string) (types.FormatType, error) {
	f := types.FormatType(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown format %q (run \"noteforge formats\" to list supported types)", s)
	}
	return f, nil
}

func shutdownTimeout() time.Duration { return 10 * time.Second }

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
