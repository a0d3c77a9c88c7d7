// Package commands implements the bejadict CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fredkneeland/beja-dict-parser/internal/config"
	"github.com/fredkneeland/beja-dict-parser/internal/observability"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bejadict",
	Short: "Parse scanned bilingual dictionary pages into structured entries",
	Long: `bejadict converts noisy OCR text from scanned Beja dictionary pages
into structured lexical entries: headword, translations in both gloss
scripts, part of speech, gender, number, etymological class, and usage
regions, plus an append-only log of every anomaly encountered.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Observability.LogLevel = "debug"
		}
		logger = observability.NewLogger(observability.LogConfig{
			Level:   cfg.Observability.LogLevel,
			Format:  cfg.Observability.LogFormat,
			Service: "bejadict",
		})
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
