package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fredkneeland/beja-dict-parser/internal/engine"
	"github.com/fredkneeland/beja-dict-parser/internal/storage"
)

var (
	lookupDB     string
	lookupPrefix bool
	lookupLimit  int
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <headword>",
	Short: "Look up entries in a parsed dictionary database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if lookupDB == "" {
			lookupDB = cfg.Storage.Path
		}
		if lookupDB == "" {
			return fmt.Errorf("no database: pass --db or set storage.path")
		}
		store, err := storage.Open(lookupDB)
		if err != nil {
			return err
		}
		defer store.Close()

		query := strings.ToLower(strings.TrimSpace(args[0]))
		var entries []engine.Entry
		if lookupPrefix {
			entries, err = store.LookupPrefix(cmd.Context(), query, lookupLimit)
		} else {
			entries, err = store.LookupExact(cmd.Context(), query)
		}
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Printf("no entries for %q\n", query)
			return nil
		}

		head := color.New(color.FgCyan, color.Bold)
		tag := color.New(color.FgYellow)
		for _, e := range entries {
			head.Printf("%s", e.Headword)
			if tags := formatTags(e); tags != "" {
				tag.Printf("  [%s]", tags)
			}
			fmt.Printf("  (p.%d:%d)\n", e.Source.Page, e.Source.StartLine)
			for _, t := range e.TranslationsPrimary {
				fmt.Printf("    %s\n", t)
			}
			for _, t := range e.TranslationsSecondary {
				fmt.Printf("    %s\n", t)
			}
		}
		return nil
	},
}

func formatTags(e engine.Entry) string {
	var parts []string
	parts = append(parts, e.POS...)
	if e.Gender != "" {
		parts = append(parts, e.Gender)
	}
	if e.Number != "" {
		parts = append(parts, e.Number)
	}
	if e.Class != "" {
		parts = append(parts, e.Class)
	}
	parts = append(parts, e.Regions...)
	return strings.Join(parts, " ")
}

func init() {
	lookupCmd.Flags().StringVar(&lookupDB, "db", "", "sqlite database produced by parse --db")
	lookupCmd.Flags().BoolVarP(&lookupPrefix, "prefix", "p", false, "prefix match instead of exact")
	lookupCmd.Flags().IntVarP(&lookupLimit, "limit", "n", 20, "maximum results for prefix match")
	rootCmd.AddCommand(lookupCmd)
}
