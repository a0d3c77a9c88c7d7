package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fredkneeland/beja-dict-parser/internal/engine"
	"github.com/fredkneeland/beja-dict-parser/internal/output"
	"github.com/fredkneeland/beja-dict-parser/internal/pagesource"
	"github.com/fredkneeland/beja-dict-parser/internal/storage"
	"github.com/fredkneeland/beja-dict-parser/pkg/bejadict"
)

var (
	pagesDir    string
	pdfPath     string
	outDir      string
	parseMode   string
	dbPath      string
	firstPage   int
	lastPage    int
	noProgress  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a pages directory or PDF into structured entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := buildSource()
		if err != nil {
			return err
		}

		if outDir == "" {
			outDir = cfg.Output.Dir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		entryWriter, err := output.NewEntryWriter(
			filepath.Join(outDir, cfg.Output.EntriesJSONL),
			filepath.Join(outDir, cfg.Output.EntriesJSON),
		)
		if err != nil {
			return err
		}
		issueLog, err := output.NewIssueLog(filepath.Join(outDir, cfg.Output.IssuesJSONL), logger)
		if err != nil {
			return err
		}
		defer issueLog.Close()

		pipeline, err := bejadict.New(cfg, logger)
		if err != nil {
			return err
		}
		pipeline.Progress = !noProgress

		var sink engine.IssueSink = issueLog
		var collector *engine.IssueCollector
		if dbPath == "" {
			dbPath = cfg.Storage.Path
		}
		if dbPath != "" {
			collector = &engine.IssueCollector{}
			sink = engine.MultiSink(issueLog, collector)
		}

		res, err := pipeline.Run(cmd.Context(), src, bejadict.Mode(parseMode), sink, entryWriter.Write)
		if err != nil {
			return err
		}
		if err := entryWriter.Close(); err != nil {
			return err
		}

		if dbPath != "" {
			store, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SaveEntries(cmd.Context(), res.Entries); err != nil {
				return err
			}
			if err := store.SaveIssues(cmd.Context(), collector.Issues); err != nil {
				return err
			}
			logger.Info().Str("db", dbPath).Msg("persisted to store")
		}

		logger.Info().
			Int("pages", res.Pages).
			Int("blocks", res.Blocks).
			Int("entries", len(res.Entries)).
			Int("issues", issueLog.Count()).
			Str("out", outDir).
			Msg("parse complete")
		return nil
	},
}

func buildSource() (pagesource.Source, error) {
	switch {
	case pagesDir != "" && pdfPath != "":
		return nil, fmt.Errorf("--pages-dir and --pdf are mutually exclusive")
	case pagesDir != "":
		return pagesource.DirSource{Dir: pagesDir}, nil
	case pdfPath != "":
		return pagesource.PDFSource{Path: pdfPath, FirstPage: firstPage, LastPage: lastPage}, nil
	default:
		return nil, fmt.Errorf("one of --pages-dir or --pdf is required")
	}
}

func init() {
	parseCmd.Flags().StringVar(&pagesDir, "pages-dir", "", "directory of page_NNNN.txt files")
	parseCmd.Flags().StringVar(&pdfPath, "pdf", "", "PDF with an embedded text layer")
	parseCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	parseCmd.Flags().StringVar(&parseMode, "mode", string(bejadict.ModeBlocks), "parsing mode: blocks or ordered")
	parseCmd.Flags().StringVar(&dbPath, "db", "", "also persist results to this sqlite database")
	parseCmd.Flags().IntVar(&firstPage, "first-page", 0, "first PDF page to parse (1-based)")
	parseCmd.Flags().IntVar(&lastPage, "last-page", 0, "last PDF page to parse (1-based)")
	parseCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
	rootCmd.AddCommand(parseCmd)
}
