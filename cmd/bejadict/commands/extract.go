package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fredkneeland/beja-dict-parser/internal/pagesource"
)

var (
	extractPDF   string
	extractOut   string
	extractFirst int
	extractLast  int
)

// extract dumps a PDF text layer into the page_NNNN.txt intermediate
// format, so the pages can be inspected or hand-corrected before parsing.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a PDF text layer into page_NNNN.txt files",
	RunE: func(cmd *cobra.Command, args []string) error {
		src := pagesource.PDFSource{Path: extractPDF, FirstPage: extractFirst, LastPage: extractLast}
		pages, err := src.Pages()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(extractOut, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		for _, page := range pages {
			name := filepath.Join(extractOut, fmt.Sprintf("page_%04d.txt", page.Number))
			if err := os.WriteFile(name, []byte(strings.Join(page.Lines, "\n")), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
		}
		logger.Info().Int("pages", len(pages)).Str("out", extractOut).Msg("extraction complete")
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractPDF, "pdf", "", "PDF with an embedded text layer")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "data/pages", "directory for page files")
	extractCmd.Flags().IntVar(&extractFirst, "first-page", 0, "first PDF page to extract (1-based)")
	extractCmd.Flags().IntVar(&extractLast, "last-page", 0, "last PDF page to extract (1-based)")
	_ = extractCmd.MarkFlagRequired("pdf")
	rootCmd.AddCommand(extractCmd)
}
