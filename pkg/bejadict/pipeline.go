// Package bejadict is the public facade over the dictionary parsing
// engine: it wires configuration, lexicon, segmentation, repair, and
// extraction into a runnable pipeline.
package bejadict

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/fredkneeland/beja-dict-parser/internal/config"
	"github.com/fredkneeland/beja-dict-parser/internal/engine"
	"github.com/fredkneeland/beja-dict-parser/internal/lexicon"
	"github.com/fredkneeland/beja-dict-parser/internal/pagesource"
)

// Mode selects the parsing front-end.
type Mode string

const (
	// ModeBlocks runs the full segmentation, repair, and extraction
	// passes. This is the default.
	ModeBlocks Mode = "blocks"
	// ModeOrdered runs the line-level monotonic order validator instead,
	// for layouts where one line is one alphabetically ordered entry.
	ModeOrdered Mode = "ordered"
)

// Result summarizes one run.
type Result struct {
	Pages   int
	Blocks  int
	Entries []engine.Entry
}

// EmitFunc receives each finished entry in document order, as soon as it
// is final.
type EmitFunc func(engine.Entry) error

// Pipeline is a reusable parser instance. Construct once per
// configuration; Run may be called repeatedly.
type Pipeline struct {
	cfg    *config.Config
	logger zerolog.Logger
	vocab  *engine.Vocabulary
	arb    *engine.Arbiter
	cls    *engine.Classifier

	// Progress enables a terminal progress bar over pages.
	Progress bool
}

// New builds a Pipeline from configuration.
func New(cfg *config.Config, logger zerolog.Logger) (*Pipeline, error) {
	vocab := engine.NewVocabulary(engine.VocabularyConfig{
		POS:            cfg.Vocab.POS,
		Regions:        cfg.Vocab.Regions,
		Classes:        cfg.Vocab.Classes,
		Genders:        cfg.Vocab.Genders,
		Numbers:        cfg.Vocab.Numbers,
		POSAliases:     cfg.Vocab.POSAliases,
		RegionAliases:  cfg.Vocab.RegionAliases,
		NeverHeadwords: cfg.Vocab.NeverHeadwords,
		Placeholders:   cfg.Vocab.Placeholders,
	})

	lex := lexicon.DefaultEnglish()
	if cfg.Arbiter.LexiconPath != "" {
		var err error
		lex, err = lexicon.Load(cfg.Arbiter.LexiconPath)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.Arbiter.LexiconPath).Int("words", lex.Len()).Msg("loaded lexicon")
	}

	arb, err := engine.NewArbiter(engine.ArbiterConfig{
		StrongCommonness:     cfg.Arbiter.StrongCommonness,
		ModerateCommonness:   cfg.Arbiter.ModerateCommonness,
		MaxHeadwordTokens:    cfg.Arbiter.MaxHeadwordTokens,
		OrthographicPatterns: cfg.Arbiter.OrthographicPatterns,
		HeadwordShape:        cfg.Arbiter.HeadwordShape,
	}, lex, vocab)
	if err != nil {
		return nil, err
	}

	cls, err := engine.NewClassifier(engine.ClassifierConfig{
		Delimiter:                   cfg.Engine.FieldDelimiter,
		WeakStartRequiresAlphabetic: cfg.Engine.WeakStartRequiresAlphabetic,
		PrimaryScriptPattern:        cfg.Engine.PrimaryScriptPattern,
		SecondaryScriptPattern:      cfg.Engine.SecondaryScriptPattern,
	}, vocab)
	if err != nil {
		return nil, err
	}

	return &Pipeline{cfg: cfg, logger: logger, vocab: vocab, arb: arb, cls: cls}, nil
}

// Run parses every page of the source. Entries are passed to emit in
// document order as they become final; issues go to sink as they are
// discovered. emit and sink may be nil.
func (p *Pipeline) Run(ctx context.Context, src pagesource.Source, mode Mode, sink engine.IssueSink, emit EmitFunc) (*Result, error) {
	if sink == nil {
		sink = engine.DiscardIssues
	}
	if emit == nil {
		emit = func(engine.Entry) error { return nil }
	}

	pages, err := src.Pages()
	if err != nil {
		return nil, err
	}
	p.logger.Info().Int("pages", len(pages)).Str("mode", string(mode)).Msg("starting parse")

	switch mode {
	case ModeOrdered:
		return p.runOrdered(ctx, pages, sink, emit)
	case ModeBlocks, "":
		return p.runBlocks(ctx, pages, sink, emit)
	default:
		return nil, fmt.Errorf("bejadict: unknown mode %q", mode)
	}
}

// runBlocks segments pages (in parallel, state never crosses a page
// boundary), then runs the strictly sequential repair pass over the full
// ordered block sequence.
func (p *Pipeline) runBlocks(ctx context.Context, pages []pagesource.Page, sink engine.IssueSink, emit EmitFunc) (*Result, error) {
	extractor, err := engine.NewExtractor(engine.ExtractorConfig{
		Delimiter:              p.cfg.Engine.FieldDelimiter,
		PrimaryScriptPattern:   p.cfg.Engine.PrimaryScriptPattern,
		SecondaryScriptPattern: p.cfg.Engine.SecondaryScriptPattern,
		SecondaryRunPattern:    p.cfg.Engine.SecondaryRunPattern,
	}, p.vocab, sink)
	if err != nil {
		return nil, err
	}

	bar := p.newBar(len(pages), "segmenting")
	blockSets := make([][]engine.DraftBlock, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Engine.MaxConcurrentPages)
	for i := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seg := engine.NewSegmenter(p.cls, p.arb, p.cfg.Engine.FieldDelimiter, sink)
			blockSets[i] = seg.SegmentPage(pages[i].Number, pages[i].Lines)
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		bar.Finish()
	}

	var blocks []engine.DraftBlock
	for _, bs := range blockSets {
		blocks = append(blocks, bs...)
	}
	p.logger.Debug().Int("blocks", len(blocks)).Msg("segmentation done")

	repairer := engine.NewRepairer(engine.RepairConfig{
		PrefixRepair:               p.cfg.Repair.PrefixRepair,
		RequireRegionCompatibility: p.cfg.Repair.RequireRegionCompatibility,
		PhrasePOS:                  p.cfg.Repair.PhrasePOS,
	}, p.arb, extractor, sink)

	res := &Result{Pages: len(pages), Blocks: len(blocks)}
	for _, e := range repairer.Process(blocks) {
		res.Entries = append(res.Entries, *e)
		if err := emit(*e); err != nil {
			return nil, fmt.Errorf("bejadict: emit entry: %w", err)
		}
	}
	p.logger.Info().Int("entries", len(res.Entries)).Msg("parse done")
	return res, nil
}

// runOrdered feeds lines one at a time to the monotonic order validator.
func (p *Pipeline) runOrdered(ctx context.Context, pages []pagesource.Page, sink engine.IssueSink, emit EmitFunc) (*Result, error) {
	validator, err := engine.NewOrderValidator(engine.OrderValidatorConfig{
		ResyncThreshold:           p.cfg.OrderValidator.ResyncThreshold,
		POSMarkerPattern:          p.cfg.OrderValidator.POSMarkerPattern,
		ContinuationPrefixPattern: p.cfg.OrderValidator.ContinuationPrefixPattern,
		BadHeadwords:              p.cfg.OrderValidator.BadHeadwords,
		HeadwordShape:             p.cfg.OrderValidator.HeadwordShape,
		SecondaryScriptPattern:    p.cfg.Engine.SecondaryScriptPattern,
	}, sink)
	if err != nil {
		return nil, err
	}

	bar := p.newBar(len(pages), "validating")
	res := &Result{Pages: len(pages)}
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := 0
		for _, raw := range page.Lines {
			text := engine.Normalize(raw)
			if text == "" {
				continue
			}
			idx++
			entry := validator.Feed(engine.NormalizedLine{Page: page.Number, Index: idx, Text: text})
			if entry == nil {
				continue
			}
			res.Entries = append(res.Entries, *entry)
			if err := emit(*entry); err != nil {
				return nil, fmt.Errorf("bejadict: emit entry: %w", err)
			}
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	accepted, rejected := validator.Stats()
	p.logger.Info().Int("accepted", accepted).Int("rejected", rejected).Msg("order validation done")
	return res, nil
}

func (p *Pipeline) newBar(total int, desc string) *progressbar.ProgressBar {
	if !p.Progress {
		return nil
	}
	return progressbar.Default(int64(total), desc)
}
