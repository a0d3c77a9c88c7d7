package engine

import (
	"strconv"
	"strings"
)

// RepairConfig holds the coalescing pass knobs.
type RepairConfig struct {
	// PrefixRepair enables reattaching a lost shared first token to a
	// sub-entry headword from its predecessor.
	PrefixRepair bool
	// RequireRegionCompatibility gates prefix repair on the region sets
	// being equal or one side empty.
	RequireRegionCompatibility bool
	// PhrasePOS is the tag that marks a sub-entry or phrase form.
	PhrasePOS string
}

// Repairer is the second, strictly sequential pass: it walks the draft
// blocks in document order, merges orphans into the previous accepted
// entry, applies missing-prefix repair, and produces final entries.
// Order matters here, so this pass is never parallelized.
type Repairer struct {
	cfg       RepairConfig
	arbiter   *Arbiter
	extractor *Extractor
	sink      IssueSink
}

// NewRepairer wires a Repairer.
func NewRepairer(cfg RepairConfig, arbiter *Arbiter, extractor *Extractor, sink IssueSink) *Repairer {
	if sink == nil {
		sink = DiscardIssues
	}
	return &Repairer{cfg: cfg, arbiter: arbiter, extractor: extractor, sink: sink}
}

// Process converts ordered draft blocks into entries. Blocks whose
// headword is empty or arbiter-rejected are orphans: their lines merge
// into the previous accepted entry when one exists, refreshing its fields
// from the combined raw lines; with no predecessor they are dropped.
func (r *Repairer) Process(blocks []DraftBlock) []*Entry {
	var entries []*Entry
	var prev *Entry

	for i := range blocks {
		block := blocks[i]
		src := SourceRef{Page: block.Page, StartLine: block.StartLine, EndLine: block.EndLine}

		headword := block.HeadwordGuess
		reason := ""
		if headword == "" {
			reason = "no_headword"
		} else if r.arbiter.IsGlossLeak(headword) {
			reason = "gloss_leak"
		}

		if reason != "" {
			if prev == nil {
				r.sink.Record(Issue{
					Kind:   IssueDroppedOrphanBlock,
					Detail: map[string]string{"reason": reason, "lines": strings.Join(block.Lines, " | ")},
					Source: src,
				})
				continue
			}
			r.merge(prev, block)
			r.sink.Record(Issue{
				Kind: IssueMergedContinuation,
				Detail: map[string]string{
					"reason":      reason,
					"merged_into": prev.Headword,
					"target_page": strconv.Itoa(prev.Source.Page),
				},
				Source: src,
			})
			continue
		}

		entry := r.extractor.Extract(block)
		if entry == nil {
			continue
		}
		if r.cfg.PrefixRepair && prev != nil {
			r.maybePrefixRepair(entry, prev)
		}
		entries = append(entries, entry)
		prev = entry
	}
	return entries
}

// merge folds an orphan block into the previous accepted entry and
// refreshes that entry's fields from the combined raw lines, keeping the
// old value wherever the refresh comes back empty.
func (r *Repairer) merge(prev *Entry, block DraftBlock) {
	prev.RawLines = append(prev.RawLines, block.Lines...)
	fs := r.extractor.Fields(prev.RawLines)
	if len(fs.TranslationsPrimary) > 0 {
		prev.TranslationsPrimary = fs.TranslationsPrimary
	}
	if len(fs.TranslationsSecondary) > 0 {
		prev.TranslationsSecondary = fs.TranslationsSecondary
	}
	if len(fs.POS) > 0 {
		prev.POS = fs.POS
	}
	if fs.Gender != "" {
		prev.Gender = fs.Gender
	}
	if fs.Number != "" {
		prev.Number = fs.Number
	}
	if fs.Class != "" {
		prev.Class = fs.Class
	}
	regions := dedupePreserve(append(append([]string(nil), prev.Regions...), append(fs.Regions, block.RegionsGuess...)...))
	if len(regions) > 0 {
		prev.Regions = regions
	}
	if block.Page == prev.Source.Page && block.EndLine > prev.Source.EndLine {
		prev.Source.EndLine = block.EndLine
		prev.ID = EntryID(prev.Source, prev.Headword)
	}
}

// maybePrefixRepair reattaches a lost shared prefix. Printed sub-entries
// repeat the parent headword ("hamo t'a" under "hamo"), but the scan often
// keeps only the second token, so "t'a * milk of ..." directly under the
// "hamo" entry really means "hamo t'a". Conditions: both headwords
// single-token, the current one target-shaped and tagged only as a phrase
// form (or not tagged at all), exact line adjacency on the same page, and
// compatible region sets.
func (r *Repairer) maybePrefixRepair(entry, prev *Entry) {
	if strings.Contains(entry.Headword, " ") || strings.Contains(prev.Headword, " ") {
		return
	}
	if !r.arbiter.IsHeadwordShaped(entry.Headword) {
		return
	}
	if !r.subEntryTagged(entry.POS) {
		return
	}
	if entry.Source.Page != prev.Source.Page || prev.Source.EndLine == 0 ||
		entry.Source.StartLine != prev.Source.EndLine+1 {
		return
	}
	if r.cfg.RequireRegionCompatibility && !regionsCompatible(entry.Regions, prev.Regions) {
		return
	}

	original := entry.Headword
	entry.Headword = prev.Headword + " " + entry.Headword
	entry.HeadwordParts = strings.Fields(entry.Headword)
	entry.ID = EntryID(entry.Source, entry.Headword)
	r.sink.Record(Issue{
		Kind: IssueRepairedSubentry,
		Detail: map[string]string{
			"original": original,
			"repaired": entry.Headword,
			"prefix":   prev.Headword,
		},
		Source: entry.Source,
	})
}

// subEntryTagged: no POS tags at all, or only the phrase tag.
func (r *Repairer) subEntryTagged(pos []string) bool {
	for _, p := range pos {
		if p != r.cfg.PhrasePOS {
			return false
		}
	}
	return true
}

// regionsCompatible: equal as sets, or one side empty.
func regionsCompatible(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, x := range a {
		set[x] = true
	}
	for _, y := range b {
		if !set[y] {
			return false
		}
	}
	return true
}
