package engine

import "strings"

// Segmenter runs the two-state (idle/open) segmentation machine over one
// page at a time. At most one DraftBlock is open; every substantive line
// either contributes to the open block, starts a new block, or is dropped
// with a logged issue. State never crosses a page boundary, so distinct
// pages may be segmented by concurrent Segmenters.
type Segmenter struct {
	classifier *Classifier
	arbiter    *Arbiter
	delimiter  string
	sink       IssueSink

	page    int
	open    *DraftBlock
	regions []string
	blocks  []DraftBlock
}

// NewSegmenter wires a Segmenter. A Segmenter is single-use per goroutine;
// the classifier and arbiter may be shared.
func NewSegmenter(classifier *Classifier, arbiter *Arbiter, delimiter string, sink IssueSink) *Segmenter {
	if sink == nil {
		sink = DiscardIssues
	}
	return &Segmenter{
		classifier: classifier,
		arbiter:    arbiter,
		delimiter:  delimiter,
		sink:       sink,
	}
}

// SegmentPage segments one page of raw OCR lines into draft blocks. Any
// block still open at page end is force-flushed with the end_line sentinel
// 0 and a page_boundary_flush issue; entries never span pages.
func (s *Segmenter) SegmentPage(page int, rawLines []string) []DraftBlock {
	s.page = page
	s.open = nil
	s.regions = nil
	s.blocks = nil

	idx := 0
	for _, raw := range rawLines {
		cl := s.classifier.Classify(Normalize(raw))
		if cl.Class == Ignorable {
			continue
		}
		idx++
		s.step(idx, cl)
	}

	if s.open != nil {
		s.sink.Record(Issue{
			Kind:   IssuePageBoundaryFlush,
			Detail: map[string]string{"headword_guess": s.open.HeadwordGuess},
			Source: SourceRef{Page: page, StartLine: s.open.StartLine, EndLine: 0},
		})
		s.flush(0)
	}
	return s.blocks
}

// step applies the transition rules in priority order for one substantive
// line.
func (s *Segmenter) step(idx int, cl Classification) {
	line := cl.Text

	// Hard-excluded start tokens are continuation markers: they can extend
	// a block but never open one.
	if cl.FirstTokenExcluded {
		if s.open != nil {
			s.append(idx, cl)
			if cl.Class == RegionOnly {
				s.flush(idx)
			}
			return
		}
		s.dropIdle(idx, line, "continuation_marker_start")
		return
	}

	if cl.Class == RegionOnly {
		if s.open != nil {
			s.append(idx, cl)
			s.flush(idx)
			return
		}
		s.dropIdle(idx, line, "region_only_while_idle")
		return
	}

	if cl.Class == EntryHeadCandidate {
		if headword := s.arbiter.ExtractHeadword(cl.HeadZone); headword != "" {
			if s.open != nil {
				s.flush(idx - 1)
			}
			s.open = &DraftBlock{
				Page:          s.page,
				StartLine:     idx,
				HeadwordGuess: headword,
			}
			s.append(idx, cl)
			// A terminal region on the head line closes the entry at once.
			if len(cl.Regions) > 0 {
				s.flush(idx)
			}
			return
		}
		// Arbiter-rejected candidate: treat as continuation.
	}

	if s.open != nil {
		s.append(idx, cl)
		if cl.Delims > 0 && len(cl.Regions) > 0 {
			s.flush(idx)
		}
		return
	}

	// Idle. A delimiter-bearing line still looks like entry material cut
	// off from its headword, so open an anonymous block for the repair
	// pass to reattach; anything else is dropped.
	if strings.Contains(line, s.delimiter) {
		s.open = &DraftBlock{Page: s.page, StartLine: idx}
		s.append(idx, cl)
		if len(cl.Regions) > 0 {
			s.flush(idx)
		}
		return
	}
	s.dropIdle(idx, line, "no_open_block")
}

// append adds the line to the open block and accumulates its region tags.
func (s *Segmenter) append(idx int, cl Classification) {
	s.open.Lines = append(s.open.Lines, cl.Text)
	s.open.EndLine = idx
	s.regions = append(s.regions, cl.Regions...)
}

func (s *Segmenter) flush(endLine int) {
	if s.open == nil {
		return
	}
	s.open.EndLine = endLine
	s.open.RegionsGuess = dedupePreserve(s.regions)
	s.blocks = append(s.blocks, *s.open)
	s.open = nil
	s.regions = nil
}

func (s *Segmenter) dropIdle(idx int, line, reason string) {
	s.sink.Record(Issue{
		Kind:   IssueDroppedIdleLine,
		Detail: map[string]string{"line": line, "reason": reason},
		Source: SourceRef{Page: s.page, StartLine: idx, EndLine: idx},
	})
}
