package engine

// IssueKind names a recoverable anomaly recorded during processing.
type IssueKind string

const (
	IssueMergedContinuation    IssueKind = "merged_continuation"
	IssueDroppedOrphanBlock    IssueKind = "dropped_orphan_block"
	IssueDroppedIdleLine       IssueKind = "dropped_idle_line"
	IssueMissingHeadword       IssueKind = "missing_headword"
	IssueMissingGloss          IssueKind = "missing_gloss"
	IssuePageBoundaryFlush     IssueKind = "page_boundary_flush"
	IssueRepairedSubentry      IssueKind = "repaired_subentry_prefix"
	IssueRejectedLine          IssueKind = "rejected_line"
	IssueImplausibleLetterJump IssueKind = "implausible_letter_jump"
	IssueResyncAnchor          IssueKind = "resync_anchor"
)

// Issue is one append-only log record. Anomalies never abort processing;
// they are recorded here and the engine moves on.
type Issue struct {
	Kind   IssueKind         `json:"kind"`
	Detail map[string]string `json:"detail,omitempty"`
	Source SourceRef         `json:"source"`
}

// IssueSink receives issues as they are discovered, in processing order.
// Implementations must be safe for concurrent use when pages are
// segmented in parallel.
type IssueSink interface {
	Record(issue Issue)
}

// IssueSinkFunc adapts a function to the IssueSink interface.
type IssueSinkFunc func(Issue)

func (f IssueSinkFunc) Record(issue Issue) { f(issue) }

// IssueCollector buffers issues in memory. Used by tests and by callers
// that persist the full log after a run.
type IssueCollector struct {
	Issues []Issue
}

func (c *IssueCollector) Record(issue Issue) {
	c.Issues = append(c.Issues, issue)
}

// MultiSink fans one issue out to several sinks.
func MultiSink(sinks ...IssueSink) IssueSink {
	return IssueSinkFunc(func(issue Issue) {
		for _, s := range sinks {
			s.Record(issue)
		}
	})
}

// DiscardIssues drops everything. Handy default when the caller does not
// care about the log.
var DiscardIssues IssueSink = IssueSinkFunc(func(Issue) {})
