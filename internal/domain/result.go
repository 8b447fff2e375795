package domain

// DownloadOutcome is the result of one per-item pipeline run.
type DownloadOutcome struct {
	PageURL  string
	Filename string
	Success  bool
	Skipped  bool
	Err      error
}

// Status returns the history status string for the outcome.
func (o DownloadOutcome) Status() string {
	switch {
	case o.Success:
		return StatusDownloaded
	case o.Skipped:
		return StatusSkipped
	default:
		return StatusFailed
	}
}

// AggregateResult is the single object surfaced to callers for one
// orchestrator call: one file, or all files of one album.
type AggregateResult struct {
	BatchID string
	URL     string
	Kind    Kind

	Attempted int
	Succeeded int
	Failed    int
	Skipped   int

	Downloaded   []string
	SkippedFiles []string
	FailedFiles  []string

	// Err is set for batch-level failures (e.g. an album with no items).
	// Per-item failures are counted, never raised.
	Err error
}

// Record folds one item outcome into the aggregate. Counts always satisfy
// Attempted == Succeeded + Failed + Skipped.
func (r *AggregateResult) Record(o DownloadOutcome) {
	r.Attempted++

	name := o.Filename
	if name == "" {
		name = "unknown"
	}

	switch {
	case o.Success:
		r.Succeeded++
		r.Downloaded = append(r.Downloaded, name)
	case o.Skipped:
		r.Skipped++
		r.SkippedFiles = append(r.SkippedFiles, name)
	default:
		r.Failed++
		r.FailedFiles = append(r.FailedFiles, name)
	}
}

// OK reports whether the batch downloaded at least one file and hit no
// batch-level error.
func (r *AggregateResult) OK() bool {
	return r.Err == nil && r.Succeeded > 0
}
