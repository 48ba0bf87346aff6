package reconcile

// Status is the outcome of one library within a run.
type Status string

const (
	StatusUnchanged Status = "unchanged" // nothing eligible
	StatusDryRun    Status = "dry-run"   // changes planned, none issued
	StatusApplied   Status = "applied"   // at least one change issued successfully
	StatusFailed    Status = "failed"    // every mutating call failed
	StatusSkipped   Status = "skipped"   // no client configured
)

// LibraryReport summarizes one library.
type LibraryReport struct {
	Title  string
	Type   string
	Client string
	Status Status

	Watched      int // watched items received
	Groups       int // distinct series or movies
	Unidentified int // items with no extractable ID
	NotFound     int // groups the service does not track
	Unmatched    int // items with no matching downstream episode
	Errors       int // groups, movies or batches that failed

	Changes []Change
}

// Report summarizes a reconciliation run.
type Report struct {
	RunID     string
	DryRun    bool
	Libraries []LibraryReport
}

// Changed returns the number of changes applied or planned across all libraries.
func (r *Report) Changed() int {
	n := 0
	for _, lib := range r.Libraries {
		n += len(lib.Changes)
	}
	return n
}

// Errors returns the number of absorbed failures across all libraries.
func (r *Report) Errors() int {
	n := 0
	for _, lib := range r.Libraries {
		n += lib.Errors
	}
	return n
}
