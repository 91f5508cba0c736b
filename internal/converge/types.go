package converge

import "github.com/clebergnu/ncf/internal/classify"

// Request is one augeas-set action. Immutable once received.
//
// Lens and File are meant to be set together or not at all; the empty
// string is the "not provided" sentinel. Pair discipline is the caller's
// contract and is deliberately not enforced here.
type Request struct {
	Path  string
	Value string
	Lens  string
	File  string
}

// FileScoped reports whether the request names a specific backing file.
func (r Request) FileScoped() bool {
	return r.File != ""
}

// ExecutionContext is the snapshot of facts established by the first
// phase: tool presence, the derived command line, and the captured output.
type ExecutionContext struct {
	ToolAvailable bool
	FileScoped    bool
	Command       string
	RawOutput     string
}

// BackupRecord captures the safety-net step for a file-scoped repair.
type BackupRecord struct {
	Attempted    bool
	Succeeded    bool
	ArtifactPath string
}

// Status is the three-valued convergence result.
type Status int

const (
	// StatusSuccess: the system was already compliant, nothing changed.
	StatusSuccess Status = iota
	// StatusRepaired: a compliant change was applied and preserved.
	StatusRepaired
	// StatusFailure: compliance could not be ensured.
	StatusFailure
)

// String returns the reporting name of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusRepaired:
		return "repaired"
	default:
		return "failure"
	}
}

// Outcome is the single result emitted per invocation.
type Outcome struct {
	Status      Status
	Message     string
	Class       string // identity over the full request tuple
	LegacyClass string // path-only identity for older consumers
	Key         string // content-addressed correlation key
	RunToken    string

	// Facts and Backup are retained for callers that want the
	// intermediate evidence behind the decision.
	Facts  classify.Facts
	Backup BackupRecord
}
