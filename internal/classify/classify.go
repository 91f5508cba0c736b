// Package classify maps raw augtool output onto convergence facts.
//
// The classifier is a pure function over the captured output text. It never
// looks at process exit codes: the textual taxonomy is authoritative. Every
// possible input yields at least one fact, and anything the rules cannot
// account for is promoted to an error. Unknown output is never success.
package classify

import (
	"regexp"
	"strings"
)

// Facts is the set of independent convergence facts read from one tool run.
// The fields are not mutually exclusive: output containing both a save
// confirmation and a later error line sets Repaired and Error together, and
// the decision layer lets Error dominate.
type Facts struct {
	Kept     bool `json:"kept"`
	Repaired bool `json:"repaired"`
	Error    bool `json:"error"`
}

var (
	// Save confirmation printed by augtool after a successful write.
	savedPattern = regexp.MustCompile(`Saved.*`)

	// Marker printed by the explicit error listing when the tree is clean.
	// Only appears when the script requested the listing (file-scoped runs).
	noErrorsPattern = regexp.MustCompile(`(?m)^\s*\(no errors\)\s*$`)

	// A line the tool itself flags as an error.
	errorPattern = regexp.MustCompile(`(?m)^error:.*`)
)

// Output evaluates the ordered rules against raw tool output.
//
// fileScoped selects the "kept" signal: file-scoped scripts request an
// explicit error listing, so a clean run prints the "(no errors)" marker;
// path-only scripts request nothing, so whitespace-only output is the only
// available "nothing went wrong" signal.
func Output(raw []byte, fileScoped bool) Facts {
	text := string(raw)

	var f Facts
	f.Repaired = savedPattern.MatchString(text)
	if fileScoped {
		f.Kept = noErrorsPattern.MatchString(text)
	} else {
		f.Kept = strings.TrimSpace(text) == ""
	}
	f.Error = errorPattern.MatchString(text)

	// Failsafe: anything rules above could not account for is an error.
	if !f.Kept && !f.Repaired {
		f.Error = true
	}
	return f
}
