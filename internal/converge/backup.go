package converge

import "github.com/clebergnu/ncf/internal/classify"

// backup is the phase-two side effect: when a repair hit a named file,
// preserve the tool's transient sibling artifact as a durable backup.
//
// Path-only requests never reach this step; whatever default backup
// behavior the tool has is their only safety net. Reporting is suppressed
// for the duration so the copy's own plumbing cannot leak report lines,
// and the transient artifact is removed whether or not the copy worked.
func (e *Engine) backup(req Request, facts classify.Facts) BackupRecord {
	if !req.FileScoped() || !facts.Repaired {
		return BackupRecord{}
	}

	restore := e.Sink.Suppress()
	defer restore()

	transient := req.File + transientSuffix
	rec := BackupRecord{
		Attempted:    true,
		ArtifactPath: req.File + e.backupSuffix(),
	}
	rec.Succeeded = e.Files.Copy(transient, rec.ArtifactPath) == nil

	// Cleanup is unconditional: the transient artifact must not linger
	// even when the copy failed.
	_ = e.Files.RemoveIfExists(transient)

	return rec
}
