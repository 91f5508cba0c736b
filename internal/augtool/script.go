// Package augtool builds and runs Augeas tool invocations.
//
// TRUST BOUNDARY: request parameters are interpolated literally into the
// generated script and shell command line. Callers own the content of path,
// value, lens and file; no quoting or escaping is added here, because the
// downstream output classification depends on the tool seeing the exact
// text the caller supplied.
package augtool

import (
	"fmt"
	"strings"
)

// Script returns the augtool input for one set operation.
//
// When file (and lens) are given, the script disables nothing itself but is
// meant to run under --noautoload: it loads only the named lens against the
// named file, sets the value, saves, and asks for an explicit error listing
// so a clean run prints the "(no errors)" marker.
//
// When file is empty, the script relies on the tool's default autoload of
// every known lens and file: set, then save, with no listing requested.
func Script(path, value, lens, file string) string {
	if file != "" {
		return strings.Join([]string{
			fmt.Sprintf("set /augeas/load/%s/lens %s.lns", lens, lens),
			fmt.Sprintf("set /augeas/load/%s/incl %s", lens, file),
			"load",
			fmt.Sprintf("set /files%s %s", path, value),
			"save",
			"errors",
			"",
		}, "\n")
	}
	return strings.Join([]string{
		fmt.Sprintf("set /files%s %s", path, value),
		"save",
		"",
	}, "\n")
}

// CommandLine returns the shell command that pipes the script into the tool.
// File-scoped scripts run with autoload disabled; path-only scripts keep the
// tool's default behavior.
func CommandLine(tool, path, value, lens, file string) string {
	script := Script(path, value, lens, file)
	if file != "" {
		return fmt.Sprintf("/bin/echo \"%s\" | %s --noautoload", script, tool)
	}
	return fmt.Sprintf("/bin/echo \"%s\" | %s", script, tool)
}
