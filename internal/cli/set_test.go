package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clebergnu/ncf/internal/config"
	"github.com/clebergnu/ncf/internal/report"
)

// installFakeTool writes a shell script that stands in for augtool and
// points NCF_AUGTOOL at it. The script swallows its stdin (the generated
// tool script) and prints the canned output.
func installFakeTool(t *testing.T, output string) string {
	t.Helper()
	tool := filepath.Join(t.TempDir(), "augtool")
	script := "#!/bin/sh\ncat >/dev/null\nprintf '%s' \"" + output + "\"\n"
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o755))
	t.Setenv(config.ToolPathEnvVar, tool)
	return tool
}

func runNcf(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSetPathOnlySilentToolIsSuccess(t *testing.T) {
	installFakeTool(t, "")

	out, err := runNcf(t, "set", "/etc/hosts/1/ipaddr", "192.168.1.5")

	require.NoError(t, err)
	assert.Contains(t, out, "success:")
	assert.Contains(t, out, "already set")
}

func TestSetRepairedOutput(t *testing.T) {
	installFakeTool(t, "Saved 1 file(s)\n")

	out, err := runNcf(t, "set", "/etc/hosts/1/ipaddr", "192.168.1.5")

	require.NoError(t, err)
	assert.Contains(t, out, "repaired:")
}

func TestSetToolErrorFails(t *testing.T) {
	installFakeTool(t, "error: invalid path\n")

	_, err := runNcf(t, "set", "/etc/hosts/1/ipaddr", "192.168.1.5")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSetMissingToolFails(t *testing.T) {
	t.Setenv(config.ToolPathEnvVar, filepath.Join(t.TempDir(), "absent"))

	_, err := runNcf(t, "set", "/etc/hosts/1/ipaddr", "192.168.1.5")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "augtool does not exist")
}

func TestSetLensRequiresFile(t *testing.T) {
	installFakeTool(t, "")

	_, err := runNcf(t, "set", "/etc/hosts/1/ipaddr", "192.168.1.5", "--lens", "Hosts")

	require.Error(t, err, "lens and file must be given together")
}

func TestSetFileScopedRepairTakesBackup(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "hosts")
	require.NoError(t, os.WriteFile(target, []byte("after edit\n"), 0o644))
	require.NoError(t, os.WriteFile(target+".new", []byte("before edit\n"), 0o644))
	installFakeTool(t, "Saved\n")

	out, err := runNcf(t, "set", "/1/ipaddr", "192.168.1.5", "--lens", "Hosts", "--file", target)

	require.NoError(t, err)
	assert.Contains(t, out, "repaired:")

	backup, err := os.ReadFile(target + ".ncf-bak")
	require.NoError(t, err)
	assert.Equal(t, "before edit\n", string(backup))

	_, statErr := os.Stat(target + ".new")
	assert.True(t, os.IsNotExist(statErr), "transient artifact must be removed")
}

func TestSetFileScopedBackupFailureFails(t *testing.T) {
	// No transient artifact exists, so the backup copy cannot succeed.
	dir := t.TempDir()
	target := filepath.Join(dir, "hosts")
	require.NoError(t, os.WriteFile(target, []byte("x\n"), 0o644))
	installFakeTool(t, "Saved\n")

	_, err := runNcf(t, "set", "/1/ipaddr", "192.168.1.5", "--lens", "Hosts", "--file", target)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "backup")
}

func TestSetJSONOutput(t *testing.T) {
	installFakeTool(t, "")

	out, err := runNcf(t, "--format", "json", "set", "/etc/hosts/1/ipaddr", "192.168.1.5")

	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `"result":"success"`)
	assert.Contains(t, out, `"legacy_class":"file_augeas_set__etc_hosts_1_ipaddr"`)
}

func TestSetRecordsToJournal(t *testing.T) {
	installFakeTool(t, "")
	journalPath := filepath.Join(t.TempDir(), "journal.db")

	_, err := runNcf(t, "--journal", journalPath, "set", "/etc/hosts/1/ipaddr", "192.168.1.5")
	require.NoError(t, err)

	j, err := report.OpenJournal(journalPath)
	require.NoError(t, err)
	defer j.Close()

	rows, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "success", rows[0].Status)
}

func TestSetInvalidFormatRejected(t *testing.T) {
	installFakeTool(t, "")

	_, err := runNcf(t, "--format", "xml", "set", "/a", "b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
