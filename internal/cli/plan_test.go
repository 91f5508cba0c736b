package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clebergnu/ncf/internal/converge"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlanSingleFile(t *testing.T) {
	path := writePlan(t, `
actions: [
	{path: "/etc/hosts/1/ipaddr", value: "192.168.1.5"},
	{path: "/etc/hosts/1/canonical", value: "host01", lens: "Hosts", file: "/etc/hosts"},
]
`)

	requests, err := LoadPlan(path)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, converge.Request{Path: "/etc/hosts/1/ipaddr", Value: "192.168.1.5"}, requests[0])
	assert.Equal(t, converge.Request{
		Path:  "/etc/hosts/1/canonical",
		Value: "host01",
		Lens:  "Hosts",
		File:  "/etc/hosts",
	}, requests[1])
}

func TestLoadPlanDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plan.cue"), []byte(`
actions: [
	{path: "/etc/ssh/sshd_config/PermitRootLogin", value: "no"},
]
`), 0o644))

	requests, err := LoadPlan(dir)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "/etc/ssh/sshd_config/PermitRootLogin", requests[0].Path)
}

func TestLoadPlanRejectsEmptyPath(t *testing.T) {
	path := writePlan(t, `
actions: [
	{path: "", value: "x"},
]
`)

	_, err := LoadPlan(path)
	require.Error(t, err)
}

func TestLoadPlanRejectsMissingValue(t *testing.T) {
	path := writePlan(t, `
actions: [
	{path: "/a"},
]
`)

	_, err := LoadPlan(path)
	require.Error(t, err)
}

func TestLoadPlanRejectsWrongType(t *testing.T) {
	path := writePlan(t, `
actions: [
	{path: "/a", value: 5},
]
`)

	_, err := LoadPlan(path)
	require.Error(t, err)
}

func TestLoadPlanRejectsLensWithoutFile(t *testing.T) {
	path := writePlan(t, `
actions: [
	{path: "/a", value: "b", lens: "Hosts"},
]
`)

	_, err := LoadPlan(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lens and file must be set together")
}

func TestLoadPlanRejectsEmptyActionList(t *testing.T) {
	path := writePlan(t, "actions: []\n")

	_, err := LoadPlan(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no actions")
}

func TestLoadPlanMissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan not found")
}
