// Package config loads the ncf settings file: the tool path resolution
// table, the backup artifact suffix, and the optional outcome journal path.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ToolPathEnvVar overrides the resolved augtool path when set.
const ToolPathEnvVar = "NCF_AUGTOOL"

// Settings is the on-disk configuration surface.
type Settings struct {
	// Paths maps tool names to resolved binary paths.
	Paths map[string]string `yaml:"paths"`

	// BackupSuffix is appended to a backing file's path to form the
	// durable backup artifact.
	BackupSuffix string `yaml:"backup_suffix"`

	// Journal is the outcome journal path; empty disables journaling.
	Journal string `yaml:"journal"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Paths: map[string]string{
			"augtool": "/usr/bin/augtool",
		},
		BackupSuffix: ".ncf-bak",
	}
}

// Load reads a settings file and merges it over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings %s: %w", path, err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Settings{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	for name, p := range loaded.Paths {
		if p == "" {
			return Settings{}, fmt.Errorf("settings %s: empty path for tool %q", path, name)
		}
		s.Paths[name] = p
	}
	if loaded.BackupSuffix != "" {
		s.BackupSuffix = loaded.BackupSuffix
	}
	if loaded.Journal != "" {
		s.Journal = loaded.Journal
	}
	return s, nil
}

// ToolPath resolves a tool name through the path table. For augtool the
// NCF_AUGTOOL environment variable wins over the table.
func (s Settings) ToolPath(name string) string {
	if name == "augtool" {
		if env := os.Getenv(ToolPathEnvVar); env != "" {
			return env
		}
	}
	return s.Paths[name]
}
