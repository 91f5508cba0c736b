// Package files provides the small set of filesystem primitives the rest
// of the tree relies on for provisioning: existence checks, source-checked
// copies, and unconditional removal of transient artifacts.
package files

import (
	"fmt"
	"io"
	"os"
)

// Provisioner is the filesystem surface required by the convergence engine.
// The OS implementation is the production one; tests substitute fakes.
type Provisioner interface {
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool

	// Copy duplicates src to dst, preserving the source's permission bits.
	// It fails when src does not exist; dst is truncated if present.
	Copy(src, dst string) error

	// RemoveIfExists deletes path if present. A missing path is not an error.
	RemoveIfExists(path string) error
}

// OS implements Provisioner against the real filesystem.
type OS struct{}

// Exists reports whether path names an existing file or directory.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Copy duplicates src to dst with the source's permission bits.
func (OS) Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("copy source %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("copy source %s: is a directory", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}

// RemoveIfExists deletes path if present.
func (OS) RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
