// Package ident derives stable identity strings for augeas-set requests.
//
// Two kinds of identity exist side by side:
//
//   - Class strings: CFEngine-style canonified names used by reporting
//     consumers. The current form covers the full request tuple; the legacy
//     form covers only the primary path, for older consumers that correlate
//     on it.
//   - A correlation key: a content-addressed hash of the canonicalized
//     request tuple, stable across repeated invocations with identical
//     parameters, used for idempotent re-reporting downstream.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const classPrefix = "file_augeas_set"

// Canonify maps a string to a class-safe name: every byte outside
// [A-Za-z0-9] becomes an underscore.
func Canonify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Class returns the current class identity for the full request tuple.
func Class(path, value, lens, file string) string {
	return Canonify(strings.Join([]string{classPrefix, path, value, lens, file}, "_"))
}

// LegacyClass returns the path-only class identity kept for older
// reporting consumers.
func LegacyClass(path string) string {
	return Canonify(classPrefix + "_" + path)
}

// Domain prefix for content-addressed correlation keys. The version suffix
// leaves room for algorithm migration.
const keyDomain = "ncf/file-augeas-set/v1"

// Key returns the content-addressed correlation key for a request tuple.
// Format: SHA256(domain + 0x00 + canonical JSON of the tuple), hex encoded.
// The null separator prevents domain/data boundary ambiguity.
func Key(path, value, lens, file string) string {
	canonical := marshalTuple(path, value, lens, file)

	h := sha256.New()
	h.Write([]byte(keyDomain))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil))
}
