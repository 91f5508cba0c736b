package ident

import (
	"bytes"
	"encoding/json"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// marshalTuple produces canonical JSON for a request tuple: keys sorted,
// strings NFC normalized, no HTML escaping. This is the only serialization
// that feeds correlation-key hashing.
func marshalTuple(path, value, lens, file string) []byte {
	fields := map[string]string{
		"path":  path,
		"value": value,
		"lens":  lens,
		"file":  file,
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(marshalString(k))
		buf.WriteByte(':')
		buf.Write(marshalString(fields[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// marshalString encodes a string as canonical JSON: NFC normalized at the
// serialization boundary, with HTML escaping disabled so <, > and & pass
// through untouched.
func marshalString(s string) []byte {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		// Encoding a string cannot fail; keep the signature simple.
		panic(err)
	}

	// json.Encoder adds a trailing newline, remove it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result
}
