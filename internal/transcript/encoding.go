// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import (
	"strings"
	"unicode/utf8"
)

// Repair undoes the upstream double-encoding defect: UTF-8 bytes that were
// misread as a single-byte Latin-1-style encoding and re-encoded. It
// reinterprets the string's code points as single-byte values and decodes the
// result as UTF-8. The round-trip only succeeds on genuinely mangled text, so
// applying it to clean text is a no-op and repeating it is idempotent.
func Repair(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			// A code point outside Latin-1 means the text was never
			// double-encoded this way.
			return s
		}
		b = append(b, byte(r))
	}
	if !utf8.Valid(b) {
		return s
	}
	fixed := string(b)
	if strings.ContainsRune(fixed, 0) {
		return s
	}
	return fixed
}
