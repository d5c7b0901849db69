// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package token loads the API bearer token from a plain-text file. The file
// holds one token, optionally prefixed with "bearer "; surrounding
// whitespace is ignored.
package token

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmpty reports a token file that exists but holds no token.
var ErrEmpty = errors.New("token file is empty")

// Load reads and normalizes the bearer token at path.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading token file %s: %w", path, err)
	}
	tok := strings.TrimSpace(string(data))
	if prefix := "bearer "; strings.HasPrefix(strings.ToLower(tok), prefix) {
		tok = strings.TrimSpace(tok[len(prefix):])
	}
	if tok == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return tok, nil
}
