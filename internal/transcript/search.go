// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import "sort"

// maxSearchDepth bounds the legacy content search; upstream payloads are
// shallow and anything deeper is noise.
const maxSearchDepth = 6

// findContent walks an arbitrary decoded JSON value looking for a field
// literally named "content" with a string value. Depth-first, mappings
// before their siblings, first match wins — an inherited heuristic, kept
// because alternate upstream shapes bury the text unpredictably. Ambiguous
// when several "content" fields exist at different depths; first-found is
// the contract.
func findContent(v any, depth int) (string, bool) {
	if depth > maxSearchDepth {
		return "", false
	}
	switch node := v.(type) {
	case map[string]any:
		if s, ok := node["content"].(string); ok {
			return s, true
		}
		for _, key := range sortedKeys(node) {
			if s, ok := findContent(node[key], depth+1); ok {
				return s, true
			}
		}
	case []any:
		for _, item := range node {
			if s, ok := findContent(item, depth+1); ok {
				return s, true
			}
		}
	}
	return "", false
}

// sortedKeys makes the traversal order deterministic; Go maps do not
// preserve insertion order the way the upstream JSON did.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
