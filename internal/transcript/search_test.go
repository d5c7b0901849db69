// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import "testing"

func TestFindContent(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
		found bool
	}{
		{
			name:  "top level mapping",
			value: map[string]any{"content": "here"},
			want:  "here",
			found: true,
		},
		{
			name:  "nested mapping",
			value: map[string]any{"data": map[string]any{"content": "deep"}},
			want:  "deep",
			found: true,
		},
		{
			name:  "inside list",
			value: []any{"noise", map[string]any{"content": "in list"}},
			want:  "in list",
			found: true,
		},
		{
			name:  "shallow match wins over deep",
			value: map[string]any{"content": "shallow", "data": map[string]any{"content": "deep"}},
			want:  "shallow",
			found: true,
		},
		{
			name:  "non-string content skipped at that level",
			value: map[string]any{"content": 7.0},
			found: false,
		},
		{
			name:  "scalar",
			value: "just a string",
			found: false,
		},
		{
			name:  "nothing named content",
			value: map[string]any{"text": "nope", "items": []any{map[string]any{"topic": "x"}}},
			found: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := findContent(tt.value, 0)
			if found != tt.found || got != tt.want {
				t.Errorf("findContent = (%q, %v), want (%q, %v)", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestFindContentDepthBound(t *testing.T) {
	// Bury the field one level past the bound; it must not be found.
	v := any(map[string]any{"content": "bottom"})
	for i := 0; i <= maxSearchDepth; i++ {
		v = map[string]any{"wrap": v}
	}
	if _, found := findContent(v, 0); found {
		t.Error("findContent found a value past the depth bound")
	}
}
