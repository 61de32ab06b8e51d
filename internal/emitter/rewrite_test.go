package emitter

import "testing"

func TestRewriteInterpolations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", `s.Do(spectest.Request{Path: "/books/${id}"})`, `s.Do(spectest.Request{Path: "/books/{$id}"})`},
		{"multiple in one line", `"${a}/${b}"`, `"{$a}/{$b}"`},
		{"adjacent", `"${a}${b}"`, `"{$a}{$b}"`},
		{"underscore name", `"${book_id}"`, `"{$book_id}"`},
		{"already normalized untouched", `"{$id}"`, `"{$id}"`},
		{"non-word content untouched", `"${not a name}"`, `"${not a name}"`},
		{"bare dollar untouched", `"cost: $5"`, `"cost: $5"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewriteInterpolations(tt.in); got != tt.want {
				t.Errorf("rewriteInterpolations(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
