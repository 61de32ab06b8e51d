package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specgen/internal/spec"
)

func compileOne(t *testing.T, rec spec.ActionRecord) string {
	t.Helper()
	out, err := NewGo().Compile("case", []spec.ActionRecord{rec})
	require.NoError(t, err)
	return out
}

func TestCompileDo(t *testing.T) {
	rec := spec.ActionRecord{"do": map[string]any{
		"method":  "POST",
		"path":    "/books",
		"headers": map[string]any{"X-Tag": "a"},
		"query":   map[string]any{"refresh": true},
		"body":    map[string]any{"title": "Snow Crash", "pages": 440},
	}}

	want := "\ts.Do(spectest.Request{" +
		`Method: "POST", Path: "/books", ` +
		`Headers: map[string]string{"X-Tag": "a"}, ` +
		`Query: map[string]string{"refresh": "true"}, ` +
		`Body: map[string]any{"pages": 440, "title": "Snow Crash"}})` + "\n"
	assert.Equal(t, want, compileOne(t, rec))
}

func TestCompileDoMinimal(t *testing.T) {
	rec := spec.ActionRecord{"do": map[string]any{"method": "GET", "path": "/ping"}}
	want := "\ts.Do(spectest.Request{Method: \"GET\", Path: \"/ping\"})\n"
	assert.Equal(t, want, compileOne(t, rec))
}

func TestCompileMatchSortsPairs(t *testing.T) {
	rec := spec.ActionRecord{"match": map[string]any{"zeta": 2, "alpha": "x"}}
	want := "\ts.Match(\"alpha\", \"x\")\n\ts.Match(\"zeta\", 2)\n"
	assert.Equal(t, want, compileOne(t, rec))
}

func TestCompileLength(t *testing.T) {
	assert.Equal(t, "\ts.Length(\"items\", 3)\n",
		compileOne(t, spec.ActionRecord{"length": map[string]any{"items": 3}}))
	// YAML sometimes hands back counts as floats or strings.
	assert.Equal(t, "\ts.Length(\"items\", 4)\n",
		compileOne(t, spec.ActionRecord{"length": map[string]any{"items": 4.0}}))
	assert.Equal(t, "\ts.Length(\"items\", 5)\n",
		compileOne(t, spec.ActionRecord{"length": map[string]any{"items": "5"}}))
}

func TestCompileSet(t *testing.T) {
	rec := spec.ActionRecord{"set": map[string]any{"id": "book_id"}}
	assert.Equal(t, "\ts.Set(\"id\", \"book_id\")\n", compileOne(t, rec))
}

func TestCompileTruthVerbs(t *testing.T) {
	assert.Equal(t, "\ts.True(\"created\")\n",
		compileOne(t, spec.ActionRecord{"is_true": "created"}))
	assert.Equal(t, "\ts.False(\"errors\")\n",
		compileOne(t, spec.ActionRecord{"is_false": "errors"}))
}

func TestCompileCompare(t *testing.T) {
	assert.Equal(t, "\ts.Compare(\"count\", \"gt\", 10)\n",
		compileOne(t, spec.ActionRecord{"gt": map[string]any{"count": 10}}))
	assert.Equal(t, "\ts.Compare(\"took\", \"lte\", 1.5)\n",
		compileOne(t, spec.ActionRecord{"lte": map[string]any{"took": 1.5}}))
}

func TestCompileSkip(t *testing.T) {
	assert.Equal(t, "\ts.T().Skip(\"flaky upstream\")\n",
		compileOne(t, spec.ActionRecord{"skip": map[string]any{"reason": "flaky upstream"}}))
	assert.Equal(t, "\ts.T().Skip(\"not ready\")\n",
		compileOne(t, spec.ActionRecord{"skip": "not ready"}))
}

func TestCompilePreservesActionOrder(t *testing.T) {
	out, err := NewGo().Compile("ordered", []spec.ActionRecord{
		{"do": map[string]any{"method": "GET", "path": "/a"}},
		{"match": map[string]any{"ok": true}},
		{"is_true": "done"},
	})
	require.NoError(t, err)

	want := "\ts.Do(spectest.Request{Method: \"GET\", Path: \"/a\"})\n" +
		"\ts.Match(\"ok\", true)\n" +
		"\ts.True(\"done\")\n"
	assert.Equal(t, want, out)
}

func TestCompileDeterministic(t *testing.T) {
	seq := []spec.ActionRecord{
		{"match": map[string]any{"b": 1, "a": 2, "c": 3}},
		{"do": map[string]any{"method": "GET", "path": "/x", "query": map[string]any{"q": 1, "p": 2}}},
	}
	first, err := NewGo().Compile("same", seq)
	require.NoError(t, err)
	second, err := NewGo().Compile("same", seq)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		rec  spec.ActionRecord
		msg  string
	}{
		{"unknown verb", spec.ActionRecord{"explode": "x"}, "unknown verb"},
		{"two verbs in one record", spec.ActionRecord{"is_true": "a", "is_false": "b"}, "exactly one verb"},
		{"do without method", spec.ActionRecord{"do": map[string]any{"path": "/x"}}, "requires method"},
		{"do with stray field", spec.ActionRecord{"do": map[string]any{"method": "GET", "path": "/x", "verb": "no"}}, "unknown request field"},
		{"match without pairs", spec.ActionRecord{"match": map[string]any{}}, "at least one"},
		{"set with non-string name", spec.ActionRecord{"set": map[string]any{"id": 7}}, "non-empty string"},
		{"length with fraction", spec.ActionRecord{"length": map[string]any{"items": 2.5}}, "whole number"},
		{"gt with text", spec.ActionRecord{"gt": map[string]any{"count": "lots"}}, "expected a number"},
		{"skip without reason", spec.ActionRecord{"skip": map[string]any{}}, "reason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGo().Compile("broken case", []spec.ActionRecord{tt.rec})
			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "broken case", ce.Case)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
