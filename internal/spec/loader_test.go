package spec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSpec(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
}

func TestLoadMissingRoot(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "nope"), nil, zap.NewNop())

	_, err := l.Load()
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Error(), "nope")
}

func TestLoadDiscoveryOrder(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "b/20_second.yml", "one case:\n")
	writeSpec(t, root, "a/10_first.yml", "one case:\n")
	writeSpec(t, root, "zz_last.yaml", "one case:\n")

	docs, err := NewLoader(root, nil, zap.NewNop()).Load()
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a/10_first.yml", docs[0].RelPath)
	assert.Equal(t, "b/20_second.yml", docs[1].RelPath)
	assert.Equal(t, "zz_last.yaml", docs[2].RelPath)
}

func TestLoadExclusion(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "keep/good.yml", "a case:\n")
	// Broken on purpose; exclusion must drop it before parsing.
	writeSpec(t, root, "drop/broken.yml", "a case: [unterminated\n")

	docs, err := NewLoader(root, []string{"drop/"}, zap.NewNop()).Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "keep/good.yml", docs[0].RelPath)
}

func TestLoadParseErrorNamesFile(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "bad.yml", "a case: [unterminated\n")

	docs, err := NewLoader(root, nil, zap.NewNop()).Load()
	assert.Nil(t, docs)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Path, "bad.yml")
}

func TestLoadTopLevelMustBeMapping(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "seq.yml", "- not\n- a\n- mapping\n")

	_, err := NewLoader(root, nil, zap.NewNop()).Load()
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "mapping")
}

func TestLoadQuirkedKeysStayStrings(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "flags.yml", `
flag keys:
  - match:
      y: 1
      n: 2
`)

	docs, err := NewLoader(root, nil, zap.NewNop()).Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)

	cases := docs[0].Cases()
	require.Len(t, cases, 1)
	require.Len(t, cases[0].Actions, 1)
	match, ok := cases[0].Actions[0]["match"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, match["y"])
	assert.Equal(t, 2, match["n"])
}

func TestLoadLifecycleAndCaseOrder(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "full.yml", `
setup:
  - do:
      method: PUT
      path: /library
first case:
  - is_true: created
second case:
  - is_false: errors
teardown:
  - do:
      method: DELETE
      path: /library
`)

	docs, err := NewLoader(root, nil, zap.NewNop()).Load()
	require.NoError(t, err)
	doc := docs[0]

	require.NotNil(t, doc.Setup())
	require.NotNil(t, doc.Teardown())
	cases := doc.Cases()
	require.Len(t, cases, 2)
	assert.Equal(t, "first case", cases[0].Name)
	assert.Equal(t, "second case", cases[1].Name)
	assert.Len(t, doc.Setup().Actions, 1)
}

func TestLoadMultiDocumentStream(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "stream.yml", `
setup:
  - do:
      method: PUT
      path: /a
---
streamed case:
  - is_true: ok
`)

	docs, err := NewLoader(root, nil, zap.NewNop()).Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	require.NotNil(t, doc.Setup())
	require.Len(t, doc.Cases(), 1)
	assert.Equal(t, "streamed case", doc.Cases()[0].Name)
}

func TestLoadDuplicateSetupRejected(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "dup.yml", `
setup:
  - is_true: a
---
setup:
  - is_true: b
`)

	_, err := NewLoader(root, nil, zap.NewNop()).Load()
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "duplicate setup")
}

func TestLoadEmptyBlocksStayPresent(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "empty.yml", `
setup: {}
empty case:
`)

	docs, err := NewLoader(root, nil, zap.NewNop()).Load()
	require.NoError(t, err)
	doc := docs[0]

	require.NotNil(t, doc.Setup(), "empty setup must stay present")
	assert.Empty(t, doc.Setup().Actions)
	assert.Nil(t, doc.Teardown())

	cases := doc.Cases()
	require.Len(t, cases, 1)
	assert.Empty(t, cases[0].Actions)
}

func TestLoadEmptyMappingDecodesToEmptyObject(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "body.yml", `
send empty body:
  - do:
      method: POST
      path: /search
      body: {}
`)

	docs, err := NewLoader(root, nil, zap.NewNop()).Load()
	require.NoError(t, err)

	action := docs[0].Cases()[0].Actions[0]
	do, ok := action["do"].(map[string]any)
	require.True(t, ok)
	body, ok := do["body"].(map[string]any)
	require.True(t, ok, "empty mapping must decode to a map, not nil")
	assert.NotNil(t, body)
	assert.Empty(t, body)
}

func TestLoadResolvesAliases(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "alias.yml", `
setup:
  - do: &ping
      method: GET
      path: /ping
ping again:
  - do: *ping
`)

	docs, err := NewLoader(root, nil, zap.NewNop()).Load()
	require.NoError(t, err)

	cases := docs[0].Cases()
	require.Len(t, cases, 1)
	do, ok := cases[0].Actions[0]["do"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "GET", do["method"])
	assert.Equal(t, "/ping", do["path"])
}

func TestLoadIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "x/a.yml", "a case:\n  - is_true: ok\n")
	writeSpec(t, root, "y/b.yml", "b case:\n  - is_true: ok\n")

	first, err := NewLoader(root, nil, zap.NewNop()).Load()
	require.NoError(t, err)
	second, err := NewLoader(root, nil, zap.NewNop()).Load()
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].RelPath, second[i].RelPath)
		assert.Equal(t, first[i].Blocks, second[i].Blocks)
	}
}

func TestLoadRootIsFileNotDir(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.yml")
	require.NoError(t, os.WriteFile(file, []byte("a case:\n"), 0644))

	_, err := NewLoader(file, nil, zap.NewNop()).Load()
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}
