package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// specGlob matches every spec file under the root, at any depth.
const specGlob = "**/*.{yml,yaml}"

// Loader discovers spec files under a root directory and parses them
// into Documents. Discovery order is lexical by relative path, so a
// build always processes the same tree in the same order.
type Loader struct {
	root     string
	excludes []string
	log      *zap.Logger
}

// NewLoader builds a Loader. excludes is a list of substrings matched
// against the full path of each discovered file; matches are dropped
// before parsing.
func NewLoader(root string, excludes []string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{root: root, excludes: excludes, log: log}
}

// Load walks the spec root and returns every non-excluded document in
// discovery order. A missing root is a NotFoundError; the first parse
// failure aborts the load with a ParseError naming the file.
func (l *Loader) Load() ([]*Document, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Root: l.root}
		}
		return nil, fmt.Errorf("stat spec root %s: %w", l.root, err)
	}
	if !info.IsDir() {
		return nil, &NotFoundError{Root: l.root}
	}

	matches, err := doublestar.Glob(os.DirFS(l.root), specGlob)
	if err != nil {
		return nil, fmt.Errorf("glob spec root %s: %w", l.root, err)
	}
	sort.Strings(matches)

	docs := make([]*Document, 0, len(matches))
	for _, rel := range matches {
		abs := filepath.Join(l.root, filepath.FromSlash(rel))
		if l.excluded(abs) {
			l.log.Debug("spec excluded", zap.String("path", rel))
			continue
		}
		doc, err := l.parseFile(abs, rel)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	l.log.Info("specs loaded",
		zap.Int("documents", len(docs)),
		zap.String("root", l.root))
	return docs, nil
}

func (l *Loader) excluded(abs string) bool {
	full := filepath.ToSlash(abs)
	for _, pat := range l.excludes {
		if pat != "" && strings.Contains(full, pat) {
			return true
		}
	}
	return false
}

// parseFile reads one spec file and folds every YAML document in the
// stream into a single Document, preserving block order.
func (l *Loader) parseFile(abs, rel string) (*Document, error) {
	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read spec %s: %w", abs, err)
	}

	doc := &Document{Path: abs, RelPath: rel}
	dec := yaml.NewDecoder(bytes.NewReader(applyQuirks(raw)))
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Path: abs, Err: err}
		}
		if err := appendBlocks(doc, &node); err != nil {
			return nil, &ParseError{Path: abs, Err: err}
		}
	}
	return doc, nil
}

// appendBlocks walks one top-level YAML document and appends its
// entries to doc. The top level must be a mapping; keys setup and
// teardown become lifecycle blocks, everything else a named case.
func appendBlocks(doc *Document, node *yaml.Node) error {
	root := node
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil
	}
	if root.Kind != yaml.MappingNode {
		return errors.New("top level of a spec document must be a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		actions, err := actionsFrom(root.Content[i+1])
		if err != nil {
			return fmt.Errorf("block %q: %w", key, err)
		}
		switch key {
		case string(BlockSetup), string(BlockTeardown):
			kind := BlockKind(key)
			if doc.lifecycle(kind) != nil {
				return fmt.Errorf("duplicate %s block", key)
			}
			doc.Blocks = append(doc.Blocks, Block{Kind: kind, Actions: actions})
		default:
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockCase, Name: key, Actions: actions})
		}
	}
	return nil
}

// actionsFrom decodes the value under a block key. A null or empty
// value is a present block with zero actions, which downstream
// emission keeps distinct from an absent block.
func actionsFrom(node *yaml.Node) ([]ActionRecord, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return nil, fmt.Errorf("expected a list of actions, got scalar %q", node.Value)
	case yaml.MappingNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nil, errors.New("expected a list of actions, got a mapping")
	case yaml.SequenceNode:
		actions := make([]ActionRecord, 0, len(node.Content))
		for i, item := range node.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, fmt.Errorf("action %d: %w", i, err)
			}
			rec, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("action %d: expected a mapping, got %T", i, v)
			}
			actions = append(actions, ActionRecord(rec))
		}
		return actions, nil
	default:
		return nil, fmt.Errorf("unsupported block value (yaml kind %d)", node.Kind)
	}
}

// decodeValue converts a YAML node into plain Go values. Empty
// mappings decode to a non-nil empty map so code generation can tell
// an explicit empty object from an absent one.
func decodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeValue(node.Content[0])
	case yaml.AliasNode:
		return decodeValue(node.Alias)
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.MappingNode:
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := decodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[node.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d", node.Kind)
	}
}
