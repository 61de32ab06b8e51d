// Package spec discovers and parses declarative test-spec documents.
// A document is one YAML file holding optional setup/teardown blocks
// and named test cases, each case an ordered list of action records.
// Documents are immutable once loaded; downstream stages only read
// them.
package spec

// BlockKind distinguishes lifecycle blocks from named test cases.
type BlockKind string

const (
	// BlockSetup runs before every case in the module.
	BlockSetup BlockKind = "setup"
	// BlockTeardown runs after every case in the module.
	BlockTeardown BlockKind = "teardown"
	// BlockCase is a named test case.
	BlockCase BlockKind = "case"
)

// ActionRecord is one step within a block. The structure is opaque to
// the loader and emitter; only the action compiler interprets it. It
// is passed by reference and never mutated after load.
type ActionRecord map[string]any

// Block is one top-level entry of a spec document. Name is empty for
// lifecycle blocks. A present block with zero actions is distinct from
// an absent block: the former still emits an empty method.
type Block struct {
	Kind    BlockKind
	Name    string
	Actions []ActionRecord
}

// Document is one discovered spec file. Blocks preserve source order
// across all YAML documents in the file. A document holds at most one
// setup and one teardown block.
type Document struct {
	// Path is the absolute location of the source file.
	Path string
	// RelPath is the slash-separated path relative to the spec root;
	// identifier derivation and provenance links use this form.
	RelPath string
	Blocks  []Block
}

// Setup returns the setup block, or nil when the document has none.
func (d *Document) Setup() *Block {
	return d.lifecycle(BlockSetup)
}

// Teardown returns the teardown block, or nil when the document has
// none.
func (d *Document) Teardown() *Block {
	return d.lifecycle(BlockTeardown)
}

func (d *Document) lifecycle(kind BlockKind) *Block {
	for i := range d.Blocks {
		if d.Blocks[i].Kind == kind {
			return &d.Blocks[i]
		}
	}
	return nil
}

// Cases returns the named case blocks in source order.
func (d *Document) Cases() []Block {
	out := make([]Block, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if b.Kind == BlockCase {
			out = append(out, b)
		}
	}
	return out
}
