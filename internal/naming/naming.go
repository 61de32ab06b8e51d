// Package naming derives generated-code identifiers from spec file
// paths: the namespace (nested package directories), the suite type
// name, the runner function name, and the emitted file name. Every
// derivation is a pure function of its input, so an unchanged spec
// tree always maps to the same output layout.
package naming

import (
	"path/filepath"
	"strings"
	"unicode"
)

// namespaceSeparators are the rune classes treated as word boundaries
// in the directory portion of a spec path.
const namespaceSeparators = "._/-"

// goKeywords is the full keyword set; none of these may appear as a
// namespace segment because segments become package directories.
var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer",
	"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return", "select",
	"struct", "switch", "type", "var",
}

// toolchainDirs are directory names the go tool gives special meaning
// to. Emitting them as package directories would change how consumers
// build the generated tree, so they are reserved alongside keywords.
var toolchainDirs = []string{"internal", "vendor", "testdata"}

// DefaultReserved returns the reserved segment table used when the
// configuration does not supply one.
func DefaultReserved() []string {
	out := make([]string, 0, len(goKeywords)+len(toolchainDirs))
	out = append(out, goKeywords...)
	out = append(out, toolchainDirs...)
	return out
}

// Deriver maps spec file paths to namespaces and module names. The
// reserved table is fixed at construction time; tests and alternate
// configurations inject their own table instead of mutating a global.
type Deriver struct {
	reserved map[string]struct{}
}

// NewDeriver builds a Deriver around the given reserved-word table.
// Matching is case-insensitive; pass DefaultReserved() for the stock
// table.
func NewDeriver(reserved []string) *Deriver {
	d := &Deriver{reserved: make(map[string]struct{}, len(reserved))}
	for _, w := range reserved {
		d.reserved[strings.ToLower(w)] = struct{}{}
	}
	return d
}

// Namespace converts the directory portion of a root-relative spec
// path into a /-separated namespace. Words are title-cased at
// separator boundaries first, then `.` and `/` collapse to the path
// separator while `_` and `-` are dropped. Title-casing must run
// before the collapse or word boundaries at underscores are lost.
// Segments whose lowercase form is reserved get an underscore suffix.
//
//	indices.get_mapping/10_basic.yml -> Indices/GetMapping
func (d *Deriver) Namespace(rel string) string {
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." || dir == "/" || dir == "" {
		return ""
	}
	cased := titleAtBoundaries(dir, namespaceSeparators)

	var b strings.Builder
	for _, r := range cased {
		switch r {
		case '.', '/':
			b.WriteRune('/')
		case '_', '-':
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	parts := strings.Split(b.String(), "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, ok := d.reserved[strings.ToLower(p)]; ok {
			p += "_"
		}
		segs = append(segs, p)
	}
	return strings.Join(segs, "/")
}

// ModuleName converts the file portion of a root-relative spec path
// into the emitted suite type name: the stem is title-cased at `_`/`-`
// boundaries, separators and digits are removed, and the result is
// wrapped with a leading underscore and a Test suffix so the name is a
// valid type identifier even when the stem starts with a digit.
//
//	10_basic-case.yml -> _BasicCaseTest
func (d *Deriver) ModuleName(rel string) string {
	stem := filepath.Base(filepath.ToSlash(rel))
	if ext := filepath.Ext(stem); ext != "" {
		stem = strings.TrimSuffix(stem, ext)
	}
	cased := titleAtBoundaries(stem, "_-")

	var b strings.Builder
	for _, r := range cased {
		switch {
		case r == '_' || r == '-':
		case unicode.IsDigit(r):
		case unicode.IsLetter(r):
			b.WriteRune(r)
		}
	}
	return "_" + b.String() + "Test"
}

// RunnerName derives the exported test function that wires a module
// into the test binary. Only TestXxx functions are discovered by the
// standard runner, so the module's marker underscore moves behind the
// Test prefix.
//
//	_BasicCaseTest -> Test_BasicCase
func RunnerName(module string) string {
	return "Test_" + moduleStem(module)
}

// FileName derives the on-disk name for a module. Generated modules
// are test files, and the toolchain ignores files with a leading
// underscore, so the stem is snake-cased and suffixed with _test.go
// instead of reusing the type name verbatim.
//
//	_BasicCaseTest -> basic_case_test.go
func FileName(module string) string {
	return snake(moduleStem(module)) + "_test.go"
}

// MethodName converts a declared case name into a candidate test
// method name: title-cased at every non-identifier rune, stripped of
// those runes, and prefixed with Test. Collision handling belongs to
// the emitter, which sees the whole module.
//
//	"create and fetch" -> TestCreateAndFetch
func MethodName(caseName string) string {
	var b strings.Builder
	boundary := true
	for _, r := range caseName {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			boundary = true
			continue
		}
		if boundary && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		boundary = false
	}
	return "Test" + b.String()
}

// SuiteSegment converts a suite display name into the root namespace
// segment: title-cased at word boundaries with the separators
// removed.
//
//	"platinum tier" -> PlatinumTier
func SuiteSegment(name string) string {
	cased := titleAtBoundaries(name, " ._-/")
	var b strings.Builder
	for _, r := range cased {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// moduleStem strips the underscore prefix and Test suffix ModuleName
// added, recovering the bare camel-cased stem.
func moduleStem(module string) string {
	stem := strings.TrimPrefix(module, "_")
	return strings.TrimSuffix(stem, "Test")
}

// titleAtBoundaries upper-cases the first letter of every word, where
// words begin at the start of the string or after any rune in seps.
// Non-boundary runes pass through unchanged.
func titleAtBoundaries(s, seps string) string {
	var b strings.Builder
	boundary := true
	for _, r := range s {
		if strings.ContainsRune(seps, r) {
			b.WriteRune(r)
			boundary = true
			continue
		}
		if boundary {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		boundary = false
	}
	return b.String()
}

// snake converts a CamelCase stem to snake_case, keeping initialism
// runs together (GetAPI -> get_api).
func snake(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1])
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if prevLower || nextLower {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
