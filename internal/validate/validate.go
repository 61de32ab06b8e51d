// Package validate performs the in-process structural check on
// generated modules. Template substitution can produce text that is
// not Go without any stage noticing, so every emitted file is fed
// through the parser before the build may report success. Parsing is
// the contract; nothing is compiled or executed.
package validate

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// Expect describes the declarations one generated module must carry.
// Suite is empty for skip stubs, which declare only a runner.
type Expect struct {
	Package string
	Runner  string
	Suite   string
}

// Check parses src as a standalone Go file and verifies the expected
// declarations exist. The returned error carries the parser's own
// complaint when the text is not syntactically valid.
func Check(filename string, src []byte, want Expect) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("emitted code does not parse: %w", err)
	}

	if want.Package != "" && file.Name.Name != want.Package {
		return fmt.Errorf("package clause is %q, want %q", file.Name.Name, want.Package)
	}

	var hasRunner, hasSuite bool
	ast.Inspect(file, func(n ast.Node) bool {
		switch d := n.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil && d.Name.Name == want.Runner {
				hasRunner = true
			}
		case *ast.TypeSpec:
			if d.Name.Name == want.Suite {
				hasSuite = true
			}
		}
		return true
	})

	if want.Runner != "" && !hasRunner {
		return fmt.Errorf("missing runner function %s", want.Runner)
	}
	if want.Suite != "" && !hasSuite {
		return fmt.Errorf("missing suite type %s", want.Suite)
	}
	return nil
}
