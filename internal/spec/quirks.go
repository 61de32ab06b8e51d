package spec

import "bytes"

// applyQuirks rewrites source-format oddities before structural
// parsing. YAML 1.1 parsers coerce the bare keys y and n to booleans,
// so historical spec trees rely on generators quoting them. The
// replacement is a compatibility shim and must stay bit-for-bit as
// is: the exact substrings " y:" and " n:" get quoted, nothing else.
func applyQuirks(src []byte) []byte {
	out := bytes.ReplaceAll(src, []byte(" y:"), []byte(" 'y':"))
	out = bytes.ReplaceAll(out, []byte(" n:"), []byte(" 'n':"))
	return out
}
