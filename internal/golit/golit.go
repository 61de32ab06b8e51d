// Package golit renders decoded spec values as Go source literals.
// Rendering is canonical: map keys are sorted, the empty mapping is
// always map[string]any{}, and numeric-looking strings become bare
// numerals. Everything else is quoted, so an arbitrary value can
// never break the quoting of the code it is substituted into.
package golit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Render returns the Go literal for v. The output is deterministic
// for equal inputs, which keeps repeated builds byte-identical.
func Render(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(x)
	case string:
		if isNumericLiteral(x) {
			return x
		}
		return strconv.Quote(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case map[string]any:
		return renderMap(x)
	case []any:
		return renderSlice(x)
	default:
		return strconv.Quote(fmt.Sprintf("%v", v))
	}
}

func renderMap(m map[string]any) string {
	if len(m) == 0 {
		return "map[string]any{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("map[string]any{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k))
		b.WriteString(": ")
		b.WriteString(Render(m[k]))
	}
	b.WriteString("}")
	return b.String()
}

func renderSlice(s []any) string {
	if len(s) == 0 {
		return "[]any{}"
	}
	var b strings.Builder
	b.WriteString("[]any{")
	for i, v := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Render(v))
	}
	b.WriteString("}")
	return b.String()
}

// isNumericLiteral reports whether s can be emitted bare as a Go
// numeric literal. Leading zeros are rejected for integers because
// the compiler would read them as octal, and exponent forms stay
// quoted.
func isNumericLiteral(s string) bool {
	rest := strings.TrimPrefix(s, "-")
	if rest == "" {
		return false
	}
	intPart, fracPart, hasFrac := strings.Cut(rest, ".")
	if !allDigits(intPart) {
		return false
	}
	if len(intPart) > 1 && intPart[0] == '0' && !hasFrac {
		return false
	}
	if hasFrac && !allDigits(fracPart) {
		return false
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
