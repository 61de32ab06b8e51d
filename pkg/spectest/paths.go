package spectest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StatusPath is the virtual response path addressing the HTTP status
// code instead of a document field.
const StatusPath = "$status"

var placeholder = regexp.MustCompile(`\{\$(\w+)\}`)

// lookup resolves a dot-separated path against the last response.
// The empty path addresses the whole document. Sequence elements are
// addressed by numeric segment.
func (s *Suite) lookup(path string) (any, bool) {
	if s.resp == nil {
		return nil, false
	}
	path = s.resolveString(path)
	if path == StatusPath {
		return s.resp.Status, true
	}
	if path == "" {
		return s.resp.Document, true
	}
	return walkPath(s.resp.Document, strings.Split(path, "."))
}

func walkPath(doc any, segments []string) (any, bool) {
	cur := doc
	for _, seg := range segments {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// resolveString substitutes {$name} placeholders with stashed values.
// Unresolved placeholders end the case: a typo in a stash name must
// not silently reach the server as a literal.
func (s *Suite) resolveString(in string) string {
	if !strings.Contains(in, "{$") {
		return in
	}
	var missing []string
	out := placeholder.ReplaceAllStringFunc(in, func(m string) string {
		name := m[2 : len(m)-1]
		v, ok := s.stash[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return stringify(v)
	})
	if len(missing) > 0 {
		s.Require().Failf("stash", "unresolved placeholders %v in %q", missing, in)
	}
	return out
}

// resolveValue substitutes placeholders through a whole request
// value. A string that is exactly one placeholder takes the stashed
// value with its type intact; containers are copied, never mutated.
func (s *Suite) resolveValue(v any) any {
	switch x := v.(type) {
	case string:
		if m := placeholder.FindStringSubmatch(x); m != nil && m[0] == x {
			if stashed, ok := s.stash[m[1]]; ok {
				return stashed
			}
		}
		return s.resolveString(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = s.resolveValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = s.resolveValue(val)
		}
		return out
	default:
		return v
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truthy mirrors the spec dialect's notion of a true value: present
// and neither false, zero, empty string nor null.
func truthy(v any, ok bool) bool {
	if !ok || v == nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != "" && x != "false" && x != "0"
	case float64:
		return x != 0
	case int:
		return x != 0
	default:
		return true
	}
}

// asFloat widens any numeric response value for comparisons. Numeric
// strings count; everything else does not compare.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// normalize rewrites every number in a value tree to float64 so JSON
// responses and emitted literals compare by value, not by Go type.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
