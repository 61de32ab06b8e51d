package actions

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"specgen/internal/golit"
	"specgen/internal/spec"
)

// Verbs understood by the builtin compiler.
const (
	verbDo      = "do"
	verbSet     = "set"
	verbMatch   = "match"
	verbLength  = "length"
	verbIsTrue  = "is_true"
	verbIsFalse = "is_false"
	verbGT      = "gt"
	verbGTE     = "gte"
	verbLT      = "lt"
	verbLTE     = "lte"
	verbSkip    = "skip"
)

// requestFields is the emission order for request literals; a fixed
// order keeps repeated builds byte-identical.
var requestFields = []string{"method", "path", "headers", "query", "body"}

// Go compiles the builtin verb set into calls on the spectest suite
// embedded in every generated module.
type Go struct{}

// NewGo returns the builtin action compiler.
func NewGo() *Go { return &Go{} }

// Compile renders one statement line per verb occurrence, each
// indented for a method body. Records are processed in source order.
func (g *Go) Compile(caseName string, seq []spec.ActionRecord) (string, error) {
	var b strings.Builder
	for i, rec := range seq {
		lines, err := compileRecord(rec)
		if err != nil {
			return "", &CompileError{Case: caseName, Err: fmt.Errorf("action %d: %w", i+1, err)}
		}
		for _, line := range lines {
			b.WriteString("\t")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func compileRecord(rec spec.ActionRecord) ([]string, error) {
	if len(rec) != 1 {
		return nil, fmt.Errorf("an action holds exactly one verb, got %d keys", len(rec))
	}
	var verb string
	var payload any
	for k, v := range rec {
		verb, payload = k, v
	}

	switch verb {
	case verbDo:
		return compileDo(payload)
	case verbSet:
		return compileStringPairs(payload, verb, "s.Set(%s, %s)")
	case verbMatch:
		return compileMatch(payload)
	case verbLength:
		return compileLength(payload)
	case verbIsTrue:
		return compilePath(payload, verb, "s.True(%s)")
	case verbIsFalse:
		return compilePath(payload, verb, "s.False(%s)")
	case verbGT, verbGTE, verbLT, verbLTE:
		return compileCompare(verb, payload)
	case verbSkip:
		return compileSkip(payload)
	default:
		return nil, fmt.Errorf("unknown verb %q", verb)
	}
}

// compileDo renders s.Do with a request literal. method and path are
// required; headers, query and body are optional.
func compileDo(payload any) ([]string, error) {
	req, ok := payload.(map[string]any)
	if !ok || len(req) == 0 {
		return nil, errors.New("do requires a request mapping with method and path")
	}
	for k := range req {
		if !contains(requestFields, k) {
			return nil, fmt.Errorf("unknown request field %q", k)
		}
	}

	var parts []string
	for _, field := range requestFields {
		v, present := req[field]
		if !present {
			if field == "method" || field == "path" {
				return nil, fmt.Errorf("do requires %s", field)
			}
			continue
		}
		switch field {
		case "method", "path":
			s, ok := v.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("%s must be a non-empty string", field)
			}
			parts = append(parts, fmt.Sprintf("%s: %s", fieldName(field), strconv.Quote(s)))
		case "headers", "query":
			lit, err := stringMapLiteral(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", field, err)
			}
			parts = append(parts, fmt.Sprintf("%s: %s", fieldName(field), lit))
		case "body":
			parts = append(parts, fmt.Sprintf("Body: %s", golit.Render(v)))
		}
	}
	return []string{fmt.Sprintf("s.Do(spectest.Request{%s})", strings.Join(parts, ", "))}, nil
}

func compileMatch(payload any) ([]string, error) {
	pairs, ok := payload.(map[string]any)
	if !ok || len(pairs) == 0 {
		return nil, errors.New("match requires at least one path: value pair")
	}
	lines := make([]string, 0, len(pairs))
	for _, path := range sortedKeys(pairs) {
		lines = append(lines, fmt.Sprintf("s.Match(%s, %s)", strconv.Quote(path), golit.Render(pairs[path])))
	}
	return lines, nil
}

func compileLength(payload any) ([]string, error) {
	pairs, ok := payload.(map[string]any)
	if !ok || len(pairs) == 0 {
		return nil, errors.New("length requires at least one path: count pair")
	}
	lines := make([]string, 0, len(pairs))
	for _, path := range sortedKeys(pairs) {
		n, err := toInt(pairs[path])
		if err != nil {
			return nil, fmt.Errorf("length of %q: %w", path, err)
		}
		lines = append(lines, fmt.Sprintf("s.Length(%s, %d)", strconv.Quote(path), n))
	}
	return lines, nil
}

// compileStringPairs handles verbs whose payload is a mapping from
// response path to a plain string, like set.
func compileStringPairs(payload any, verb, format string) ([]string, error) {
	pairs, ok := payload.(map[string]any)
	if !ok || len(pairs) == 0 {
		return nil, fmt.Errorf("%s requires at least one path: name pair", verb)
	}
	lines := make([]string, 0, len(pairs))
	for _, path := range sortedKeys(pairs) {
		name, ok := pairs[path].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("%s of %q: value must be a non-empty string", verb, path)
		}
		lines = append(lines, fmt.Sprintf(format, strconv.Quote(path), strconv.Quote(name)))
	}
	return lines, nil
}

func compilePath(payload any, verb, format string) ([]string, error) {
	path, ok := payload.(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("%s requires a response path", verb)
	}
	return []string{fmt.Sprintf(format, strconv.Quote(path))}, nil
}

func compileCompare(op string, payload any) ([]string, error) {
	pairs, ok := payload.(map[string]any)
	if !ok || len(pairs) == 0 {
		return nil, fmt.Errorf("%s requires at least one path: number pair", op)
	}
	lines := make([]string, 0, len(pairs))
	for _, path := range sortedKeys(pairs) {
		num, err := toFloat(pairs[path])
		if err != nil {
			return nil, fmt.Errorf("%s of %q: %w", op, path, err)
		}
		lines = append(lines, fmt.Sprintf("s.Compare(%s, %q, %s)",
			strconv.Quote(path), op, strconv.FormatFloat(num, 'g', -1, 64)))
	}
	return lines, nil
}

func compileSkip(payload any) ([]string, error) {
	reason := ""
	switch p := payload.(type) {
	case string:
		reason = p
	case map[string]any:
		r, ok := p["reason"].(string)
		if !ok || len(p) != 1 {
			return nil, errors.New("skip takes a single reason")
		}
		reason = r
	}
	if reason == "" {
		return nil, errors.New("skip requires a reason")
	}
	return []string{fmt.Sprintf("s.T().Skip(%s)", strconv.Quote(reason))}, nil
}

func stringMapLiteral(v any) (string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", errors.New("expected a mapping of string values")
	}
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		s, err := scalarString(m[k])
		if err != nil {
			return "", fmt.Errorf("%q: %w", k, err)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strconv.Quote(k), strconv.Quote(s)))
	}
	return "map[string]string{" + strings.Join(parts, ", ") + "}", nil
}

func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("expected a scalar, got %T", v)
	}
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != float64(int(x)) {
			return 0, fmt.Errorf("expected a whole number, got %v", x)
		}
		return int(x), nil
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0, fmt.Errorf("expected a count, got %q", x)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected a count, got %T", v)
	}
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("expected a number, got %q", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fieldName(field string) string {
	return strings.ToUpper(field[:1]) + field[1:]
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
