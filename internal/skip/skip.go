// Package skip decides whether a generated test case is emitted live
// or as a disabled stub carrying a reason. Rules target three
// granularities: one exact case, every case in a module, or every
// module in a namespace. The most specific rule wins.
package skip

import "strings"

// Wildcard marks a rule that covers every case of a module or every
// module of a namespace.
const Wildcard = "*"

// Key builds the fully-qualified rule key for a case. Pass Wildcard
// as caseName for a whole-module rule.
func Key(namespace, module, caseName string) string {
	return namespace + "::" + module + "::" + caseName
}

// NamespaceKey builds the rule key covering every module under a
// namespace.
func NamespaceKey(namespace string) string {
	return namespace + "::" + Wildcard
}

// Table is an immutable set of skip rules keyed by fully-qualified
// target, valued by a human-readable reason. Construct once at
// startup; tests inject alternate tables instead of mutating one.
type Table struct {
	rules map[string]string
}

// NewTable copies rules into a Table. A nil map yields an empty table
// that never skips.
func NewTable(rules map[string]string) *Table {
	t := &Table{rules: make(map[string]string, len(rules))}
	for k, v := range rules {
		t.rules[strings.TrimSpace(k)] = v
	}
	return t
}

// Len reports how many rules the table holds.
func (t *Table) Len() int { return len(t.rules) }

// Lookup resolves the skip reason for one case. Precedence: exact
// case, then module wildcard, then namespace wildcard; first match
// wins. ok is false when no rule applies and the case emits normally.
func (t *Table) Lookup(namespace, module, caseName string) (reason string, ok bool) {
	for _, k := range []string{
		Key(namespace, module, caseName),
		Key(namespace, module, Wildcard),
		NamespaceKey(namespace),
	} {
		if r, hit := t.rules[k]; hit {
			return r, true
		}
	}
	return "", false
}

// ModuleReason resolves the wildcard-tier reason covering a whole
// module, ignoring exact-case rules. The emitter uses it to label a
// module that ended up fully skipped.
func (t *Table) ModuleReason(namespace, module string) (reason string, ok bool) {
	if r, hit := t.rules[Key(namespace, module, Wildcard)]; hit {
		return r, true
	}
	if r, hit := t.rules[NamespaceKey(namespace)]; hit {
		return r, true
	}
	return "", false
}
