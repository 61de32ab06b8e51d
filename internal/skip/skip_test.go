package skip

import "testing"

func TestLookupPrecedence(t *testing.T) {
	table := NewTable(map[string]string{
		"Indices/GetMapping::_BasicTest::exact case": "exact reason",
		"Indices/GetMapping::_BasicTest::*":          "module reason",
		"Indices/GetMapping::*":                      "namespace reason",
	})

	tests := []struct {
		name       string
		namespace  string
		module     string
		caseName   string
		wantReason string
		wantOK     bool
	}{
		{"exact beats module wildcard", "Indices/GetMapping", "_BasicTest", "exact case", "exact reason", true},
		{"module wildcard beats namespace wildcard", "Indices/GetMapping", "_BasicTest", "other case", "module reason", true},
		{"namespace wildcard covers other modules", "Indices/GetMapping", "_OtherTest", "any case", "namespace reason", true},
		{"unrelated namespace not skipped", "Cluster/Health", "_BasicTest", "exact case", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := table.Lookup(tt.namespace, tt.module, tt.caseName)
			if ok != tt.wantOK || reason != tt.wantReason {
				t.Errorf("Lookup(%q, %q, %q) = (%q, %v), want (%q, %v)",
					tt.namespace, tt.module, tt.caseName, reason, ok, tt.wantReason, tt.wantOK)
			}
		})
	}
}

func TestNamespaceWildcardAlone(t *testing.T) {
	table := NewTable(map[string]string{
		"Snapshots::*": "snapshot backend unavailable",
	})

	for _, module := range []string{"_CreateTest", "_RestoreTest"} {
		reason, ok := table.Lookup("Snapshots", module, "whatever")
		if !ok || reason != "snapshot backend unavailable" {
			t.Errorf("module %s under skipped namespace: got (%q, %v)", module, reason, ok)
		}
	}
}

func TestModuleReason(t *testing.T) {
	table := NewTable(map[string]string{
		"A::_XTest::only this case": "case only",
		"B::_YTest::*":              "whole module",
	})

	if _, ok := table.ModuleReason("A", "_XTest"); ok {
		t.Error("exact-case rule must not produce a module reason")
	}
	reason, ok := table.ModuleReason("B", "_YTest")
	if !ok || reason != "whole module" {
		t.Errorf("ModuleReason(B, _YTest) = (%q, %v), want (whole module, true)", reason, ok)
	}
}

func TestEmptyTable(t *testing.T) {
	table := NewTable(nil)
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
	if _, ok := table.Lookup("Any", "_Test", "case"); ok {
		t.Error("empty table must never skip")
	}
}
