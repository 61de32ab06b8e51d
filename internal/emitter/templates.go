package emitter

import (
	"os"
	"path/filepath"
)

// Sentinel tokens replaced during rendering. Templates are plain text
// with literal substitution; values landing in code positions are
// escaped by the caller before they get here.
const (
	SentinelPackage   = ":package"
	SentinelNamespace = ":namespace"
	SentinelModule    = ":module"
	SentinelRunner    = ":runner"
	SentinelGroup     = ":group"
	SentinelSee       = ":see"
	SentinelYAMLFile  = ":yaml_file"
	SentinelMethod    = ":method"
	SentinelBody      = ":body"
	SentinelReason    = ":reason"
	SentinelCase      = ":case"
)

// File names expected inside a template override directory. All four
// must be present.
const (
	moduleTemplateFile        = "module.tmpl"
	skippedModuleTemplateFile = "module_skipped.tmpl"
	caseTemplateFile          = "case.tmpl"
	skippedCaseTemplateFile   = "case_skipped.tmpl"
)

const defaultModule = `// Code generated by specgen. DO NOT EDIT.
//
// Source: :yaml_file
// See: :see

package :package

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"specgen/pkg/spectest"
)

// :module groups the generated :namespace cases from :yaml_file under
// the :group suite.
type :module struct {
	spectest.Suite
}

func :runner(t *testing.T) {
	suite.Run(t, new(:module))
}

:body`

const defaultSkippedModule = `// Code generated by specgen. DO NOT EDIT.
//
// Source: :yaml_file
// See: :see

package :package

import "testing"

// :runner covers :yaml_file; every case in it is disabled (:group
// suite).
func :runner(t *testing.T) {
	t.Skip(:reason)
}
`

const defaultCase = `// :method covers ":case".
func (s *:module) :method() {
:body}
`

const defaultSkippedCase = `// :method is disabled by the skip table.
func (s *:module) :method() {
	s.T().Skip(:reason)
}
`

// TemplateSet holds the four module-rendering templates as opaque
// text.
type TemplateSet struct {
	Module        string
	SkippedModule string
	Case          string
	SkippedCase   string
}

// DefaultTemplates returns the built-in set.
func DefaultTemplates() *TemplateSet {
	return &TemplateSet{
		Module:        defaultModule,
		SkippedModule: defaultSkippedModule,
		Case:          defaultCase,
		SkippedCase:   defaultSkippedCase,
	}
}

// LoadTemplates reads a template set from dir, or returns the
// built-in set when dir is empty. A missing or unreadable file is a
// ConfigurationError naming the path.
func LoadTemplates(dir string) (*TemplateSet, error) {
	if dir == "" {
		return DefaultTemplates(), nil
	}
	set := &TemplateSet{}
	for _, tf := range []struct {
		name string
		dst  *string
	}{
		{moduleTemplateFile, &set.Module},
		{skippedModuleTemplateFile, &set.SkippedModule},
		{caseTemplateFile, &set.Case},
		{skippedCaseTemplateFile, &set.SkippedCase},
	} {
		path := filepath.Join(dir, tf.name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigurationError{Path: path, Err: err}
		}
		*tf.dst = string(data)
	}
	return set, nil
}
