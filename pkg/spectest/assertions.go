package spectest

// Match asserts that the value at path deep-equals want. Numbers
// compare by value across int and float64, matching how JSON decodes.
func (s *Suite) Match(path string, want any) {
	s.ensure()
	got, ok := s.lookup(path)
	s.Require().Truef(ok, "response has no value at %q", path)
	s.Require().Equal(normalize(s.resolveValue(want)), normalize(got), "match at %q", path)
}

// Length asserts the element count of the value at path. Strings
// count bytes, sequences and mappings count entries.
func (s *Suite) Length(path string, want int) {
	s.ensure()
	got, ok := s.lookup(path)
	s.Require().Truef(ok, "response has no value at %q", path)
	switch x := got.(type) {
	case string:
		s.Require().Lenf(x, want, "length at %q", path)
	case []any:
		s.Require().Lenf(x, want, "length at %q", path)
	case map[string]any:
		s.Require().Lenf(x, want, "length at %q", path)
	default:
		s.Require().Failf("length", "value at %q has no length (%T)", path, got)
	}
}

// True asserts that path holds a truthy value: present and neither
// false, zero, empty string nor null.
func (s *Suite) True(path string) {
	s.ensure()
	got, ok := s.lookup(path)
	s.Require().Truef(truthy(got, ok), "expected a true value at %q, got %v", path, got)
}

// False asserts the opposite of True; a missing path counts as
// false.
func (s *Suite) False(path string) {
	s.ensure()
	got, ok := s.lookup(path)
	s.Require().Falsef(truthy(got, ok), "expected a false value at %q, got %v", path, got)
}

// Compare asserts a numeric relation between the value at path and
// want. Supported ops: gt, gte, lt, lte.
func (s *Suite) Compare(path, op string, want float64) {
	s.ensure()
	got, ok := s.lookup(path)
	s.Require().Truef(ok, "response has no value at %q", path)
	num, ok := asFloat(got)
	s.Require().Truef(ok, "value at %q is not numeric: %v", path, got)

	var holds bool
	switch op {
	case "gt":
		holds = num > want
	case "gte":
		holds = num >= want
	case "lt":
		holds = num < want
	case "lte":
		holds = num <= want
	default:
		s.Require().Failf("compare", "unknown comparison %q", op)
	}
	s.Require().Truef(holds, "expected %v %s %v at %q", num, op, want, path)
}

// Set stashes the value at path under name for later {$name}
// placeholders.
func (s *Suite) Set(path, name string) {
	s.ensure()
	got, ok := s.lookup(path)
	s.Require().Truef(ok, "response has no value at %q to stash as %q", path, name)
	s.stash[name] = got
}
