package emitter

import "regexp"

// legacyInterp matches the deprecated ${name} stash interpolation.
// Older spec trees still carry it inside paths and bodies, so it
// survives into rendered text through the action fragments.
var legacyInterp = regexp.MustCompile(`\$\{(\w+)\}`)

// rewriteInterpolations normalizes every ${name} occurrence in a
// rendered module to the {$name} form the runtime resolves, keeping
// the sigil with the name inside the braces. One pass over the whole
// text.
func rewriteInterpolations(text string) string {
	return legacyInterp.ReplaceAllString(text, `{$$$1}`)
}
