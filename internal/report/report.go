// Package report carries the aggregate result of one build back to
// the caller. The compiler core never prints or exits; presentation
// and exit codes belong to the CLI.
package report

import (
	"fmt"
	"time"
)

// Build is the sole return value of a successful build.
type Build struct {
	// BuildID labels one build in logs and reports.
	BuildID string
	// Suite is the display name the build was compiled for.
	Suite string
	// Version is the spec version embedded in provenance links.
	Version string
	// OutputPath is the resolved output root holding the tree.
	OutputPath string
	// FilesGenerated counts emitted modules, one per spec document.
	FilesGenerated int
	// TestsGenerated counts case blocks across all documents; skipped
	// cases count too.
	TestsGenerated int
	// TestsSkipped counts the cases emitted as disabled stubs.
	TestsSkipped int
	Duration     time.Duration
}

// Summary renders the one-line form used in logs.
func (b *Build) Summary() string {
	return fmt.Sprintf("generated %d files with %d tests (%d skipped) under %s in %s",
		b.FilesGenerated, b.TestsGenerated, b.TestsSkipped, b.OutputPath, b.Duration.Round(time.Millisecond))
}
