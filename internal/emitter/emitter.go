// Package emitter renders parsed spec documents into Go test modules.
// One document becomes one file: a testify suite whose methods are
// compiled from the document's cases, placed in a package tree
// mirroring the spec tree. Every emitted file is parsed in-process
// before the build may succeed.
package emitter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"specgen/internal/actions"
	"specgen/internal/golit"
	"specgen/internal/naming"
	"specgen/internal/output"
	"specgen/internal/report"
	"specgen/internal/skip"
	"specgen/internal/spec"
	"specgen/internal/validate"
)

// defaultProvenance is the URL pattern behind the See header line.
// First slot takes the major.minor spec version, second the
// document's relative path.
const defaultProvenance = "https://github.com/specgen/spec-archive/blob/%s/%s"

// Options configure one Emitter.
type Options struct {
	// OutputRoot is cleared and recreated at the start of every
	// build.
	OutputRoot string
	// Suite is the display name of the spec collection: title-cased
	// it roots the namespace, lowercased it becomes the group tag.
	Suite string
	// Version is the spec tree's semantic version. Provenance links
	// keep only major.minor.
	Version string
	// Provenance overrides the default URL pattern. It needs exactly
	// two %s slots, version then path.
	Provenance string
	// TemplateDir points at an override template directory; empty
	// means the built-in templates.
	TemplateDir string
}

// Emitter compiles spec documents sequentially, in the order the
// loader discovered them. It owns the output tree and the counters
// for the duration of one Build call.
type Emitter struct {
	opts    Options
	root    string // namespace root segment derived from the suite
	group   string // lowercase group tag
	deriver *naming.Deriver
	skips   *skip.Table
	bridge  actions.Compiler
	tmpl    *TemplateSet
	log     *zap.Logger
}

// New validates options and loads templates. Template and option
// problems surface here as ConfigurationError, before any build
// starts.
func New(opts Options, deriver *naming.Deriver, skips *skip.Table, bridge actions.Compiler, log *zap.Logger) (*Emitter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Suite == "" {
		return nil, &ConfigurationError{Path: "suite", Err: errors.New("suite name must not be empty")}
	}
	if opts.Provenance == "" {
		opts.Provenance = defaultProvenance
	}
	if strings.Count(opts.Provenance, "%s") != 2 {
		return nil, &ConfigurationError{Path: "provenance", Err: errors.New("pattern needs exactly two %s slots")}
	}
	tmpl, err := LoadTemplates(opts.TemplateDir)
	if err != nil {
		return nil, err
	}
	return &Emitter{
		opts:    opts,
		root:    naming.SuiteSegment(opts.Suite),
		group:   strings.ToLower(opts.Suite),
		deriver: deriver,
		skips:   skips,
		bridge:  bridge,
		tmpl:    tmpl,
		log:     log,
	}, nil
}

// Build resets the output root, compiles every document in order and
// returns the aggregate report. Any error aborts the build; files
// already persisted in this run stay on disk.
func (e *Emitter) Build(docs []*spec.Document) (*report.Build, error) {
	start := time.Now()
	if err := output.Reset(e.opts.OutputRoot); err != nil {
		return nil, err
	}

	outPath := e.opts.OutputRoot
	if abs, err := filepath.Abs(outPath); err == nil {
		outPath = abs
	}
	b := &report.Build{
		BuildID:    uuid.NewString(),
		Suite:      e.opts.Suite,
		Version:    e.opts.Version,
		OutputPath: outPath,
	}

	for _, doc := range docs {
		tests, skipped, err := e.emitDocument(doc)
		if err != nil {
			return nil, err
		}
		b.FilesGenerated++
		b.TestsGenerated += tests
		b.TestsSkipped += skipped
	}

	b.Duration = time.Since(start)
	e.log.Info("build finished",
		zap.String("build_id", b.BuildID),
		zap.Int("files", b.FilesGenerated),
		zap.Int("tests", b.TestsGenerated),
		zap.Int("skipped", b.TestsSkipped),
		zap.Duration("took", b.Duration))
	return b, nil
}

// casePlan is the per-case emission decision for one document.
type casePlan struct {
	block  spec.Block
	method string
	reason string
	skip   bool
}

func (e *Emitter) emitDocument(doc *spec.Document) (tests, skipped int, err error) {
	ns := e.deriver.Namespace(doc.RelPath)
	module := e.deriver.ModuleName(doc.RelPath)
	runner := naming.RunnerName(module)
	fullNS := e.root
	if ns != "" {
		fullNS = e.root + "/" + ns
	}
	pkg := packageName(fullNS)
	path := filepath.Join(e.opts.OutputRoot, filepath.FromSlash(fullNS), naming.FileName(module))

	common := []string{
		SentinelPackage, pkg,
		SentinelNamespace, fullNS,
		SentinelModule, module,
		SentinelRunner, runner,
		SentinelGroup, e.group,
		SentinelSee, e.provenance(doc.RelPath),
		SentinelYAMLFile, doc.RelPath,
	}

	cases := doc.Cases()
	tests = len(cases)

	plans := make([]casePlan, 0, len(cases))
	used := make(map[string]bool, len(cases))
	allSkipped := len(cases) > 0
	for _, c := range cases {
		method := naming.MethodName(c.Name)
		for used[method] {
			method += "_"
		}
		used[method] = true

		reason, hit := e.skips.Lookup(ns, module, c.Name)
		if hit {
			skipped++
		} else {
			allSkipped = false
		}
		plans = append(plans, casePlan{block: c, method: method, reason: reason, skip: hit})
	}

	if allSkipped {
		reason, ok := e.skips.ModuleReason(ns, module)
		if !ok {
			reason = plans[0].reason
		}
		text := render(e.tmpl.SkippedModule, combine(common, SentinelReason, golit.Render(reason)))
		return tests, skipped, e.persist(path, pkg, runner, "", text)
	}

	var methods []string
	if st := doc.Setup(); st != nil {
		m, err := e.renderLive("SetupTest", string(spec.BlockSetup), st.Actions, common)
		if err != nil {
			return 0, 0, err
		}
		methods = append(methods, m)
	}
	for _, p := range plans {
		if p.skip {
			methods = append(methods, render(e.tmpl.SkippedCase, combine(common,
				SentinelMethod, p.method,
				SentinelCase, p.block.Name,
				SentinelReason, golit.Render(p.reason))))
			continue
		}
		m, err := e.renderLive(p.method, p.block.Name, p.block.Actions, common)
		if err != nil {
			return 0, 0, err
		}
		methods = append(methods, m)
	}
	if td := doc.Teardown(); td != nil {
		m, err := e.renderLive("TearDownTest", string(spec.BlockTeardown), td.Actions, common)
		if err != nil {
			return 0, 0, err
		}
		methods = append(methods, m)
	}

	text := render(e.tmpl.Module, combine(common, SentinelBody, strings.Join(methods, "\n")))
	return tests, skipped, e.persist(path, pkg, runner, module, text)
}

// renderLive compiles a block's actions through the bridge and wraps
// them in the case template. Lifecycle blocks pass their block kind
// as the case name.
func (e *Emitter) renderLive(method, caseName string, seq []spec.ActionRecord, common []string) (string, error) {
	body, err := e.bridge.Compile(caseName, seq)
	if err != nil {
		return "", err
	}
	return render(e.tmpl.Case, combine(common,
		SentinelMethod, method,
		SentinelCase, caseName,
		SentinelBody, body)), nil
}

// persist runs the rewrite pass, writes the module and immediately
// parses it back. A file that does not parse fails the whole build
// as a GenerationError naming the output path.
func (e *Emitter) persist(path, pkg, runner, suiteType string, text string) error {
	text = rewriteInterpolations(text)
	text = strings.TrimRight(text, "\n") + "\n"
	if err := output.Write(path, []byte(text)); err != nil {
		return err
	}
	if err := validate.Check(filepath.Base(path), []byte(text), validate.Expect{
		Package: pkg,
		Runner:  runner,
		Suite:   suiteType,
	}); err != nil {
		return &GenerationError{Path: path, Err: err}
	}
	e.log.Debug("module emitted", zap.String("path", path))
	return nil
}

func (e *Emitter) provenance(rel string) string {
	return fmt.Sprintf(e.opts.Provenance, minorVersion(e.opts.Version), rel)
}

// minorVersion reduces a semantic version to major.minor. An empty
// version falls back to main so links stay resolvable.
func minorVersion(v string) string {
	if v == "" {
		return "main"
	}
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return v
	}
	return parts[0] + "." + parts[1]
}

// packageName lowercases the innermost namespace segment. Package
// names are identifiers, so a leading digit gets a prefix.
func packageName(fullNS string) string {
	segs := strings.Split(fullNS, "/")
	last := strings.ToLower(segs[len(segs)-1])
	if last == "" {
		return "generated"
	}
	if last[0] >= '0' && last[0] <= '9' {
		last = "x" + last
	}
	return last
}

// render substitutes sentinel tokens in one pass. Replaced values are
// never rescanned, so injected text cannot smuggle sentinels in.
func render(tmpl string, pairs []string) string {
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func combine(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}
