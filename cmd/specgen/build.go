package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"specgen/internal/actions"
	"specgen/internal/config"
	"specgen/internal/emitter"
	"specgen/internal/naming"
	"specgen/internal/report"
	"specgen/internal/skip"
	"specgen/internal/spec"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the spec tree into Go test modules",
	Long: `Discovers every .yml/.yaml document under the spec root, derives
namespaces and module names, applies the skip table and writes one Go
test file per document under the output root. The output root is
cleared first; every emitted file is parsed before the build counts as
done.`,
	RunE: runBuild,
}

func init() {
	addPipelineFlags(buildCmd)
}

// addPipelineFlags registers the config-overriding flags shared by
// build and watch.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("specs", "", "Spec tree root (overrides config)")
	cmd.Flags().String("output", "", "Output root for generated modules (overrides config)")
	cmd.Flags().String("templates", "", "Template override directory (overrides config)")
	cmd.Flags().String("suite", "", "Suite display name (overrides config)")
	cmd.Flags().String("spec-version", "", "Spec tree version (overrides config)")
	cmd.Flags().String("provenance", "", "See-link URL pattern with two %s slots (overrides config)")
}

// loadPipelineConfig resolves the effective configuration: file and
// environment first, then explicit flags on top.
func loadPipelineConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	for flag, dst := range map[string]*string{
		"specs":        &cfg.Specs,
		"output":       &cfg.Output,
		"templates":    &cfg.Templates,
		"suite":        &cfg.Suite,
		"spec-version": &cfg.Version,
		"provenance":   &cfg.Provenance,
	} {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
		}
	}
	return cfg, nil
}

// runPipeline executes one full build: discover, derive, render,
// persist, validate.
func runPipeline(cfg *config.Config, log *zap.Logger) (*report.Build, error) {
	docs, err := spec.NewLoader(cfg.Specs, cfg.Excludes, log).Load()
	if err != nil {
		return nil, err
	}

	reserved := cfg.Reserved
	if len(reserved) == 0 {
		reserved = naming.DefaultReserved()
	}

	em, err := emitter.New(emitter.Options{
		OutputRoot:  cfg.Output,
		Suite:       cfg.Suite,
		Version:     cfg.Version,
		Provenance:  cfg.Provenance,
		TemplateDir: cfg.Templates,
	}, naming.NewDeriver(reserved), skip.NewTable(cfg.Skips), actions.NewGo(), log)
	if err != nil {
		return nil, err
	}

	return em.Build(docs)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}

	rep, err := runPipeline(cfg, logger)
	if err != nil {
		return err
	}

	printBuildReport(rep)
	return nil
}

func printBuildReport(rep *report.Build) {
	fmt.Println(styleTitle.Render("build complete"))
	fmt.Println(summaryLine("  suite", rep.Suite))
	fmt.Println(summaryLine("  version", rep.Version))
	fmt.Println(summaryLine("  output", rep.OutputPath))
	fmt.Println(summaryLine("  files", fmt.Sprintf("%d", rep.FilesGenerated)))
	fmt.Println(summaryLine("  tests", fmt.Sprintf("%d", rep.TestsGenerated)))
	if rep.TestsSkipped > 0 {
		fmt.Println(summaryLine("  skipped", styleWarn.Render(fmt.Sprintf("%d", rep.TestsSkipped))))
	}
	fmt.Println(summaryLine("  took", rep.Duration.Round(time.Millisecond).String()))
	fmt.Println(styleMuted.Render("  build " + rep.BuildID))
}
