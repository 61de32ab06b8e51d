package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"specgen/internal/naming"
	"specgen/internal/skip"
	"specgen/internal/spec"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered spec documents without building",
	Long: `Shows every document the build would compile: its derived namespace
and module name, case count and skip status. Nothing is written.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("specs", "", "Spec tree root (overrides config)")
	listCmd.Flags().String("suite", "", "Suite display name (overrides config)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}

	docs, err := spec.NewLoader(cfg.Specs, cfg.Excludes, logger).Load()
	if err != nil {
		return err
	}

	reserved := cfg.Reserved
	if len(reserved) == 0 {
		reserved = naming.DefaultReserved()
	}
	deriver := naming.NewDeriver(reserved)
	skips := skip.NewTable(cfg.Skips)
	root := naming.SuiteSegment(cfg.Suite)

	rows := make([][]string, 0, len(docs))
	totalCases := 0
	for _, doc := range docs {
		ns := deriver.Namespace(doc.RelPath)
		module := deriver.ModuleName(doc.RelPath)
		fullNS := root
		if ns != "" {
			fullNS = root + "/" + ns
		}

		cases := doc.Cases()
		totalCases += len(cases)
		skipped := 0
		for _, c := range cases {
			if _, hit := skips.Lookup(ns, module, c.Name); hit {
				skipped++
			}
		}

		status := "-"
		switch {
		case len(cases) > 0 && skipped == len(cases):
			status = "all"
		case skipped > 0:
			status = fmt.Sprintf("%d/%d", skipped, len(cases))
		}

		rows = append(rows, []string{
			doc.RelPath,
			fullNS,
			module,
			fmt.Sprintf("%d", len(cases)),
			status,
		})
	}

	fmt.Print(renderTable([]string{"FILE", "NAMESPACE", "MODULE", "CASES", "SKIPPED"}, rows))
	fmt.Println(styleMuted.Render(fmt.Sprintf("%d documents, %d cases", len(docs), totalCases)))
	return nil
}
