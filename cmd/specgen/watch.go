package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"specgen/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild whenever the spec tree changes",
	Long: `Runs one build, then keeps watching the spec root and rebuilds on
every settled burst of changes. Build failures are reported and
watching continues. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	addPipelineFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Settle window before a rebuild")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")

	rebuild := func(context.Context) error {
		rep, err := runPipeline(cfg, logger)
		if err != nil {
			fmt.Println(styleWarn.Render("build failed: " + err.Error()))
			return err
		}
		fmt.Printf("%s %s\n", styleTitle.Render("rebuilt"), styleMuted.Render(rep.Summary()))
		return nil
	}

	// First build. In watch mode a failure is something to fix and
	// save, not a reason to exit.
	if err := rebuild(cmd.Context()); err != nil {
		logger.Error("initial build failed", zap.Error(err))
	}

	w, err := watch.New(cfg.Specs, debounce, rebuild, logger)
	if err != nil {
		return fmt.Errorf("start watching %s: %w", cfg.Specs, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println(styleMuted.Render(fmt.Sprintf("watching %s (debounce %s)", cfg.Specs, debounce.Round(time.Millisecond))))
	return w.Run(ctx)
}
