package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritetower/pkg/watch"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		noCache  bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate configurations when their icon folders change",
		Long: `Generate every configuration once, then regenerate a configuration
whenever a file in its icon folder is created, written, renamed or removed.

A failing configuration is reported and retried on its next change; the
other configurations keep being watched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), noCache, debounce)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, noCache bool, debounce time.Duration) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	w, err := watch.New(watch.WithDebounce(debounce), watch.WithLogger(c.Logger))
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	opts := cfg.PipelineOptions()
	regenerate := func(name string) {
		if _, err := c.generate(ctx, runner, cfg, name, opts); err != nil {
			printError("%v", err)
		}
	}

	for _, pc := range cfg.PipelineConfigurations() {
		if err := w.Add(pc.Name, pc.Folder); err != nil {
			return fmt.Errorf("watch %s: %w", pc.Folder, err)
		}
		regenerate(pc.Name)
	}

	printInfo("Watching %d configurations %s", len(cfg.Configurations), StyleDim.Render("(ctrl+c to stop)"))
	err = w.Run(ctx, func(name string) {
		c.Logger.Debug("folder changed", "config", name)
		regenerate(name)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
