package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritetower/pkg/config"
	"github.com/matzehuels/spritetower/pkg/pipeline"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		names   []string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate sprite atlases for every configuration",
		Long: `Generate sprite atlases for every configuration in the project file.

For each configuration the icon folder is read (not recursively), packed into
one composite SVG and written to output_dir together with its stylesheet and
runtime module:

  <output_dir>/sprite-<hash>.svg
  <output_dir>/<name>.css
  <output_dir>/<name>.js
  <output_dir>/<name>.bundle.js
  <dts_output_dir>/<name>.d.ts

Files whose content did not change are left untouched. Results are cached, so
regenerating an unchanged folder is cheap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), names, noCache, refresh)
		},
	}

	cmd.Flags().StringSliceVarP(&names, "config-name", "n", nil, "only generate these configurations (repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results but store fresh ones")
	_ = cmd.RegisterFlagCompletionFunc("config-name", c.completeConfigNames)

	return cmd
}

// runGenerate generates the named configurations, or all of them.
func (c *CLI) runGenerate(ctx context.Context, names []string, noCache, refresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		names = cfg.Names()
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := cfg.PipelineOptions()
	opts.Refresh = refresh
	for _, name := range names {
		if _, err := c.generate(ctx, runner, cfg, name, opts); err != nil {
			return err
		}
	}
	return nil
}

// generate runs one configuration and writes its outputs.
func (c *CLI) generate(ctx context.Context, runner *pipeline.Runner, cfg *config.Config, name string, opts pipeline.Options) (*pipeline.Result, error) {
	pc, err := cfg.PipelineConfiguration(name)
	if err != nil {
		return nil, err
	}
	files, err := pipeline.ReadFolder(pc.Folder)
	if err != nil {
		return nil, fmt.Errorf("read icons for %s: %w", name, err)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Packing %s...", name))
	spinner.Start()

	res, err := runner.Execute(ctx, pc, files, opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Generation of %s failed", name))
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	spinner.Stop()

	outputs := outputFiles(cfg, name, res.Artifacts)
	written, err := writeOutputs(outputs)
	if err != nil {
		return nil, err
	}

	prog.done(fmt.Sprintf("configuration %s contains %d/%d sprites", name, res.Stats.Icons, res.Stats.Files))
	printSuccess("Generated %s", StyleHighlight.Render(name))
	for _, o := range outputs {
		printFile(o.Path, o.written)
	}
	printStats(res.Stats, res.CacheHit)
	for _, d := range res.Diagnostics {
		printWarning("%s", d)
	}
	c.Logger.Debug("outputs written", "config", name, "written", written, "unchanged", len(outputs)-written)
	return res, nil
}

// =============================================================================
// Output Files
// =============================================================================

// outputFile is one file produced for a configuration.
type outputFile struct {
	Path    string
	Data    []byte
	written bool
}

// outputFiles lays out the artifacts of configuration name on disk.
func outputFiles(cfg *config.Config, name string, art pipeline.Artifacts) []outputFile {
	return []outputFile{
		{Path: filepath.Join(cfg.OutputDir, art.AssetName), Data: art.SVG},
		{Path: filepath.Join(cfg.OutputDir, name+".css"), Data: []byte(art.CSS)},
		{Path: filepath.Join(cfg.OutputDir, name+".js"), Data: []byte(art.Runtime)},
		{Path: filepath.Join(cfg.OutputDir, name+".bundle.js"), Data: []byte(art.Bundle)},
		{Path: filepath.Join(cfg.DTSOutputDir, name+".d.ts"), Data: []byte(art.Declaration)},
	}
}

// writeOutputs writes every file whose content differs from what is on disk
// and returns how many were written. Unchanged files keep their mtime so
// downstream watchers are not triggered.
func writeOutputs(files []outputFile) (int, error) {
	written := 0
	for i := range files {
		f := &files[i]
		if existing, err := os.ReadFile(f.Path); err == nil && bytes.Equal(existing, f.Data) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
			return written, fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(f.Path, f.Data, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", f.Path, err)
		}
		f.written = true
		written++
	}
	return written, nil
}
