package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/cache"
	"github.com/matzehuels/spritetower/pkg/naming"
	"github.com/matzehuels/spritetower/pkg/pipeline"
	"github.com/matzehuels/spritetower/pkg/render"
	"github.com/matzehuels/spritetower/pkg/render/stylesheet"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [configuration]",
		Short: "Browse the packed icons of a configuration",
		Long: `Pack a configuration and browse its icons: name, enum identifier, class
and placement in the atlas, plus the background position every stylesheet
rule assigns to the selected icon.

Use --plain for a static table, for example when piping the output.`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return c.completeConfigNames(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive browser")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, name string, plain bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	pc, err := cfg.PipelineConfiguration(name)
	if err != nil {
		return err
	}
	files, err := pipeline.ReadFolder(pc.Folder)
	if err != nil {
		return fmt.Errorf("read icons for %s: %w", name, err)
	}

	// The atlas itself is never cached, so inspect always packs.
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)
	res, err := runner.Execute(ctx, pc, files, cfg.PipelineOptions())
	if err != nil {
		return fmt.Errorf("inspect %s: %w", name, err)
	}

	rows := iconRows(res.Atlas, pc)
	if plain {
		printIconTable(c.Out, rows)
		fmt.Fprintln(c.Out, statsLine(res.Stats, false))
		return nil
	}

	model := NewIconListModel(name, rows, res.Stats)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// Icon Rows
// =============================================================================

// iconRow describes one placed icon.
type iconRow struct {
	Name       string
	Identifier string
	Class      string
	X, Y, W, H float64

	// Positions holds "selector: x y" per stylesheet rule.
	Positions []string
}

func iconRows(a *atlas.Atlas, pc pipeline.Configuration) []iconRow {
	geoms := make([]stylesheet.Geometry, len(pc.Stylesheets))
	for i, r := range pc.Stylesheets {
		geoms[i] = stylesheet.Resolve(a, r)
	}

	rows := make([]iconRow, len(a.Icons))
	for i, ic := range a.Icons {
		row := iconRow{
			Name:       ic.Name,
			Identifier: naming.Identifier(ic.Name),
			Class:      pc.ClassPrefix + ic.Name,
			X:          ic.X,
			Y:          ic.Y,
			W:          ic.Width(),
			H:          ic.Height(),
		}
		for j, g := range geoms {
			u := string(g.Unit)
			row.Positions = append(row.Positions, fmt.Sprintf("%s: %s %s",
				pc.Stylesheets[j].Selector, render.Length(-g.X(ic.X), u), render.Length(-g.Y(ic.Y), u)))
		}
		rows[i] = row
	}
	return rows
}

var iconTableHeaders = []string{"Name", "Identifier", "Class", "X", "Y", "Size"}

func (r iconRow) cells() []string {
	return []string{r.Name, r.Identifier, r.Class, render.Num(r.X), render.Num(r.Y), render.Num(r.W) + "×" + render.Num(r.H)}
}

// printIconTable writes rows as a bordered table.
func printIconTable(w io.Writer, rows []iconRow) {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.cells()
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(iconTableHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.Render())
}
