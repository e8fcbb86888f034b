package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/spritetower/pkg/pipeline"
	"github.com/matzehuels/spritetower/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// IconListModel - Interactive icon browser
// =============================================================================

// IconListModel is the bubbletea model for browsing the icons of an atlas.
type IconListModel struct {
	Config string
	Rows   []iconRow
	Stats  pipeline.Stats
	Cursor int
	Height int
	Offset int

	// Filter narrows the list to names containing it; typed after "/".
	Filter    string
	filtering bool
	visible   []int
}

// NewIconListModel creates a new icon list model.
func NewIconListModel(config string, rows []iconRow, stats pipeline.Stats) IconListModel {
	m := IconListModel{
		Config: config,
		Rows:   rows,
		Stats:  stats,
		Height: 15,
	}
	m.applyFilter()
	return m
}

func (m IconListModel) Init() tea.Cmd {
	return nil
}

func (m IconListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filtering {
			return m.updateFilter(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "/":
			m.filtering = true
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "home", "g":
			m.move(-len(m.visible))
		case "end", "G":
			m.move(len(m.visible))
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m IconListModel) updateFilter(msg tea.KeyMsg) IconListModel {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.filtering = false
	case tea.KeyBackspace:
		if m.Filter != "" {
			m.Filter = m.Filter[:len(m.Filter)-1]
		}
	case tea.KeyRunes:
		m.Filter += string(msg.Runes)
	}
	m.applyFilter()
	return m
}

func (m *IconListModel) applyFilter() {
	m.visible = m.visible[:0]
	for i, r := range m.Rows {
		if m.Filter == "" || strings.Contains(r.Name, m.Filter) {
			m.visible = append(m.visible, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m *IconListModel) move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.Cursor = max(0, min(len(m.visible)-1, m.Cursor+delta))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Selected returns the row under the cursor.
func (m IconListModel) Selected() (iconRow, bool) {
	if len(m.visible) == 0 {
		return iconRow{}, false
	}
	return m.Rows[m.visible[m.Cursor]], true
}

func (m IconListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Icons in " + m.Config))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  / filter  q quit"))
	b.WriteString("\n")
	if m.filtering || m.Filter != "" {
		b.WriteString(listNormalStyle.Render("filter: " + m.Filter))
		if m.filtering {
			b.WriteString(listDimStyle.Render("▏"))
		}
	}
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		r := m.Rows[m.visible[i]]
		line := fmt.Sprintf("%-28s %s", r.Name, listDimStyle.Render(r.Identifier))
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			list.WriteString(listNormalStyle.Render("  " + line))
		}
		list.WriteString("\n")
	}

	detail := "no icons"
	if r, ok := m.Selected(); ok {
		detail = iconDetail(r)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detailBoxStyle.Render(detail)))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.visible)), len(m.visible))))
	b.WriteString("\n")
	b.WriteString(statsLine(m.Stats, false))
	return b.String()
}

func iconDetail(r iconRow) string {
	lines := []string{
		StyleHighlight.Render(r.Class),
		fmt.Sprintf("enum      %s", r.Identifier),
		fmt.Sprintf("position  %s, %s", render.Num(r.X), render.Num(r.Y)),
		fmt.Sprintf("size      %s×%s", render.Num(r.W), render.Num(r.H)),
	}
	if len(r.Positions) > 0 {
		lines = append(lines, "", listDimStyle.Render("background-position"))
		lines = append(lines, r.Positions...)
	}
	return strings.Join(lines, "\n")
}
