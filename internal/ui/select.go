package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FroogalTheDragon/devclean/internal/core"
	"github.com/FroogalTheDragon/devclean/internal/scanner"
)

// ─── Model ───────────────────────────────────────────────────────────────────

// SelectModel is a bubbletea multi-select over scanned projects, with an
// optional confirmation step before it accepts.
type SelectModel struct {
	projects   []scanner.ScannedProject
	selected   map[int]bool
	cursor     int
	offset     int
	height     int
	confirm    bool // ask y/n before accepting
	confirming bool
	accepted   bool
	quitting   bool
}

// NewSelectModel builds a selector. With confirm set, pressing enter asks
// for confirmation before the selection is accepted.
func NewSelectModel(projects []scanner.ScannedProject, confirm bool) SelectModel {
	return SelectModel{
		projects: projects,
		selected: make(map[int]bool),
		height:   24,
		confirm:  confirm,
	}
}

func (m SelectModel) Init() tea.Cmd {
	return nil
}

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			switch msg.String() {
			case "y", "Y":
				m.accepted = true
				return m, tea.Quit
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			default:
				m.confirming = false
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
			}

		case "down", "j":
			if m.cursor < len(m.projects)-1 {
				m.cursor++
				m.ensureVisible()
			}

		case " ", "x":
			if len(m.projects) > 0 {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}

		case "a":
			all := len(m.Selected()) < len(m.projects)
			for i := range m.projects {
				m.selected[i] = all
			}

		case "enter":
			if len(m.projects) == 0 {
				m.quitting = true
				return m, tea.Quit
			}
			if len(m.Selected()) == 0 {
				m.selected[m.cursor] = true
			}
			if m.confirm {
				m.confirming = true
				return m, nil
			}
			m.accepted = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// Selected returns the chosen projects in list order.
func (m SelectModel) Selected() []scanner.ScannedProject {
	idx := make([]int, 0, len(m.selected))
	for i, on := range m.selected {
		if on {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)

	out := make([]scanner.ScannedProject, 0, len(idx))
	for _, i := range idx {
		out = append(out, m.projects[i])
	}
	return out
}

// Accepted reports whether the user confirmed the selection.
func (m SelectModel) Accepted() bool {
	return m.accepted
}

func (m SelectModel) selectedBytes() int64 {
	var total int64
	for _, p := range m.Selected() {
		total += p.TotalCleanableBytes
	}
	return total
}

func (m *SelectModel) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m SelectModel) viewportHeight() int {
	h := m.height - 6 // title, blank, summary, hints, padding
	if h < 1 {
		h = 1
	}
	return h
}

// ─── View ────────────────────────────────────────────────────────────────────

func (m SelectModel) View() string {
	if m.quitting || m.accepted {
		return ""
	}

	var s strings.Builder
	s.WriteString(TitleStyle().Render(IconDiamond + " Select projects to clean"))
	s.WriteString("\n\n")

	vh := m.viewportHeight()
	for i := m.offset; i < len(m.projects) && i < m.offset+vh; i++ {
		s.WriteString(m.renderRow(i))
		s.WriteString("\n")
	}
	if len(m.projects) > vh {
		s.WriteString(MutedStyle().Italic(true).Render(
			fmt.Sprintf("  ── %d/%d projects ──", min(m.offset+vh, len(m.projects)), len(m.projects))))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	summary := fmt.Sprintf("  %d selected, %s", len(m.Selected()), core.FormatSize(m.selectedBytes()))
	s.WriteString(lipgloss.NewStyle().Foreground(ColorTextDim).Render(summary))
	s.WriteString("\n")

	if m.confirming {
		s.WriteString(lipgloss.NewStyle().Foreground(ColorError).Bold(true).Render(
			fmt.Sprintf("  %s Delete artifacts of %d project(s)? [y/N]", IconWarning, len(m.Selected()))))
		return s.String()
	}

	hints := []string{"↑↓ move", "space toggle", "a all", "enter clean", "q quit"}
	s.WriteString(HintBarStyle().Render("  " + strings.Join(hints, " "+IconPipe+" ")))
	return s.String()
}

func (m SelectModel) renderRow(i int) string {
	p := m.projects[i]

	cursor := "  "
	if i == m.cursor {
		cursor = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render(IconBlock) + " "
	}
	check := MutedStyle().Render(IconEmpty)
	if m.selected[i] {
		check = lipgloss.NewStyle().Foreground(ColorSuccess).Render(IconSelected)
	}

	name := lipgloss.NewStyle().Foreground(ColorCoral).Bold(i == m.cursor).Render(p.Name)
	kind := lipgloss.NewStyle().Foreground(ColorSecondary).Render(p.Kind.String())
	size := lipgloss.NewStyle().Foreground(ColorWarning).Render(core.FormatSize(p.TotalCleanableBytes))
	targets := MutedStyle().Render(strings.Join(p.TargetNames(), ", "))

	return fmt.Sprintf("%s%s %s  %s  %s  %s", cursor, check, name, kind, size, targets)
}

// ─── Runner ──────────────────────────────────────────────────────────────────

// RunSelect shows the selector on the given terminal streams and returns
// the accepted projects, or nil when the user quit.
func RunSelect(projects []scanner.ScannedProject, confirm bool, in io.Reader, out io.Writer) ([]scanner.ScannedProject, error) {
	p := tea.NewProgram(NewSelectModel(projects, confirm), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}
	m, ok := final.(SelectModel)
	if !ok || !m.Accepted() {
		return nil, nil
	}
	return m.Selected(), nil
}
