package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/FroogalTheDragon/devclean/internal/scanner"
)

type progressMsg scanner.Progress

type progressModel struct {
	spinner  spinner.Model
	root     string
	progress scanner.Progress
	done     bool
}

func newProgressModel(root string) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)
	return progressModel{spinner: s, root: root}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.progress = scanner.Progress(msg)
		if m.progress.Phase == scanner.PhaseDone {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), MutedStyle().Render(describeProgress(m.root, m.progress)))
}

func describeProgress(root string, p scanner.Progress) string {
	switch p.Phase {
	case scanner.PhaseAnalyze:
		return fmt.Sprintf("Measuring artifacts… %s/%s projects",
			humanize.Comma(int64(p.Analyzed)), humanize.Comma(int64(p.Candidates)))
	default:
		return fmt.Sprintf("Scanning %s… %s directories, %s projects",
			root, humanize.Comma(int64(p.Dirs)), humanize.Comma(int64(p.Candidates)))
	}
}

// ScanProgress drives a spinner on a terminal while a scan runs.
type ScanProgress struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// StartScanProgress starts the spinner on out. It never reads input.
func StartScanProgress(root string, out io.Writer) *ScanProgress {
	sp := &ScanProgress{
		program: tea.NewProgram(newProgressModel(root), tea.WithOutput(out), tea.WithInput(nil)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(sp.done)
		_, _ = sp.program.Run()
	}()
	return sp
}

// Update forwards a progress event. Safe for concurrent use, so it can be
// passed directly as a scanner.ProgressFunc.
func (sp *ScanProgress) Update(p scanner.Progress) {
	sp.program.Send(progressMsg(p))
}

// Stop ends the spinner and waits for the terminal to be restored.
func (sp *ScanProgress) Stop() {
	sp.once.Do(func() {
		sp.program.Quit()
		<-sp.done
	})
}
