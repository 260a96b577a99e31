package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geolab/footing/internal/batch"
)

// ProgressBar reports batch progress.
type ProgressBar interface {
	// Set moves the bar to done of total rows.
	Set(done, total int)
	// Done completes the bar.
	Done()
}

// NewProgressBar returns an animated bar when attached to a terminal and a
// line-per-row writer otherwise.
func NewProgressBar(theme *Theme, hm *HeadlessManager, title string, w io.Writer) ProgressBar {
	if hm.IsHeadless() || theme.NoColor {
		return &lineProgress{title: title, w: w}
	}
	return newAnimatedProgress(theme, title, w)
}

// BatchProgress adapts a ProgressBar to batch.Run.
func BatchProgress(bar ProgressBar) batch.ProgressFunc {
	return bar.Set
}

// lineProgress writes "[done/total] title" lines.
type lineProgress struct {
	title string
	w     io.Writer
	done  int
	total int
}

func (b *lineProgress) Set(done, total int) {
	b.done, b.total = done, total
	_, _ = fmt.Fprintf(b.w, "[%d/%d] %s\n", done, total, b.title)
}

func (b *lineProgress) Done() {
	if b.total == 0 {
		_, _ = fmt.Fprintf(b.w, "[0/0] %s\n", b.title)
	}
}

type progressSetMsg struct{ done, total int }

type progressDoneMsg struct{}

type progressModel struct {
	bar   progress.Model
	title string
	done  int
	total int
	quit  bool
}

func newProgressModel(theme *Theme, title string) progressModel {
	bar := progress.New(
		progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary),
		progress.WithWidth(40),
	)
	return progressModel{bar: bar, title: title}
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressSetMsg:
		m.done, m.total = msg.done, msg.total
		return m, nil
	case progressDoneMsg:
		m.done = m.total
		m.quit = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.quit {
		return ""
	}
	return m.bar.ViewAs(m.ratio()) + fmt.Sprintf(" [%d/%d] %s\n", m.done, m.total, m.title)
}

func (m progressModel) ratio() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// animatedProgress drives a bubbles progress bar from a background program.
type animatedProgress struct {
	program *tea.Program
	once    sync.Once
}

func newAnimatedProgress(theme *Theme, title string, w io.Writer) *animatedProgress {
	p := tea.NewProgram(newProgressModel(theme, title), tea.WithOutput(w))
	go func() {
		_, _ = p.Run()
	}()
	return &animatedProgress{program: p}
}

func (b *animatedProgress) Set(done, total int) {
	b.program.Send(progressSetMsg{done: done, total: total})
}

func (b *animatedProgress) Done() {
	b.once.Do(func() {
		b.program.Send(progressDoneMsg{})
		b.program.Wait()
	})
}
