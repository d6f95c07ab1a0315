package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/op"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type progressMsg int64

type doneMsg struct {
	err error
	n   int64
}

type progressModel struct {
	err    error
	bar    progress.Model
	total  int64
	copied int64
	done   bool
}

func newProgressModel(total int64) *progressModel {
	return &progressModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		total: total,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return nil
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case progressMsg:
		m.copied = int64(msg)
	case doneMsg:
		m.copied = msg.n
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pollcat"))
	b.WriteString("\n\n")

	if m.total > 0 {
		b.WriteString(m.bar.ViewAs(float64(m.copied) / float64(m.total)))
		b.WriteString(" ")
	}
	b.WriteString(countStyle.Render(formatBytes(m.copied, m.total)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.done:
		b.WriteString(resultStyle.Render("done"))
		b.WriteString("\n")
	default:
		b.WriteString(helpStyle.Render("q quit"))
		b.WriteString("\n")
	}
	return b.String()
}

func formatBytes(n, total int64) string {
	if total > 0 {
		return fmt.Sprintf("%d / %d bytes", n, total)
	}
	return fmt.Sprintf("%d bytes", n)
}

// countingWriter reports the running total after every accepted write.
type countingWriter struct {
	pollio.Writer
	report func(int64)
	n      int64
}

func (w *countingWriter) PollWrite(cx *pollio.Context, p []byte) pollio.Poll[int] {
	res := w.Writer.PollWrite(cx, p)
	if res.IsReady() && res.Err() == nil {
		w.n += int64(res.Value())
		w.report(w.n)
	}
	return res
}

func runInteractive(ctx context.Context, src pollio.Reader, dst pollio.Writer, total int64, bufSize int) (int64, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(total), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	sink := &countingWriter{
		Writer: dst,
		report: func(n int64) { p.Send(progressMsg(n)) },
	}

	var copied int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := pollio.Block[int64](gctx, op.NewCopy(src, sink).WithBufferSize(bufSize))
		copied = n
		p.Send(doneMsg{n: n, err: err})
		return err
	})
	g.Go(func() error {
		_, err := p.Run()
		// the view quitting early abandons the copy
		cancel()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	err := g.Wait()
	return copied, err
}
