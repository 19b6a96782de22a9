package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"go.solidfoundation.dev/core/log"
)

// runWithProgress runs work in the background behind a bubbletea progress
// view, the same tea.Model-driven loop cmd/ansi_video_renderer uses to drive
// a view from a streaming source, except here the stream is log records
// rather than video frames: work's logger output is fanned out through a
// log.Publisher and rendered live as a scrolling tail beneath a spinner.
//
// If stdout is not a terminal, the view is skipped and work runs inline, so
// piping or redirecting solidctl's output behaves exactly as if this file
// did not exist.
func runWithProgress[T any](title string, work func() (T, error)) (T, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return work()
	}

	pub := log.NewPublisher()
	defer pub.Close()

	restore := attachPublisher(pub)
	defer restore()

	m := newProgressModel(title, pub.Subscribe())
	p := tea.NewProgram(m)

	var (
		result T
		workErr error
	)

	go func() {
		result, workErr = work()
		p.Send(progressDoneMsg{Err: workErr})
	}()

	if _, err := p.Run(); err != nil {
		var zero T
		return zero, err
	}

	return result, workErr
}

// attachPublisher installs a handler writing to pub as the default slog
// logger for the duration of a progress view, returning a func that
// restores the previous default.
func attachPublisher(pub *log.Publisher) func() {
	prev := slog.Default()

	handler, err := log.NewHandlerFromStrings(pub, "info", "logfmt")
	if err != nil {
		return func() {}
	}

	slog.SetDefault(slog.New(handler))

	return func() { slog.SetDefault(prev) }
}

const progressTailSize = 8

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type progressLogMsg struct{ line string }

type progressTickMsg struct{}

type progressDoneMsg struct{ Err error }

// progressModel renders a spinner and a scrolling tail of the most recent
// log lines published during a long-running solidctl operation.
type progressModel struct {
	title string
	sub   *log.Subscription
	lines []string
	frame int
	done  bool
	err   error
}

func newProgressModel(title string, sub *log.Subscription) *progressModel {
	return &progressModel{title: title, sub: sub}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(listenForLogs(m.sub), tickSpinner())
}

func listenForLogs(sub *log.Subscription) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-sub.C()
		if !ok {
			return nil
		}

		return progressLogMsg{line: strings.TrimRight(string(line), "\n")}
	}
}

func tickSpinner() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sub.Close()

			return m, tea.Quit
		}

	case progressLogMsg:
		m.lines = append(m.lines, msg.line)
		if len(m.lines) > progressTailSize {
			m.lines = m.lines[len(m.lines)-progressTailSize:]
		}

		return m, listenForLogs(m.sub)

	case progressTickMsg:
		if m.done {
			return m, nil
		}

		m.frame = (m.frame + 1) % len(spinnerFrames)

		return m, tickSpinner()

	case progressDoneMsg:
		m.done = true
		m.err = msg.Err
		m.sub.Close()

		return m, tea.Quit
	}

	return m, nil
}

func (m *progressModel) View() tea.View {
	var b strings.Builder

	switch {
	case m.done && m.err != nil:
		fmt.Fprintf(&b, "✗ %s: %v\n", m.title, m.err)
	case m.done:
		fmt.Fprintf(&b, "✓ %s\n", m.title)
	default:
		fmt.Fprintf(&b, "%s %s\n", spinnerFrames[m.frame], m.title)
	}

	for _, line := range m.lines {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	v := tea.NewView(b.String())
	v.AltScreen = true

	return v
}
