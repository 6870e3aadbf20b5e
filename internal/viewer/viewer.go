// Package viewer is the interactive full-screen art viewer. It renders
// a decoded grid into a scrollable Bubble Tea viewport with an optional
// autoplay mode and a SAUCE metadata popup.
package viewer

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stlalpha/ansiview/internal/art"
	"github.com/stlalpha/ansiview/internal/config"
)

// tickMsg drives autoplay scrolling.
type tickMsg time.Time

// fileChangedMsg reports that the watched art file was rewritten.
type fileChangedMsg struct{}

// Model is the Bubble Tea model for one viewing session.
type Model struct {
	path      string
	name      string
	cfg       config.Config
	forceCols int

	artwork *art.Artwork
	vp      viewport.Model
	ready   bool

	showSauce bool
	autoplay  bool
	delay     time.Duration

	watcher *fileWatcher
}

// New builds a viewer model from raw art bytes. path may be empty for
// piped input; watching requires a real file.
func New(path, name string, data []byte, cfg config.Config, forceCols int, watch bool) (Model, error) {
	m := Model{
		path:      path,
		name:      name,
		cfg:       cfg,
		forceCols: forceCols,
		delay:     time.Duration(cfg.AutoplayDelayMs) * time.Millisecond,
		artwork:   art.Load(data, cfg.DefaultColumns, cfg.MaxColumns, forceCols),
	}
	if watch {
		if path == "" {
			return m, fmt.Errorf("cannot watch piped input, pass a file path")
		}
		fw, err := watchFile(path)
		if err != nil {
			return m, err
		}
		m.watcher = fw
	}
	return m, nil
}

// Run drives the model to completion in the alternate screen buffer.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if m.watcher != nil {
		m.watcher.Stop()
	}
	return err
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.waitForChange()
	}
	return nil
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange blocks until the watcher reports a rewrite, then feeds
// it back into Update as a message.
func (m Model) waitForChange() tea.Cmd {
	fw := m.watcher
	return func() tea.Msg {
		select {
		case <-fw.changes:
			return fileChangedMsg{}
		case <-fw.done:
			return nil
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-1)
			m.vp.SetContent(strings.Join(renderLines(m.artwork.Grid), "\n"))
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 1
		}
		return m, nil

	case tickMsg:
		if !m.autoplay {
			return m, nil
		}
		if !m.showSauce {
			m.vp.ScrollDown(1)
		}
		if m.vp.AtBottom() {
			m.autoplay = false
			return m, nil
		}
		return m, m.tickCmd()

	case fileChangedMsg:
		m.reload()
		return m, m.waitForChange()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.showSauce {
			m.showSauce = false
			return m, nil
		}
		return m, tea.Quit

	case "tab", "i":
		m.showSauce = !m.showSauce

	case " ":
		m.autoplay = !m.autoplay
		if m.autoplay && !m.vp.AtBottom() {
			return m, m.tickCmd()
		}
		m.autoplay = false

	case "up", "k":
		m.autoplay = false
		m.vp.ScrollUp(1)

	case "down", "j":
		m.autoplay = false
		m.vp.ScrollDown(1)

	case "pgup", "b":
		m.autoplay = false
		m.vp.ScrollUp(m.vp.Height)

	case "pgdown", "f":
		m.autoplay = false
		m.vp.ScrollDown(m.vp.Height)

	case "home", "g":
		m.autoplay = false
		m.vp.GotoTop()

	case "end", "G":
		m.autoplay = false
		m.vp.GotoBottom()
	}
	return m, nil
}

// reload re-reads and re-decodes the watched file in place. The
// viewport keeps (and clamps) the current scroll position.
func (m *Model) reload() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		log.Printf("ERROR: Reload of %s failed: %v", m.path, err)
		return
	}
	m.artwork = art.Load(data, m.cfg.DefaultColumns, m.cfg.MaxColumns, m.forceCols)
	if m.ready {
		m.vp.SetContent(strings.Join(renderLines(m.artwork.Grid), "\n"))
	}
	log.Printf("INFO: Reloaded %s (%dx%d)", m.name, m.artwork.Grid.Width(), m.artwork.Grid.Height())
}
