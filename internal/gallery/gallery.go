// Package gallery serves a directory of ANSI art over SSH: a numbered
// listing, a pick-by-number prompt, and full pipeline rendering into the
// connected client's terminal.
package gallery

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/stlalpha/ansiview/internal/ansi"
	"github.com/stlalpha/ansiview/internal/art"
	"github.com/stlalpha/ansiview/internal/config"
	"github.com/stlalpha/ansiview/internal/logging"
	"github.com/stlalpha/ansiview/internal/sauce"
	"github.com/stlalpha/ansiview/internal/terminalio"
)

// artExtensions are the file types listed by the gallery.
var artExtensions = map[string]bool{
	".ans": true,
	".asc": true,
	".nfo": true,
	".diz": true,
	".txt": true,
}

// Gallery holds the art directory and decode settings shared by all
// sessions.
type Gallery struct {
	root string
	cfg  config.Config
}

// New creates a gallery rooted at dir.
func New(dir string, cfg config.Config) *Gallery {
	return &Gallery{root: dir, cfg: cfg}
}

// ListFiles returns the displayable art files under the gallery root,
// sorted by name.
func (g *Gallery) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(g.root)
	if err != nil {
		return nil, fmt.Errorf("read gallery dir %s: %w", g.root, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if artExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Handle runs one SSH gallery session.
func (g *Gallery) Handle(s ssh.Session) {
	sessionID := uuid.New().String()[:8]
	ptyReq, winCh, isPty := s.Pty()
	if !isPty {
		fmt.Fprint(s, "ansiview gallery requires a PTY session.\r\n")
		return
	}
	log.Printf("INFO: [%s] gallery session from %s (TERM=%s)", sessionID, s.RemoteAddr(), ptyReq.Term)

	t := term.NewTerminal(s, "art> ")
	_ = t.SetSize(ptyReq.Window.Width, ptyReq.Window.Height)
	go func() {
		for win := range winCh {
			_ = t.SetSize(win.Width, win.Height)
		}
	}()

	mode := terminalio.ParseOutputMode(g.cfg.OutputMode)

	files, err := g.ListFiles()
	if err != nil {
		log.Printf("ERROR: [%s] %v", sessionID, err)
		fmt.Fprintf(s, "gallery unavailable: %v\r\n", err)
		return
	}

	g.printBanner(t, files)

	for {
		line, err := t.ReadLine()
		if err != nil {
			break
		}
		line = strings.TrimSpace(strings.ToLower(line))

		switch {
		case line == "q" || line == "quit" || line == "exit":
			fmt.Fprintln(t, "Goodbye!")
			log.Printf("INFO: [%s] session closed", sessionID)
			return
		case line == "" || line == "list" || line == "l":
			files, err = g.ListFiles()
			if err != nil {
				fmt.Fprintf(t, "list failed: %v\n", err)
				continue
			}
			g.printBanner(t, files)
		case line == "utf8" || line == "cp437" || line == "auto":
			mode = terminalio.ParseOutputMode(line)
			fmt.Fprintf(t, "output mode set to %s\n", line)
		case strings.HasPrefix(line, "info "):
			g.showInfo(t, strings.TrimSpace(line[5:]), files)
		default:
			n, convErr := strconv.Atoi(line)
			if convErr != nil || n < 1 || n > len(files) {
				fmt.Fprintln(t, "enter a listing number, 'info <n>', 'utf8', 'cp437', 'list' or 'quit'")
				continue
			}
			g.showArt(s, t, files[n-1], mode, ptyReq.Term, sessionID)
		}
	}
}

// printBanner writes the header and the numbered file listing.
func (g *Gallery) printBanner(t *term.Terminal, files []string) {
	fmt.Fprintln(t, "ansiview gallery | pick a number to view | 'info <n>' for SAUCE | 'q' to quit")
	if len(files) == 0 {
		fmt.Fprintln(t, "(no art files found)")
		return
	}
	for i, f := range files {
		fmt.Fprintf(t, "%3d. %s\n", i+1, f)
	}
}

// showArt streams one artwork through the pipeline to the client.
func (g *Gallery) showArt(s ssh.Session, t *term.Terminal, name string, mode terminalio.OutputMode, termType, sessionID string) {
	data, err := os.ReadFile(filepath.Join(g.root, name))
	if err != nil {
		fmt.Fprintf(t, "read %s: %v\n", name, err)
		return
	}

	aw := art.Load(data, g.cfg.DefaultColumns, g.cfg.MaxColumns, 0)
	logging.Debug("[%s] rendering %s (%dx%d)", sessionID, name, aw.Grid.Width(), aw.Grid.Height())

	out := terminalio.NewWriter(s, mode, termType)
	fmt.Fprint(s, "\x1b[2J\x1b[H")
	fmt.Fprint(out, ansi.Emit(aw.Grid))

	fmt.Fprint(t, "\n[enter to continue]")
	_, _ = t.ReadLine()
	fmt.Fprint(s, "\x1b[2J\x1b[H")
	g.printBannerFresh(t)
}

// printBannerFresh re-lists after a viewing, tolerating directory churn.
func (g *Gallery) printBannerFresh(t *term.Terminal) {
	files, err := g.ListFiles()
	if err != nil {
		fmt.Fprintf(t, "list failed: %v\n", err)
		return
	}
	g.printBanner(t, files)
}

// showInfo prints the SAUCE metadata for listing number arg.
func (g *Gallery) showInfo(t *term.Terminal, arg string, files []string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(files) {
		fmt.Fprintln(t, "usage: info <listing number>")
		return
	}
	data, err := os.ReadFile(filepath.Join(g.root, files[n-1]))
	if err != nil {
		fmt.Fprintf(t, "read %s: %v\n", files[n-1], err)
		return
	}
	rec, _ := sauce.Extract(data)
	fmt.Fprint(t, FormatRecord(rec))
}

// FormatRecord renders SAUCE metadata the way the classic viewers print
// it. A nil record reports the absence rather than erroring.
func FormatRecord(rec *sauce.Record) string {
	if rec == nil {
		return "No SAUCE metadata found.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Version : %s\n", rec.Version)
	fmt.Fprintf(&b, "Title   : %s\n", rec.Title)
	fmt.Fprintf(&b, "Author  : %s\n", rec.Author)
	fmt.Fprintf(&b, "Group   : %s\n", rec.Group)
	fmt.Fprintf(&b, "Date    : %s\n", rec.Date)
	fmt.Fprintf(&b, "DataType: %d\n", rec.DataType)
	fmt.Fprintf(&b, "FileType: %d\n", rec.FileType)
	fmt.Fprintf(&b, "TInfo1-4: %d %d %d %d\n", rec.TInfo1, rec.TInfo2, rec.TInfo3, rec.TInfo4)
	fmt.Fprintf(&b, "TFlags  : %d\n", rec.Flags)
	fmt.Fprintf(&b, "TInfoS  : %s\n", rec.TInfoS)
	if len(rec.Comments) > 0 {
		fmt.Fprintf(&b, "Comments:\n")
		for _, c := range rec.Comments {
			fmt.Fprintf(&b, "  %s\n", c)
		}
	}
	return b.String()
}
