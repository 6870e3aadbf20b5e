// ansiview is a terminal viewer for ANSI/ASCII art. It decodes CP437
// art files with their SAUCE metadata and either opens an interactive
// scrolling viewer, re-emits the art to stdout, prints the SAUCE
// record, or serves a whole directory as an SSH gallery.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/stlalpha/ansiview/internal/ansi"
	"github.com/stlalpha/ansiview/internal/art"
	"github.com/stlalpha/ansiview/internal/config"
	"github.com/stlalpha/ansiview/internal/gallery"
	"github.com/stlalpha/ansiview/internal/logging"
	"github.com/stlalpha/ansiview/internal/sauce"
	"github.com/stlalpha/ansiview/internal/sshserver"
	"github.com/stlalpha/ansiview/internal/terminalio"
	"github.com/stlalpha/ansiview/internal/viewer"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: ansiview [flags] <file.ans|->\n\n")
	fmt.Fprintf(os.Stderr, "Reads an ANSI/ASCII art file (or stdin when the argument is '-')\n")
	fmt.Fprintf(os.Stderr, "and opens the interactive viewer. See the flags for the other modes.\n\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	var (
		showSauce  = flag.Bool("sauce", false, "print SAUCE metadata and exit")
		catMode    = flag.Bool("cat", false, "decode and re-emit to stdout instead of the interactive viewer")
		serveDir   = flag.String("serve", "", "serve the given art directory as an SSH gallery")
		watch      = flag.Bool("watch", false, "reload the file when it changes on disk")
		width      = flag.Int("width", 0, "force decode width in columns, overriding the SAUCE hint")
		delayMs    = flag.Int("autoplay-delay", 0, "autoplay scroll delay in milliseconds, overriding config")
		outputMode = flag.String("output-mode", "", "terminal output mode: auto, utf8, cp437 (overrides config)")
		configPath = flag.String("config", "ansiview.json", "path to the config file")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Usage = usage
	flag.Parse()

	log.SetOutput(os.Stderr)
	logging.Init(*debug)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	if *delayMs > 0 {
		cfg.AutoplayDelayMs = *delayMs
	}
	if *outputMode != "" {
		cfg.OutputMode = *outputMode
	}

	if *serveDir != "" {
		serve(cfg, *serveDir)
		return
	}

	path, name, data := readInput(flag.Arg(0))

	switch {
	case *showSauce:
		rec, _ := sauce.Extract(data)
		fmt.Print(gallery.FormatRecord(rec))

	case *catMode:
		cat(cfg, data, *width)

	default:
		m, err := viewer.New(path, name, data, cfg, *width, *watch)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		if err := viewer.Run(m); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
	}
}

// readInput loads the art bytes from the named file, or from stdin for
// "-" or a piped invocation with no argument.
func readInput(arg string) (path, name string, data []byte) {
	if arg == "" || arg == "-" {
		if arg == "" && term.IsTerminal(int(os.Stdin.Fd())) {
			flag.Usage()
			os.Exit(2)
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("FATAL: Failed to read stdin: %v", err)
		}
		return "", "stdin", data
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	return arg, filepath.Base(arg), data
}

// cat decodes the art and replays it to stdout as a minimal escape
// stream. When stdout is a terminal narrower than the decode width the
// art is re-wrapped to fit.
func cat(cfg config.Config, data []byte, forceCols int) {
	fd := int(os.Stdout.Fd())
	if forceCols <= 0 && term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 && w < cfg.MaxColumns {
			cfg.MaxColumns = w
		}
	}
	aw := art.Load(data, cfg.DefaultColumns, cfg.MaxColumns, forceCols)
	out := terminalio.NewWriter(os.Stdout, terminalio.ParseOutputMode(cfg.OutputMode), os.Getenv("TERM"))
	fmt.Fprint(out, ansi.Emit(aw.Grid))
}

// serve runs the SSH gallery over dir until interrupted.
func serve(cfg config.Config, dir string) {
	g := gallery.New(dir, cfg)
	if _, err := g.ListFiles(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	srv, err := sshserver.NewServer(sshserver.Config{
		HostKeyPath:         cfg.Gallery.HostKeyPath,
		Host:                cfg.Gallery.Host,
		Port:                cfg.Gallery.Port,
		LegacySSHAlgorithms: cfg.Gallery.LegacySSHAlgorithms,
		SessionHandler:      g.Handle,
		Version:             "ansiview",
	})
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}
