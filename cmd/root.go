package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"mmclife/collector"
	"mmclife/engine"
	"mmclife/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `mmclife v%s — eMMC/SD flash health and lifetime inspector for Linux

Usage:
  mmclife [OPTIONS]

mmclife is interactive: it lists the eMMC/SD devices on this host, lets
you pick one, and prints a wear/lifespan report for it. Reading the
EXT_CSD registers requires root and the mmc-utils package.

Options:
  -mmc PATH         Register-dump binary to use (default: mmc from PATH)
  -pe-cycles N      P/E cycle rating for the TBW projection (default: %d)
  -no-color         Plain output, no ANSI colors
  -version          Print version and exit

Examples:
  sudo mmclife
  sudo mmclife -pe-cycles 1500
  sudo mmclife -no-color 2>/dev/null
`, Version, engine.DefaultPECycles)
}

// Run parses flags, checks the environment, and drives the session.
// Errors returned here are fatal environment errors; main exits 1.
func Run() error {
	var (
		showVersion bool
		noColor     bool
		mmcBin      string
		peCycles    int
	)

	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	flag.StringVar(&mmcBin, "mmc", "mmc", "Register-dump binary")
	flag.IntVar(&peCycles, "pe-cycles", engine.DefaultPECycles, "P/E cycle rating for the TBW projection")
	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("mmclife v%s\n", Version)
		return nil
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	if peCycles <= 0 {
		return fmt.Errorf("-pe-cycles must be positive, got %d", peCycles)
	}

	// Environment preflight: each requirement fails fast with its own
	// message before the session starts.
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errors.New("mmclife is interactive and needs a terminal on stdin (run it directly, not through a pipe)")
	}
	mmcPath, err := exec.LookPath(mmcBin)
	if err != nil {
		return fmt.Errorf("required tool %q not found in PATH (install mmc-utils)", mmcBin)
	}
	log.Debugf("preflight ok: terminal attached, register tool at %s", mmcPath)

	if os.Geteuid() != 0 {
		log.Warn("running without root — EXT_CSD register dumps will likely be refused")
	}

	styles := ui.DefaultStyles()
	if noColor {
		styles = ui.PlainStyles()
	}

	session := ui.NewModel(
		collector.NewScanner("/"),
		&collector.RegisterReader{Bin: mmcPath},
		styles,
		peCycles,
	)

	p := tea.NewProgram(session)
	if _, err := p.Run(); err != nil {
		// An interrupt is a clean exit, same as choosing 0 from the menu.
		if errors.Is(err, tea.ErrInterrupted) {
			return nil
		}
		return err
	}
	return nil
}
