package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/teahost"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run must not call os.Exit: stacknav.Close flushes the log file.
func run() error {
	var configPath string
	var lang string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $STACKNAV_CONFIG)")
	flag.StringVar(&lang, "lang", "", "override the language of host strings, e.g. es")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("stacknav demo\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return nil
	}

	cfg, err := stacknav.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if lang != "" {
		cfg.Language = lang
	}

	stacknav.Init(stacknav.OptionsFromConfig(cfg))
	defer stacknav.Close()

	return runDemo(cfg)
}

func runDemo(cfg stacknav.Config) error {
	logger := stacknav.GetLogger()
	demo := newDemo(logger)

	m, err := teahost.New(router.NewScreen("menu", demo.menu()), teahost.Options{
		Language:     cfg.Language,
		Theme:        cfg.Theme,
		StackOptions: cfg.StackOptions(),
	})
	if err != nil {
		return fmt.Errorf("creating stack: %w", err)
	}
	defer m.Close()

	logger.Info("starting demo", "language", cfg.Language, "exit_lifetime", cfg.ExitLifetime.String())

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("the demo requires a real terminal")
		}
		return fmt.Errorf("error running demo: %w", err)
	}

	logger.Info("demo finished", "favourites", len(demo.favourites.Get()))
	return nil
}
