// bike-sandbox is an interactive terminal test track for the trick bike
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/trickbike/config"
	"github.com/lixenwraith/trickbike/engine"
)

var (
	configFlag = flag.String("config", "", "TOML configuration file")
	debugFlag  = flag.Bool("debug", false, "Write a debug log under the configured log directory")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
)

func main() {
	var screen tcell.Screen

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mBIKE-SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, logger := setupLogging(*debugFlag, cfg.Log)
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	a, err := newApp(cfg, screen, engine.NewMonotonicTimeProvider(), logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		os.Exit(1)
	}
	a.attachAudio(cfg.Audio, *muteFlag)
	defer a.close()

	logger.Info().Str("config", *configFlag).Msg("Sandbox started")
	a.run()
	logger.Info().Interface("summary", a.session.Metrics.Summary()).Msg("Sandbox stopped")
}
