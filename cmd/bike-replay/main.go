// bike-replay runs a scripted input file headless and writes JSON telemetry lines to stdout
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/trickbike/config"
	"github.com/lixenwraith/trickbike/engine"
)

var (
	configFlag   = flag.String("config", "", "TOML configuration file")
	realtimeFlag = flag.Bool("realtime", false, "Play back against the wall clock instead of fixed frames")
	verboseFlag  = flag.Bool("v", false, "Diagnostic logging to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] script.toml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.Nop()
	if *verboseFlag {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			Level(cfg.LogLevel()).
			With().Timestamp().Logger()
	}

	sf, err := loadScript(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load script: %v\n", err)
		os.Exit(1)
	}

	r, err := newReplayer(cfg, sf, os.Stdout, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start replay: %v\n", err)
		os.Exit(1)
	}

	if *realtimeFlag {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		interval := time.Duration(sf.FrameDt * float64(time.Second))
		r.runRealtime(ctx, engine.NewMonotonicTimeProvider(), interval)
		return
	}
	r.run()
}
