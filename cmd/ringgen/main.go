// Command ringgen erases and regenerates the copper of a clock document and
// writes the configured outputs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"pcb-ringroute/internal/app"
	"pcb-ringroute/internal/config"
	"pcb-ringroute/internal/logging"
	"pcb-ringroute/internal/route"
	"pcb-ringroute/internal/version"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML configuration (defaults built in)")
	envFile := flag.String("env", ".env", "Environment file loaded before the configuration")
	docPath := flag.String("doc", "", "Board document to regenerate (created if missing)")
	panel := flag.String("panel", "", "Override the panel: single or dual")
	design := flag.String("design", "", "Override the clock face: pair or quad")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("ringgen", version.String())
		return
	}

	if err := run(*configPath, *envFile, *docPath, *panel, *design); err != nil {
		fmt.Fprintf(os.Stderr, "ringgen: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envFile, docPath, panel, design string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg.ApplyEnv(os.LookupEnv)
	}
	if panel != "" {
		cfg.Layout.Panel = panel
	}
	if design != "" {
		cfg.Layout.Design = design
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	state := app.NewState(logger)
	state.Config = cfg
	state.ConfigPath = configPath
	if docPath != "" {
		if err := state.LoadDocument(docPath); err != nil {
			return err
		}
		abs, err := filepath.Abs(docPath)
		if err != nil {
			return err
		}
		cfg.Output.Document = abs
	}

	rep, err := state.Generate(ctx)
	if err != nil {
		return err
	}
	if err := state.WriteOutputs(ctx, rep); err != nil {
		return err
	}

	fmt.Printf("Panel %s, erase radius %.0f\n", rep.Panel, rep.Run.EraseRadius)
	fmt.Printf("Erased %d traces, %d vias\n", rep.Run.Erased.TracesRemoved, rep.Run.Erased.ViasRemoved)
	fmt.Printf("%-8s %8s %6s\n", "Phase", "Traces", "Vias")
	for _, ph := range route.Phases {
		c := rep.Run.Counts[ph]
		fmt.Printf("%-8s %8d %6d\n", ph, c.Traces, c.Vias)
	}
	fmt.Printf("Footprints placed: %d\n", rep.Footprints)
	for kind, paths := range rep.Outputs {
		for _, p := range paths {
			fmt.Printf("Wrote %s: %s\n", kind, p)
		}
	}
	if n := len(rep.Issues); n > 0 {
		logger.Warn("inspection found issues", zap.Int("count", n))
		return fmt.Errorf("%d geometry issues, see report", n)
	}
	return nil
}
