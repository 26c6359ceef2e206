// Package main provides the entry point for the Ringroute viewer.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"pcb-ringroute/internal/app"
	"pcb-ringroute/internal/config"
	"pcb-ringroute/internal/logging"
	"pcb-ringroute/internal/version"
	"pcb-ringroute/ui/mainwindow"
	"pcb-ringroute/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"go.uber.org/zap"
)

const appID = "io.github.ringroute"

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("Failed to load .env: %v", err)
	}
	appPrefs := prefs.Load()

	// Config from the command line, else the last one used.
	configPath := appPrefs.String(prefs.KeyLastConfig)
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Printf("Failed to load config %s: %v", configPath, err)
			configPath = ""
		} else {
			cfg = loaded
		}
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("starting ringroute", zap.String("version", version.String()))

	state := app.NewState(logger)
	state.Config = cfg
	state.ConfigPath = configPath

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.RingrouteTheme{})

	win := mainwindow.New(fyneApp, state, appPrefs)
	openDocument(state, appPrefs)

	if configPath != "" {
		watcher := watchConfig(state, configPath)
		if watcher != nil {
			defer watcher.Stop()
		}
	}

	win.SetCloseIntercept(func() {
		win.SavePreferences()
		win.Close()
	})
	win.ShowAndRun()
}

// openDocument loads the configured output document, then the last one
// used, seeding a new document when neither exists.
func openDocument(state *app.State, p *prefs.Prefs) {
	path := state.Config.Output.Path(state.Config.Output.Document)
	if last := p.String(prefs.KeyLastDocument); last != "" {
		path = last
	}
	if path == "" {
		state.NewDocument("clock")
		return
	}
	if err := state.LoadDocument(path); err != nil {
		state.Logger.Warn("failed to load document", zap.String("path", path), zap.Error(err))
		state.NewDocument("clock")
	}
}

// watchConfig regenerates whenever the configuration file changes. A change
// of panel starts from a freshly seeded document.
func watchConfig(state *app.State, path string) *app.ConfigWatcher {
	w, err := app.NewConfigWatcher(path, 500*time.Millisecond, state.Logger.Named("watch"))
	if err != nil {
		state.Logger.Warn("config watch disabled", zap.Error(err))
		return nil
	}
	w.OnChange(func(path string) {
		panel := state.Config.Layout.Panel
		if err := state.LoadConfig(path); err != nil {
			state.Logger.Warn("config reload failed", zap.Error(err))
			return
		}
		if state.Config.Layout.Panel != panel {
			state.NewDocument("clock")
		}
		if _, err := state.Generate(context.Background()); err != nil {
			state.Logger.Warn("regeneration failed", zap.Error(err))
		}
	})
	if err := w.Start(); err != nil {
		state.Logger.Warn("config watch disabled", zap.Error(err))
		return nil
	}
	state.Logger.Info("watching configuration", zap.String("path", w.Path()))
	return w
}
