package main

import (
	"context"

	"go.uber.org/zap"

	"kazi/cmd/kazi/ui"
	"kazi/internal/config"
	"kazi/internal/logging"
)

// runInteractive starts the full-screen shell. The config file is watched
// for the lifetime of the shell so a theme edit shows up without a
// restart.
func runInteractive(ctx context.Context) error {
	restoreCtx, cancel := commandContext()
	defer cancel()
	if err := requireSession(restoreCtx); err != nil {
		return err
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	var themeUpdates chan ui.Theme
	path := cfgPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			path = ""
		}
	}
	if path != "" {
		updates, err := config.Watch(watchCtx, path)
		if err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		} else {
			themeUpdates = make(chan ui.Theme)
			go func() {
				defer close(themeUpdates)
				for fresh := range updates {
					logging.UI("config reloaded, theme %q", fresh.UI.Theme)
					themeUpdates <- ui.ThemeFor(fresh.UI.Theme)
				}
			}()
		}
	}

	logging.UI("interactive shell starting for %s", store.Email())
	return ui.Run(client, store, ui.ThemeFor(cfg.UI.Theme), themeUpdates)
}
