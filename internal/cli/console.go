package cli

import (
	"context"
	"fmt"

	"github.com/studiowebux/apiconsole/internal/config"
	"github.com/studiowebux/apiconsole/internal/keybinds"
	"github.com/studiowebux/apiconsole/internal/logging"
	"github.com/studiowebux/apiconsole/internal/tui"
)

// RunConsole starts the interactive console for the signed-in session.
// The console owns the terminal, so logs go to the log file.
func RunConsole(ctx context.Context, env *Env) error {
	logger, closeLog, err := logging.NewFile(logging.Config{
		Level:  logging.ParseLevel(env.Settings.LogLevel),
		Format: logging.ParseFormat(env.Settings.LogFormat),
	}, config.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	env.closers = append(env.closers, closeLog)
	env.Logger = logger

	c, err := env.authedClient(ctx)
	if err != nil {
		return err
	}

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		// Broken overrides fall back to the defaults
		logger.Warn("failed to load keybinds", "path", config.KeybindsFile, "error", err)
	}

	deps := tui.Deps{
		Resources: c,
		Profiles:  c,
		Store:     env.Session,
		Keybinds:  registry,
		Settings:  env.Settings,
		Logger:    logger,
		Server:    c.BaseURL(),
	}

	store, journal, err := env.openJournal()
	if err != nil {
		logger.Warn("activity journal unavailable", "error", err)
	} else if store != nil {
		deps.Activity = store
		deps.Recorder = journal
	}

	return tui.Run(deps)
}
