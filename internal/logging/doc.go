// Package logging builds the structured loggers used across the console.
//
// Components accept a *slog.Logger in their constructor. When none is
// supplied they use Nop().
//
// The interactive console owns the terminal, so it logs to a file under
// the configuration directory. CLI commands log to stderr.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatText,
//	})
//	logger.Info("page loaded", "page", 2, "items", 10)
package logging
