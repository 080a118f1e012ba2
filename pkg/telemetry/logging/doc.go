// Package logging provides structured logging built on log/slog.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//	logger.SetAsDefault()
//
//	logger.Info("domain registered", "domain", "itsm")
//
// Components throughout the codebase take a *slog.Logger directly and
// default to slog.Default(); this package exists to parse level/format
// configuration and build the handler once, at startup.
package logging
