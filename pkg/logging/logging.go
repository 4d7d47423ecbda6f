package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance, populated by Setup.
var Logger *zap.Logger

// Setup builds the global zap logger. Debug mode switches to the development
// config with human-readable output and Debug-level logging.
func Setup(debug bool, appName, appVersion string) error {
	var err error
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}

// L returns the global logger, or a no-op logger when Setup has not run.
func L() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}
