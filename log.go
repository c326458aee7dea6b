package plot

import (
	"log/slog"
	"os"
)

// plotLogLevel controls the log level for plot debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var plotLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for graphs.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		plotLogLevel.Set(slog.LevelDebug)
	} else {
		plotLogLevel.Set(slog.LevelInfo)
	}
}

// plotLogger is the default logger for graphs without WithLogger.
var plotLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: plotLogLevel}))
