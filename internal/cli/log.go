package cli

import (
	"fmt"
	"io"
	"log/slog"
)

// logger receives diagnostic output. It discards everything until
// initLogger runs in the root command's PersistentPreRun.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// initLogger points logger at w. Debug records are emitted only with
// --verbose. Timestamps are dropped because a run is short and the output
// is read by people.
func initLogger(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// VerboseLog logs a formatted message at debug level, so it only appears
// when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}
