package logging

import (
	"log/slog"
	"os"
)

// serviceName tags every record so aggregated output from the API is
// distinguishable from migration or cron noise.
const serviceName = "rotaviagem-api"

// StdoutHandler is the JSON handler every sink chain starts from.
func StdoutHandler() slog.Handler {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return h.WithAttrs([]slog.Attr{slog.String("service", serviceName)})
}

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}
