// Package log provides a simplified structured logging interface built on
// [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options.
// Configuration is captured when the logger is made; use [Logger.Wrap] to
// derive a logger with different options.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//	)
//	logger.Info("pass complete", slog.Int("expressions", n))
//
// All attributes are typed [slog.Attr] values. Each level has a
// context-aware method (e.g. [Logger.DebugContext]) and a context-free
// variant that uses [DefaultContextProvider].
//
// The zero Logger discards everything, so library packages may hold one
// without checking whether a caller configured it.
//
// The package also maintains a process-wide default logger used by the
// package-level functions ([Info], [Error], ...), reconfigured with [Config].
package log
