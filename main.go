package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/silvistat/sindex/cmd"
	"github.com/silvistat/sindex/internal/conf"
	"github.com/silvistat/sindex/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := parseLevel(settings.Log.Level)
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if settings.Log.File != "" {
		fileLogger, closeLog, err := logging.NewFileLogger(settings.Log.File, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = closeLog() }()
		slog.SetDefault(fileLogger)
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseLevel(name string) slog.Level {
	switch name {
	case "trace":
		return logging.LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
