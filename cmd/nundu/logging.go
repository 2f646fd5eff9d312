package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"nundu/internal/config"
)

const logLevelEnvKey = "NUNDU_LOG_LEVEL"

// levelChoice is the log level picked from the first source that set one:
// --log-level, then NUNDU_LOG_LEVEL, then log_level in config.
type levelChoice struct {
	raw    string
	source string
}

const (
	sourceFlag    = "--log-level"
	sourceEnv     = logLevelEnvKey
	sourceConfig  = "log_level"
	sourceDefault = "default"
)

func chooseLogLevel(flagLevel, envLevel, configLevel string) levelChoice {
	for _, c := range []levelChoice{
		{raw: flagLevel, source: sourceFlag},
		{raw: envLevel, source: sourceEnv},
		{raw: configLevel, source: sourceConfig},
	} {
		if strings.TrimSpace(c.raw) != "" {
			return c
		}
	}
	return levelChoice{source: sourceDefault}
}

// setupLogging installs the default logger writing to w. A bad flag value is
// an error; a bad env or config value falls back to the default level and
// is reported as a warning.
func setupLogging(w io.Writer, flagLevel, configLevel, logFormat string) (string, error) {
	choice := chooseLogLevel(flagLevel, os.Getenv(logLevelEnvKey), configLevel)

	level, err := parseLogLevel(choice.raw)
	if err != nil {
		if choice.source == sourceFlag {
			return "", fmt.Errorf("invalid --log-level %q", flagLevel)
		}
		level = slog.LevelInfo
	}
	slog.SetDefault(newLogger(w, level, logFormat))

	if err != nil {
		return fmt.Sprintf("warning: invalid %s=%q; using %s", choice.source, choice.raw, config.DefaultLogLevel), nil
	}
	return "", nil
}

var namedLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLogLevel accepts level names in any case or a numeric slog level.
// Blank means info.
func parseLogLevel(raw string) (slog.Level, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return slog.LevelInfo, nil
	}
	if level, ok := namedLevels[value]; ok {
		return level, nil
	}
	if numeric, err := strconv.Atoi(value); err == nil {
		return slog.Level(numeric), nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", raw)
}

func newLogger(w io.Writer, level slog.Level, logFormat string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(logFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
