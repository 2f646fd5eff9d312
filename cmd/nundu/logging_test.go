package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{raw: "", want: slog.LevelInfo},
		{raw: "debug", want: slog.LevelDebug},
		{raw: " Info ", want: slog.LevelInfo},
		{raw: "warning", want: slog.LevelWarn},
		{raw: "ERROR", want: slog.LevelError},
		{raw: "-4", want: slog.LevelDebug},
		{raw: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseLogLevel(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseLogLevel(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseLogLevel(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestChooseLogLevel(t *testing.T) {
	tests := []struct {
		flag, env, config string
		want              levelChoice
	}{
		{"debug", "error", "warn", levelChoice{raw: "debug", source: sourceFlag}},
		{"", "warn", "info", levelChoice{raw: "warn", source: sourceEnv}},
		{" ", "", "error", levelChoice{raw: "error", source: sourceConfig}},
		{"", "", "", levelChoice{source: sourceDefault}},
	}
	for _, tt := range tests {
		if got := chooseLogLevel(tt.flag, tt.env, tt.config); got != tt.want {
			t.Fatalf("chooseLogLevel(%q, %q, %q) = %+v, want %+v", tt.flag, tt.env, tt.config, got, tt.want)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	t.Run("flag wins over invalid env", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "invalid")
		warning, err := setupLogging(io.Discard, "debug", "info", "text")
		if err != nil || warning != "" {
			t.Fatalf("expected clean setup, got warning=%q err=%v", warning, err)
		}
	})

	t.Run("invalid flag is an error", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "")
		if _, err := setupLogging(io.Discard, "verbose", "info", "text"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("invalid env warns", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "verbose")
		warning, err := setupLogging(io.Discard, "", "info", "text")
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
		if !strings.Contains(warning, logLevelEnvKey) || !strings.Contains(warning, "using info") {
			t.Fatalf("unexpected warning %q", warning)
		}
	})

	t.Run("invalid config warns and logs at info", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "")
		var buf bytes.Buffer
		warning, err := setupLogging(&buf, "", "verbose", "text")
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
		if !strings.Contains(warning, `log_level="verbose"`) {
			t.Fatalf("unexpected warning %q", warning)
		}
		slog.Debug("hidden")
		slog.Info("shown")
		if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
			t.Fatalf("expected info level logging, got %q", buf.String())
		}
	})
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, slog.LevelInfo, "JSON").Info("hello", "component", "test")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" || entry["component"] != "test" {
		t.Fatalf("unexpected entry %v", entry)
	}

	buf.Reset()
	newLogger(&buf, slog.LevelWarn, "text").Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info line should be filtered at warn, got %q", buf.String())
	}
}
