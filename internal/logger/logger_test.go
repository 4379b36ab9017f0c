package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Log.Level = tt.level

			logger := NewLogger(cfg)
			if logger.GetLevel() != tt.want {
				t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewLogger_UnknownLevelUsesDefault(t *testing.T) {
	for _, level := range []string{"", "verbose"} {
		cfg := &config.Config{}
		cfg.Log.Level = level

		logger := NewLogger(cfg)
		if logger.GetLevel() != DefaultLevel {
			t.Errorf("level %q: GetLevel() = %v, want %v", level, logger.GetLevel(), DefaultLevel)
		}
	}
}

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel(" DEBUG ")
	if !ok || level != zerolog.DebugLevel {
		t.Errorf("ParseLevel(DEBUG) = %v, %v, want debug, true", level, ok)
	}

	if _, ok := ParseLevel("trace"); ok {
		t.Error("ParseLevel(trace) should not be accepted")
	}
}

func TestNewLogger_PlainTextWhenRedirected(t *testing.T) {
	var buf bytes.Buffer

	original := Output
	Output = &buf
	defer func() { Output = original }()

	logger := NewLogger(&config.Config{})
	logger.Warn().Msg("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("log output %q contains color escapes", buf.String())
	}
}

func TestNewLogger_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer

	original := Output
	Output = &buf
	defer func() { Output = original }()

	cfg := &config.Config{}
	cfg.Log.Level = "info"

	logger := NewLogger(cfg)
	logger.Info().Str("component", "test").Msg("hello")
	logger.Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("log output %q does not contain message", out)
	}

	if strings.Contains(out, "hidden") {
		t.Errorf("log output %q contains a debug line at info level", out)
	}
}
