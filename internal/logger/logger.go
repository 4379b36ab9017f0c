package logger

import (
	"io"
	"os"
	"strings"

	"github.com/google/wire"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
)

var DefaultSet = wire.NewSet(
	NewLogger,
)

// DefaultLevel applies when the configured level is empty or unknown.
const DefaultLevel = zerolog.InfoLevel

var LevelMap = map[string]zerolog.Level{
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// Output is where log lines go; stdout is reserved for the result document.
var Output io.Writer = os.Stderr

// ParseLevel maps a configured level name, case-insensitively.
func ParseLevel(name string) (zerolog.Level, bool) {
	level, ok := LevelMap[strings.ToLower(strings.TrimSpace(name))]
	return level, ok
}

// NewLogger returns a console logger on Output. Colors are only used when
// Output is a terminal, so redirected logs stay plain text.
func NewLogger(config *config.Config) *zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:     Output,
		NoColor: !isTerminal(Output),
	}

	level, ok := ParseLevel(config.Log.Level)
	if !ok {
		level = DefaultLevel
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return &logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
