package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Root  string
	Debug bool

	// Stderr receives warnings and errors. Defaults to os.Stderr.
	Stderr io.Writer
}

var (
	mu       sync.RWMutex
	global   = zerolog.Nop()
	logFile  *lumberjack.Logger
)

// Setup installs the process logger. Warnings and errors always go to the
// error stream in console format; with Debug the level drops to debug and a
// rotating JSON log is also written under <root>/.typesync/logs.
func Setup(cfg Config) (func() error, error) {
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	console := zerolog.ConsoleWriter{
		Out:        stderr,
		TimeFormat: time.RFC3339,
	}

	level := zerolog.WarnLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	var out io.Writer = console
	var lj *lumberjack.Logger
	if cfg.Debug {
		root := filepath.Clean(cfg.Root)
		if cfg.Root == "" {
			root = "."
		}
		dir := filepath.Join(root, ".typesync", "logs")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			set(zerolog.New(console).Level(level).With().Timestamp().Logger(), nil)
			return nil, err
		}
		lj = &lumberjack.Logger{
			Filename:   filepath.Join(dir, "typesync.log"),
			MaxSize:    5, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			LocalTime:  true,
		}
		out = zerolog.MultiLevelWriter(console, lj)
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	set(l, lj)

	l.Debug().Bool("debug", cfg.Debug).Str("path", Path()).Msg("logger.initialized")

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		global = zerolog.Nop()
		return cerr
	}

	return cleanup, nil
}

func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Path returns the rotating log file, or "" when file logging is off.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	if logFile == nil {
		return ""
	}
	return logFile.Filename
}

func set(l zerolog.Logger, f *lumberjack.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
	logFile = f
}
