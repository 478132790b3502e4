// Package logger owns the process-wide charmbracelet logger. Entries go to a
// rotated file under the config directory and, in debug mode, to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/niyyah/internal/constants"
)

// Logger is nil until Init succeeds; the package helpers are no-ops before then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Level overrides the level implied by Debug ("debug", "info", "warn", "error").
	Level string
	// Quiet keeps debug output off stderr, for full-screen sessions.
	Quiet bool
}

func (c Config) level() (log.Level, error) {
	if c.Level != "" {
		return log.ParseLevel(c.Level)
	}
	if c.Debug {
		return log.DebugLevel, nil
	}
	return log.WarnLevel, nil
}

func (c Config) writer() (io.Writer, error) {
	dir := filepath.Join(c.ConfigDir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+".log"),
		MaxSize:    5, // MB
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
	if c.Debug && !c.Quiet {
		return io.MultiWriter(os.Stderr, file), nil
	}
	return file, nil
}

func Init(cfg Config) error {
	level, err := cfg.level()
	if err != nil {
		return err
	}
	w, err := cfg.writer()
	if err != nil {
		return err
	}

	Logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          constants.AppName,
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
	})
	return nil
}

// With returns a child logger carrying keyvals on every entry. Before Init it
// discards everything.
func With(keyvals ...any) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger.With(keyvals...)
}

func emit(level log.Level, msg string, keyvals []any) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...any) { emit(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...any)  { emit(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...any)  { emit(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...any) { emit(log.ErrorLevel, msg, keyvals) }
