package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type Config struct {
	Level  string
	Format string // "text", "json", "console"
	Output io.Writer
	// File 非空时日志同时追加写入该文件
	File string
}

var (
	once  sync.Once
	lg    *slog.Logger
	level slog.LevelVar
	file  *os.File
)

// Init installs the process logger as slog's default. Only the first call
// takes effect.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		var handler slog.Handler
		handler, file, err = newHandler(cfg, &level)
		if err != nil {
			return
		}
		lg = slog.New(handler)
		slog.SetDefault(lg)
	})
	return err
}

func newHandler(cfg Config, lvl *slog.LevelVar) (slog.Handler, *os.File, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	parsed, ok := parseLevel(cfg.Level)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownLevel, cfg.Level)
	}
	lvl.Set(parsed)

	var f *os.File
	out := cfg.Output
	if cfg.File != "" {
		var err error
		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(cfg.Output, f)
	}

	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl}), f, nil
	case "text":
		return slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl}), f, nil
	default:
		return &consoleHandler{w: out, level: lvl}, f, nil
	}
}

func L() *slog.Logger {
	if lg == nil {
		_ = Init(Config{Level: "debug", Format: "console"})
	}
	return lg
}

// ErrUnknownLevel is returned for a level name other than debug, info,
// warn(ing) or error.
var ErrUnknownLevel = errors.New("unknown log level")

// SetLevel changes the level of the installed logger at runtime. An unknown
// name leaves the level unchanged.
func SetLevel(levelStr string) error {
	parsed, ok := parseLevel(levelStr)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, levelStr)
	}
	level.Set(parsed)
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	if file == nil {
		return nil
	}
	return file.Close()
}

// parseLevel 解析级别名称，空字符串视为 info
func parseLevel(levelStr string) (slog.Level, bool) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// consoleHandler outputs human-friendly log lines:
//
//	12:00:00 INFO  Connection accepted  remote=127.0.0.1:51234
type consoleHandler struct {
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format(time.TimeOnly)) // "15:04:05"
	sb.WriteByte(' ')
	sb.WriteString(levelTag(r.Level))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	// pre-attached attrs (from WithAttrs)
	for _, a := range h.attrs {
		sb.WriteString(formatAttr(h.group, a))
	}
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(formatAttr(h.group, a))
		return true
	})
	sb.WriteByte('\n')

	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		w:     h.w,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
		group: h.group,
	}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	prefix := name
	if h.group != "" {
		prefix = h.group + "." + name
	}
	return &consoleHandler{
		w:     h.w,
		level: h.level,
		attrs: append([]slog.Attr{}, h.attrs...),
		group: prefix,
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func formatAttr(group string, a slog.Attr) string {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%v", key, a.Value)
}
