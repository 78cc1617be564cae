package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel разбирает уровень из конфигурации, неизвестное значение даёт info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger пишет в консоль и (опционально) в файл
type Logger struct {
	mu      sync.Mutex
	level   Level
	console *log.Logger
	file    *log.Logger
	closer  io.Closer
	colored bool
}

// New создает логгер. Пустой filePath отключает запись в файл
func New(filePath string, level string) (*Logger, error) {
	l := &Logger{
		level:   ParseLevel(level),
		console: log.New(os.Stdout, "", log.LstdFlags),
		colored: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log dir: %w", err)
			}
		}
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
		l.closer = f
	}

	return l, nil
}

// NewWriter создает логгер поверх произвольного writer без цветов (используется в тестах)
func NewWriter(w io.Writer, level string) *Logger {
	return &Logger{
		level:   ParseLevel(level),
		console: log.New(w, "", 0),
	}
}

// Close закрывает файл лога
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.write(LevelDebug, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.write(LevelInfo, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.write(LevelWarn, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.write(LevelError, format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.write(LevelError, format, v...)
	_ = l.Close()
	os.Exit(1)
}

func (l *Logger) write(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, v...)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.console.Printf("%s %s", l.tag(level), msg)
	if l.file != nil {
		l.file.Printf("[%s] %s", level, msg)
	}
}

func (l *Logger) tag(level Level) string {
	tag := fmt.Sprintf("[%s]", level)
	if !l.colored {
		return tag
	}

	switch level {
	case LevelDebug:
		return color.HiBlackString(tag)
	case LevelWarn:
		return color.YellowString(tag)
	case LevelError:
		return color.RedString(tag)
	default:
		return color.GreenString(tag)
	}
}
