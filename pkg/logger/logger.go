package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Параметры ротации файла логов
const (
	maxSizeMB  = 100
	maxBackups = 5
	maxAgeDays = 30
)

// Logger логгер с printf-интерфейсом поверх slog
// Пишет в stdout и (если указан файл) в файл с ротацией
type Logger struct {
	log  *slog.Logger
	file io.Closer
}

// New создает логгер
// file - путь к файлу логов (пустая строка - только stdout)
// level - debug | info | warn | error
func New(file, level string) (*Logger, error) {
	writers := []io.Writer{os.Stdout}

	var closer io.Closer
	if file != "" {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		writers = append(writers, rotator)
		closer = rotator
	}

	return newLogger(io.MultiWriter(writers...), level, closer), nil
}

// NewWithWriter создает логгер, пишущий в произвольный writer (используется в тестах и утилитах)
func NewWithWriter(w io.Writer, level string) *Logger {
	return newLogger(w, level, nil)
}

func newLogger(w io.Writer, level string, closer io.Closer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{
		log:  slog.New(handler),
		file: closer,
	}
}

// Debug пишет сообщение уровня DEBUG
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

// Info пишет сообщение уровня INFO
func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Warn пишет сообщение уровня WARN
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

// Error пишет сообщение уровня ERROR
func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// Fatal пишет сообщение уровня ERROR и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
	_ = l.Close()
	os.Exit(1)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
