package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Logger struct {
	file       *os.File
	logger     *log.Logger
	multiWrite io.Writer
	debug      bool
}

// NewLogger logs to console and, when dir is not empty, to a timestamped
// file under dir/<name>.
func NewLogger(console io.Writer, name, dir string, debug bool) (*Logger, error) {
	if dir == "" {
		return NewWriterLogger(console, debug), nil
	}

	// Sanitize name for file system
	sanitized := strings.ReplaceAll(strings.ToLower(name), " ", "_")

	logDir := filepath.Join(dir, sanitized)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logDir, fmt.Sprintf("%s_%s.log", sanitized, timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := NewWriterLogger(io.MultiWriter(console, file), debug)
	l.file = file
	return l, nil
}

// NewWriterLogger logs to w only.
func NewWriterLogger(w io.Writer, debug bool) *Logger {
	return &Logger{
		logger:     log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds),
		multiWrite: w,
		debug:      debug,
	}
}

// Writer returns the destination, for handing to other loggers.
func (l *Logger) Writer() io.Writer {
	return l.multiWrite
}

func (l *Logger) LogInfo(format string, v ...interface{}) {
	l.log("INFO", format, v...)
}

func (l *Logger) LogError(format string, v ...interface{}) {
	l.log("ERROR", format, v...)
}

func (l *Logger) LogDebug(format string, v ...interface{}) {
	if !l.debug {
		return
	}
	l.log("DEBUG", format, v...)
}

func (l *Logger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	l.logger.Printf("[%s] %s", level, message)
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
