package logging

// Levelled logging for zbframe

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelVerbose
	LogLevelDebug
)

// ParseLevel maps a level name to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "silent", "quiet":
		return LogLevelSilent, nil
	case "error":
		return LogLevelError, nil
	case "", "info":
		return LogLevelInfo, nil
	case "verbose":
		return LogLevelVerbose, nil
	case "debug":
		return LogLevelDebug, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q (want silent, error, info, verbose or debug)", name)
	}
}

// Logger provides levelled logging in text or JSON lines
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	format   string
	logEvery int
	counter  int
	file     *os.File
	fileLog  *log.Logger
	fileJSON *zerolog.Logger
	stdout   io.Writer
	stderr   io.Writer
}

// NewLoggerWithOptions creates a logger. format is "text" or "json"; logEvery
// samples the console lines of successful LogFrame calls (1 writes every
// frame). The log file, when set, receives every message.
func NewLoggerWithOptions(level LogLevel, logFile, format string, logEvery int) (*Logger, error) {
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	if logEvery <= 0 {
		logEvery = 1
	}

	l := &Logger{
		level:    level,
		format:   format,
		logEvery: logEvery,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	if logFile != "" {
		file, err := os.Create(logFile)
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		l.file = file
		if format == "json" {
			zl := zerolog.New(file).With().Timestamp().Logger()
			l.fileJSON = &zl
		} else {
			l.fileLog = log.New(file, "", log.LstdFlags)
		}
	}

	return l, nil
}

// SetOutput redirects console output. Tests use it to capture messages.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = stdout
	l.stderr = stderr
}

// Close closes the logger and flushes all data
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.level >= LogLevelError {
		l.write("ERROR", fmt.Sprintf(format, v...), true)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.level >= LogLevelInfo {
		l.write("INFO", fmt.Sprintf(format, v...), false)
	}
}

// Verbose logs a verbose message
func (l *Logger) Verbose(format string, v ...interface{}) {
	if l.level >= LogLevelVerbose {
		l.write("VERBOSE", fmt.Sprintf(format, v...), false)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level >= LogLevelDebug {
		l.write("DEBUG", fmt.Sprintf(format, v...), false)
	}
}

func zerologLevel(label string) zerolog.Level {
	switch label {
	case "ERROR":
		return zerolog.ErrorLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "VERBOSE":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// write writes a message to the log file and the console
func (l *Logger) write(label, msg string, isError bool) {
	l.emit(label, msg, isError, true)
}

func (l *Logger) emit(label, msg string, isError, console bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Always write to log file if available
	if l.fileLog != nil {
		l.fileLog.Println(label + ": " + msg)
	}
	if l.fileJSON != nil {
		l.fileJSON.WithLevel(zerologLevel(label)).Msg(msg)
	}
	if !console {
		return
	}

	// Errors go to stderr, others to stdout only when verbose or debug
	var out io.Writer
	if isError {
		out = l.stderr
	} else if l.level >= LogLevelVerbose {
		out = l.stdout
	}
	if out == nil {
		return
	}
	if l.format == "json" {
		zl := zerolog.New(out).With().Timestamp().Logger()
		zl.WithLevel(zerologLevel(label)).Msg(msg)
		return
	}
	fmt.Fprintln(out, label+": "+msg)
}

// sample advances the frame counter and reports whether this frame's
// console lines are shown.
func (l *Logger) sample() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counter++
	return l.counter%l.logEvery == 0
}

// LogFrame logs one frame build outcome. Successes are verbose, failures
// are errors. Successes are sampled by logEvery on the console; failures
// always show.
func (l *Logger) LogFrame(kind, key string, data []byte, err error) {
	name := kind
	if key != "" {
		name = fmt.Sprintf("%s %q", kind, key)
	}
	if err != nil {
		l.Error("FAILED %s: %v", name, err)
		return
	}
	show := l.sample()
	if l.level >= LogLevelVerbose {
		l.emit("VERBOSE", fmt.Sprintf("BUILT %s (%d bytes)", name, len(data)), false, show)
	}
	if l.level >= LogLevelDebug {
		l.emit("DEBUG", name+": "+hexString(data), false, show)
	}
}

// LogStartup logs startup information
func (l *Logger) LogStartup(command, configPath string) {
	l.Info("Starting zbframe %s", command)
	l.Verbose("  Config: %s", configPath)
}

func hexString(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}
