package utils

import (
	"context"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/zeebo/errs"
)

// LogLevel orders log messages by importance.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelNormal
	LevelUrgent
	LevelNone
)

// ParseLogLevel parses one of debug, normal, urgent, or none.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "normal", "":
		return LevelNormal, nil
	case "urgent":
		return LevelUrgent, nil
	case "none":
		return LevelNone, nil
	}
	return LevelNone, errs.New("unknown log level %q", level)
}

// Logger is a leveled Printf-style logger.
type Logger interface {
	Debugf(format string, v ...interface{})
	Normalf(format string, v ...interface{})
	Urgentf(format string, v ...interface{})
}

type stdLogger struct {
	debug, normal, urgent *log.Logger
}

// NewLogger sends debug and normal messages to out and urgent messages to
// errOut, dropping anything below level. Messages carry no prefix or
// timestamp.
func NewLogger(level LogLevel, out, errOut io.Writer) Logger {
	discard := log.New(ioutil.Discard, "", 0)
	pick := func(l LogLevel, w io.Writer) *log.Logger {
		if l < level {
			return discard
		}
		return log.New(w, "", 0)
	}
	return &stdLogger{
		debug:  pick(LevelDebug, out),
		normal: pick(LevelNormal, out),
		urgent: pick(LevelUrgent, errOut),
	}
}

// StandardLogger is NewLogger writing to stdout and stderr.
func StandardLogger(level LogLevel) Logger {
	return NewLogger(level, os.Stdout, os.Stderr)
}

func (l *stdLogger) Debugf(format string, v ...interface{})  { l.debug.Printf(format, v...) }
func (l *stdLogger) Normalf(format string, v ...interface{}) { l.normal.Printf(format, v...) }
func (l *stdLogger) Urgentf(format string, v ...interface{}) { l.urgent.Printf(format, v...) }

// DefaultLogger is used when no Logger was placed on a context.
var DefaultLogger = StandardLogger(LevelNormal)

type loggerKey struct{}

func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func L(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return l
	}
	return DefaultLogger
}
