// Package logger wraps logrus with context-aware helpers used across the service.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/roguepikachu/libraryual/pkg/ctxutil"
	"github.com/sirupsen/logrus"
)

// InitLogging configures the logger. It sets the log level from the LOG_LEVEL environment variable if present.
func InitLogging() {
	logrus.Info("....Configuring Logger....")
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	setLogLevel(logLevel)
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func setLogLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logrus.Infof("invalid LOG_LEVEL=[%s], defaulting to info", level)
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetLevel(lvl)
	logrus.Infof("Setting logging level to %s", lvl)
}

// sprintf formats without touching args when there are none, so literal '%' survives.
func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// entry returns a logrus entry carrying request-scoped ids.
func entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return e
	}
	if id := ctxutil.RequestID(ctx); id != "" {
		e = e.WithField("request_id", id)
	}
	if id := ctxutil.ClientID(ctx); id != "" {
		e = e.WithField("client_id", id)
	}
	return e
}

// With returns an entry with the given fields and the request-scoped ids from ctx.
func With(ctx context.Context, fields map[string]any) *logrus.Entry {
	return entry(ctx).WithFields(logrus.Fields(fields))
}

// WithField is With for a single key.
func WithField(ctx context.Context, key string, value any) *logrus.Entry {
	return entry(ctx).WithField(key, value)
}

func Info(ctx context.Context, msg string, args ...any) {
	entry(ctx).Info(sprintf(msg, args...))
}

func Debug(ctx context.Context, msg string, args ...any) {
	entry(ctx).Debug(sprintf(msg, args...))
}

func Warn(ctx context.Context, msg string, args ...any) {
	entry(ctx).Warn(sprintf(msg, args...))
}

func Error(ctx context.Context, msg string, args ...any) {
	entry(ctx).Error(sprintf(msg, args...))
}

func Fatal(ctx context.Context, msg string, args ...any) {
	entry(ctx).Fatal(sprintf(msg, args...))
}
