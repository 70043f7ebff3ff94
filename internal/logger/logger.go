// Package logger provides the process-wide structured logger.
package logger

import (
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func init() {
	// Default until Init runs, so early failures still get structured output.
	l, _ := zap.NewProduction()
	log = l.Sugar()
}

// Init configures the global logger for the given environment.
// "development" gets human-readable console output, anything else JSON.
func Init(env string) error {
	var l *zap.Logger
	var err error
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	log = l.Sugar()
	return nil
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	_ = log.Sync()
}

func Info(msg string, keysAndValues ...interface{}) {
	log.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	log.Warnw(msg, keysAndValues...)
}

func Error(msg string, err error, keysAndValues ...interface{}) {
	if err != nil {
		keysAndValues = append(keysAndValues, "error", err)
	}
	log.Errorw(msg, keysAndValues...)
}

func Fatal(msg string, err error, keysAndValues ...interface{}) {
	if err != nil {
		keysAndValues = append(keysAndValues, "error", err)
	}
	log.Fatalw(msg, keysAndValues...)
}
