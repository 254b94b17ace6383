// Package logging builds the logrus logger shared by the pages and the runner.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"ui_automation/infrastructure/config"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TimestampFormat is the timestamp layout of every log line
const TimestampFormat = "2006-01-02 15:04:05"

// New - creates logger writing to the configured file, truncated at start; close the returned closer when done
func New(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid log level")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create log directory for %s", cfg.LogFile)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open log file %s", cfg.LogFile)
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
		DisableColors:   true,
	})
	return logger, file, nil
}

// NullLogger - returns a logger that discards everything
func NullLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
