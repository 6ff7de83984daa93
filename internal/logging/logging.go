package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// NewLogger builds the process logger; format comes from LOG_FORMAT.
func NewLogger(format LogFormat) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch format {
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
