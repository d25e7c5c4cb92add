// Package logger configures the application-wide structured logger.
package logger

import (
	"github.com/sirupsen/logrus"
)

// New returns a logrus logger with JSON output. Development builds log at
// Debug, everything else at Info.
func New(env string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	if env == "development" {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}
