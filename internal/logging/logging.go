// Package logging configures the shared logrus setup.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a component-tagged logger writing to stderr. Unknown
// levels fall back to info.
func New(component, level string) *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger.WithField("component", component)
}
