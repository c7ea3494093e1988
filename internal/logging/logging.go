package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger used across the service.
func Setup(level, format string) {
	logrus.SetOutput(os.Stdout)

	if strings.EqualFold(format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		logrus.WithField("level", level).Warn("unknown log level, falling back to info")
	}
	logrus.SetLevel(lvl)
}
