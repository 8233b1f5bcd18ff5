package logger

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// New initializes the process logger. Release mode gets JSON output for
// log collectors, everything else gets human-readable text.
func New(output io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if gin.Mode() == gin.ReleaseMode {
		l.SetFormatter(new(logrus.JSONFormatter))
	} else {
		l.SetFormatter(new(logrus.TextFormatter))
	}

	return l
}
