// Package obs holds the router's ambient observability surface: the
// structured logger and the Prometheus metrics every other package reports
// through.
package obs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Other packages log through it directly
// or through the WithInterface/WithConnection helpers below.
var Log *logrus.Logger

func init() {
	Log = NewLogger("info", "stdout")
}

var levelsByName = map[string]logrus.Level{
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
}

func parseLevel(level string) logrus.Level {
	if l, ok := levelsByName[level]; ok {
		return l
	}
	return logrus.InfoLevel
}

// NewLogger builds a logrus.Logger with JSON output, one line per event.
// It attaches no fields of its own; WithInterface and WithConnection add
// the interface and connection names. output is "stdout" or a file path;
// an unwritable path falls back to stdout with a warning rather than
// losing the process's only log sink.
func NewLogger(level, output string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(parseLevel(level))

	if output == "stdout" {
		logger.SetOutput(os.Stdout)
	} else {
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logger.SetOutput(os.Stdout)
			logger.Warnf("failed to open log file %s, using stdout", output)
		} else {
			logger.SetOutput(file)
		}
	}

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	return logger
}

// SetLevel changes the global logger's level at runtime, used by
// mavrouterd's "-log-level" flag.
func SetLevel(level string) {
	Log.SetLevel(parseLevel(level))
}

// WithInterface tags a log entry with the transport interface it concerns
// (serial device, UDP socket, or pcap replay), the field every ingress/
// egress log line in internal/transport carries.
func WithInterface(name string) *logrus.Entry {
	return Log.WithField("interface", name)
}

// WithConnection tags a log entry with the Connection it concerns, the
// field every admission/queueing log line in internal/conn carries.
func WithConnection(name string) *logrus.Entry {
	return Log.WithField("connection", name)
}
