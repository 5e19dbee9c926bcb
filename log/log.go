// Package log add logging utilities.
package log

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SetLogger sets the default logger's level and format.
func SetLogger(level string) {
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = time.RFC3339
	customFormatter.FullTimestamp = true
	logrus.SetFormatter(customFormatter)
	logrus.SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// DatagramFields describes an incoming datagram.
func DatagramFields(from interface{}, payload []byte) logrus.Fields {
	return logrus.Fields{
		"from":    from,
		"payload": payload,
		"len":     len(payload),
	}
}

// PlayerFields describes one side of a finished round.
func PlayerFields(prefix string, address interface{}, play interface{}) logrus.Fields {
	return logrus.Fields{
		prefix:           address,
		prefix + "_play": play,
	}
}
