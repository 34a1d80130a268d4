package common

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type LogLevel int32

const (
	DEBUG_INFO_DETAIL LogLevel = 1
	DEBUG_INFO                 = 2
	RDB_OP_FUNC_CALL           = 4
	DEBUGGING                  = 8
	INFO                       = 16
	WARN                       = 32
	ERROR                      = 64
	FATAL                      = 128
)

// Logger receives everything ShPrintf lets through the LogLevelSetting mask
var Logger = newLogger()

var LogLevelSetting LogLevel = INFO | WARN | ERROR | FATAL

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	// filtering is done with LogLevelSetting
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return l
}

func ShPrintf(logLevel LogLevel, fmtStl string, a ...interface{}) {
	if logLevel&LogLevelSetting == 0 {
		return
	}
	fmtStl = strings.TrimSuffix(fmtStl, "\n")
	switch {
	case logLevel >= ERROR:
		// FATAL is reported, never os.Exit from library code
		Logger.Errorf(fmtStl, a...)
	case logLevel == WARN:
		Logger.Warnf(fmtStl, a...)
	case logLevel == INFO:
		Logger.Infof(fmtStl, a...)
	case logLevel == DEBUG_INFO_DETAIL || logLevel == RDB_OP_FUNC_CALL:
		Logger.Tracef(fmtStl, a...)
	default:
		Logger.Debugf(fmtStl, a...)
	}
}

// LogFields is shorthand for a structured entry when the caller wants key/value context
func LogFields(fields logrus.Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}

// SetLogLevel rebuilds LogLevelSetting from a level name ("trace", "debug", "info", "warn", "error")
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "trace":
		LogLevelSetting = DEBUG_INFO_DETAIL | DEBUG_INFO | RDB_OP_FUNC_CALL | DEBUGGING | INFO | WARN | ERROR | FATAL
	case "debug":
		LogLevelSetting = DEBUG_INFO | DEBUGGING | INFO | WARN | ERROR | FATAL
	case "warn", "warning":
		LogLevelSetting = WARN | ERROR | FATAL
	case "error":
		LogLevelSetting = ERROR | FATAL
	default:
		LogLevelSetting = INFO | WARN | ERROR | FATAL
	}
}
