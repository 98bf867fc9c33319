package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerOnce   sync.Once
)

// InitLogger initializes the global logger instance once. The given fields
// are attached to every entry.
func InitLogger(logLevel, logFile string, debugToConsole bool, format LogFormat, fields ...Field) error {
	var initErr error
	loggerOnce.Do(func() {
		logger, err := NewLogger(logLevel, logFile, debugToConsole, format)
		if err != nil {
			initErr = err
			return
		}
		globalLogger = logger.With(fields...)
	})
	return initErr
}

// CloseLogger flushes and closes the global logger's outputs
func CloseLogger() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// LogInfo convenience functions for logging
func LogInfo(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Info(msg, fields...)
	}
}

func LogInfof(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Infof(format, args...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Warn(msg, fields...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warnf(format, args...)
	}
}

func LogError(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Error(msg, fields...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	}
}
