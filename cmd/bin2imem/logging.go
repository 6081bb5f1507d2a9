package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

var clog = logrus.New()

func setupLogging(level, format string, output io.Writer) error {
	switch strings.ToLower(format) {
	case "", "text":
		clog.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	case "json":
		clog.Formatter = new(logrus.JSONFormatter)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	switch strings.ToUpper(level) {
	case "TRACE":
		clog.Level = logrus.TraceLevel
	case "DEBUG":
		clog.Level = logrus.DebugLevel
	case "", "INFO":
		clog.Level = logrus.InfoLevel
	case "WARN", "WARNING":
		clog.Level = logrus.WarnLevel
	case "ERROR":
		clog.Level = logrus.ErrorLevel
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	clog.Out = output
	return nil
}
