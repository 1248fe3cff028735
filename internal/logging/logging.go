// Package logging wires github.com/op/go-logging the way
// frankkopp/FrankyGo's franky_logging package does: a stdout backend
// with a leveled format string, one *logging.Logger per caller
// obtained through GetLog, plus (for the search package specifically)
// a second file-backed backend for move-by-move search tracing that
// costs nothing when disabled.
package logging

import (
	"os"

	"github.com/chessforge/chessforge/internal/config"
	"github.com/op/go-logging"
)

var stdoutFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortfile:15.15s} %{level:7s}:  %{message}`,
)

var loggers = map[string]*logging.Logger{}

func levelFor() logging.Level {
	lvl, err := logging.LogLevel(config.Settings.Log.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return lvl
}

// GetLog returns the named logger, creating it with a stdout backend
// on first use.
func GetLog(name string) *logging.Logger {
	if l, ok := loggers[name]; ok {
		return l
	}
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatted := logging.NewBackendFormatter(backend, stdoutFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(levelFor(), "")
	logging.SetBackend(leveled)
	l := logging.MustGetLogger(name)
	loggers[name] = l
	return l
}

// GetSearchTraceLog returns a logger backed by the trace file named by
// config.Settings.Log.SearchTraceLog instead of stdout. It does not
// consult config.Settings.Log.SearchTrace, and no package in this
// module calls it.
func GetSearchTraceLog() *logging.Logger {
	name := "searchtrace"
	if l, ok := loggers[name]; ok {
		return l
	}
	f, err := os.OpenFile(config.Settings.Log.SearchTraceLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return GetLog(name)
	}
	backend := logging.NewLogBackend(f, "", 0)
	formatted := logging.NewBackendFormatter(backend, stdoutFormat)
	fileLeveled := logging.AddModuleLevel(formatted)
	fileLeveled.SetLevel(logging.DEBUG, name)
	logging.SetBackend(fileLeveled)
	l := logging.MustGetLogger(name)
	loggers[name] = l
	return l
}
