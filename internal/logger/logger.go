// Package logger is a thin package-level wrapper over go-logging with a
// single console backend.
package logger

import (
	"os"

	"github.com/op/go-logging"
)

const timeFormat = "2006/01/02 15:04:05"

var log *logging.Logger

func init() {
	// Usable before Init so tests and early start-up paths can log.
	Init(logging.INFO)
}

// Init configures the console backend at the given level.
func Init(level logging.Level) {
	l := logging.MustGetLogger("kost")

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(`%{time:` + timeFormat + `} %{level} - %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(level, "kost")

	l.SetBackend(leveled)
	log = l
}

func Debug(args ...any)                 { log.Debug(args...) }
func Debugf(format string, args ...any) { log.Debugf(format, args...) }

func Info(args ...any)                 { log.Info(args...) }
func Infof(format string, args ...any) { log.Infof(format, args...) }

func Warning(args ...any)                 { log.Warning(args...) }
func Warningf(format string, args ...any) { log.Warningf(format, args...) }

func Error(args ...any)                 { log.Error(args...) }
func Errorf(format string, args ...any) { log.Errorf(format, args...) }
