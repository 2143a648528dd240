// Package log wires logrus into small named loggers. Diagnostics go to
// stderr so they never interleave with report output on stdout.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var root = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.WarnLevel,
}

// SetVerbose lifts the global level to debug.
func SetVerbose(v bool) {
	if v {
		root.SetLevel(logrus.DebugLevel)
	}
}

// Named returns a logger scoped to one package.
func Named(pkg string) *logrus.Entry {
	return root.WithField("pkg", pkg)
}
