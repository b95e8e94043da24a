// Package logging sets up the module's logrus-based logging, mirroring
// the original project's single named logger
// (printer = logging.getLogger(__name__)) plus its configure_logging.setup
// helper that the CLI entrypoints call once at startup.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Root is the module-wide logger. Packages derive component loggers from
// it with For, the way the Python project calls
// logging.getLogger(__name__) once per module.
var Root = logrus.New()

func init() {
	Root.SetOutput(os.Stderr)
	Root.SetLevel(logrus.WarnLevel)
}

// For returns a component-scoped logger, analogous to
// printer = logging.getLogger(__name__).
func For(component string) *logrus.Entry {
	return Root.WithField("component", component)
}

// Setup maps a CLI verbosity count and a quiet flag onto a logrus level,
// the way configure_logging.setup mapped (verbose, quiet) onto Python log
// levels: quiet wins outright (Error); otherwise verbosity 0 selects
// Info, 1 selects Debug, and 2 or more selects Trace.
func Setup(verbosity int, quiet bool) {
	switch {
	case quiet:
		Root.SetLevel(logrus.ErrorLevel)
	case verbosity >= 2:
		Root.SetLevel(logrus.TraceLevel)
	case verbosity == 1:
		Root.SetLevel(logrus.DebugLevel)
	default:
		Root.SetLevel(logrus.InfoLevel)
	}
}
