package report

import (
	"fmt"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user.  The reporter respects the set log level and is
// synchronized: its methods can be safely called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevelNames lists the log level names accepted by LogLevelFromName in
// order of increasing verbosity.
var LogLevelNames = []string{"silent", "error", "warn", "verbose"}

// LogLevelFromName converts a log level name into its log level.
func LogLevelFromName(name string) (int, error) {
	for i, levelName := range LogLevelNames {
		if levelName == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("unknown log level: `%s`", name)
}

// rep is the global reporter instance.  It starts out silent so that library
// callers which never initialize it get no console output.
var rep = &Reporter{m: &sync.Mutex{}, logLevel: LogLevelSilent}

// InitReporter sets the log level of the global reporter.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.isErr = false
}

// LogLevel returns the log level of the global reporter.
func LogLevel() int {
	return rep.logLevel
}

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	return rep.isErr
}
