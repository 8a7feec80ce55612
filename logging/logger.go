package logging

import (
	"io"
	"os"
	"sync"

	"github.com/grovetools/hooks/config"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	settings, err := config.LoadSettings()
	if err != nil {
		settings = &config.Settings{}
		settings.SetDefaults()
	}

	// Configure Level. GROVE_HOOKS_LOG_LEVEL is already folded into
	// settings by LoadSettings.
	level, err := logrus.ParseLevel(settings.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("GROVE_HOOKS_LOG_CALLER") == "true" {
		logger.SetReportCaller(true)
	}

	logger.SetFormatter(&TextFormatter{})

	// Structured logs go to stderr when debugging or when stderr is not
	// an interactive terminal (piped, CI). Interactive runs get only the
	// styled command output.
	isDebug := logger.GetLevel() == logrus.DebugLevel
	isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if isDebug || !isInteractive {
		logger.SetOutput(os.Stderr)
	} else {
		logger.SetOutput(io.Discard)
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}
