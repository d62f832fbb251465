package tui

import (
	"log"
	"os"
	"path/filepath"

	"github.com/prismmail/prism-tui/internal/config"
)

// initLogger switches the app logger to a file under the state directory
// (or the configured path). On failure the discard logger stays in place.
func (a *App) initLogger() {
	if a.logFile != nil {
		return
	}
	logPath := a.Config.LogFile
	if logPath == "" {
		logPath = filepath.Join(config.DefaultStateDir(), "prism.log")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	a.logFile = f
	a.logger = log.New(f, "[prism] ", log.LstdFlags|log.Lmicroseconds)
}

// closeLogger closes the log file if opened
func (a *App) closeLogger() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
