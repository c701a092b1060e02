package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"bikedash/internal/logger"
)

// ShowLogsHandler serves the log file named by the :level path parameter as text/plain.
func ShowLogsHandler(l *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, ok := logger.ParseLevel(r.URL.Query().Get(":level"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		serveLogFile(w, r, l.Dir(), level.FileName())
	}
}

// ClearLogsHandler truncates the log file named by :level.
func ClearLogsHandler(l *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, ok := logger.ParseLevel(r.URL.Query().Get(":level"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		if err := l.CleanLogs(level); err != nil {
			l.Error("Error clearing logs: %v", err)
			http.Error(w, "Unable to clear logs", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// serveLogFile sets headers and serves a log file if it exists.
func serveLogFile(w http.ResponseWriter, r *http.Request, logDir, filename string) {
	filePath := filepath.Join(logDir, filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Log file not found: " + filename))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	http.ServeFile(w, r, filePath)
}
