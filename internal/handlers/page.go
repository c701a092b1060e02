package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"bikedash/internal/config"
	"bikedash/internal/logger"
)

const (
	dashboardTitle = "Dashboard Analisis Bike Sharing"
	dateInputLabel = "Rentang Waktu"
)

// PageInfo holds the static text and image shown around the charts.
type PageInfo struct {
	Title         string `json:"title"`
	DateLabel     string `json:"dateLabel"`
	SidebarImage  string `json:"sidebarImage"`
	Caption       string `json:"caption"`
	CaptionAuthor string `json:"captionAuthor"`
	CaptionURL    string `json:"captionUrl"`
	CopyrightYear int    `json:"copyrightYear"`
}

// PageHandler returns the page title, sidebar image location and caption.
func PageHandler(cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := time.Now().Year()
		writeJSON(w, http.StatusOK, PageInfo{
			Title:         dashboardTitle,
			DateLabel:     dateInputLabel,
			SidebarImage:  "/sidebar-image",
			Caption:       fmt.Sprintf("Copyright %d %s", year, cfg.CaptionAuthor),
			CaptionAuthor: cfg.CaptionAuthor,
			CaptionURL:    cfg.CaptionURL,
			CopyrightYear: year,
		}, logger)
	}
}

// SidebarImageHandler serves the configured sidebar image.
func SidebarImageHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(cfg.SidebarImage); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, cfg.SidebarImage)
	}
}

// DynamicHTMLHandler serves /path as <static>/path.html if the file exists; otherwise 404.
func DynamicHTMLHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/" {
			path = "/index"
		}

		filePath := filepath.Join(cfg.StaticDir, filepath.Clean("/"+path)+".html")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filePath)
	}
}
