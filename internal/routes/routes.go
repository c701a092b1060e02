package routes

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/rs/cors"

	"bikedash/internal/chart"
	"bikedash/internal/config"
	"bikedash/internal/dataset"
	"bikedash/internal/handlers"
	"bikedash/internal/logger"
	"bikedash/internal/middleware"
	"bikedash/internal/services/websocket"
)

// SetupRoutes registers static file serving, the dashboard API, the live
// websocket and the log viewer, wrapped in the standard middleware chain.
func SetupRoutes(cfg *config.Config, ds *dataset.Dataset, renderer chart.Renderer,
	hub *websocket.HubService, l *logger.Logger) http.Handler {
	standard := alice.New(middleware.RecoverPanic(l), middleware.LogRequest(l), middleware.SecureHeaders)

	mux := pat.New()

	// API endpoints
	mux.Get("/api/range", handlers.RangeHandler(ds, l))
	mux.Get("/api/summary", handlers.SummaryHandler(ds, l))
	mux.Get("/api/charts/:kind", handlers.ChartHandler(ds, renderer, l))
	mux.Get("/api/charts", handlers.ChartsHandler(ds, renderer, l))
	mux.Get("/api/export/:table", handlers.ExportHandler(ds, l))
	mux.Get("/api/page", handlers.PageHandler(cfg, l))
	mux.Get("/api/health", handlers.HealthHandler(ds, hub, l))
	mux.Get("/api/live", handlers.LiveHandler(ds, renderer, hub, l))

	// Log endpoints
	admin := alice.New(middleware.RequireAdmin(cfg.AdminToken))
	mux.Get("/logs/:level", admin.Then(handlers.ShowLogsHandler(l)))
	mux.Post("/logs/:level/clear", admin.Then(handlers.ClearLogsHandler(l)))

	// Static files
	mux.Get("/sidebar-image", handlers.SidebarImageHandler(cfg))
	mux.Get("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	// Automatic HTML handler mapping, for example: /about -> <static>/about.html
	mux.Get("/", handlers.DynamicHTMLHandler(cfg))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return standard.Then(c.Handler(mux))
}
