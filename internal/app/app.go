package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bikedash/internal/chart"
	"bikedash/internal/config"
	"bikedash/internal/dataset"
	"bikedash/internal/logger"
	"bikedash/internal/repository"
	"bikedash/internal/repository/sqlite"
	"bikedash/internal/routes"
	"bikedash/internal/services/websocket"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	dataset    *dataset.Dataset
	renderer   chart.Renderer
	hubService *websocket.HubService
}

func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.NewLogger(cfg.LogDirectory)
	if err != nil {
		return nil, err
	}

	ds, err := LoadDataset(cfg)
	if err != nil {
		l.Close()
		return nil, err
	}

	return &App{
		config:     cfg,
		logger:     l,
		dataset:    ds,
		renderer:   chart.NewRenderer(),
		hubService: websocket.NewHubService(l),
	}, nil
}

// LoadDataset reads the rental records from the configured source.
func LoadDataset(cfg *config.Config) (*dataset.Dataset, error) {
	switch cfg.DataSource {
	case config.SourceSQLite:
		db, err := sqlite.Open(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return loadFromRepository(sqlite.NewRentalRepository(db))
	default:
		return dataset.LoadCSV(cfg.DataPath)
	}
}

func loadFromRepository(repo repository.RentalRepository) (*dataset.Dataset, error) {
	records, err := repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rentals: %w", err)
	}
	return dataset.New(records)
}

func (a *App) Run() error {
	defer a.logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start background services
	go a.hubService.Run(ctx)

	// Setup routes
	router := routes.SetupRoutes(a.config, a.dataset, a.renderer, a.hubService, a.logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Port),
		Handler:      router,
		ErrorLog:     a.logger.ErrorLog(),
		ReadTimeout:  time.Duration(a.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.WriteTimeout) * time.Second,
		IdleTimeout:  time.Minute,
	}

	minDate, maxDate := a.dataset.Bounds()
	fmt.Printf("🚲 Bike Sharing Dashboard\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("📁 Source: %s (%d records)\n", a.config.DataSource, a.dataset.Len())
	fmt.Printf("📅 Dates: %s - %s, baseline %d\n", minDate.Format("2006-01-02"), maxDate.Format("2006-01-02"), a.dataset.BaselineYear())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
