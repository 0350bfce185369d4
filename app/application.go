package app

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"cityexplorer.app/api"
	"cityexplorer.app/config"
	"cityexplorer.app/database"
	"cityexplorer.app/providers"
	"cityexplorer.app/providers/cache"
	"cityexplorer.app/repository"
	"cityexplorer.app/scheduler"
	"cityexplorer.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config  *config.Config
	db      *gorm.DB
	server  *api.Server
	janitor *scheduler.Janitor
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	geocodeProvider, err := app.createGeocodeProvider()
	if err != nil {
		return fmt.Errorf("create geocode provider: %w", err)
	}

	locationRepo := repository.NewLocationRepository(app.db)
	resourceRepo := repository.NewResourceRepository(app.db)

	explorerService := service.NewExplorerService(
		locationRepo,
		resourceRepo,
		geocodeProvider,
		providers.NewDarkSkyForecastProvider(&app.config.Forecast),
		providers.NewMeetupEventsProvider(&app.config.Events),
		providers.NewTMDBMovieProvider(&app.config.Movies),
		providers.NewYelpBusinessProvider(&app.config.Yelp),
	)

	app.server = api.NewServer(app.config, explorerService)
	app.janitor = scheduler.NewJanitor(app.config, resourceRepo)

	slog.Info("Services initialized successfully")
	return nil
}

// createGeocodeProvider builds the geocode client wrapped in the hot cache
// proxy selected by configuration
func (app *Application) createGeocodeProvider() (providers.GeocodeProvider, error) {
	slog.Debug("Creating geocode provider...", "cacheType", app.config.Cache.Type)

	realProvider := providers.NewGoogleGeocodeProvider(&app.config.Geocode)

	var hotCache cache.Cache
	switch app.config.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         app.config.Cache.RedisAddr,
			Password:     app.config.Cache.RedisPassword,
			DB:           app.config.Cache.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		hotCache = redisCache
	default:
		hotCache = cache.NewMemoryCache()
	}

	cacheTTL := time.Duration(app.config.Cache.TTLMinutes) * time.Minute
	return providers.NewGeocodeCacheProxy(realProvider, hotCache, cacheTTL), nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	if app.config.Janitor.Enabled {
		slog.Info("Starting cache janitor...")
		app.janitor.Start()
	}

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.janitor != nil {
		app.janitor.Stop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
