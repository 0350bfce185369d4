package service

import "cityexplorer.app/models"

// ExplorerServiceInterface defines the cache-or-fetch operations exposed
// to the HTTP layer
type ExplorerServiceInterface interface {
	GetLocation(query string) (*models.Location, error)
	GetForecasts(locationID uint, latitude, longitude float64) ([]models.Forecast, error)
	GetEvents(locationID uint, latitude, longitude float64) ([]models.Event, error)
	GetMovies(locationID uint, searchQuery string) ([]models.Movie, error)
	GetBusinesses(locationID uint, latitude, longitude float64) ([]models.Business, error)
}

// LocationRepositoryInterface defines the interface for location storage
type LocationRepositoryInterface interface {
	FindBySearchQuery(searchQuery string) (*models.Location, error)
	Create(location *models.Location) error
}

// ResourceRepositoryInterface defines the interface for resource row set
// storage keyed by (resource type, location)
type ResourceRepositoryInterface interface {
	FetchStampFor(resourceType models.ResourceType, locationID uint) (*models.FetchStamp, error)
	FindForecasts(locationID uint) ([]models.Forecast, error)
	FindEvents(locationID uint) ([]models.Event, error)
	FindMovies(locationID uint) ([]models.Movie, error)
	FindBusinesses(locationID uint) ([]models.Business, error)
	Purge(resourceType models.ResourceType, locationID uint) error
	InsertForecasts(locationID uint, rows []models.Forecast) error
	InsertEvents(locationID uint, rows []models.Event) error
	InsertMovies(locationID uint, rows []models.Movie) error
	InsertBusinesses(locationID uint, rows []models.Business) error
}

// Ensure implementations satisfy interfaces
var _ ExplorerServiceInterface = (*ExplorerService)(nil)
