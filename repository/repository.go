// Package repository implements the data access layer for cached resources
package repository

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	cityerr "cityexplorer.app/errors"
	"cityexplorer.app/models"
)

// LocationRepository handles data access operations for geocoded locations
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new repository for location data
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// FindBySearchQuery retrieves a location by its original search text.
// Returns nil without error when no location has been stored for the query.
func (r *LocationRepository) FindBySearchQuery(searchQuery string) (*models.Location, error) {
	log.Printf("[DEBUG] LocationRepository.FindBySearchQuery: query=%s\n", searchQuery)

	if searchQuery == "" {
		return nil, cityerr.NewValidationError("search query cannot be empty")
	}

	var location models.Location
	result := r.db.Where("search_query = ?", searchQuery).First(&location)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Println("[DEBUG] No location found")
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding location: %v\n", result.Error)
		return nil, result.Error
	}

	log.Printf("[DEBUG] Found location: %+v\n", location)
	return &location, nil
}

// Create persists a new location; the generated id is written back onto it
func (r *LocationRepository) Create(location *models.Location) error {
	log.Printf("[DEBUG] LocationRepository.Create: %+v\n", location)

	result := r.db.Create(location)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating location: %v\n", result.Error)
		return result.Error
	}

	log.Printf("[DEBUG] Created location with ID: %d\n", location.ID)
	return nil
}

// ResourceRepository handles data access operations for location-owned
// resource row sets (forecasts, events, movies, businesses)
type ResourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new repository for resource row sets
func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func resourceModel(resourceType models.ResourceType) interface{} {
	switch resourceType {
	case models.ResourceForecast:
		return &models.Forecast{}
	case models.ResourceEvent:
		return &models.Event{}
	case models.ResourceMovie:
		return &models.Movie{}
	case models.ResourceBusiness:
		return &models.Business{}
	default:
		return nil
	}
}

// FetchStampFor retrieves the fetch timestamp for a (type, location) pair.
// Returns nil without error when the pair has never been fetched.
func (r *ResourceRepository) FetchStampFor(resourceType models.ResourceType, locationID uint) (*models.FetchStamp, error) {
	var stamp models.FetchStamp
	result := r.db.Where("resource_type = ? AND location_id = ?", resourceType, locationID).First(&stamp)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding fetch stamp: %v\n", result.Error)
		return nil, result.Error
	}
	return &stamp, nil
}

// ListFetchStamps retrieves every fetch stamp; used by the cache janitor
func (r *ResourceRepository) ListFetchStamps() ([]models.FetchStamp, error) {
	var stamps []models.FetchStamp
	if err := r.db.Find(&stamps).Error; err != nil {
		log.Printf("[ERROR] Database error when listing fetch stamps: %v\n", err)
		return nil, err
	}
	return stamps, nil
}

// FindForecasts retrieves all cached forecasts for a location, oldest first
func (r *ResourceRepository) FindForecasts(locationID uint) ([]models.Forecast, error) {
	var rows []models.Forecast
	if err := r.db.Where("location_id = ?", locationID).Order("id").Find(&rows).Error; err != nil {
		log.Printf("[ERROR] Database error when finding forecasts: %v\n", err)
		return nil, err
	}
	return rows, nil
}

// FindEvents retrieves all cached events for a location, oldest first
func (r *ResourceRepository) FindEvents(locationID uint) ([]models.Event, error) {
	var rows []models.Event
	if err := r.db.Where("location_id = ?", locationID).Order("id").Find(&rows).Error; err != nil {
		log.Printf("[ERROR] Database error when finding events: %v\n", err)
		return nil, err
	}
	return rows, nil
}

// FindMovies retrieves all cached movies for a location, oldest first
func (r *ResourceRepository) FindMovies(locationID uint) ([]models.Movie, error) {
	var rows []models.Movie
	if err := r.db.Where("location_id = ?", locationID).Order("id").Find(&rows).Error; err != nil {
		log.Printf("[ERROR] Database error when finding movies: %v\n", err)
		return nil, err
	}
	return rows, nil
}

// FindBusinesses retrieves all cached businesses for a location, oldest first
func (r *ResourceRepository) FindBusinesses(locationID uint) ([]models.Business, error) {
	var rows []models.Business
	if err := r.db.Where("location_id = ?", locationID).Order("id").Find(&rows).Error; err != nil {
		log.Printf("[ERROR] Database error when finding businesses: %v\n", err)
		return nil, err
	}
	return rows, nil
}

// Purge deletes every row and the fetch stamp for a (type, location) pair.
// Deleting zero rows is not an error.
func (r *ResourceRepository) Purge(resourceType models.ResourceType, locationID uint) error {
	log.Printf("[DEBUG] ResourceRepository.Purge: type=%s, locationID=%d\n", resourceType, locationID)

	model := resourceModel(resourceType)
	if model == nil {
		return cityerr.NewValidationError("unknown resource type: " + string(resourceType))
	}

	if err := r.db.Where("location_id = ?", locationID).Delete(model).Error; err != nil {
		log.Printf("[ERROR] Database error when purging %s rows: %v\n", resourceType, err)
		return err
	}

	if err := r.db.Where("resource_type = ? AND location_id = ?", resourceType, locationID).
		Delete(&models.FetchStamp{}).Error; err != nil {
		log.Printf("[ERROR] Database error when purging fetch stamp: %v\n", err)
		return err
	}

	return nil
}

// InsertForecasts persists a freshly fetched forecast row set and stamps it
func (r *ResourceRepository) InsertForecasts(locationID uint, rows []models.Forecast) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.Create(&rows).Error; err != nil {
		log.Printf("[ERROR] Database error when inserting forecasts: %v\n", err)
		return err
	}
	return r.touchStamp(models.ResourceForecast, locationID)
}

// InsertEvents persists a freshly fetched event row set and stamps it
func (r *ResourceRepository) InsertEvents(locationID uint, rows []models.Event) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.Create(&rows).Error; err != nil {
		log.Printf("[ERROR] Database error when inserting events: %v\n", err)
		return err
	}
	return r.touchStamp(models.ResourceEvent, locationID)
}

// InsertMovies persists a freshly fetched movie row set and stamps it
func (r *ResourceRepository) InsertMovies(locationID uint, rows []models.Movie) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.Create(&rows).Error; err != nil {
		log.Printf("[ERROR] Database error when inserting movies: %v\n", err)
		return err
	}
	return r.touchStamp(models.ResourceMovie, locationID)
}

// InsertBusinesses persists a freshly fetched business row set and stamps it
func (r *ResourceRepository) InsertBusinesses(locationID uint, rows []models.Business) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.Create(&rows).Error; err != nil {
		log.Printf("[ERROR] Database error when inserting businesses: %v\n", err)
		return err
	}
	return r.touchStamp(models.ResourceBusiness, locationID)
}

// touchStamp replaces the fetch stamp for a pair with the current time.
// Rows and their stamp always move together: Purge removes both, the
// Insert* methods write both.
func (r *ResourceRepository) touchStamp(resourceType models.ResourceType, locationID uint) error {
	if err := r.db.Where("resource_type = ? AND location_id = ?", resourceType, locationID).
		Delete(&models.FetchStamp{}).Error; err != nil {
		log.Printf("[ERROR] Database error when clearing fetch stamp: %v\n", err)
		return err
	}

	stamp := models.FetchStamp{
		ResourceType: resourceType,
		LocationID:   locationID,
		FetchedAt:    time.Now(),
	}
	if err := r.db.Create(&stamp).Error; err != nil {
		log.Printf("[ERROR] Database error when writing fetch stamp: %v\n", err)
		return err
	}
	return nil
}
