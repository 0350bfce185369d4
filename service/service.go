// Package service implements the cache-or-fetch orchestration for every
// resource type: consult the stored row set, apply the freshness policy,
// and refetch from the matching provider when the set is missing or stale.
package service

import (
	"log"
	"time"

	"cityexplorer.app/errors"
	"cityexplorer.app/metrics"
	"cityexplorer.app/models"
	"cityexplorer.app/providers"
)

// ExplorerService orchestrates cache-or-fetch flows across all resource types
type ExplorerService struct {
	locationRepo LocationRepositoryInterface
	resourceRepo ResourceRepositoryInterface
	geocode      providers.GeocodeProvider
	forecast     providers.ForecastProvider
	events       providers.EventsProvider
	movies       providers.MovieProvider
	businesses   providers.BusinessProvider
	cacheMetrics map[models.ResourceType]*metrics.CacheMetrics
	now          func() time.Time
}

// NewExplorerService creates the orchestrator with its store and providers
func NewExplorerService(
	locationRepo LocationRepositoryInterface,
	resourceRepo ResourceRepositoryInterface,
	geocode providers.GeocodeProvider,
	forecast providers.ForecastProvider,
	events providers.EventsProvider,
	movies providers.MovieProvider,
	businesses providers.BusinessProvider,
) *ExplorerService {
	cacheMetrics := make(map[models.ResourceType]*metrics.CacheMetrics)
	for _, resourceType := range []models.ResourceType{
		models.ResourceForecast,
		models.ResourceEvent,
		models.ResourceMovie,
		models.ResourceBusiness,
	} {
		cacheMetrics[resourceType] = metrics.NewCacheMetrics(string(resourceType))
	}

	return &ExplorerService{
		locationRepo: locationRepo,
		resourceRepo: resourceRepo,
		geocode:      geocode,
		forecast:     forecast,
		events:       events,
		movies:       movies,
		businesses:   businesses,
		cacheMetrics: cacheMetrics,
		now:          time.Now,
	}
}

// GetLocation resolves a search query to a location: stored row if present,
// otherwise geocoded, persisted and returned. Locations never expire.
func (s *ExplorerService) GetLocation(query string) (*models.Location, error) {
	log.Printf("[DEBUG] ExplorerService.GetLocation called for query: %s\n", query)

	if query == "" {
		return nil, errors.NewValidationError("search query cannot be empty")
	}

	location, err := s.locationRepo.FindBySearchQuery(query)
	if err != nil {
		return nil, s.asDatabaseError("failed to look up location", err)
	}
	if location != nil {
		log.Printf("[DEBUG] Serving cached location: %+v\n", location)
		return location, nil
	}

	results, err := s.geocode.Geocode(query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.NewEmptyResultError("no location data for query")
	}

	record := NormalizeLocation(results[0], query)
	if err := s.locationRepo.Create(&record); err != nil {
		return nil, s.asDatabaseError("failed to persist location", err)
	}

	log.Printf("[DEBUG] Created location with ID: %d\n", record.ID)
	return &record, nil
}

// GetForecasts returns the daily forecasts for a location, serving cached
// rows while they are younger than 15 seconds.
func (s *ExplorerService) GetForecasts(locationID uint, latitude, longitude float64) ([]models.Forecast, error) {
	rows, err := s.resourceRepo.FindForecasts(locationID)
	if err != nil {
		return nil, s.asDatabaseError("failed to read cached forecasts", err)
	}

	decision, err := s.evaluate(models.ResourceForecast, locationID, len(rows))
	if err != nil {
		return nil, err
	}
	if decision == ServeCached {
		return rows, nil
	}

	if err := s.purge(models.ResourceForecast, locationID, len(rows)); err != nil {
		return nil, err
	}

	days, err := s.forecast.DailyForecast(latitude, longitude)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, errors.NewEmptyResultError("no forecast data from provider")
	}

	fresh := make([]models.Forecast, 0, len(days))
	for _, day := range days {
		fresh = append(fresh, NormalizeForecast(day, locationID))
	}

	if err := s.resourceRepo.InsertForecasts(locationID, fresh); err != nil {
		return nil, s.asDatabaseError("failed to persist forecasts", err)
	}
	return fresh, nil
}

// GetEvents returns upcoming events for a location with a 6 hour cache age
func (s *ExplorerService) GetEvents(locationID uint, latitude, longitude float64) ([]models.Event, error) {
	rows, err := s.resourceRepo.FindEvents(locationID)
	if err != nil {
		return nil, s.asDatabaseError("failed to read cached events", err)
	}

	decision, err := s.evaluate(models.ResourceEvent, locationID, len(rows))
	if err != nil {
		return nil, err
	}
	if decision == ServeCached {
		return rows, nil
	}

	if err := s.purge(models.ResourceEvent, locationID, len(rows)); err != nil {
		return nil, err
	}

	items, err := s.events.UpcomingEvents(latitude, longitude)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NewEmptyResultError("no event data from provider")
	}

	fresh := make([]models.Event, 0, len(items))
	for _, item := range items {
		fresh = append(fresh, NormalizeEvent(item, locationID))
	}

	if err := s.resourceRepo.InsertEvents(locationID, fresh); err != nil {
		return nil, s.asDatabaseError("failed to persist events", err)
	}
	return fresh, nil
}

// GetMovies returns movie results for a location's search text with a
// 30 day cache age
func (s *ExplorerService) GetMovies(locationID uint, searchQuery string) ([]models.Movie, error) {
	rows, err := s.resourceRepo.FindMovies(locationID)
	if err != nil {
		return nil, s.asDatabaseError("failed to read cached movies", err)
	}

	decision, err := s.evaluate(models.ResourceMovie, locationID, len(rows))
	if err != nil {
		return nil, err
	}
	if decision == ServeCached {
		return rows, nil
	}

	if err := s.purge(models.ResourceMovie, locationID, len(rows)); err != nil {
		return nil, err
	}

	results, err := s.movies.SearchMovies(searchQuery)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.NewEmptyResultError("no movie data from provider")
	}

	fresh := make([]models.Movie, 0, len(results))
	for _, result := range results {
		fresh = append(fresh, NormalizeMovie(result, locationID))
	}

	if err := s.resourceRepo.InsertMovies(locationID, fresh); err != nil {
		return nil, s.asDatabaseError("failed to persist movies", err)
	}
	return fresh, nil
}

// GetBusinesses returns business listings for a location with a 24 hour
// cache age
func (s *ExplorerService) GetBusinesses(locationID uint, latitude, longitude float64) ([]models.Business, error) {
	rows, err := s.resourceRepo.FindBusinesses(locationID)
	if err != nil {
		return nil, s.asDatabaseError("failed to read cached businesses", err)
	}

	decision, err := s.evaluate(models.ResourceBusiness, locationID, len(rows))
	if err != nil {
		return nil, err
	}
	if decision == ServeCached {
		return rows, nil
	}

	if err := s.purge(models.ResourceBusiness, locationID, len(rows)); err != nil {
		return nil, err
	}

	items, err := s.businesses.SearchBusinesses(latitude, longitude)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NewEmptyResultError("no business data from provider")
	}

	fresh := make([]models.Business, 0, len(items))
	for _, item := range items {
		fresh = append(fresh, NormalizeBusiness(item, locationID))
	}

	if err := s.resourceRepo.InsertBusinesses(locationID, fresh); err != nil {
		return nil, s.asDatabaseError("failed to persist businesses", err)
	}
	return fresh, nil
}

// evaluate reads the fetch stamp for a pair and applies the freshness policy
func (s *ExplorerService) evaluate(resourceType models.ResourceType, locationID uint, rowCount int) (Decision, error) {
	stamp, err := s.resourceRepo.FetchStampFor(resourceType, locationID)
	if err != nil {
		return PurgeAndRefetch, s.asDatabaseError("failed to read fetch stamp", err)
	}

	decision := EvaluateFreshness(resourceType, stamp, rowCount, s.now())
	if m := s.cacheMetrics[resourceType]; m != nil {
		if decision == ServeCached {
			m.RecordHit()
		} else {
			m.RecordMiss()
		}
	}

	log.Printf("[DEBUG] Freshness decision for type=%s, locationID=%d: %v\n", resourceType, locationID, decision)
	return decision, nil
}

// purge drops the stale row set for a pair. Purging an empty pair is a
// no-op kept for idempotence.
func (s *ExplorerService) purge(resourceType models.ResourceType, locationID uint, rowCount int) error {
	if err := s.resourceRepo.Purge(resourceType, locationID); err != nil {
		return s.asDatabaseError("failed to purge stale rows", err)
	}
	if rowCount > 0 {
		if m := s.cacheMetrics[resourceType]; m != nil {
			m.RecordPurge()
		}
	}
	return nil
}

// asDatabaseError wraps raw storage errors, passing AppErrors through
func (s *ExplorerService) asDatabaseError(message string, err error) error {
	if _, ok := err.(*errors.AppError); ok {
		return err
	}
	return errors.NewDatabaseError(message, err)
}
