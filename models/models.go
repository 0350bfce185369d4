// Package models defines data structures used throughout the application
package models

import "time"

// ResourceType identifies a cacheable resource family owned by a location.
type ResourceType string

const (
	ResourceForecast ResourceType = "forecast"
	ResourceEvent    ResourceType = "event"
	ResourceMovie    ResourceType = "movie"
	ResourceBusiness ResourceType = "business"
	// ResourceTrail is reserved; no endpoint serves it yet.
	ResourceTrail ResourceType = "trail"
)

// Location represents a geocoded place, keyed by the original search text.
// Locations are created on the first geocode miss and never expire.
type Location struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	SearchQuery    string    `json:"search_query" gorm:"uniqueIndex;not null"`
	FormattedQuery string    `json:"formatted_query" gorm:"not null"`
	Latitude       float64   `json:"latitude" gorm:"not null"`
	Longitude      float64   `json:"longitude" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// Forecast represents one cached daily weather summary for a location.
type Forecast struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ForecastSummary string    `json:"forecast_summary" gorm:"not null"`
	DayLabel        string    `json:"day_label" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	LocationID      uint      `json:"location_id" gorm:"index;not null"`
}

// Event represents one cached upcoming event near a location.
type Event struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Link         string    `json:"link"`
	Name         string    `json:"name" gorm:"not null"`
	CreationDate string    `json:"creation_date"`
	Host         string    `json:"host"`
	CreatedAt    time.Time `json:"created_at"`
	LocationID   uint      `json:"location_id" gorm:"index;not null"`
}

// Movie represents one cached movie search result for a location.
type Movie struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Overview     string    `json:"overview"`
	AverageVotes float64   `json:"average_votes"`
	TotalVotes   int       `json:"total_votes"`
	ImageURL     string    `json:"image_url"`
	Popularity   float64   `json:"popularity"`
	ReleasedOn   string    `json:"released_on"`
	CreatedAt    time.Time `json:"created_at"`
	LocationID   uint      `json:"location_id" gorm:"index;not null"`
}

// Business represents one cached business listing near a location.
type Business struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	ImageURL   string    `json:"image_url"`
	Price      string    `json:"price"`
	Rating     float64   `json:"rating"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	LocationID uint      `json:"location_id" gorm:"index;not null"`
}

// FetchStamp records when a (resource type, location) row set was last
// fetched from its provider. The freshness check reads this stamp instead
// of inferring the fetch time from the first row.
type FetchStamp struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	ResourceType ResourceType `json:"resource_type" gorm:"index:idx_stamp_pair,unique;not null"`
	LocationID   uint         `json:"location_id" gorm:"index:idx_stamp_pair,unique;not null"`
	FetchedAt    time.Time    `json:"fetched_at" gorm:"not null"`
}
