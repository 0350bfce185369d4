package service

import (
	"time"

	"cityexplorer.app/models"
	"cityexplorer.app/providers"
)

// shortDateLayout renders a timestamp as its 15-character short form,
// e.g. "Mon Jan 02 2006".
const shortDateLayout = "Mon Jan 02 2006"

// movieImageHost prefixes TMDB poster path fragments into full image URLs
const movieImageHost = "http://image.tmdb.org/t/p/w500"

// NormalizeLocation builds a canonical location from a geocode match.
// search_query keeps the caller's original text, not the provider's
// normalized address.
func NormalizeLocation(result providers.GeocodeResult, query string) models.Location {
	return models.Location{
		SearchQuery:    query,
		FormattedQuery: result.FormattedAddress,
		Latitude:       result.Latitude,
		Longitude:      result.Longitude,
		CreatedAt:      time.Now(),
	}
}

// NormalizeForecast builds a canonical forecast from one daily entry.
// The entry's epoch-seconds timestamp becomes the short day label.
func NormalizeForecast(day providers.ForecastDay, locationID uint) models.Forecast {
	return models.Forecast{
		ForecastSummary: day.Summary,
		DayLabel:        time.Unix(day.Time, 0).Format(shortDateLayout),
		CreatedAt:       time.Now(),
		LocationID:      locationID,
	}
}

// NormalizeEvent builds a canonical event from one upcoming-event entry.
// The creation epoch arrives in milliseconds.
func NormalizeEvent(item providers.EventItem, locationID uint) models.Event {
	return models.Event{
		Link:         item.Link,
		Name:         item.Name,
		CreationDate: time.UnixMilli(item.Created).Format(shortDateLayout),
		Host:         item.GroupName,
		CreatedAt:    time.Now(),
		LocationID:   locationID,
	}
}

// NormalizeMovie builds a canonical movie from one search result
func NormalizeMovie(item providers.MovieResult, locationID uint) models.Movie {
	return models.Movie{
		Title:        item.Title,
		Overview:     item.Overview,
		AverageVotes: item.VoteAverage,
		TotalVotes:   item.VoteCount,
		ImageURL:     movieImageHost + item.PosterPath,
		Popularity:   item.Popularity,
		ReleasedOn:   item.ReleaseDate,
		CreatedAt:    time.Now(),
		LocationID:   locationID,
	}
}

// NormalizeBusiness builds a canonical business from one listing
func NormalizeBusiness(item providers.BusinessItem, locationID uint) models.Business {
	return models.Business{
		Name:       item.Name,
		ImageURL:   item.ImageURL,
		Price:      item.Price,
		Rating:     item.Rating,
		URL:        item.URL,
		CreatedAt:  time.Now(),
		LocationID: locationID,
	}
}
