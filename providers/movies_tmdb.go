package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cityexplorer.app/config"
	"cityexplorer.app/errors"
)

// TMDBMovieProvider implements MovieProvider for The Movie Database API
type TMDBMovieProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTMDBMovieProvider creates a new TMDB movie provider
func NewTMDBMovieProvider(config *config.ProviderConfig) *TMDBMovieProvider {
	return &TMDBMovieProvider{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type tmdbResponse struct {
	Results []struct {
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		VoteAverage float64 `json:"vote_average"`
		VoteCount   int     `json:"vote_count"`
		PosterPath  string  `json:"poster_path"`
		Popularity  float64 `json:"popularity"`
		ReleaseDate string  `json:"release_date"`
	} `json:"results"`
}

// SearchMovies retrieves ranked movie results for a title query
func (p *TMDBMovieProvider) SearchMovies(query string) ([]MovieResult, error) {
	if query == "" {
		return nil, errors.NewValidationError("movie query cannot be empty")
	}

	requestURL := fmt.Sprintf("%s?api_key=%s&language=en-US&page=1&include_adult=false&query=%s",
		p.baseURL, p.apiKey, url.QueryEscape(query))

	resp, err := p.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to get movie data", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("movie API returned status code %d", resp.StatusCode), nil)
	}

	var payload tmdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode movie data", err)
	}

	results := make([]MovieResult, 0, len(payload.Results))
	for _, entry := range payload.Results {
		results = append(results, MovieResult{
			Title:       entry.Title,
			Overview:    entry.Overview,
			VoteAverage: entry.VoteAverage,
			VoteCount:   entry.VoteCount,
			PosterPath:  entry.PosterPath,
			Popularity:  entry.Popularity,
			ReleaseDate: entry.ReleaseDate,
		})
	}

	return results, nil
}
