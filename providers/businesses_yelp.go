package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cityexplorer.app/config"
	"cityexplorer.app/errors"
)

// YelpBusinessProvider implements BusinessProvider for the Yelp Fusion API.
// Yelp authenticates with a bearer token rather than a query parameter.
type YelpBusinessProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewYelpBusinessProvider creates a new Yelp business provider
func NewYelpBusinessProvider(config *config.ProviderConfig) *YelpBusinessProvider {
	return &YelpBusinessProvider{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type yelpResponse struct {
	Businesses []struct {
		Name     string  `json:"name"`
		ImageURL string  `json:"image_url"`
		Price    string  `json:"price"`
		Rating   float64 `json:"rating"`
		URL      string  `json:"url"`
	} `json:"businesses"`
}

// SearchBusinesses retrieves business listings near a coordinate pair
func (p *YelpBusinessProvider) SearchBusinesses(latitude, longitude float64) ([]BusinessItem, error) {
	requestURL := fmt.Sprintf("%s?latitude=%f&longitude=%f", p.baseURL, latitude, longitude)

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build business request", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to get business data", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("business API returned status code %d", resp.StatusCode), nil)
	}

	var payload yelpResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode business data", err)
	}

	businesses := make([]BusinessItem, 0, len(payload.Businesses))
	for _, entry := range payload.Businesses {
		businesses = append(businesses, BusinessItem{
			Name:     entry.Name,
			ImageURL: entry.ImageURL,
			Price:    entry.Price,
			Rating:   entry.Rating,
			URL:      entry.URL,
		})
	}

	return businesses, nil
}
