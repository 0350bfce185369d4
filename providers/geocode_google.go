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

// GoogleGeocodeProvider implements GeocodeProvider for the Google Maps
// geocoding API
type GoogleGeocodeProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGoogleGeocodeProvider creates a new Google Maps geocode provider
func NewGoogleGeocodeProvider(config *config.ProviderConfig) *GoogleGeocodeProvider {
	return &GoogleGeocodeProvider{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type googleGeocodeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text address into geocoding matches
func (p *GoogleGeocodeProvider) Geocode(query string) ([]GeocodeResult, error) {
	if query == "" {
		return nil, errors.NewValidationError("search query cannot be empty")
	}

	requestURL := fmt.Sprintf("%s?key=%s&address=%s", p.baseURL, p.apiKey, url.QueryEscape(query))

	resp, err := p.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to get geocode data", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("geocode API returned status code %d", resp.StatusCode), nil)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode geocode data", err)
	}

	results := make([]GeocodeResult, 0, len(payload.Results))
	for _, item := range payload.Results {
		results = append(results, GeocodeResult{
			FormattedAddress: item.FormattedAddress,
			Latitude:         item.Geometry.Location.Lat,
			Longitude:        item.Geometry.Location.Lng,
		})
	}

	return results, nil
}
