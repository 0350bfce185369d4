package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cityexplorer.app/config"
	"cityexplorer.app/errors"
)

// DarkSkyForecastProvider implements ForecastProvider for the Dark Sky API
type DarkSkyForecastProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewDarkSkyForecastProvider creates a new Dark Sky forecast provider
func NewDarkSkyForecastProvider(config *config.ProviderConfig) *DarkSkyForecastProvider {
	return &DarkSkyForecastProvider{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type darkSkyResponse struct {
	Daily struct {
		Data []struct {
			Summary string `json:"summary"`
			Time    int64  `json:"time"`
		} `json:"data"`
	} `json:"daily"`
}

// DailyForecast retrieves the daily forecast entries for a coordinate pair
func (p *DarkSkyForecastProvider) DailyForecast(latitude, longitude float64) ([]ForecastDay, error) {
	requestURL := fmt.Sprintf("%s/%s/%f,%f", p.baseURL, p.apiKey, latitude, longitude)

	resp, err := p.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to get forecast data", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("forecast API returned status code %d", resp.StatusCode), nil)
	}

	var payload darkSkyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode forecast data", err)
	}

	days := make([]ForecastDay, 0, len(payload.Daily.Data))
	for _, entry := range payload.Daily.Data {
		days = append(days, ForecastDay{
			Summary: entry.Summary,
			Time:    entry.Time,
		})
	}

	return days, nil
}
