package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cityexplorer.app/config"
	"cityexplorer.app/errors"
)

// MeetupEventsProvider implements EventsProvider for the Meetup API
type MeetupEventsProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewMeetupEventsProvider creates a new Meetup events provider
func NewMeetupEventsProvider(config *config.ProviderConfig) *MeetupEventsProvider {
	return &MeetupEventsProvider{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type meetupResponse struct {
	Events []struct {
		Link    string `json:"link"`
		Name    string `json:"name"`
		Created int64  `json:"created"`
		Group   struct {
			Name string `json:"name"`
		} `json:"group"`
	} `json:"events"`
}

// UpcomingEvents retrieves upcoming events near a coordinate pair
func (p *MeetupEventsProvider) UpcomingEvents(latitude, longitude float64) ([]EventItem, error) {
	requestURL := fmt.Sprintf("%s?lat=%f&lon=%f&sign=true&photo-host=public&page=20&key=%s",
		p.baseURL, latitude, longitude, p.apiKey)

	resp, err := p.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to get event data", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("events API returned status code %d", resp.StatusCode), nil)
	}

	var payload meetupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode event data", err)
	}

	events := make([]EventItem, 0, len(payload.Events))
	for _, entry := range payload.Events {
		events = append(events, EventItem{
			Link:      entry.Link,
			Name:      entry.Name,
			Created:   entry.Created,
			GroupName: entry.Group.Name,
		})
	}

	return events, nil
}
