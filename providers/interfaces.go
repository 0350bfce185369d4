package providers

// GeocodeResult is one raw geocoding match returned by the geocode provider
type GeocodeResult struct {
	FormattedAddress string
	Latitude         float64
	Longitude        float64
}

// ForecastDay is one raw daily forecast entry; Time is epoch seconds
type ForecastDay struct {
	Summary string
	Time    int64
}

// EventItem is one raw upcoming event; Created is epoch milliseconds
type EventItem struct {
	Link      string
	Name      string
	Created   int64
	GroupName string
}

// MovieResult is one raw movie search result
type MovieResult struct {
	Title       string
	Overview    string
	VoteAverage float64
	VoteCount   int
	PosterPath  string
	Popularity  float64
	ReleaseDate string
}

// BusinessItem is one raw business listing
type BusinessItem struct {
	Name     string
	ImageURL string
	Price    string
	Rating   float64
	URL      string
}

// GeocodeProvider resolves free-text search queries to coordinates
type GeocodeProvider interface {
	Geocode(query string) ([]GeocodeResult, error)
}

// ForecastProvider returns the daily forecast for a coordinate pair
type ForecastProvider interface {
	DailyForecast(latitude, longitude float64) ([]ForecastDay, error)
}

// EventsProvider returns upcoming events near a coordinate pair
type EventsProvider interface {
	UpcomingEvents(latitude, longitude float64) ([]EventItem, error)
}

// MovieProvider searches movies by title text
type MovieProvider interface {
	SearchMovies(query string) ([]MovieResult, error)
}

// BusinessProvider searches businesses near a coordinate pair
type BusinessProvider interface {
	SearchBusinesses(latitude, longitude float64) ([]BusinessItem, error)
}
