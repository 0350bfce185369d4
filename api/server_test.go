package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cityexplorer.app/config"
	"cityexplorer.app/errors"
	"cityexplorer.app/models"
)

// MockExplorerService for testing
type MockExplorerService struct {
	mock.Mock
}

func (m *MockExplorerService) GetLocation(query string) (*models.Location, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockExplorerService) GetForecasts(locationID uint, latitude, longitude float64) ([]models.Forecast, error) {
	args := m.Called(locationID, latitude, longitude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Forecast), args.Error(1)
}

func (m *MockExplorerService) GetEvents(locationID uint, latitude, longitude float64) ([]models.Event, error) {
	args := m.Called(locationID, latitude, longitude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockExplorerService) GetMovies(locationID uint, searchQuery string) ([]models.Movie, error) {
	args := m.Called(locationID, searchQuery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockExplorerService) GetBusinesses(locationID uint, latitude, longitude float64) ([]models.Business, error) {
	args := m.Called(locationID, latitude, longitude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Business), args.Error(1)
}

func setupTestServer(explorer *MockExplorerService) *Server {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080},
	}
	return NewServer(cfg, explorer)
}

func performRequest(server *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	server.GetRouter().ServeHTTP(w, req)
	return w
}

func TestGetLocation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetLocation", "seattle").Return(&models.Location{
			ID:             1,
			SearchQuery:    "seattle",
			FormattedQuery: "Seattle, WA, USA",
			Latitude:       47.6062,
			Longitude:      -122.3321,
		}, nil)

		w := performRequest(server, http.MethodGet, "/location?data=seattle")

		assert.Equal(t, http.StatusOK, w.Code)

		var location models.Location
		err := json.Unmarshal(w.Body.Bytes(), &location)
		assert.NoError(t, err)
		assert.Equal(t, "seattle", location.SearchQuery)
		assert.Equal(t, "Seattle, WA, USA", location.FormattedQuery)
	})

	t.Run("ServiceError_GenericBody", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetLocation", "zzzz").
			Return(nil, errors.NewEmptyResultError("no location data for query"))

		w := performRequest(server, http.MethodGet, "/location?data=zzzz")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Sorry, something went wrong", w.Body.String())
	})

	t.Run("ValidationError_SameGenericBody", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetLocation", "").
			Return(nil, errors.NewValidationError("search query cannot be empty"))

		w := performRequest(server, http.MethodGet, "/location")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Sorry, something went wrong", w.Body.String())
	})
}

func TestGetWeather(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetForecasts", uint(5), 47.6062, -122.3321).Return([]models.Forecast{
			{ID: 1, ForecastSummary: "Cloudy.", DayLabel: "Thu Mar 14 2019", LocationID: 5},
		}, nil)

		w := performRequest(server, http.MethodGet,
			"/weather?data[id]=5&data[latitude]=47.6062&data[longitude]=-122.3321")

		assert.Equal(t, http.StatusOK, w.Code)

		var forecasts []models.Forecast
		err := json.Unmarshal(w.Body.Bytes(), &forecasts)
		assert.NoError(t, err)
		assert.Len(t, forecasts, 1)
		assert.Equal(t, "Cloudy.", forecasts[0].ForecastSummary)
	})

	t.Run("MissingParams_GenericBody", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		w := performRequest(server, http.MethodGet, "/weather")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Sorry, something went wrong", w.Body.String())

		explorer.AssertNotCalled(t, "GetForecasts", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedLatitude_GenericBody", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		w := performRequest(server, http.MethodGet,
			"/weather?data[id]=5&data[latitude]=north&data[longitude]=-122.3321")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Sorry, something went wrong", w.Body.String())
	})

	t.Run("ServiceError_GenericBody", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetForecasts", uint(5), 47.6062, -122.3321).
			Return(nil, errors.NewExternalAPIError("forecast API returned status code 503", nil))

		w := performRequest(server, http.MethodGet,
			"/weather?data[id]=5&data[latitude]=47.6062&data[longitude]=-122.3321")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Sorry, something went wrong", w.Body.String())
	})
}

func TestGetMeetups(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetEvents", uint(5), 47.6062, -122.3321).Return([]models.Event{
			{ID: 1, Link: "https://example.com/e", Name: "Go Night", CreationDate: "Thu Mar 14 2019", Host: "Seattle Go Group", LocationID: 5},
		}, nil)

		w := performRequest(server, http.MethodGet,
			"/meetups?data[id]=5&data[latitude]=47.6062&data[longitude]=-122.3321")

		assert.Equal(t, http.StatusOK, w.Code)

		var events []models.Event
		err := json.Unmarshal(w.Body.Bytes(), &events)
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "Go Night", events[0].Name)
	})
}

func TestGetMovies(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetMovies", uint(5), "seattle").Return([]models.Movie{
			{ID: 1, Title: "Sleepless in Seattle", ImageURL: "http://image.tmdb.org/t/p/w500/abc.jpg", LocationID: 5},
		}, nil)

		w := performRequest(server, http.MethodGet,
			"/movies?data[id]=5&data[search_query]=seattle")

		assert.Equal(t, http.StatusOK, w.Code)

		var movies []models.Movie
		err := json.Unmarshal(w.Body.Bytes(), &movies)
		assert.NoError(t, err)
		assert.Len(t, movies, 1)
		assert.Equal(t, "Sleepless in Seattle", movies[0].Title)
	})

	t.Run("BadLocationID_GenericBody", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		w := performRequest(server, http.MethodGet,
			"/movies?data[id]=abc&data[search_query]=seattle")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Sorry, something went wrong", w.Body.String())

		explorer.AssertNotCalled(t, "GetMovies", mock.Anything, mock.Anything)
	})
}

func TestGetYelp(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetBusinesses", uint(5), 47.6062, -122.3321).Return([]models.Business{
			{ID: 1, Name: "Pike Place Chowder", Price: "$$", Rating: 4.5, URL: "https://example.com", LocationID: 5},
		}, nil)

		w := performRequest(server, http.MethodGet,
			"/yelp?data[id]=5&data[latitude]=47.6062&data[longitude]=-122.3321")

		assert.Equal(t, http.StatusOK, w.Code)

		var businesses []models.Business
		err := json.Unmarshal(w.Body.Bytes(), &businesses)
		assert.NoError(t, err)
		assert.Len(t, businesses, 1)
		assert.Equal(t, "Pike Place Chowder", businesses[0].Name)
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("CORSHeaders", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetLocation", "seattle").Return(&models.Location{ID: 1, SearchQuery: "seattle"}, nil)

		w := performRequest(server, http.MethodGet, "/location?data=seattle")

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("PreflightShortCircuits", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		w := performRequest(server, http.MethodOptions, "/location")

		assert.Equal(t, http.StatusNoContent, w.Code)
		explorer.AssertNotCalled(t, "GetLocation", mock.Anything)
	})

	t.Run("RequestIDGenerated", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetLocation", "seattle").Return(&models.Location{ID: 1, SearchQuery: "seattle"}, nil)

		w := performRequest(server, http.MethodGet, "/location?data=seattle")

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("RequestIDEchoed", func(t *testing.T) {
		explorer := new(MockExplorerService)
		server := setupTestServer(explorer)

		explorer.On("GetLocation", "seattle").Return(&models.Location{ID: 1, SearchQuery: "seattle"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/location?data=seattle", nil)
		req.Header.Set("X-Request-ID", "fixed-id")
		w := httptest.NewRecorder()
		server.GetRouter().ServeHTTP(w, req)

		assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	explorer := new(MockExplorerService)
	server := setupTestServer(explorer)

	w := performRequest(server, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
}
