package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cityexplorer.app/config"
	"cityexplorer.app/service"
)

// genericErrorBody is the only error body the API returns; the real error
// is logged server-side.
const genericErrorBody = "Sorry, something went wrong"

// Server represents the HTTP server and API handler
type Server struct {
	router   *gin.Engine
	config   *config.Config
	explorer service.ExplorerServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(config *config.Config, explorer service.ExplorerServiceInterface) *Server {
	router := gin.Default()

	server := &Server{
		router:   router,
		config:   config,
		explorer: explorer,
	}

	server.setupMiddleware()
	server.setupRoutes()
	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(corsMiddleware())
	s.router.Use(requestIDMiddleware())
}

func (s *Server) setupRoutes() {
	s.router.GET("/location", s.getLocation)
	s.router.GET("/weather", s.getWeather)
	s.router.GET("/meetups", s.getMeetups)
	s.router.GET("/movies", s.getMovies)
	s.router.GET("/yelp", s.getBusinesses)

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getLocation(c *gin.Context) {
	query := c.Query("data")

	slog.Debug("Getting location", "query", query)
	location, err := s.explorer.GetLocation(query)
	if err != nil {
		slog.Error("Location lookup error", "error", err, "query", query)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

func (s *Server) getWeather(c *gin.Context) {
	locationID, latitude, longitude, err := coordinateParams(c)
	if err != nil {
		slog.Error("Weather parameter error", "error", err)
		s.handleError(c, err)
		return
	}

	slog.Debug("Getting forecasts", "locationID", locationID)
	forecasts, err := s.explorer.GetForecasts(locationID, latitude, longitude)
	if err != nil {
		slog.Error("Forecast error", "error", err, "locationID", locationID)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecasts)
}

func (s *Server) getMeetups(c *gin.Context) {
	locationID, latitude, longitude, err := coordinateParams(c)
	if err != nil {
		slog.Error("Meetups parameter error", "error", err)
		s.handleError(c, err)
		return
	}

	slog.Debug("Getting events", "locationID", locationID)
	events, err := s.explorer.GetEvents(locationID, latitude, longitude)
	if err != nil {
		slog.Error("Events error", "error", err, "locationID", locationID)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (s *Server) getMovies(c *gin.Context) {
	data := c.QueryMap("data")

	locationID, err := parseLocationID(data["id"])
	if err != nil {
		slog.Error("Movies parameter error", "error", err)
		s.handleError(c, err)
		return
	}

	slog.Debug("Getting movies", "locationID", locationID)
	movies, err := s.explorer.GetMovies(locationID, data["search_query"])
	if err != nil {
		slog.Error("Movies error", "error", err, "locationID", locationID)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, movies)
}

func (s *Server) getBusinesses(c *gin.Context) {
	locationID, latitude, longitude, err := coordinateParams(c)
	if err != nil {
		slog.Error("Yelp parameter error", "error", err)
		s.handleError(c, err)
		return
	}

	slog.Debug("Getting businesses", "locationID", locationID)
	businesses, err := s.explorer.GetBusinesses(locationID, latitude, longitude)
	if err != nil {
		slog.Error("Businesses error", "error", err, "locationID", locationID)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, businesses)
}

// coordinateParams extracts data[id], data[latitude] and data[longitude]
// from a request in the original client's nested query form.
func coordinateParams(c *gin.Context) (uint, float64, float64, error) {
	data := c.QueryMap("data")

	locationID, err := parseLocationID(data["id"])
	if err != nil {
		return 0, 0, 0, err
	}

	latitude, err := strconv.ParseFloat(data["latitude"], 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid latitude %q: %w", data["latitude"], err)
	}

	longitude, err := strconv.ParseFloat(data["longitude"], 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid longitude %q: %w", data["longitude"], err)
	}

	return locationID, latitude, longitude, nil
}

func parseLocationID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid location id %q: %w", raw, err)
	}
	return uint(id), nil
}

// handleError maps every failure to the single generic 500 response the
// API contract defines; no distinct statuses are exposed.
func (s *Server) handleError(c *gin.Context, err error) {
	_ = err
	c.String(http.StatusInternalServerError, genericErrorBody)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}
