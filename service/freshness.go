package service

import (
	"time"

	"cityexplorer.app/models"
)

// Decision is the outcome of a freshness check for a cached row set
type Decision int

const (
	ServeCached Decision = iota
	PurgeAndRefetch
)

// maxAges holds the maximum cache age per resource type. Locations carry
// no entry: a geocoded location is treated as permanently valid.
var maxAges = map[models.ResourceType]time.Duration{
	models.ResourceForecast: 15 * time.Second,
	models.ResourceEvent:    6 * time.Hour,
	models.ResourceBusiness: 24 * time.Hour,
	models.ResourceMovie:    30 * 24 * time.Hour,
	models.ResourceTrail:    7 * 24 * time.Hour,
}

// MaxAge returns the maximum cache age for a resource type
func MaxAge(resourceType models.ResourceType) (time.Duration, bool) {
	age, ok := maxAges[resourceType]
	return age, ok
}

// EvaluateFreshness decides whether a cached row set can be served or must
// be purged and refetched. A missing stamp or empty row set always forces
// a refetch; there is nothing to purge in that case, but the purge path is
// idempotent.
func EvaluateFreshness(resourceType models.ResourceType, stamp *models.FetchStamp, rowCount int, now time.Time) Decision {
	if stamp == nil || rowCount == 0 {
		return PurgeAndRefetch
	}

	maxAge, ok := maxAges[resourceType]
	if !ok {
		return PurgeAndRefetch
	}

	if now.Sub(stamp.FetchedAt) > maxAge {
		return PurgeAndRefetch
	}
	return ServeCached
}
