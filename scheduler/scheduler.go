// Package scheduler implements the background cache janitor
package scheduler

import (
	"log"
	"time"

	"cityexplorer.app/config"
	"cityexplorer.app/repository"
	"cityexplorer.app/service"
)

// Janitor periodically sweeps the fetch stamps and purges resource row
// sets that have outlived their freshness window. The per-request policy
// still applies; the janitor only reclaims rows in advance of the next
// request.
type Janitor struct {
	config       *config.Config
	resourceRepo *repository.ResourceRepository
	stopCh       chan struct{}
}

// NewJanitor creates and configures a new cache janitor
func NewJanitor(config *config.Config, resourceRepo *repository.ResourceRepository) *Janitor {
	return &Janitor{
		config:       config,
		resourceRepo: resourceRepo,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the janitor's sweep loop
func (j *Janitor) Start() {
	interval := time.Duration(j.config.Janitor.SweepInterval) * time.Minute
	go j.run(interval)
}

// Stop terminates the sweep loop
func (j *Janitor) Stop() {
	close(j.stopCh)
}

func (j *Janitor) run(interval time.Duration) {
	j.sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopCh:
			return
		}
	}
}

// sweep purges every (type, location) pair whose stamp has expired
func (j *Janitor) sweep() {
	stamps, err := j.resourceRepo.ListFetchStamps()
	if err != nil {
		log.Printf("[ERROR] Janitor failed to list fetch stamps: %v\n", err)
		return
	}

	now := time.Now()
	purged := 0
	for _, stamp := range stamps {
		maxAge, ok := service.MaxAge(stamp.ResourceType)
		if !ok {
			continue
		}
		if now.Sub(stamp.FetchedAt) <= maxAge {
			continue
		}

		if err := j.resourceRepo.Purge(stamp.ResourceType, stamp.LocationID); err != nil {
			log.Printf("[ERROR] Janitor failed to purge type=%s, locationID=%d: %v\n",
				stamp.ResourceType, stamp.LocationID, err)
			continue
		}
		purged++
	}

	log.Printf("[DEBUG] Janitor sweep complete: %d stamps checked, %d pairs purged\n", len(stamps), purged)
}
