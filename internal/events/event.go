// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"business_finder_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Business Discovery Events
// =============================================================================

// BusinessSearchCompletedName is the bus topic for BusinessSearchCompleted.
const BusinessSearchCompletedName = "businesses.search.completed"

// BusinessSearchCompleted is published after a search produced a result.
type BusinessSearchCompleted struct {
	BaseEvent
	Latitude           float64       `json:"latitude"`
	Longitude          float64       `json:"longitude"`
	RadiusMeters       int           `json:"radiusMeters"`
	BusinessTypes      []string      `json:"businessTypes"`
	MaxPages           int           `json:"maxPages"`
	Total              int           `json:"total"`
	WithWebsite        int           `json:"withWebsite"`
	WithoutWebsite     int           `json:"withoutWebsite"`
	EnrichmentFailures int           `json:"enrichmentFailures"`
	FailedTypes        []string      `json:"failedTypes,omitempty"`
	Duration           time.Duration `json:"duration"`
}

func (e BusinessSearchCompleted) EventName() string { return BusinessSearchCompletedName }
