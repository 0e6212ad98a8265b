// Package domain holds the client-side models mirrored from the platform API.
package domain

import "time"

// EventStatus is the lifecycle state of a match as reported by the server.
type EventStatus string

const (
	EventUpcoming  EventStatus = "UPCOMING"
	EventLive      EventStatus = "LIVE"
	EventFinished  EventStatus = "FINISHED"
	EventCancelled EventStatus = "CANCELLED"
)

// IsLive reports whether the match is currently in play.
func (s EventStatus) IsLive() bool {
	return s == EventLive
}

// Terminal reports whether no further updates are expected for the match.
func (s EventStatus) Terminal() bool {
	return s == EventFinished || s == EventCancelled
}

// Score is the current score line of a match.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Event is a single match between two competitors.
type Event struct {
	ID        int64       `json:"eventId"`
	SportID   int64       `json:"sportId"`
	SportName string      `json:"sportName"`
	TeamA     string      `json:"teamA"`
	TeamB     string      `json:"teamB"`
	StartTime time.Time   `json:"startTime"`
	Status    EventStatus `json:"status"`
	Result    string      `json:"result,omitempty"`
	Score     *Score      `json:"score,omitempty"`
	Minute    int         `json:"minute,omitempty"`
}
