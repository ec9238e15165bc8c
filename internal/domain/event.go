package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidInput signals a malformed or incomplete client input. Handlers
// map it to a 400; every other error from the service is a storage failure
// and maps to a 500.
var ErrInvalidInput = errors.New("invalid input")

// Event represents a community event as it crosses the service boundary.
// Optional columns are pointers so that absent values serialize as JSON null.
// Both timestamps are normalized to UTC before an Event leaves the repository.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    *string   `json:"location"`
	Category    *string   `json:"category"`
	Organizer   *string   `json:"organizer"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventDraft is a submission from an organizer. ID and CreatedAt are assigned
// by storage; EventDate arrives as an RFC 3339 string and is parsed by the
// service before persisting.
type EventDraft struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	EventDate   string  `json:"event_date"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	Organizer   *string `json:"organizer"`
	ImageURL    *string `json:"image_url"`
}

// EventFilter is the set of optional List predicates. Zero values mean no
// restriction; supplied predicates combine with AND.
type EventFilter struct {
	// IDs restricts results to exactly these primary keys (highlight lists).
	IDs []int64
	// Query matches case-insensitively as a substring against any of
	// title, category, organizer, location.
	Query string
	// Location matches case-insensitively as a substring against location.
	Location string
	// Category matches exactly, case-sensitively.
	Category string
	// Start and End are inclusive bounds on event_date.
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether no predicate is set.
func (f EventFilter) IsZero() bool {
	return len(f.IDs) == 0 && f.Query == "" && f.Location == "" &&
		f.Category == "" && f.Start == nil && f.End == nil
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Create(ctx context.Context, event *Event) (int64, error)
	Ping(ctx context.Context) error
}

// EventService defines the event operations exposed to the delivery layer
type EventService interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	CreateEvent(ctx context.Context, draft EventDraft) (int64, error)
	CheckStorage(ctx context.Context) error
}
