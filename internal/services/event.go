package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventboard/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// ListEvents returns all events matching the filter, ordered by event date.
// An empty result is a valid success, not an error.
func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.eventRepo.List(ctx, filter)
}

// CreateEvent validates the draft, parses its interchange timestamp, and
// persists a new event. It returns the storage-assigned id.
func (s *eventService) CreateEvent(ctx context.Context, draft domain.EventDraft) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(draft.Title) == "" {
		return 0, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if draft.EventDate == "" {
		return 0, fmt.Errorf("%w: event_date is required", domain.ErrInvalidInput)
	}
	eventDate, err := time.Parse(time.RFC3339, draft.EventDate)
	if err != nil {
		return 0, fmt.Errorf("%w: event_date must be an RFC 3339 timestamp", domain.ErrInvalidInput)
	}

	event := &domain.Event{
		Title:       draft.Title,
		Description: draft.Description,
		EventDate:   eventDate.UTC(),
		Location:    draft.Location,
		Category:    draft.Category,
		Organizer:   draft.Organizer,
		ImageURL:    draft.ImageURL,
	}
	return s.eventRepo.Create(ctx, event)
}

// CheckStorage reports storage connectivity for the health probe.
func (s *eventService) CheckStorage(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.eventRepo.Ping(ctx)
}
