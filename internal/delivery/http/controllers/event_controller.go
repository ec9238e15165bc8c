package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// CreateEventRequest is the request body for POST /events. id and created_at
// are server-assigned and rejected as unknown fields.
type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	EventDate   string  `json:"event_date"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	Organizer   *string `json:"organizer"`
	ImageURL    *string `json:"image_url"`
}

// Validate implements Validator. Returns error messages for required fields.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.EventDate == "" {
		errs = append(errs, "event_date is required")
	}
	return errs
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns all events matching the optional filters, ordered by event date. All filters combine with AND; an empty result is a 200 with an empty array.
// @Tags events
// @Produce json
// @Param ids query string false "Comma-separated event IDs (highlight allow-list)"
// @Param q query string false "Keyword, case-insensitive substring over title/category/organizer/location"
// @Param loc query string false "Location substring, case-insensitive"
// @Param cat query string false "Category, exact match"
// @Param start query string false "Inclusive lower bound on event_date (RFC 3339 or YYYY-MM-DD)"
// @Param end query string false "Inclusive upper bound on event_date (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} helpers.EventsResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := helpers.ParseEventFilter(r.URL.Query())
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list events failed", "path", r.URL.Path, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.GenericServerError)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.EventsResponse{Events: events})
}

// CreateEvent godoc
// @Summary Submit a new event
// @Description Inserts one event. id and created_at are assigned by storage; event_date must be an RFC 3339 timestamp. The insert is committed before the response is sent.
// @Tags events
// @Accept json
// @Param event body CreateEventRequest true "Event draft"
// @Success 201 "created, empty body"
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	draft := domain.EventDraft{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		Location:    req.Location,
		Category:    req.Category,
		Organizer:   req.Organizer,
		ImageURL:    req.ImageURL,
	}
	id, err := c.Service.CreateEvent(r.Context(), draft)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "create event failed", "path", r.URL.Path, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.GenericServerError)
		return
	}
	c.Logger.InfoContext(r.Context(), "event created", "id", id)
	w.WriteHeader(http.StatusCreated)
}

// Health godoc
// @Summary Storage connectivity probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} helpers.ErrorResponse
// @Router /health [get]
func (c *EventController) Health(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.CheckStorage(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "storage unreachable", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.GenericServerError)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
