package controllers

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// upcomingCount is how many events the "coming up" strip shows.
const upcomingCount = 4

// pageSize is the client-side reveal batch for the full listing.
const pageSize = 6

// PageController renders the public listing page. It owns display concerns
// only; filtering and ordering are delegated to the event service.
type PageController struct {
	Logger       *slog.Logger
	Service      domain.EventService
	Tpl          *template.Template
	HighlightIDs []int64
}

func NewPageController(logger *slog.Logger, svc domain.EventService, tpl *template.Template, highlightIDs []int64) *PageController {
	return &PageController{
		Logger:       logger,
		Service:      svc,
		Tpl:          tpl,
		HighlightIDs: highlightIDs,
	}
}

type indexData struct {
	Query      string
	Location   string
	Category   string
	Start      string
	End        string
	SearchErr  string
	Events     []*domain.Event
	Highlights []*domain.Event
	Upcoming   []*domain.Event
	PageSize   int
}

// Index renders the listing page: search results (or everything), the
// configured highlight strip, and the next few upcoming events. A storage
// failure degrades to an error note instead of a blank 500 page.
func (c *PageController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := indexData{
		Query:    q.Get("q"),
		Location: q.Get("loc"),
		Category: q.Get("cat"),
		Start:    q.Get("start"),
		End:      q.Get("end"),
		PageSize: pageSize,
	}

	filter, err := helpers.ParseEventFilter(q)
	if err != nil {
		data.SearchErr = err.Error()
		c.render(w, r, data)
		return
	}

	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "render listing failed", "err", err)
		data.SearchErr = "Veranstaltungen konnten gerade nicht geladen werden."
		c.render(w, r, data)
		return
	}
	data.Events = events

	if len(c.HighlightIDs) > 0 {
		highlights, err := c.Service.ListEvents(r.Context(), domain.EventFilter{IDs: c.HighlightIDs})
		if err != nil {
			c.Logger.ErrorContext(r.Context(), "render highlights failed", "err", err)
		} else {
			data.Highlights = highlights
		}
	}

	now := time.Now().UTC()
	upcoming, err := c.Service.ListEvents(r.Context(), domain.EventFilter{Start: &now})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "render upcoming failed", "err", err)
	} else {
		if len(upcoming) > upcomingCount {
			upcoming = upcoming[:upcomingCount]
		}
		data.Upcoming = upcoming
	}

	c.render(w, r, data)
}

func (c *PageController) render(w http.ResponseWriter, r *http.Request, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Tpl.ExecuteTemplate(w, "index.html", data); err != nil {
		c.Logger.ErrorContext(r.Context(), "template render failed", "err", err)
	}
}
