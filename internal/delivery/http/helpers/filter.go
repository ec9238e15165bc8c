package helpers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventboard/internal/domain"
)

// dateOnly is the accepted short form for start/end bounds; it is read as
// midnight UTC of that day.
const dateOnly = "2006-01-02"

// ParseEventFilter reads the optional List query parameters (ids, q, loc,
// cat, start, end) into a domain.EventFilter. Malformed values reject the
// whole request: a non-numeric ids entry or an unparseable date returns an
// error instead of silently matching all rows.
func ParseEventFilter(values url.Values) (domain.EventFilter, error) {
	var f domain.EventFilter

	if raw := values.Get("ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return domain.EventFilter{}, fmt.Errorf("invalid ids entry %q: must be an integer", part)
			}
			f.IDs = append(f.IDs, id)
		}
	}

	f.Query = strings.TrimSpace(values.Get("q"))
	f.Location = strings.TrimSpace(values.Get("loc"))
	f.Category = values.Get("cat")

	start, err := parseBound(values.Get("start"), "start")
	if err != nil {
		return domain.EventFilter{}, err
	}
	f.Start = start

	end, err := parseBound(values.Get("end"), "end")
	if err != nil {
		return domain.EventFilter{}, err
	}
	f.End = end

	return f, nil
}

// parseBound accepts an RFC 3339 timestamp or a YYYY-MM-DD date.
func parseBound(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		u := t.UTC()
		return &u, nil
	}
	if t, err := time.Parse(dateOnly, raw); err == nil {
		u := t.UTC()
		return &u, nil
	}
	return nil, fmt.Errorf("invalid %s %q: must be RFC 3339 or YYYY-MM-DD", name, raw)
}
