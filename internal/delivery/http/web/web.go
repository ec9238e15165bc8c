// Package web holds the embedded server-rendered templates for the public
// listing page. All filtering and ordering happens in the event service; the
// templates only display what they are given.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// PlaceholderImage is shown for events submitted without an image.
const PlaceholderImage = "https://placehold.co/600x400?text=Event"

var funcs = template.FuncMap{
	"orEmpty": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"imageOr": func(s *string) string {
		if s == nil || *s == "" {
			return PlaceholderImage
		}
		return *s
	},
	"fmtDate": func(t time.Time) string {
		return t.Format("Mon, 02 Jan 2006 15:04")
	},
}

// Templates parses the embedded template set. Called once at startup.
func Templates() *template.Template {
	return template.Must(template.New("web").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
