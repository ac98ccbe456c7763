// Package render turns the structured report into the HTML pages the service
// serves. The report service stays presentation-free; everything visual lives
// here.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"geotrack/internal/track"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

const generatedAtLayout = "02/01/2006 15:04:05"

// reportPage is the template context for the report.
type reportPage struct {
	GeneratedAt string
	Devices     []track.DeviceView
	// MapData is the device list as JSON for the embedded map script.
	// encoding/json guarantees decimal-point number formatting regardless
	// of server locale.
	MapData template.JS
}

// Report writes the HTML report for the given device views. generatedAt is
// expected in the display timezone.
func Report(w io.Writer, views []track.DeviceView, generatedAt time.Time) error {
	if views == nil {
		// Marshal to [] rather than null so the map script can iterate.
		views = []track.DeviceView{}
	}
	mapData, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("marshal map data: %w", err)
	}

	page := reportPage{
		GeneratedAt: generatedAt.Format(generatedAtLayout),
		Devices:     views,
		MapData:     template.JS(mapData),
	}
	if err := pages.ExecuteTemplate(w, "report.html.tmpl", page); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// Status writes the ingestion endpoint's status page, shown to browsers that
// GET the submission URL.
func Status(w io.Writer) error {
	if err := pages.ExecuteTemplate(w, "status.html.tmpl", nil); err != nil {
		return fmt.Errorf("render status page: %w", err)
	}
	return nil
}
