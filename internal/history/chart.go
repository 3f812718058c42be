package history

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Format is an output image format for the bar chart
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFromPath picks the format from a file extension, defaulting to PNG
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatSVG
	}
	return FormatPNG
}

// RenderChart draws the hourly average waits of day as a bar chart
func RenderChart(w io.Writer, hall string, day time.Weekday, format Format) error {
	hours, err := ForDay(day)
	if err != nil {
		return err
	}

	bars := make([]chart.Value, len(hours))
	for i, h := range hours {
		bars[i] = chart.Value{Value: h.Minutes, Label: HourLabel(h.Hour)}
	}

	title := fmt.Sprintf("Average wait on %s", day)
	if hall != "" {
		title = fmt.Sprintf("%s: average wait on %s", hall, day)
	}

	graph := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		Width:      900,
		Height:     420,
		BarWidth:   50,
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f mins", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	provider := chart.PNG
	if format == FormatSVG {
		provider = chart.SVG
	}

	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
