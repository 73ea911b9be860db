package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"weather-display/present"
)

// RenderDaily writes an HTML page with a line chart of the daily forecast temperatures
func RenderDaily(w io.Writer, page present.Page) error {
	title := "Forecast"
	if page.Current != nil {
		title = fmt.Sprintf("%s, %s", page.Current.City, page.Current.Country)
	}

	days := make([]string, 0, len(page.Forecast))
	temps := make([]opts.LineData, 0, len(page.Forecast))
	for _, card := range page.Forecast {
		days = append(days, fmt.Sprintf("%s %s", card.Weekday, card.Date))
		temps = append(temps, opts.LineData{Value: card.Temperature, Name: card.Description})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "800px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Daily temperature (°C)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	line.SetXAxis(days).
		AddSeries("Temperature", temps,
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{c}°C",
			}),
		)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
