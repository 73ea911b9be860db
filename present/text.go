package present

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

func formatWind(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64) + "m/s"
}

// WriteText renders a page as plain text for terminals
func WriteText(w io.Writer, page Page) error {
	if page.Error != "" {
		_, err := fmt.Fprintf(w, ":( %s\n", page.Error)
		return err
	}
	if page.Current == nil {
		_, err := fmt.Fprintf(w, "%s...\n", page.Status)
		return err
	}

	c := page.Current
	if _, err := fmt.Fprintf(w, "%s, %s\n%s\n%s  %s\nWind Speed: %s\n",
		c.City, c.Country, c.Date, c.TempLabel, c.Description, c.WindSpeed); err != nil {
		return err
	}
	if len(page.Forecast) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, card := range page.Forecast {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", card.Weekday, card.Date, card.TempLabel, card.Description); err != nil {
			return err
		}
	}
	return tw.Flush()
}
