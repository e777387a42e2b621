package openweathermap

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Elephante152/habitat/datasource"
	"github.com/Elephante152/habitat/models"
	"github.com/Elephante152/habitat/units"
)

const (
	dtLayout = "2006-01-02 15:04:05"
	noon     = "12:00:00"
)

func mapCurrent(r currentResponse, query string, unit models.UnitSystem) (models.WeatherSnapshot, error) {
	if r.Main == nil {
		return models.WeatherSnapshot{}, fmt.Errorf("current weather: %w: missing main block", datasource.ErrMalformedPayload)
	}

	city := r.Name
	if city == "" {
		city = query
	}

	label := primaryLabel(r.Weather)
	return models.WeatherSnapshot{
		City:        city,
		Temperature: units.Round(r.Main.Temp),
		Humidity:    r.Main.Humidity,
		WindSpeed:   units.Round(r.Wind.Speed),
		Condition:   models.ParseCondition(label),
		Label:       label,
		Unit:        unit,
	}, nil
}

// mapForecast keeps the noon entries, oldest first, capped at MaxForecastDays
func mapForecast(r forecastResponse, unit models.UnitSystem) ([]models.ForecastDay, error) {
	if r.List == nil {
		return nil, fmt.Errorf("forecast: %w: missing list", datasource.ErrMalformedPayload)
	}

	days := make([]models.ForecastDay, 0, models.MaxForecastDays)
	for _, entry := range *r.List {
		if !strings.HasSuffix(entry.DtTxt, noon) {
			continue
		}
		at, err := time.Parse(dtLayout, entry.DtTxt)
		if err != nil {
			return nil, fmt.Errorf("forecast: %w: bad dt_txt %q", datasource.ErrMalformedPayload, entry.DtTxt)
		}

		label := primaryLabel(entry.Weather)
		days = append(days, models.ForecastDay{
			Day:         at.Format("Mon"),
			Date:        at,
			Temperature: units.Round(entry.Main.Temp),
			Condition:   models.ParseCondition(label),
			Label:       label,
			Unit:        unit,
		})
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	if len(days) > models.MaxForecastDays {
		days = days[:models.MaxForecastDays]
	}
	return days, nil
}

func primaryLabel(labels []weatherLabel) string {
	if len(labels) == 0 {
		return ""
	}
	return strings.ToLower(labels[0].Main)
}
