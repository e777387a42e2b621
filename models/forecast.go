package models

import (
	"time"
)

// ForecastDay is one daily sample taken from the provider's 3-hour series
type ForecastDay struct {
	Day         string     `json:"day"` // short weekday, e.g. "Mon"
	Date        time.Time  `json:"date"`
	Temperature float64    `json:"temperature"` // rounded, in Unit
	Condition   Condition  `json:"condition"`
	Label       string     `json:"label"`
	Unit        UnitSystem `json:"unit"`
}

// MaxForecastDays caps the number of days a search returns
const MaxForecastDays = 5
