package models

import "strings"

// Condition is the coarse weather category used for display and the backdrop
type Condition string

const (
	ConditionClear  Condition = "clear"
	ConditionClouds Condition = "clouds"
	ConditionRain   Condition = "rain"
	ConditionSnow   Condition = "snow"
	ConditionOther  Condition = "other"
)

// ParseCondition lower-cases a provider label and maps it onto a Condition
func ParseCondition(label string) Condition {
	switch c := Condition(strings.ToLower(strings.TrimSpace(label))); c {
	case ConditionClear, ConditionClouds, ConditionRain, ConditionSnow:
		return c
	default:
		return ConditionOther
	}
}

// UnitSystem is the unit system a value was fetched in
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// UnitFor returns the unit system matching a Celsius preference
func UnitFor(celsius bool) UnitSystem {
	if celsius {
		return Metric
	}
	return Imperial
}

// Valid reports whether u is a known unit system
func (u UnitSystem) Valid() bool {
	return u == Metric || u == Imperial
}

// WeatherSnapshot represents current conditions for a city
type WeatherSnapshot struct {
	City        string     `json:"city"`
	Temperature float64    `json:"temperature"` // rounded, in Unit
	Humidity    int        `json:"humidity"`    // percentage
	WindSpeed   float64    `json:"windSpeed"`   // rounded, m/s or mph
	Condition   Condition  `json:"condition"`
	Label       string     `json:"label"` // lower-cased provider label
	Unit        UnitSystem `json:"unit"`
}
