package session

import "github.com/Elephante152/habitat/models"

// View is the serializable state of a session
type View struct {
	ID                   string            `json:"id"`
	Query                string            `json:"query"`
	Suggestions          []string          `json:"suggestions"`
	ShowSuggestions      bool              `json:"showSuggestions"`
	Loading              bool              `json:"loading"`
	Celsius              bool              `json:"celsius"`
	Tab                  Tab               `json:"tab"`
	Weather              *WeatherView      `json:"weather"`
	Forecast             []ForecastView    `json:"forecast"`
	Error                string            `json:"error,omitempty"`
	WeatherError         string            `json:"weatherError,omitempty"`
	ForecastError        string            `json:"forecastError,omitempty"`
	Neighborhoods        []string          `json:"neighborhoods"`
	SelectedNeighborhood string            `json:"selectedNeighborhood,omitempty"`
	Businesses           []models.Business `json:"businesses"`
	Unlocked             bool              `json:"unlocked"`
	Backdrop             models.Condition  `json:"backdrop"`
	BackdropCycling      bool              `json:"backdropCycling"`
}

// WeatherView is a snapshot with its display strings
type WeatherView struct {
	models.WeatherSnapshot
	DisplayTemperature string `json:"displayTemperature"`
	WindUnit           string `json:"windUnit"`
}

// ForecastView is a forecast day with its display temperature
type ForecastView struct {
	models.ForecastDay
	DisplayTemperature string `json:"displayTemperature"`
}
