package openweathermap

import (
	"context"

	"github.com/Elephante152/habitat/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// forecastResponse is the subset of /forecast we read. List is a pointer so
// that a missing list can be told apart from an empty one.
type forecastResponse struct {
	List *[]forecastEntry `json:"list"`
}

type forecastEntry struct {
	DtTxt string `json:"dt_txt"` // "2006-01-02 15:04:05", city local time
	Main  struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []weatherLabel `json:"weather"`
}

// FetchForecast fetches the 3-hour forecast series and reduces it to noon samples
func (p *Provider) FetchForecast(ctx context.Context, city string, unit models.UnitSystem) ([]models.ForecastDay, error) {
	ctx, span := tracer.Start(ctx, "openweathermap.forecast", trace.WithAttributes(
		attribute.String("city", city),
		attribute.String("units", string(unit)),
	))
	defer span.End()

	var response forecastResponse
	if err := p.get(ctx, "forecast", city, unit, &response); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forecast request failed")
		return nil, err
	}

	days, err := mapForecast(response, unit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed forecast payload")
		return nil, err
	}
	span.SetAttributes(attribute.Int("forecast.days", len(days)))
	return days, nil
}
