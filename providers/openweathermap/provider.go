package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Elephante152/habitat/datasource"
	"github.com/Elephante152/habitat/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

const providerName = "OpenWeatherMap"

var tracer = otel.Tracer("github.com/Elephante152/habitat/providers/openweathermap")

// Provider implements both WeatherProvider and ForecastSource against OpenWeatherMap
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Ensure Provider implements both capabilities
var _ datasource.Provider = (*Provider)(nil)

// Option configures a Provider
type Option func(*Provider)

// WithBaseURL points the provider at a different API root
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewProvider creates a new OpenWeatherMap provider. An empty apiKey is
// accepted; the API rejects such requests and they surface as lookup failures.
func NewProvider(apiKey string, opts ...Option) *Provider {
	p := &Provider{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *Provider) Name() string {
	return providerName
}

// currentResponse is the subset of /weather we read
type currentResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []weatherLabel `json:"weather"`
}

type weatherLabel struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// GetWeather fetches current conditions for a city
func (p *Provider) GetWeather(ctx context.Context, city string, unit models.UnitSystem) (models.WeatherSnapshot, error) {
	ctx, span := tracer.Start(ctx, "openweathermap.current", trace.WithAttributes(
		attribute.String("city", city),
		attribute.String("units", string(unit)),
	))
	defer span.End()

	var response currentResponse
	if err := p.get(ctx, "weather", city, unit, &response); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "current weather request failed")
		return models.WeatherSnapshot{}, err
	}

	snapshot, err := mapCurrent(response, city, unit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed current weather payload")
		return models.WeatherSnapshot{}, err
	}
	return snapshot, nil
}

// get performs a GET against endpoint and decodes a 200 response into out
func (p *Provider) get(ctx context.Context, endpoint, city string, unit models.UnitSystem, out any) error {
	params := url.Values{}
	params.Add("q", city)
	params.Add("appid", p.apiKey)
	params.Add("units", string(unit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, params.Encode()), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &datasource.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w: %w", datasource.ErrMalformedPayload, err)
	}
	return nil
}
