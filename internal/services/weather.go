package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rajmohan-14/Travel-itinerary/internal/config"
)

// CurrentWeather is what the enrichment pipeline needs from the weather
// provider: current conditions plus the destination's coordinates,
// which seed the POI and routing lookups.
type CurrentWeather struct {
	TempC       float64
	Description string
	Lat         float64
	Lon         float64
	HasCoords   bool
}

// Summary renders the conditions the way they're stored on the trip,
// e.g. "28°C, clear sky".
func (w *CurrentWeather) Summary() string {
	return fmt.Sprintf("%g°C, %s", w.TempC, w.Description)
}

// WeatherClient calls the OpenWeather current-conditions endpoint.
type WeatherClient struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
}

func NewWeatherClient(cfg config.ProviderConfig) *WeatherClient {
	return &WeatherClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type openWeatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

// Current looks up current weather by place name.
func (c *WeatherClient) Current(place string) (*CurrentWeather, error) {
	reqURL := fmt.Sprintf("%s/data/2.5/weather?q=%s&appid=%s&units=metric",
		c.cfg.BaseURL, url.QueryEscape(place), c.cfg.APIKey)

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, transportError("weather", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("weather", resp.StatusCode)
	}

	var data openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, decodeError("weather", err)
	}

	current := &CurrentWeather{TempC: data.Main.Temp}
	if len(data.Weather) > 0 {
		current.Description = data.Weather[0].Description
	}
	if data.Coord != nil {
		current.Lat = data.Coord.Lat
		current.Lon = data.Coord.Lon
		current.HasCoords = true
	}
	return current, nil
}
