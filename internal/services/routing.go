package services

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/rajmohan-14/Travel-itinerary/internal/config"
)

// RoutingClient calls an OSRM server for driving distances.
type RoutingClient struct {
	cfg        config.RoutingConfig
	httpClient *http.Client
}

func NewRoutingClient(cfg config.RoutingConfig) *RoutingClient {
	return &RoutingClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type osrmResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"` // meters
	} `json:"routes"`
}

// DrivingDistanceKM returns the driving distance from the configured
// origin to the destination coordinates, in kilometers rounded to two
// decimals.
func (c *RoutingClient) DrivingDistanceKM(lat, lon float64) (float64, error) {
	// OSRM coordinate pairs are lon,lat
	reqURL := fmt.Sprintf("%s/route/v1/driving/%g,%g;%g,%g?overview=false",
		c.cfg.BaseURL, c.cfg.OriginLon, c.cfg.OriginLat, lon, lat)

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return 0, transportError("routing", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, statusError("routing", resp.StatusCode)
	}

	var data osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, decodeError("routing", err)
	}
	if len(data.Routes) == 0 {
		return 0, decodeError("routing", fmt.Errorf("no routes in response"))
	}

	return math.Round(data.Routes[0].Distance/1000*100) / 100, nil
}
