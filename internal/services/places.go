package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rajmohan-14/Travel-itinerary/internal/config"
)

// POI search parameters: everything is looked up within a fixed 5 km
// circle around the destination's coordinates.
const (
	poiRadiusMeters = 5000

	attractionCategories = "tourism.sights,tourism.attraction"
	attractionLimit      = 10
	attractionKeep       = 5

	hotelCategories = "accommodation.hotel"
	hotelLimit      = 5
	hotelKeep       = 3
)

// PlacesClient calls the Geoapify places endpoint.
type PlacesClient struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
}

func NewPlacesClient(cfg config.ProviderConfig) *PlacesClient {
	return &PlacesClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type geoapifyResponse struct {
	Features []struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

// FindAttractions returns up to five named sights near the coordinates.
func (c *PlacesClient) FindAttractions(lat, lon float64) ([]string, error) {
	return c.names(lat, lon, attractionCategories, attractionLimit, attractionKeep)
}

// FindHotels returns up to three named hotels near the coordinates.
func (c *PlacesClient) FindHotels(lat, lon float64) ([]string, error) {
	return c.names(lat, lon, hotelCategories, hotelLimit, hotelKeep)
}

func (c *PlacesClient) names(lat, lon float64, categories string, limit, keep int) ([]string, error) {
	// Geoapify circle filters take lon,lat order
	reqURL := fmt.Sprintf("%s/v2/places?categories=%s&filter=circle:%g,%g,%d&limit=%d&apiKey=%s",
		c.cfg.BaseURL, categories, lon, lat, poiRadiusMeters, limit, c.cfg.APIKey)

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, transportError("places", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("places", resp.StatusCode)
	}

	var data geoapifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, decodeError("places", err)
	}

	var names []string
	for _, feature := range data.Features {
		if feature.Properties.Name == "" {
			continue
		}
		names = append(names, feature.Properties.Name)
		if len(names) == keep {
			break
		}
	}
	return names, nil
}
