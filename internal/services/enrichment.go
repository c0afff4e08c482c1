package services

import (
	"errors"
	"log"
	"strings"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
)

// Placeholder values stored when a provider can't deliver.
const (
	weatherUnavailable = "Weather data not available"
	noAttractionsFound = "No attractions found"
	noHotelsFound      = "No hotels found"
	locationNotFound   = "Location not found"
	itineraryFailed    = "Itinerary generation failed"
)

// WeatherProvider looks up current conditions by place name.
type WeatherProvider interface {
	Current(place string) (*CurrentWeather, error)
}

// PlacesProvider finds named points of interest near coordinates.
type PlacesProvider interface {
	FindAttractions(lat, lon float64) ([]string, error)
	FindHotels(lat, lon float64) ([]string, error)
}

// RouteProvider estimates driving distance to coordinates.
type RouteProvider interface {
	DrivingDistanceKM(lat, lon float64) (float64, error)
}

// ItineraryGenerator produces a structured (or raw-text) itinerary.
type ItineraryGenerator interface {
	GenerateItinerary(destination string, days int, budgetDisplay string, travelers int, interests string) (models.ItineraryView, error)
}

// Enricher runs the enrichment pipeline over a freshly created trip:
// weather, then coordinate-derived POIs and driving distance, then the
// AI itinerary. Every step degrades independently to a placeholder so
// one provider outage never empties the whole trip. The record is saved
// once at the end.
type Enricher struct {
	weather   WeatherProvider
	places    PlacesProvider
	routes    RouteProvider
	generator ItineraryGenerator
	store     storage.Store
}

func NewEnricher(weather WeatherProvider, places PlacesProvider, routes RouteProvider, generator ItineraryGenerator, store storage.Store) *Enricher {
	return &Enricher{
		weather:   weather,
		places:    places,
		routes:    routes,
		generator: generator,
		store:     store,
	}
}

// Enrich fills in the trip's derived fields and persists it. Provider
// failures are logged and degraded; only a storage failure is returned.
func (e *Enricher) Enrich(trip *models.Trip) error {
	// Step 1: weather, which also yields the destination coordinates
	current, err := e.weather.Current(trip.Destination)
	if err != nil {
		logProviderFailure("weather", err)
		trip.Weather = weatherUnavailable
	} else {
		trip.Weather = current.Summary()
	}

	// Steps 2-3 need coordinates from the weather lookup
	if current != nil && current.HasCoords {
		lat, lon := current.Lat, current.Lon

		attractions, err := e.places.FindAttractions(lat, lon)
		if err != nil {
			logProviderFailure("places", err)
			trip.Attractions = noAttractionsFound
		} else if len(attractions) == 0 {
			trip.Attractions = noAttractionsFound
		} else {
			trip.Attractions = strings.Join(attractions, ", ")
		}

		hotels, err := e.places.FindHotels(lat, lon)
		if err != nil {
			logProviderFailure("places", err)
			trip.Hotels = noHotelsFound
		} else if len(hotels) == 0 {
			trip.Hotels = noHotelsFound
		} else {
			trip.Hotels = strings.Join(hotels, ", ")
		}

		distance, err := e.routes.DrivingDistanceKM(lat, lon)
		if err != nil {
			logProviderFailure("routing", err)
			// distance stays null on failure
		} else {
			trip.DistanceKM = &distance
		}
	} else if current != nil {
		trip.Attractions = locationNotFound
		trip.Hotels = locationNotFound
	}

	// Step 4: AI itinerary, independent of the coordinate steps
	view, err := e.generator.GenerateItinerary(
		trip.Destination,
		trip.DurationDays(),
		trip.FormattedBudget(),
		trip.Travelers,
		trip.Interests,
	)
	if err != nil {
		logProviderFailure("ai", err)
		trip.Itinerary = itineraryFailed
	} else {
		blob, err := view.Blob()
		if err != nil {
			trip.Itinerary = itineraryFailed
		} else {
			trip.Itinerary = blob
		}
	}

	// Single save at the end of the pipeline
	return e.store.UpdateTrip(trip)
}

func logProviderFailure(step string, err error) {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		log.Printf("⚠️  Enrichment step %s degraded (%s): %v", step, provErr.Kind, err)
		return
	}
	log.Printf("⚠️  Enrichment step %s degraded: %v", step, err)
}
