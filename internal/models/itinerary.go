package models

import "encoding/json"

// Activity is one planned item inside a day.
type Activity struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Location string `json:"location"`
	Cost     string `json:"cost"`
	Duration string `json:"duration"`
	Type     string `json:"type"`
}

// DayPlan is one day of the generated itinerary.
type DayPlan struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
	TotalCost  string     `json:"total_cost"`
}

// ItinerarySummary is the overall recommendation block.
type ItinerarySummary struct {
	TotalEstimatedCost string   `json:"total_estimated_cost"`
	BestTransportation string   `json:"best_transportation"`
	Tips               []string `json:"tips"`
	MustSee            []string `json:"must_see"`
}

// Itinerary is the structured plan the AI provider is asked to return.
type Itinerary struct {
	Days    []DayPlan        `json:"itinerary"`
	Summary ItinerarySummary `json:"summary"`
}

// ItineraryView is either a parsed itinerary or, when the provider's
// response couldn't be parsed, the raw response text kept as a fallback.
type ItineraryView struct {
	Parsed *Itinerary `json:"parsed,omitempty"`
	Raw    string     `json:"raw_itinerary,omitempty"`
}

// itineraryBlob is the stored wire form: a full itinerary, or an object
// holding only raw_itinerary when parsing failed.
type itineraryBlob struct {
	Itinerary
	RawItinerary string `json:"raw_itinerary,omitempty"`
}

// Blob serializes the view for storage on the trip record.
func (v ItineraryView) Blob() (string, error) {
	blob := itineraryBlob{RawItinerary: v.Raw}
	if v.Parsed != nil {
		blob.Itinerary = *v.Parsed
	}
	out, err := json.Marshal(blob)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ParseItineraryBlob decodes a stored itinerary blob. Blobs that aren't
// valid JSON (e.g. an error marker written by the enrichment pipeline)
// come back as raw text.
func ParseItineraryBlob(blob string) ItineraryView {
	if blob == "" {
		return ItineraryView{}
	}
	var stored itineraryBlob
	if err := json.Unmarshal([]byte(blob), &stored); err != nil {
		return ItineraryView{Raw: blob}
	}
	if stored.RawItinerary != "" {
		return ItineraryView{Raw: stored.RawItinerary}
	}
	return ItineraryView{Parsed: &stored.Itinerary}
}

// SummaryOrEmpty returns the summary block, defaulting to an empty
// struct when the itinerary never parsed.
func (v ItineraryView) SummaryOrEmpty() ItinerarySummary {
	if v.Parsed == nil {
		return ItinerarySummary{}
	}
	return v.Parsed.Summary
}

// DaysOrEmpty returns the per-day plans, empty when unparsed.
func (v ItineraryView) DaysOrEmpty() []DayPlan {
	if v.Parsed == nil {
		return nil
	}
	return v.Parsed.Days
}
