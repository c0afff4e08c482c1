package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rajmohan-14/Travel-itinerary/internal/config"
	"github.com/rajmohan-14/Travel-itinerary/internal/models"
)

// AIClient calls an OpenRouter-compatible chat-completion endpoint to
// generate trip itineraries.
type AIClient struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

func NewAIClient(cfg config.AIConfig) *AIClient {
	return &AIClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func itineraryPrompt(destination string, days int, budgetDisplay string, travelers int, interests string) string {
	return fmt.Sprintf(`Create a detailed %d-day travel itinerary for %s for %d traveler(s) with a budget of %s Indian Rupees.
Interests: %s

Please provide the itinerary in this exact JSON format:
{
    "itinerary": [
        {
            "day": 1,
            "date": "YYYY-MM-DD",
            "activities": [
                {
                    "time": "09:00 AM",
                    "activity": "Activity description",
                    "location": "Location name",
                    "cost": "₹500",
                    "duration": "2 hours",
                    "type": "sightseeing/food/adventure/etc"
                }
            ],
            "total_cost": "₹2,500"
        }
    ],
    "summary": {
        "total_estimated_cost": "%s",
        "best_transportation": "Recommended transport",
        "tips": ["Tip 1", "Tip 2"],
        "must_see": ["Place 1", "Place 2"]
    }
}`, days, destination, travelers, budgetDisplay, interests, budgetDisplay)
}

// GenerateItinerary asks the model for a structured itinerary and
// extracts whatever JSON it managed to produce; a response that doesn't
// parse is kept as raw text.
func (c *AIClient) GenerateItinerary(destination string, days int, budgetDisplay string, travelers int, interests string) (models.ItineraryView, error) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: itineraryPrompt(destination, days, budgetDisplay, travelers, interests)},
		},
		Temperature: c.cfg.Temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return models.ItineraryView{}, err
	}

	req, err := http.NewRequest("POST", c.cfg.BaseURL+"/api/v1/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return models.ItineraryView{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ItineraryView{}, transportError("ai", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ItineraryView{}, statusError("ai", resp.StatusCode)
	}

	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.ItineraryView{}, decodeError("ai", err)
	}
	if len(data.Choices) == 0 {
		return models.ItineraryView{}, decodeError("ai", fmt.Errorf("no choices in response"))
	}

	return ParseStructuredResponse(data.Choices[0].Message.Content), nil
}

// ParseStructuredResponse pulls the first top-level JSON object out of
// a free-text model response (first '{' through last '}'). Best-effort:
// when no parsable object is found, the whole response text is kept as
// the raw fallback.
func ParseStructuredResponse(text string) models.ItineraryView {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return models.ItineraryView{Raw: text}
	}

	var it models.Itinerary
	if err := json.Unmarshal([]byte(text[start:end+1]), &it); err != nil {
		return models.ItineraryView{Raw: text}
	}
	return models.ItineraryView{Parsed: &it}
}
