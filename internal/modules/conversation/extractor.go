// README: LLM-backed entity extraction for travel queries.
package conversation

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"jetzy/internal/ai"
	"jetzy/internal/modules/travel"
	"jetzy/internal/modules/usercontext"
)

const extractionPrompt = `You are an expert travel entity extraction system. Your task is to analyze user travel queries and extract structured information. Identify and extract the following travel-related entities when they are explicitly or implicitly mentioned:

- intent: The primary travel intent (flight, hotel, attraction, restaurant, transport, seasonal_advice, general)
- origin: Origin location for travel (city, airport code)
- destination: Destination location for travel (city, country, region)
- departure_date: Departure date in YYYY-MM-DD format (convert relative dates like "next Friday")
- return_date: Return date in YYYY-MM-DD format (for round trips)
- check_in_date: Check-in date for accommodation in YYYY-MM-DD format
- check_out_date: Check-out date for accommodation in YYYY-MM-DD format
- adults: Number of adults traveling (default to 1 if traveling is mentioned but no number specified)
- children: Number of children traveling
- location: Location for attractions/restaurants (if asking about places to visit, use this field)
- cuisines: Types of cuisine (for restaurant queries)
- categories: Types of attractions (museum, historical, park, etc.)
- price_range: Budget constraints (can be "$", "$$", "$$$", "$$$$" or min-max values)
- min_price: Minimum price if specified
- max_price: Maximum price if specified
- transport_modes: Preferred modes of transportation (train, flight, bus, car, etc.)
- travel_season: Season or time period mentioned for travel

Return a JSON object with these fields. If a field is not present in the query, omit it.
Be precise in extracting exact values and don't include fields that aren't specifically mentioned.
Use standard formats for dates (YYYY-MM-DD) and normalize location names (e.g., "NYC" -> "New York").

Important: If the query is about places to visit, attractions, or things to do in a location, set the intent to "attraction" and extract the location.`

const (
	extractionTemperature = 0.2
	extractionMaxTokens   = 500
	extractionHistory     = 4
)

// Extractor turns free-form messages into structured travel entities. It
// opens a fresh completion client per call and always releases it.
type Extractor struct {
	factory ai.ClientFactory
	log     *zap.Logger
}

func NewExtractor(factory ai.ClientFactory, log *zap.Logger) *Extractor {
	return &Extractor{factory: factory, log: log}
}

// Extract never fails the pipeline: any model or parse problem degrades to
// a bare general intent so the conversation can continue.
func (e *Extractor) Extract(ctx context.Context, message string, history []usercontext.Turn) travel.Entities {
	client, err := e.factory()
	if err != nil {
		e.log.Warn("entity extraction client unavailable", zap.Error(err))
		return generalEntities()
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			e.log.Warn("closing extraction client", zap.Error(cerr))
		}
	}()

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: extractionPrompt})
	for _, t := range lastTurns(history, extractionHistory) {
		messages = append(messages, ai.Message{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message})

	reply, err := client.Complete(ctx, messages, ai.Options{
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		e.log.Warn("entity extraction call failed", zap.Error(err))
		return generalEntities()
	}

	ents, ok := parseEntities(reply)
	if !ok {
		e.log.Warn("entity extraction reply not parseable", zap.String("reply", truncate(reply, 200)))
		return generalEntities()
	}
	if ents.Intent == "" {
		ents.Intent = travel.IntentGeneral
	}
	e.log.Debug("entities extracted", zap.String("intent", string(ents.Intent)))
	return ents
}

// parseEntities tries the reply as-is first, then falls back to the
// outermost brace span for models that wrap JSON in prose.
func parseEntities(reply string) (travel.Entities, bool) {
	var ents travel.Entities
	if err := json.Unmarshal([]byte(reply), &ents); err == nil {
		return ents, true
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return travel.Entities{}, false
	}
	ents = travel.Entities{}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &ents); err != nil {
		return travel.Entities{}, false
	}
	return ents, true
}

func generalEntities() travel.Entities {
	return travel.Entities{Intent: travel.IntentGeneral}
}

func lastTurns(history []usercontext.Turn, n int) []usercontext.Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
