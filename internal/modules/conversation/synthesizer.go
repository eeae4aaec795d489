// README: Response synthesis: persona prompt plus retrieved data in, prose out.
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"jetzy/internal/ai"
	"jetzy/internal/modules/travel"
	"jetzy/internal/modules/usercontext"
)

const personaPrompt = `You are Jetzy, a knowledgeable and helpful travel assistant. Provide accurate, concise travel information with a friendly tone. When responding to travel queries:
1. Be direct and specific - prioritize giving concrete information first
2. Include exact details when available (prices, times, locations, ratings)
3. Use a concise, informative style without unnecessary fillers
4. For attractions and places to visit, list the most notable options
5. End your response with '<Links to these places>' or similar link placeholder text
6. Don't use phrases like 'I recommend' or 'I suggest' - just state the facts
7. Avoid questions to the user unless specifically needed for clarification
8. Format responses like these examples:

Example 1:
Question: Find me a flight to Greece.
Answer: Flights from New York to Greece usually fly from the JFK airport. Usually return flights cost around $600, on Airlines such as United, American, Lufthansa and Air France. Norwegian has the cheapest deals at $400. There's a flight on Norwegian leaving New York 18th April to Athens, and back on 30th April for $403. <Links to book flights>

Example 2:
Question: What are the best places to visit in New York City?
Answer: New York City is packed with iconic landmarks and tourist attractions. Tourists love visiting Times Square, Central Park and Statue of Liberty. Museum lovers appreciate the Metropolitan Museum of Art, and American Museum of Natural History. Greenwich Village and Soho are interesting neighborhoods to explore, while catching a Broadway show is a must for entertainment lovers. New York has something for everyone. <Links to these places>

Example 3:
Question: What are the best rated restaurants near me?
Answer: Your location shows you are in New York City. The best rated restaurants here are Le Bernardin (French), Per Se (new American), Daniel (French), and Jungsik (Korean). <Links to make reservations at these restaurants>`

const (
	synthesisTemperature = 0.7
	synthesisMaxTokens   = 1000
	synthesisHistory     = 10

	attractionPlaceholder = " <Links to these places>"
)

// Synthesizer phrases the dispatcher's result for the user through the
// shared model gateway.
type Synthesizer struct {
	gateway ai.CompletionClient
	log     *zap.Logger
}

func NewSynthesizer(gateway ai.CompletionClient, log *zap.Logger) *Synthesizer {
	return &Synthesizer{gateway: gateway, log: log}
}

func (s *Synthesizer) Synthesize(ctx context.Context, message string, intent travel.Intent, env travel.Envelope, history []usercontext.Turn) (string, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode retrieved data: %w", err)
	}
	dataMsg := fmt.Sprintf(
		"Here's the data retrieved for the user's query:\n%s\n\nPlease use this data to provide a helpful response to the user's query: '%s'",
		data, message,
	)

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages,
		ai.Message{Role: ai.RoleSystem, Content: personaPrompt},
		ai.Message{Role: ai.RoleSystem, Content: dataMsg},
	)
	for _, t := range lastTurns(history, synthesisHistory) {
		messages = append(messages, ai.Message{Role: t.Role, Content: t.Content})
	}

	reply, err := s.gateway.Complete(ctx, messages, ai.Options{
		Temperature: synthesisTemperature,
		MaxTokens:   synthesisMaxTokens,
	})
	if err != nil {
		return "", err
	}

	// Attraction replies must carry a link marker so the link pass has
	// something to anchor on.
	if intent == travel.IntentAttraction && !strings.Contains(reply, "<Links to ") {
		s.log.Debug("appending missing attraction link placeholder")
		reply += attractionPlaceholder
	}
	return reply, nil
}
