package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jetzy/internal/ai"
	"jetzy/internal/modules/travel"
	"jetzy/internal/modules/usercontext"
)

func TestExtract_ProseWrappedJSON(t *testing.T) {
	client := &fakeClient{reply: `Sure! Here is what I found: {"intent": "flight", "origin": "NYC", "destination": "Paris", "adults": 2} done.`}
	e := NewExtractor(factoryFor(client), zap.NewNop())

	ents := e.Extract(context.Background(), "flight to Paris", nil)
	require.Equal(t, travel.IntentFlight, ents.Intent)
	require.Equal(t, "NYC", ents.Origin)
	require.Equal(t, "Paris", ents.Destination)
	require.Equal(t, 2, ents.Adults)
	require.True(t, client.closed)
}

func TestExtract_NoBracesDegradesToGeneral(t *testing.T) {
	client := &fakeClient{reply: "I am not sure what you mean."}
	e := NewExtractor(factoryFor(client), zap.NewNop())

	ents := e.Extract(context.Background(), "???", nil)
	require.Equal(t, travel.IntentGeneral, ents.Intent)
}

func TestExtract_MalformedJSONDegradesToGeneral(t *testing.T) {
	client := &fakeClient{reply: `{"intent": "flight", "origin": }`}
	e := NewExtractor(factoryFor(client), zap.NewNop())

	ents := e.Extract(context.Background(), "flight", nil)
	require.Equal(t, travel.IntentGeneral, ents.Intent)
}

func TestExtract_MissingIntentBecomesGeneral(t *testing.T) {
	client := &fakeClient{reply: `{"destination": "Rome"}`}
	e := NewExtractor(factoryFor(client), zap.NewNop())

	ents := e.Extract(context.Background(), "Rome", nil)
	require.Equal(t, travel.IntentGeneral, ents.Intent)
	require.Equal(t, "Rome", ents.Destination)
}

func TestExtract_FactoryFailureDegradesToGeneral(t *testing.T) {
	factory := func() (ai.CompletionClient, error) { return nil, errors.New("no key") }
	e := NewExtractor(factory, zap.NewNop())

	ents := e.Extract(context.Background(), "flight to Rome", nil)
	require.Equal(t, travel.IntentGeneral, ents.Intent)
}

func TestExtract_ModelFailureDegradesToGeneral(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}
	e := NewExtractor(factoryFor(client), zap.NewNop())

	ents := e.Extract(context.Background(), "flight to Rome", nil)
	require.Equal(t, travel.IntentGeneral, ents.Intent)
	require.True(t, client.closed)
}

func TestExtract_UsesRecentHistoryOnly(t *testing.T) {
	client := &fakeClient{reply: `{"intent": "general"}`}
	e := NewExtractor(factoryFor(client), zap.NewNop())

	history := []usercontext.Turn{
		{Role: usercontext.RoleUser, Content: "turn1"},
		{Role: usercontext.RoleAssistant, Content: "turn2"},
		{Role: usercontext.RoleUser, Content: "turn3"},
		{Role: usercontext.RoleAssistant, Content: "turn4"},
		{Role: usercontext.RoleUser, Content: "turn5"},
		{Role: usercontext.RoleAssistant, Content: "turn6"},
	}
	e.Extract(context.Background(), "current", history)

	got := client.messages[0]
	// system + 4 history turns + current message
	require.Len(t, got, 6)
	require.Equal(t, "turn3", got[1].Content)
	require.Equal(t, "current", got[5].Content)
	require.Equal(t, ai.RoleUser, got[5].Role)
}

func TestSynthesize_AppendsAttractionPlaceholder(t *testing.T) {
	client := &fakeClient{reply: "Rome has the Colosseum and the Pantheon."}
	s := NewSynthesizer(client, zap.NewNop())

	env := travel.Envelope{Type: travel.TypeAttraction, Message: "coming soon"}
	got, err := s.Synthesize(context.Background(), "places in Rome", travel.IntentAttraction, env, nil)
	require.NoError(t, err)
	require.Equal(t, "Rome has the Colosseum and the Pantheon. <Links to these places>", got)
}

func TestSynthesize_KeepsExistingMarker(t *testing.T) {
	client := &fakeClient{reply: "See the Colosseum. <Links to these places>"}
	s := NewSynthesizer(client, zap.NewNop())

	env := travel.Envelope{Type: travel.TypeAttraction, Message: "coming soon"}
	got, err := s.Synthesize(context.Background(), "places in Rome", travel.IntentAttraction, env, nil)
	require.NoError(t, err)
	require.Equal(t, "See the Colosseum. <Links to these places>", got)
}

func TestSynthesize_NonAttractionUntouched(t *testing.T) {
	client := &fakeClient{reply: "Flights start at $403."}
	s := NewSynthesizer(client, zap.NewNop())

	env := travel.Envelope{Type: travel.TypeFlight, Message: "ok"}
	got, err := s.Synthesize(context.Background(), "flights", travel.IntentFlight, env, nil)
	require.NoError(t, err)
	require.Equal(t, "Flights start at $403.", got)
}

func TestSynthesize_ErrorPropagates(t *testing.T) {
	client := &fakeClient{err: errors.New("model down")}
	s := NewSynthesizer(client, zap.NewNop())

	_, err := s.Synthesize(context.Background(), "hi", travel.IntentGeneral, travel.Envelope{Type: travel.TypeGeneral}, nil)
	require.Error(t, err)
}
