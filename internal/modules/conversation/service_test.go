package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jetzy/internal/ai"
	"jetzy/internal/links"
	"jetzy/internal/modules/travel"
	"jetzy/internal/modules/usercontext"
)

type fakeClient struct {
	reply    string
	err      error
	closed   bool
	messages [][]ai.Message
	opts     []ai.Options
}

func (f *fakeClient) Complete(_ context.Context, messages []ai.Message, opts ai.Options) (string, error) {
	f.messages = append(f.messages, messages)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func factoryFor(c *fakeClient) ai.ClientFactory {
	return func() (ai.CompletionClient, error) { return c, nil }
}

type stubFlights struct {
	resp *travel.FlightSearchResponse
	err  error
}

func (s *stubFlights) SearchFlights(context.Context, travel.FlightSearchRequest) (*travel.FlightSearchResponse, error) {
	return s.resp, s.err
}
func (s *stubFlights) Close() error { return nil }

type nopRestaurants struct{}

func (nopRestaurants) SearchRestaurants(context.Context, travel.RestaurantSearchRequest) (*travel.RestaurantSearchResponse, error) {
	return &travel.RestaurantSearchResponse{}, nil
}
func (nopRestaurants) Close() error { return nil }

type nopTransport struct{}

func (nopTransport) SearchTransport(context.Context, travel.TransportSearchRequest) (*travel.TransportSearchResponse, error) {
	return &travel.TransportSearchResponse{}, nil
}
func (nopTransport) Close() error { return nil }

func newTestPipeline(t *testing.T, extract, synth *fakeClient, flights travel.FlightProvider) (*Service, *usercontext.MemoryStore) {
	t.Helper()
	log := zap.NewNop()
	if flights == nil {
		flights = &stubFlights{resp: &travel.FlightSearchResponse{}}
	}
	dispatcher := travel.NewService(flights, nopRestaurants{}, nopTransport{}, log)
	store := usercontext.NewMemoryStore()
	svc := NewService(synth, factoryFor(extract), dispatcher, store, links.NewProcessor(), log)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC) }
	return svc, store
}

func TestProcessMessage_GeneralIntent(t *testing.T) {
	extract := &fakeClient{reply: `{"intent": "general"}`}
	synth := &fakeClient{reply: "Happy to help plan your next trip."}
	svc, store := newTestPipeline(t, extract, synth, nil)

	reply, err := svc.ProcessMessage(context.Background(), "u1", "hello there")
	require.NoError(t, err)
	require.Equal(t, "Happy to help plan your next trip.", reply.Text)
	require.Empty(t, reply.Links)

	// Extraction client is opened per call and released.
	require.True(t, extract.closed)
	require.InDelta(t, 0.2, extract.opts[0].Temperature, 1e-9)
	require.InDelta(t, 0.7, synth.opts[0].Temperature, 1e-9)

	uc, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, uc.History, 2)
	require.Equal(t, usercontext.RoleUser, uc.History[0].Role)
	require.Equal(t, "hello there", uc.History[0].Content)
	require.Equal(t, usercontext.RoleAssistant, uc.History[1].Role)
}

func TestProcessMessage_FlightBookingLinks(t *testing.T) {
	extract := &fakeClient{reply: `{"intent": "flight", "origin": "New York", "destination": "Paris"}`}
	synth := &fakeClient{reply: "There's a Norwegian flight for $403."}
	flights := &stubFlights{resp: &travel.FlightSearchResponse{
		Options: []travel.FlightOption{{
			OutboundSegments: []travel.FlightSegment{{Airline: "Norwegian"}},
			TotalPrice:       403,
			BookingLink:      "https://b.example/norwegian",
		}},
	}}
	svc, _ := newTestPipeline(t, extract, synth, flights)

	reply, err := svc.ProcessMessage(context.Background(), "u1", "flight from New York to Paris")
	require.NoError(t, err)
	require.Len(t, reply.Links, 1)
	require.Equal(t, links.TypeBooking, reply.Links[0].Type)
	require.Equal(t, "https://b.example/norwegian", reply.Links[0].URL)
}

func TestProcessMessage_ExtractionGarbageDegradesToGeneral(t *testing.T) {
	extract := &fakeClient{reply: "I could not find any structure here."}
	synth := &fakeClient{reply: "Tell me more about your trip."}
	flights := &stubFlights{err: errors.New("must not be called")}
	svc, _ := newTestPipeline(t, extract, synth, flights)

	reply, err := svc.ProcessMessage(context.Background(), "u1", "???")
	require.NoError(t, err)
	require.Equal(t, "Tell me more about your trip.", reply.Text)
}

func TestProcessMessage_SynthesisFailureKeepsUserTurn(t *testing.T) {
	extract := &fakeClient{reply: `{"intent": "general"}`}
	synth := &fakeClient{err: errors.New("model down")}
	svc, store := newTestPipeline(t, extract, synth, nil)

	reply, err := svc.ProcessMessage(context.Background(), "u1", "hello")
	require.NoError(t, err)
	require.Contains(t, reply.Text, "response generation")
	require.Empty(t, reply.Links)

	uc, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, uc.History, 1)
	require.Equal(t, usercontext.RoleUser, uc.History[0].Role)
}

func TestProcessMessage_ProviderFailureNamesDomain(t *testing.T) {
	extract := &fakeClient{reply: `{"intent": "flight", "origin": "Rome", "destination": "Milan"}`}
	synth := &fakeClient{reply: "unused"}
	flights := &stubFlights{err: errors.New("upstream 503")}
	svc, _ := newTestPipeline(t, extract, synth, flights)

	reply, err := svc.ProcessMessage(context.Background(), "u1", "flight Rome to Milan")
	require.NoError(t, err)
	require.Contains(t, reply.Text, "flight search")
	require.Empty(t, synth.messages)
}

func TestProcessMessage_HistoryFlowsIntoSynthesis(t *testing.T) {
	extract := &fakeClient{reply: `{"intent": "general"}`}
	synth := &fakeClient{reply: "ok"}
	svc, _ := newTestPipeline(t, extract, synth, nil)

	ctx := context.Background()
	_, err := svc.ProcessMessage(ctx, "u1", "first message")
	require.NoError(t, err)
	_, err = svc.ProcessMessage(ctx, "u1", "second message")
	require.NoError(t, err)

	last := synth.messages[len(synth.messages)-1]
	require.Equal(t, ai.RoleSystem, last[0].Role)
	require.Equal(t, ai.RoleSystem, last[1].Role)
	require.True(t, strings.Contains(last[1].Content, "second message"))

	var transcript []string
	for _, m := range last[2:] {
		transcript = append(transcript, m.Content)
	}
	require.Equal(t, []string{"first message", "ok", "second message"}, transcript)
}
