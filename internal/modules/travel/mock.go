// README: Mocked default providers generating plausible randomized results.
package travel

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var mockAirlines = []string{"American Airlines", "Delta Air Lines", "Emirates", "Lufthansa", "United"}

type mockAirport struct {
	Code, Name, City string
}

var mockAirports = map[string]mockAirport{
	"NEW YORK": {Code: "JFK", Name: "John F. Kennedy Airport", City: "New York"},
	"LONDON":   {Code: "LHR", Name: "Heathrow Airport", City: "London"},
	"PARIS":    {Code: "CDG", Name: "Charles de Gaulle Airport", City: "Paris"},
	"CAIRO":    {Code: "CAI", Name: "Cairo International Airport", City: "Cairo"},
	"ROME":     {Code: "FCO", Name: "Fiumicino Airport", City: "Rome"},
}

var mockRestaurants = map[string][]RestaurantOption{
	"New York": {
		{Name: "Le Bernardin", Cuisines: []string{"French"}, PriceLevel: "$$$", Rating: 4.8},
		{Name: "Per Se", Cuisines: []string{"American"}, PriceLevel: "$$$$", Rating: 4.7},
		{Name: "Jungsik", Cuisines: []string{"Korean"}, PriceLevel: "$$$$", Rating: 4.9},
	},
	"Rome": {
		{Name: "Da Enzo", Cuisines: []string{"Italian"}, PriceLevel: "$$", Rating: 4.5},
		{Name: "Roscioli", Cuisines: []string{"Italian"}, PriceLevel: "$$$", Rating: 4.6},
	},
	"Paris": {
		{Name: "Le Jules Verne", Cuisines: []string{"French"}, PriceLevel: "$$$$", Rating: 4.0},
		{Name: "Septime", Cuisines: []string{"French"}, PriceLevel: "$$$", Rating: 4.4},
	},
}

type mockLeg struct {
	mode     Mode
	duration int
	price    float64
}

var mockTransport = map[string][]mockLeg{
	"Rome-Milan": {
		{ModeTrain, 180, 70}, {ModeFlight, 70, 90}, {ModeCar, 400, 25}, {ModeBus, 350, 50},
	},
	"New York-Boston": {
		{ModeTrain, 240, 60}, {ModeFlight, 60, 110}, {ModeCar, 300, 40}, {ModeBus, 350, 80},
	},
	"London-Paris": {
		{ModeTrain, 150, 100}, {ModeFlight, 90, 190}, {ModeCar, 600, 80}, {ModeBus, 390, 140},
	},
}

var defaultLegs = []mockLeg{
	{ModeTrain, 210, 80}, {ModeFlight, 95, 150}, {ModeCar, 360, 45}, {ModeBus, 320, 60},
}

func lookupAirport(name string) mockAirport {
	key := strings.ToUpper(strings.TrimSpace(name))
	if a, ok := mockAirports[key]; ok {
		return a
	}
	for _, a := range mockAirports {
		if strings.EqualFold(a.Code, key) {
			return a
		}
	}
	// Unknown cities still get a shaped result.
	code := "XXX"
	if len(key) >= 3 {
		code = key[:3]
	}
	return mockAirport{Code: code, Name: name + " Airport", City: name}
}

// MockFlightProvider stands in for a Skyscanner-style flight search.
type MockFlightProvider struct {
	rng *rand.Rand
}

func NewMockFlightProvider() *MockFlightProvider {
	return &MockFlightProvider{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *MockFlightProvider) SearchFlights(_ context.Context, req FlightSearchRequest) (*FlightSearchResponse, error) {
	origin := lookupAirport(req.Origin)
	dest := lookupAirport(req.Destination)

	options := make([]FlightOption, 0, 5)
	for i := 0; i < 5; i++ {
		airline := mockAirlines[p.rng.Intn(len(mockAirlines))]
		dep := time.Date(req.DepartureDate.Year(), req.DepartureDate.Month(), req.DepartureDate.Day(),
			6+p.rng.Intn(17), 15*p.rng.Intn(4), 0, 0, time.UTC)
		duration := time.Duration(3+p.rng.Intn(8))*time.Hour + time.Duration(15*p.rng.Intn(4))*time.Minute

		opt := FlightOption{
			OutboundSegments: []FlightSegment{{
				Airline:          airline,
				FlightNumber:     fmt.Sprintf("%c%d", airline[0], 100+p.rng.Intn(900)),
				DepartureAirport: origin.Code,
				DepartureTime:    dep,
				ArrivalAirport:   dest.Code,
				ArrivalTime:      dep.Add(duration),
				DurationMinutes:  int(duration.Minutes()),
				CabinClass:       req.CabinClass,
			}},
			TotalPrice:  float64(300 + p.rng.Intn(900)),
			Currency:    "USD",
			BookingLink: fmt.Sprintf("https://www.skyscanner.com/transport/flights/%s/%s", strings.ToLower(origin.Code), strings.ToLower(dest.Code)),
			Provider:    "Skyscanner",
		}
		if req.ReturnDate != nil {
			ret := *req.ReturnDate
			retDep := time.Date(ret.Year(), ret.Month(), ret.Day(), 6+p.rng.Intn(17), 15*p.rng.Intn(4), 0, 0, time.UTC)
			retDuration := time.Duration(3+p.rng.Intn(8))*time.Hour + time.Duration(15*p.rng.Intn(4))*time.Minute
			opt.ReturnSegments = []FlightSegment{{
				Airline:          airline,
				FlightNumber:     fmt.Sprintf("%c%d", airline[0], 100+p.rng.Intn(900)),
				DepartureAirport: dest.Code,
				DepartureTime:    retDep,
				ArrivalAirport:   origin.Code,
				ArrivalTime:      retDep.Add(retDuration),
				DurationMinutes:  int(retDuration.Minutes()),
				CabinClass:       req.CabinClass,
			}}
		}
		options = append(options, opt)
	}
	sort.Slice(options, func(i, j int) bool { return options[i].TotalPrice < options[j].TotalPrice })

	return &FlightSearchResponse{
		Options:      options,
		SearchID:     "mock-flight-" + uuid.NewString(),
		Currency:     "USD",
		SearchParams: req,
	}, nil
}

func (p *MockFlightProvider) Close() error { return nil }

// MockRestaurantProvider stands in for a Yelp-style restaurant search.
type MockRestaurantProvider struct {
	rng *rand.Rand
}

func NewMockRestaurantProvider() *MockRestaurantProvider {
	return &MockRestaurantProvider{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *MockRestaurantProvider) SearchRestaurants(_ context.Context, req RestaurantSearchRequest) (*RestaurantSearchResponse, error) {
	city := req.Location
	base, ok := mockRestaurants[city]
	if !ok {
		for known, opts := range mockRestaurants {
			if strings.EqualFold(known, city) {
				base, ok = opts, true
				break
			}
		}
	}
	if !ok {
		base = mockRestaurants["New York"]
		city = req.Location
	}

	options := make([]RestaurantOption, 0, len(base))
	for _, opt := range base {
		if len(req.Cuisines) > 0 && !overlapsFold(opt.Cuisines, req.Cuisines) {
			continue
		}
		if len(req.PriceRange) > 0 && !containsFold(req.PriceRange, opt.PriceLevel) {
			continue
		}
		opt.ReviewsCount = 100 + p.rng.Intn(900)
		opt.Location = RestaurantLocation{
			Address: fmt.Sprintf("%d Main St", 1+p.rng.Intn(999)),
			City:    city,
			Country: "Unknown",
		}
		opt.ReservationLink = "https://www.opentable.com/s?term=" + strings.ReplaceAll(opt.Name, " ", "+")
		opt.Provider = "Yelp"
		options = append(options, opt)
	}

	return &RestaurantSearchResponse{
		Options:      options,
		SearchID:     "mock-restaurant-" + uuid.NewString(),
		SearchParams: req,
	}, nil
}

func (p *MockRestaurantProvider) Close() error { return nil }

// MockTransportProvider stands in for a Rome2Rio-style route search.
type MockTransportProvider struct{}

func NewMockTransportProvider() *MockTransportProvider { return &MockTransportProvider{} }

func (p *MockTransportProvider) SearchTransport(_ context.Context, req TransportSearchRequest) (*TransportSearchResponse, error) {
	legs, ok := mockTransport[req.Origin+"-"+req.Destination]
	if !ok {
		legs = defaultLegs
	}

	var options []TransportOption
	for _, leg := range legs {
		if len(req.Modes) > 0 && !modeRequested(req.Modes, leg.mode) {
			continue
		}
		arrival := req.DepartureTime.Add(time.Duration(leg.duration) * time.Minute)
		options = append(options, TransportOption{
			Segments: []TransportSegment{{
				Mode:              leg.mode,
				DepartureLocation: req.Origin,
				DepartureTime:     req.DepartureTime,
				ArrivalLocation:   req.Destination,
				ArrivalTime:       arrival,
				DurationMinutes:   leg.duration,
			}},
			TotalDurationMinutes: leg.duration,
			TotalPrice:           leg.price * float64(req.Adults+req.Children),
			Currency:             "USD",
			BookingLink:          "https://www.rome2rio.com/map/" + strings.ReplaceAll(req.Origin, " ", "-") + "/" + strings.ReplaceAll(req.Destination, " ", "-"),
			Provider:             "Rome2Rio",
		})
	}

	return &TransportSearchResponse{
		Options:      options,
		SearchID:     "mock-transport-" + uuid.NewString(),
		Currency:     "USD",
		SearchParams: req,
	}, nil
}

func (p *MockTransportProvider) Close() error { return nil }

func modeRequested(modes []Mode, m Mode) bool {
	for _, mode := range modes {
		if mode == m {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func overlapsFold(a, b []string) bool {
	for _, v := range a {
		if containsFold(b, v) {
			return true
		}
	}
	return false
}
