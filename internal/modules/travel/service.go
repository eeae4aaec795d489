// README: Intent dispatcher; maps extracted entities to exactly one provider call.
package travel

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// searchTimeout bounds each provider call.
const searchTimeout = 30 * time.Second

// Service routes an extracted intent to the matching domain provider and
// normalizes the result into an Envelope. Provider selection is static: one
// configured provider per domain, no load balancing.
type Service struct {
	flights     FlightProvider
	restaurants RestaurantProvider
	transport   TransportProvider
	log         *zap.Logger

	// now is swappable for tests; "tomorrow" defaults depend on it.
	now func() time.Time
}

func NewService(flights FlightProvider, restaurants RestaurantProvider, transport TransportProvider, log *zap.Logger) *Service {
	return &Service{
		flights:     flights,
		restaurants: restaurants,
		transport:   transport,
		log:         log,
		now:         time.Now,
	}
}

// Dispatch is a closed switch on the intent. Validation failures (missing
// required slots) come back as envelopes with Data absent and never trigger a
// provider call; only provider failures return an error.
func (s *Service) Dispatch(ctx context.Context, ents Entities) (Envelope, error) {
	s.log.Debug("dispatching intent", zap.String("intent", string(ents.Intent)))

	switch ents.Intent {
	case IntentFlight:
		return s.dispatchFlight(ctx, ents)
	case IntentRestaurant:
		return s.dispatchRestaurant(ctx, ents)
	case IntentTransport:
		return s.dispatchTransport(ctx, ents)
	case IntentHotel:
		return Envelope{Type: TypeHotel, Message: "Hotel search functionality coming soon"}, nil
	case IntentAttraction:
		return Envelope{Type: TypeAttraction, Message: "Attraction search functionality coming soon"}, nil
	case IntentSeasonalAdvice:
		return Envelope{Type: TypeSeasonalAdvice, Message: "Seasonal advice functionality coming soon"}, nil
	default:
		return Envelope{Type: TypeGeneral, Message: "No domain-specific data needed for this query"}, nil
	}
}

func (s *Service) dispatchFlight(ctx context.Context, ents Entities) (Envelope, error) {
	if ents.Origin == "" || ents.Destination == "" {
		return Envelope{Type: TypeFlight, Message: "Missing origin or destination for flight search"}, nil
	}

	departure, ok := ParseDate(ents.DepartureDate)
	if !ok {
		// Default to tomorrow when absent or unparseable.
		departure = s.tomorrow()
	}
	req := FlightSearchRequest{
		Origin:            ents.Origin,
		Destination:       ents.Destination,
		DepartureDate:     departure,
		Adults:            atLeastOne(ents.Adults),
		Children:          ents.Children,
		Infants:           ents.Infants,
		CabinClass:        orEconomy(ents.CabinClass),
		DirectFlightsOnly: ents.DirectFlightsOnly,
	}
	if ret, ok := ParseDate(ents.ReturnDate); ok {
		req.ReturnDate = &ret
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	resp, err := s.flights.SearchFlights(ctx, req)
	if err != nil {
		return Envelope{}, &ProviderError{Domain: TypeFlight, Err: err}
	}
	return Envelope{Type: TypeFlight, Data: resp, Message: "Flight options retrieved successfully"}, nil
}

func (s *Service) dispatchRestaurant(ctx context.Context, ents Entities) (Envelope, error) {
	if ents.Location == "" {
		return Envelope{Type: TypeRestaurant, Message: "Missing location for restaurant search"}, nil
	}

	req := RestaurantSearchRequest{
		Location:   ents.Location,
		RadiusKm:   5.0,
		Cuisines:   ents.Cuisines,
		PriceRange: ents.PriceRange,
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	resp, err := s.restaurants.SearchRestaurants(ctx, req)
	if err != nil {
		return Envelope{}, &ProviderError{Domain: TypeRestaurant, Err: err}
	}
	return Envelope{Type: TypeRestaurant, Data: resp, Message: "Restaurant options retrieved successfully"}, nil
}

func (s *Service) dispatchTransport(ctx context.Context, ents Entities) (Envelope, error) {
	if ents.Origin == "" || ents.Destination == "" {
		return Envelope{Type: TypeTransport, Message: "Missing origin or destination for transport search"}, nil
	}

	departure, ok := ParseDateTime(ents.DepartureDate)
	if !ok {
		// Default to tomorrow at noon when absent or unparseable.
		t := s.tomorrow()
		departure = time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
	}

	// Unrecognized mode names are dropped; they do not fail the request.
	var modes []Mode
	for _, raw := range ents.TransportModes {
		if m, ok := ParseMode(raw); ok {
			modes = append(modes, m)
		} else {
			s.log.Debug("dropping unknown transport mode", zap.String("mode", raw))
		}
	}

	req := TransportSearchRequest{
		Origin:        ents.Origin,
		Destination:   ents.Destination,
		DepartureTime: departure,
		Modes:         modes,
		Adults:        atLeastOne(ents.Adults),
		Children:      ents.Children,
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	resp, err := s.transport.SearchTransport(ctx, req)
	if err != nil {
		return Envelope{}, &ProviderError{Domain: TypeTransport, Err: err}
	}
	return Envelope{Type: TypeTransport, Data: resp, Message: "Transport options retrieved successfully"}, nil
}

// SearchFlights exposes the flight provider for the direct search endpoint.
func (s *Service) SearchFlights(ctx context.Context, req FlightSearchRequest) (*FlightSearchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()
	return s.flights.SearchFlights(ctx, req)
}

// SearchRestaurants exposes the restaurant provider for the direct search endpoint.
func (s *Service) SearchRestaurants(ctx context.Context, req RestaurantSearchRequest) (*RestaurantSearchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()
	return s.restaurants.SearchRestaurants(ctx, req)
}

// SearchTransport exposes the transport provider for the direct search endpoint.
func (s *Service) SearchTransport(ctx context.Context, req TransportSearchRequest) (*TransportSearchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()
	return s.transport.SearchTransport(ctx, req)
}

// Close releases every provider session concurrently and waits for all of
// them; release order is not significant.
func (s *Service) Close() error {
	var wg sync.WaitGroup
	closers := []interface{ Close() error }{s.flights, s.restaurants, s.transport}
	errs := make([]error, len(closers))
	for i, c := range closers {
		if c == nil {
			continue
		}
		wg.Add(1)
		go func(i int, c interface{ Close() error }) {
			defer wg.Done()
			errs[i] = c.Close()
		}(i, c)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) tomorrow() time.Time {
	t := s.now().AddDate(0, 0, 1)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func orEconomy(class string) string {
	if class == "" {
		return "economy"
	}
	return class
}
