// README: Provider contracts for domain searches; implementations are external collaborators.
package travel

import (
	"context"
	"fmt"
)

// FlightProvider executes flight searches.
type FlightProvider interface {
	SearchFlights(ctx context.Context, req FlightSearchRequest) (*FlightSearchResponse, error)
	Close() error
}

// RestaurantProvider executes restaurant searches.
type RestaurantProvider interface {
	SearchRestaurants(ctx context.Context, req RestaurantSearchRequest) (*RestaurantSearchResponse, error)
	Close() error
}

// TransportProvider executes intercity transport searches.
type TransportProvider interface {
	SearchTransport(ctx context.Context, req TransportSearchRequest) (*TransportSearchResponse, error)
	Close() error
}

// ProviderError wraps a failure of the domain search call itself, as opposed
// to a validation failure (which is reported inside the envelope). It
// propagates to the orchestrator, which converts it into a user-safe reply.
type ProviderError struct {
	Domain string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("travel: %s provider: %v", e.Domain, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
