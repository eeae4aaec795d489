// README: Transport provider backed by the Google Directions API.
package travel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"googlemaps.github.io/maps"
)

// DirectionsProvider implements TransportProvider on the Google Maps
// Directions API. It is a drop-in alternative to the mocked Rome2Rio
// provider; prices are not available from Directions and stay zero.
type DirectionsProvider struct {
	client *maps.Client
}

func NewDirectionsProvider(apiKey string) (*DirectionsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("travel: create maps client: %w", err)
	}
	return &DirectionsProvider{client: client}, nil
}

// travelModeFor maps our closed mode set onto the Directions API modes.
// Modes without a Directions equivalent fall back to transit.
func travelModeFor(m Mode) maps.Mode {
	switch m {
	case ModeCar:
		return maps.TravelModeDriving
	case ModeWalk:
		return maps.TravelModeWalking
	default:
		return maps.TravelModeTransit
	}
}

func (p *DirectionsProvider) SearchTransport(ctx context.Context, req TransportSearchRequest) (*TransportSearchResponse, error) {
	modes := req.Modes
	if len(modes) == 0 {
		modes = []Mode{ModeTrain, ModeCar}
	}

	// One Directions call per distinct API mode; duplicate API modes are collapsed.
	seen := map[maps.Mode]bool{}
	var options []TransportOption
	for _, mode := range modes {
		apiMode := travelModeFor(mode)
		if seen[apiMode] {
			continue
		}
		seen[apiMode] = true

		r := &maps.DirectionsRequest{
			Origin:        req.Origin,
			Destination:   req.Destination,
			Mode:          apiMode,
			DepartureTime: strconv.FormatInt(req.DepartureTime.Unix(), 10),
		}
		routes, _, err := p.client.Directions(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("travel: directions api: %w", err)
		}
		if len(routes) == 0 || len(routes[0].Legs) == 0 {
			continue
		}

		leg := routes[0].Legs[0]
		minutes := int(leg.Duration.Minutes())
		options = append(options, TransportOption{
			Segments: []TransportSegment{{
				Mode:              mode,
				Provider:          "Google Directions",
				DepartureLocation: leg.StartAddress,
				DepartureTime:     req.DepartureTime,
				ArrivalLocation:   leg.EndAddress,
				ArrivalTime:       req.DepartureTime.Add(leg.Duration),
				DurationMinutes:   minutes,
				DistanceKm:        float64(leg.Distance.Meters) / 1000,
			}},
			TotalDurationMinutes: minutes,
			Currency:             "USD",
			Provider:             "Google Directions",
		})
	}

	return &TransportSearchResponse{
		Options:      options,
		SearchID:     "directions-" + uuid.NewString(),
		Currency:     "USD",
		SearchParams: req,
	}, nil
}

// Close satisfies TransportProvider; the maps client holds no closable session.
func (p *DirectionsProvider) Close() error { return nil }
