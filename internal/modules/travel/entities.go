// README: Extracted travel entities; closed intent enumeration and slot map.
package travel

import (
	"encoding/json"
	"strings"
	"time"
)

// Intent is the closed category of what the user wants. Any label outside the
// enumeration normalizes to IntentGeneral when decoded.
type Intent string

const (
	IntentFlight         Intent = "flight"
	IntentHotel          Intent = "hotel"
	IntentRestaurant     Intent = "restaurant"
	IntentAttraction     Intent = "attraction"
	IntentTransport      Intent = "transport"
	IntentSeasonalAdvice Intent = "seasonal_advice"
	IntentGeneral        Intent = "general"
)

// ParseIntent maps a raw model-produced label onto the closed set.
func ParseIntent(s string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentFlight:
		return IntentFlight
	case IntentHotel:
		return IntentHotel
	case IntentRestaurant:
		return IntentRestaurant
	case IntentAttraction:
		return IntentAttraction
	case IntentTransport:
		return IntentTransport
	case IntentSeasonalAdvice:
		return IntentSeasonalAdvice
	default:
		return IntentGeneral
	}
}

// UnmarshalJSON normalizes unknown labels instead of carrying them through.
func (i *Intent) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*i = IntentGeneral
		return nil
	}
	*i = ParseIntent(s)
	return nil
}

// StringList tolerates the model emitting either a JSON string or an array of
// strings for list-valued slots.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one != "" {
			*l = []string{one}
		}
		return nil
	}
	// Unparseable slot values are dropped, not errors.
	return nil
}

// Entities is the slot map produced by entity extraction. Absent slots stay
// at their zero value and are omitted when re-serialized; "not mentioned" is
// distinguishable from "mentioned as empty" through omitempty.
type Entities struct {
	Intent            Intent     `json:"intent"`
	Origin            string     `json:"origin,omitempty"`
	Destination       string     `json:"destination,omitempty"`
	DepartureDate     string     `json:"departure_date,omitempty"`
	ReturnDate        string     `json:"return_date,omitempty"`
	CheckInDate       string     `json:"check_in_date,omitempty"`
	CheckOutDate      string     `json:"check_out_date,omitempty"`
	Adults            int        `json:"adults,omitempty"`
	Children          int        `json:"children,omitempty"`
	Infants           int        `json:"infants,omitempty"`
	CabinClass        string     `json:"cabin_class,omitempty"`
	DirectFlightsOnly bool       `json:"direct_flights_only,omitempty"`
	Location          string     `json:"location,omitempty"`
	Cuisines          StringList `json:"cuisines,omitempty"`
	Categories        StringList `json:"categories,omitempty"`
	PriceRange        StringList `json:"price_range,omitempty"`
	MinPrice          *float64   `json:"min_price,omitempty"`
	MaxPrice          *float64   `json:"max_price,omitempty"`
	TransportModes    StringList `json:"transport_modes,omitempty"`
	TravelSeason      string     `json:"travel_season,omitempty"`
}

// ParseDate parses a date-only string (YYYY-MM-DD).
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDateTime tries a datetime parse first and falls back to a date-only
// parse pinned to noon. A value that fails both is treated as absent by
// callers, never as an error; which malformed inputs become defaults versus
// hard failures depends on this order.
func ParseDateTime(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if d, ok := ParseDate(s); ok {
		return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, d.Location()), true
	}
	return time.Time{}, false
}
