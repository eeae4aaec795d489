// README: Domain search request/response models and the normalized result envelope.
package travel

import "time"

// Envelope types. TypeError marks a dispatch that failed before reaching a provider.
const (
	TypeFlight         = "flight"
	TypeHotel          = "hotel"
	TypeRestaurant     = "restaurant"
	TypeAttraction     = "attraction"
	TypeTransport      = "transport"
	TypeSeasonalAdvice = "seasonal_advice"
	TypeGeneral        = "general"
	TypeError          = "error"
)

// Envelope is the normalized wrapper every dispatch returns regardless of
// which domain handled the request. Data present means Message describes a
// success; Data absent means Message explains why the search could not run.
type Envelope struct {
	Type    string `json:"type"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// Flights

type FlightSearchRequest struct {
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	DepartureDate     time.Time  `json:"departure_date"`
	ReturnDate        *time.Time `json:"return_date,omitempty"`
	Adults            int        `json:"adults"`
	Children          int        `json:"children"`
	Infants           int        `json:"infants"`
	CabinClass        string     `json:"cabin_class"`
	DirectFlightsOnly bool       `json:"direct_flights_only"`
}

type FlightSegment struct {
	Airline          string    `json:"airline"`
	FlightNumber     string    `json:"flight_number"`
	DepartureAirport string    `json:"departure_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalAirport   string    `json:"arrival_airport"`
	ArrivalTime      time.Time `json:"arrival_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	CabinClass       string    `json:"cabin_class"`
}

type FlightOption struct {
	OutboundSegments []FlightSegment `json:"outbound_segments"`
	ReturnSegments   []FlightSegment `json:"return_segments,omitempty"`
	TotalPrice       float64         `json:"total_price"`
	Currency         string          `json:"currency"`
	BookingLink      string          `json:"booking_link"`
	Provider         string          `json:"provider"`
}

type FlightSearchResponse struct {
	Options      []FlightOption      `json:"options"`
	SearchID     string              `json:"search_id"`
	Currency     string              `json:"currency"`
	SearchParams FlightSearchRequest `json:"search_params"`
}

// Restaurants

type RestaurantSearchRequest struct {
	Location   string   `json:"location"`
	RadiusKm   float64  `json:"radius_km"`
	Cuisines   []string `json:"cuisines,omitempty"`
	PriceRange []string `json:"price_range,omitempty"`
	OpenNow    *bool    `json:"open_now,omitempty"`
}

type RestaurantLocation struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RestaurantOption struct {
	Name            string             `json:"name"`
	Cuisines        []string           `json:"cuisines"`
	PriceLevel      string             `json:"price_level"`
	Rating          float64            `json:"rating,omitempty"`
	ReviewsCount    int                `json:"reviews_count,omitempty"`
	Location        RestaurantLocation `json:"location"`
	Phone           string             `json:"phone,omitempty"`
	Website         string             `json:"website,omitempty"`
	ReservationLink string             `json:"reservation_link,omitempty"`
	Provider        string             `json:"provider"`
}

type RestaurantSearchResponse struct {
	Options      []RestaurantOption      `json:"options"`
	SearchID     string                  `json:"search_id"`
	SearchParams RestaurantSearchRequest `json:"search_params"`
}

// Transport

// Mode is the closed enumeration of transport modes.
type Mode string

const (
	ModeTrain  Mode = "train"
	ModeBus    Mode = "bus"
	ModeFlight Mode = "flight"
	ModeCar    Mode = "car"
	ModeFerry  Mode = "ferry"
	ModeSubway Mode = "subway"
	ModeWalk   Mode = "walk"
)

// ParseMode reports whether the raw name is a known transport mode.
// Unrecognized names are silently dropped by callers.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeTrain, ModeBus, ModeFlight, ModeCar, ModeFerry, ModeSubway, ModeWalk:
		return m, true
	default:
		return "", false
	}
}

type TransportSearchRequest struct {
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_date"`
	Modes         []Mode    `json:"modes,omitempty"`
	Adults        int       `json:"adults"`
	Children      int       `json:"children"`
}

type TransportSegment struct {
	Mode              Mode      `json:"mode"`
	Provider          string    `json:"provider,omitempty"`
	DepartureLocation string    `json:"departure_location"`
	DepartureTime     time.Time `json:"departure_time"`
	ArrivalLocation   string    `json:"arrival_location"`
	ArrivalTime       time.Time `json:"arrival_time"`
	DurationMinutes   int       `json:"duration_minutes"`
	DistanceKm        float64   `json:"distance_km,omitempty"`
}

type TransportOption struct {
	Segments             []TransportSegment `json:"segments"`
	TotalDurationMinutes int                `json:"total_duration_minutes"`
	TotalPrice           float64            `json:"total_price"`
	Currency             string             `json:"currency"`
	BookingLink          string             `json:"booking_link,omitempty"`
	Provider             string             `json:"provider"`
}

type TransportSearchResponse struct {
	Options      []TransportOption      `json:"options"`
	SearchID     string                 `json:"search_id"`
	Currency     string                 `json:"currency"`
	SearchParams TransportSearchRequest `json:"search_params"`
}

// Hotels and attractions keep their search contracts while the domains are placeholders.

type HotelSearchRequest struct {
	Destination  string    `json:"destination"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Adults       int       `json:"adults"`
	Children     int       `json:"children"`
	Rooms        int       `json:"rooms"`
	MinPrice     *float64  `json:"min_price,omitempty"`
	MaxPrice     *float64  `json:"max_price,omitempty"`
}

type AttractionSearchRequest struct {
	Location       string   `json:"location"`
	RadiusKm       float64  `json:"radius_km"`
	Categories     []string `json:"categories,omitempty"`
	FamilyFriendly *bool    `json:"family_friendly,omitempty"`
}

type AttractionOption struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    []string `json:"category"`
	Rating      float64  `json:"rating,omitempty"`
	Website     string   `json:"website,omitempty"`
	BookingLink string   `json:"booking_link,omitempty"`
	Provider    string   `json:"provider"`
}

type AttractionSearchResponse struct {
	Location    string             `json:"location"`
	Attractions []AttractionOption `json:"attractions"`
	SearchID    string             `json:"search_id"`
}
