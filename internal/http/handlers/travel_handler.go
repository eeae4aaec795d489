// README: Direct search handlers bypassing the conversation pipeline.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jetzy/internal/modules/travel"
)

type TravelHandler struct {
	travel *travel.Service
}

func NewTravelHandler(svc *travel.Service) *TravelHandler {
	return &TravelHandler{travel: svc}
}

type flightSearchReq struct {
	Origin            string `json:"origin"`
	Destination       string `json:"destination"`
	DepartureDate     string `json:"departure_date"`
	ReturnDate        string `json:"return_date"`
	Adults            int    `json:"adults"`
	Children          int    `json:"children"`
	CabinClass        string `json:"cabin_class"`
	DirectFlightsOnly bool   `json:"direct_flights_only"`
}

// SearchFlights handles POST /api/flights/search.
func (h *TravelHandler) SearchFlights(c *gin.Context) {
	var req flightSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Origin == "" || req.Destination == "" {
		writeError(c, http.StatusBadRequest, "missing origin or destination")
		return
	}
	dep, ok := travel.ParseDate(req.DepartureDate)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid departure_date, expected YYYY-MM-DD")
		return
	}
	var ret *time.Time
	if req.ReturnDate != "" {
		r, ok := travel.ParseDate(req.ReturnDate)
		if !ok {
			writeError(c, http.StatusBadRequest, "invalid return_date, expected YYYY-MM-DD")
			return
		}
		ret = &r
	}
	adults := req.Adults
	if adults < 1 {
		adults = 1
	}

	resp, err := h.travel.SearchFlights(c.Request.Context(), travel.FlightSearchRequest{
		Origin:            req.Origin,
		Destination:       req.Destination,
		DepartureDate:     dep,
		ReturnDate:        ret,
		Adults:            adults,
		Children:          req.Children,
		CabinClass:        req.CabinClass,
		DirectFlightsOnly: req.DirectFlightsOnly,
	})
	if err != nil {
		writeTravelError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

type restaurantSearchReq struct {
	Location   string   `json:"location"`
	Cuisines   []string `json:"cuisines"`
	PriceRange []string `json:"price_range"`
	OpenNow    *bool    `json:"open_now"`
}

// SearchRestaurants handles POST /api/restaurants/search.
func (h *TravelHandler) SearchRestaurants(c *gin.Context) {
	var req restaurantSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Location == "" {
		writeError(c, http.StatusBadRequest, "missing location")
		return
	}

	resp, err := h.travel.SearchRestaurants(c.Request.Context(), travel.RestaurantSearchRequest{
		Location:   req.Location,
		RadiusKm:   5.0,
		Cuisines:   req.Cuisines,
		PriceRange: req.PriceRange,
		OpenNow:    req.OpenNow,
	})
	if err != nil {
		writeTravelError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

type transportSearchReq struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	Modes         []string `json:"modes"`
	Adults        int      `json:"adults"`
	Children      int      `json:"children"`
}

// SearchTransport handles POST /api/transport/search.
func (h *TravelHandler) SearchTransport(c *gin.Context) {
	var req transportSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Origin == "" || req.Destination == "" {
		writeError(c, http.StatusBadRequest, "missing origin or destination")
		return
	}
	dep, ok := travel.ParseDateTime(req.DepartureDate)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid departure_date")
		return
	}

	var modes []travel.Mode
	for _, m := range req.Modes {
		if mode, ok := travel.ParseMode(m); ok {
			modes = append(modes, mode)
		}
	}

	resp, err := h.travel.SearchTransport(c.Request.Context(), travel.TransportSearchRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: dep,
		Modes:         modes,
		Adults:        req.Adults,
		Children:      req.Children,
	})
	if err != nil {
		writeTravelError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}
