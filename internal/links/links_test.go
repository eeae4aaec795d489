package links

import (
	"testing"

	"jetzy/internal/modules/travel"
)

func TestExtract_GenericMarkerMapping(t *testing.T) {
	cases := []struct {
		purpose string
		wantURL string
	}{
		{"book flights", "https://www.skyscanner.com/"},
		{"hotels in Paris", "https://www.booking.com/"},
		{"make reservations at these restaurants", "https://www.opentable.com/"},
		{"these places", "https://www.tripadvisor.com/"},
		{"transport options", "https://www.rome2rio.com/"},
		{"something else entirely", "https://www.google.com/travel"},
	}
	p := NewProcessor()
	for _, tc := range cases {
		got := p.Extract("Sounds great. <Links to " + tc.purpose + ">")
		if len(got) != 1 {
			t.Fatalf("purpose %q: expected 1 link, got %v", tc.purpose, got)
		}
		if got[0].URL != tc.wantURL {
			t.Errorf("purpose %q: url = %q, want %q", tc.purpose, got[0].URL, tc.wantURL)
		}
		if got[0].Text != "Find "+tc.purpose {
			t.Errorf("purpose %q: text = %q", tc.purpose, got[0].Text)
		}
		if got[0].Type != TypeGeneral {
			t.Errorf("purpose %q: type = %q", tc.purpose, got[0].Type)
		}
	}
}

func TestExtract_PrecedenceIsMatchOrder(t *testing.T) {
	// "flight" is checked before "hotel"; a purpose mentioning both maps to
	// the flight site.
	p := NewProcessor()
	got := p.Extract("<Links to flight and hotel deals>")
	if len(got) != 1 || got[0].URL != "https://www.skyscanner.com/" {
		t.Errorf("expected flight precedence, got %v", got)
	}
}

func TestExtract_SpecificMarkerRoundTrip(t *testing.T) {
	text := "You can <link:https://x.example/|Book now> today."
	p := NewProcessor()

	got := p.Extract(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 link, got %v", got)
	}
	want := Link{URL: "https://x.example/", Text: "Book now", Type: TypeSpecific}
	if got[0] != want {
		t.Errorf("link = %+v, want %+v", got[0], want)
	}

	formatted := FormatText(text)
	if formatted != "You can Book now today." {
		t.Errorf("FormatText = %q", formatted)
	}
}

func TestFormatText_Idempotent(t *testing.T) {
	text := "See <link:https://a.example/|here> and <Links to book flights>."
	once := FormatText(text)
	twice := FormatText(once)
	if once != twice {
		t.Errorf("FormatText not idempotent: %q vs %q", once, twice)
	}
	// Generic markers are preserved as a signal token.
	if FormatText("<Links to book flights>") != "<Links to book flights>" {
		t.Error("generic markers must survive FormatText")
	}
}

func TestExtract_PlaceScanOnlyWithTriggerWords(t *testing.T) {
	p := NewProcessor()
	if got := p.Extract("Rome Is Lovely, very nice."); len(got) != 0 {
		t.Errorf("scan should not trigger without keywords, got %v", got)
	}
}

func TestExtract_PlaceScanHeuristic(t *testing.T) {
	// Heuristic, non-exhaustive: asserts the documented precedence, stoplist,
	// and cap, not full entity recognition.
	text := "The best places to visit in Rome. Tourists love Colosseum, Pantheon and Galleria Borghese. Trevi Fountain is stunning."
	p := NewProcessor()
	got := p.Extract(text)

	var attractions []Link
	var generals []Link
	for _, l := range got {
		switch l.Type {
		case TypeAttraction:
			attractions = append(attractions, l)
		case TypeGeneral:
			generals = append(generals, l)
		}
	}

	if len(attractions) != 3 {
		t.Fatalf("expected place links capped at 3, got %v", attractions)
	}
	wantPlaces := []string{"Colosseum", "Pantheon", "Galleria Borghese"}
	for i, want := range wantPlaces {
		if attractions[i].Text != "Learn about "+want {
			t.Errorf("place %d = %q, want %q", i, attractions[i].Text, want)
		}
	}

	if len(generals) != 1 || generals[0].Text != "Explore Rome" {
		t.Errorf("expected a single trailing Explore link, got %v", generals)
	}
	if generals[0].URL != "https://www.google.com/search?q=things+to+do+in+Rome" {
		t.Errorf("explore url = %q", generals[0].URL)
	}
}

func TestExtract_PlaceScanDefaultsLocation(t *testing.T) {
	p := NewProcessor()
	got := p.Extract("Here are some attractions worth seeing.")
	if len(got) != 1 || got[0].Text != "Explore the area" {
		t.Errorf("expected default location link, got %v", got)
	}
}

func TestExtract_PlaceScanStoplist(t *testing.T) {
	text := "Great places to visit. New York, Louvre Museum and America."
	p := NewProcessor()
	for _, l := range p.Extract(text) {
		if l.Text == "Learn about New York" || l.Text == "Learn about America" {
			t.Errorf("stoplisted place emitted: %v", l)
		}
	}
}

func TestExtract_PatternsConcatenateInOrder(t *testing.T) {
	text := "<Links to book flights> then <link:https://a.example/|details> about places to visit in Paris. Montmartre is great."
	p := NewProcessor()
	got := p.Extract(text)
	if len(got) < 3 {
		t.Fatalf("expected generic+specific+heuristic links, got %v", got)
	}
	if got[0].Type != TypeGeneral || got[1].Type != TypeSpecific {
		t.Errorf("pattern order violated: %v", got)
	}
}

func TestBookingLinks_Flight(t *testing.T) {
	env := travel.Envelope{
		Type: travel.TypeFlight,
		Data: &travel.FlightSearchResponse{Options: []travel.FlightOption{
			{OutboundSegments: []travel.FlightSegment{{Airline: "Emirates"}}, TotalPrice: 403, BookingLink: "https://b.example/1"},
			{OutboundSegments: []travel.FlightSegment{{Airline: "Delta Air Lines"}}, TotalPrice: 510},
			{OutboundSegments: []travel.FlightSegment{{Airline: "United"}}, TotalPrice: 640, BookingLink: "https://b.example/3"},
			{OutboundSegments: []travel.FlightSegment{{Airline: "Lufthansa"}}, TotalPrice: 800, BookingLink: "https://b.example/4"},
		}},
	}
	got := BookingLinks(env)
	if len(got) != 3 {
		t.Fatalf("expected 3 booking links, got %d", len(got))
	}
	if got[0].Text != "Book Emirates flight for $403" || got[0].URL != "https://b.example/1" {
		t.Errorf("first link = %+v", got[0])
	}
	if got[1].URL != "https://www.skyscanner.com/" {
		t.Errorf("missing booking link should fall back to domain default, got %q", got[1].URL)
	}
	for _, l := range got {
		if l.Type != TypeBooking {
			t.Errorf("type = %q", l.Type)
		}
	}
}

func TestBookingLinks_Restaurant(t *testing.T) {
	env := travel.Envelope{
		Type: travel.TypeRestaurant,
		Data: &travel.RestaurantSearchResponse{Options: []travel.RestaurantOption{
			{Name: "Le Bernardin", ReservationLink: "https://r.example/lb"},
			{Name: "Septime"},
		}},
	}
	got := BookingLinks(env)
	if len(got) != 2 {
		t.Fatalf("expected 2 links, got %v", got)
	}
	if got[0].Text != "Reserve a table at Le Bernardin" {
		t.Errorf("text = %q", got[0].Text)
	}
	if got[1].URL != "https://www.opentable.com/" {
		t.Errorf("fallback url = %q", got[1].URL)
	}
}

func TestBookingLinks_EmptyEnvelope(t *testing.T) {
	if got := BookingLinks(travel.Envelope{Type: travel.TypeGeneral}); len(got) != 0 {
		t.Errorf("expected no links for envelope without data, got %v", got)
	}
}
