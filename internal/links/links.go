// README: Link marker extraction and formatting for synthesized replies.
package links

import (
	"fmt"
	"regexp"
	"strings"

	"jetzy/internal/modules/travel"
)

// Link kinds.
const (
	TypeGeneral    = "general"
	TypeSpecific   = "specific"
	TypeAttraction = "attraction"
	TypeBooking    = "booking"
)

// Link is an actionable reference produced from synthesized text or provider
// data. Model-emitted marker syntax is parsed here, never passed through raw.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
	Type string `json:"type"`
}

var (
	genericMarkerRe  = regexp.MustCompile(`<Links to ([^>]+)>`)
	specificMarkerRe = regexp.MustCompile(`<link:(.*?)\|(.*?)>`)
	locationRe       = regexp.MustCompile(`in ([A-Za-z\s]+)[.,]`)
	placeRe          = regexp.MustCompile(`((?:[A-Z][a-z]+\s*)+)(?:\(|,|\s+and\s+|\.|\s+is)`)
)

// PurposeRule maps marker purposes onto a destination site by substring
// match. Rules are checked in order; the order is behavior, not tuning.
type PurposeRule struct {
	Keywords []string
	URL      string
}

// DefaultPurposeRules is the stock purpose-to-domain mapping. The final
// fallback (no keyword match) is handled by defaultPurposeURL.
var DefaultPurposeRules = []PurposeRule{
	{Keywords: []string{"flight"}, URL: "https://www.skyscanner.com/"},
	{Keywords: []string{"hotel"}, URL: "https://www.booking.com/"},
	{Keywords: []string{"restaurant", "dining", "reservation"}, URL: "https://www.opentable.com/"},
	{Keywords: []string{"attraction", "place", "these places"}, URL: "https://www.tripadvisor.com/"},
	{Keywords: []string{"transport"}, URL: "https://www.rome2rio.com/"},
}

const defaultPurposeURL = "https://www.google.com/travel"

// defaultStoplist filters out generic geography from the heuristic place scan.
var defaultStoplist = []string{"New York", "United States", "America"}

// Processor extracts links from reply text. The zero-config Processor uses
// the stock purpose rules and stoplist; both are swappable because behavior
// depends on their exact contents and order.
type Processor struct {
	rules    []PurposeRule
	stoplist []string
}

func NewProcessor() *Processor {
	return &Processor{rules: DefaultPurposeRules, stoplist: defaultStoplist}
}

func NewProcessorWith(rules []PurposeRule, stoplist []string) *Processor {
	if rules == nil {
		rules = DefaultPurposeRules
	}
	if stoplist == nil {
		stoplist = defaultStoplist
	}
	return &Processor{rules: rules, stoplist: stoplist}
}

// Extract scans text for the three marker patterns, in a fixed order:
// generic placeholder markers, then specific inline markers, then the
// heuristic place scan. Findings are concatenated, not deduplicated.
func (p *Processor) Extract(text string) []Link {
	var links []Link

	for _, m := range genericMarkerRe.FindAllStringSubmatch(text, -1) {
		purpose := m[1]
		links = append(links, Link{
			URL:  p.purposeURL(purpose),
			Text: "Find " + purpose,
			Type: TypeGeneral,
		})
	}

	for _, m := range specificMarkerRe.FindAllStringSubmatch(text, -1) {
		links = append(links, Link{URL: m[1], Text: m[2], Type: TypeSpecific})
	}

	links = append(links, p.scanPlaces(text)...)
	return links
}

// purposeURL picks a destination site for a generic marker purpose.
func (p *Processor) purposeURL(purpose string) string {
	lower := strings.ToLower(strings.TrimSpace(purpose))
	for _, rule := range p.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.URL
			}
		}
	}
	return defaultPurposeURL
}

// scanPlaces is a heuristic, not a real entity recognizer: it looks for
// capitalized multi-word phrases near attraction-flavored text.
func (p *Processor) scanPlaces(text string) []Link {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "places to visit") && !strings.Contains(lower, "attractions") {
		return nil
	}

	location := "the area"
	if m := locationRe.FindStringSubmatch(text); m != nil {
		location = m[1]
	}

	var links []Link
	count := 0
	for _, m := range placeRe.FindAllStringSubmatch(text, -1) {
		place := strings.TrimSpace(m[1])
		if len(place) <= 3 || p.stopped(place) {
			continue
		}
		if count >= 3 {
			break
		}
		count++
		links = append(links, Link{
			URL:  fmt.Sprintf("https://www.google.com/search?q=%s+%s", strings.ReplaceAll(place, " ", "+"), strings.ReplaceAll(location, " ", "+")),
			Text: "Learn about " + place,
			Type: TypeAttraction,
		})
	}

	links = append(links, Link{
		URL:  "https://www.google.com/search?q=things+to+do+in+" + strings.ReplaceAll(location, " ", "+"),
		Text: "Explore " + location,
		Type: TypeGeneral,
	})
	return links
}

func (p *Processor) stopped(place string) bool {
	for _, s := range p.stoplist {
		if place == s {
			return true
		}
	}
	return false
}

// FormatText strips specific inline markers down to their display text.
// Generic placeholder markers stay in the visible text on purpose, as a
// signal token for downstream renderers. Idempotent.
func FormatText(text string) string {
	return specificMarkerRe.ReplaceAllString(text, "$2")
}

// BookingLinks derives booking-style links straight from a provider envelope
// without scanning text: first up to three options per domain, using each
// option's own booking URL with a domain default as fallback.
func BookingLinks(env travel.Envelope) []Link {
	var links []Link

	switch data := env.Data.(type) {
	case *travel.FlightSearchResponse:
		if data == nil {
			return nil
		}
		for _, opt := range firstFlights(data.Options, 3) {
			if len(opt.OutboundSegments) == 0 {
				continue
			}
			url := opt.BookingLink
			if url == "" {
				url = "https://www.skyscanner.com/"
			}
			links = append(links, Link{
				URL:  url,
				Text: fmt.Sprintf("Book %s flight for $%.0f", opt.OutboundSegments[0].Airline, opt.TotalPrice),
				Type: TypeBooking,
			})
		}
	case *travel.RestaurantSearchResponse:
		if data == nil {
			return nil
		}
		for i, opt := range data.Options {
			if i >= 3 {
				break
			}
			url := opt.ReservationLink
			if url == "" {
				url = "https://www.opentable.com/"
			}
			links = append(links, Link{
				URL:  url,
				Text: "Reserve a table at " + opt.Name,
				Type: TypeBooking,
			})
		}
	case *travel.AttractionSearchResponse:
		if data == nil {
			return nil
		}
		for i, attr := range data.Attractions {
			if i >= 3 {
				break
			}
			links = append(links, Link{
				URL:  fmt.Sprintf("https://www.google.com/search?q=%s+%s", strings.ReplaceAll(attr.Name, " ", "+"), strings.ReplaceAll(data.Location, " ", "+")),
				Text: "Visit " + attr.Name,
				Type: TypeAttraction,
			})
		}
	case *travel.TransportSearchResponse:
		if data == nil {
			return nil
		}
		for i, opt := range data.Options {
			if i >= 3 {
				break
			}
			if len(opt.Segments) == 0 {
				continue
			}
			url := opt.BookingLink
			if url == "" {
				url = "https://www.rome2rio.com/"
			}
			links = append(links, Link{
				URL:  url,
				Text: fmt.Sprintf("Book %s for $%.0f", opt.Segments[0].Mode, opt.TotalPrice),
				Type: TypeBooking,
			})
		}
	}

	return links
}

func firstFlights(options []travel.FlightOption, n int) []travel.FlightOption {
	if len(options) > n {
		return options[:n]
	}
	return options
}
