// Package catalog holds the static table of known restaurants. Entries
// are build-time constants; the slice returned by List is the cycle
// order used when stepping through restaurants.
package catalog

import "github.com/jonathan/lunch-tray/internal/menu"

// Restaurant describes one known restaurant and the provider-specific
// parameters needed to fetch its menu. Values are immutable.
type Restaurant struct {
	// Code is the stable identifier; for the Compass feeds it doubles
	// as the cost number sent to the menu API.
	Code     string
	Name     string
	Provider menu.ProviderKind
	// Slug is the path segment of the scraped lunch page; set only for
	// HTMLScrape restaurants.
	Slug string
	// APIBase is the service root of the third-party menu API; set only
	// for ThirdPartyJSON restaurants.
	APIBase string
	// URL is the canonical public page, when one exists.
	URL string
}

// campusRestaurants is the always-present subset, in cycle order.
var campusRestaurants = []Restaurant{
	{Code: "0437", Name: "Snellmania", Provider: menu.JSONFeed},
	{Code: "0439", Name: "Tietoteknia", Provider: menu.JSONFeed},
	{Code: "0436", Name: "Canthia", Provider: menu.RSSFeed},
	{
		Code:     "huomen-bioteknia",
		Name:     "Huomen Bioteknia",
		Provider: menu.ThirdPartyJSON,
		APIBase:  "https://api.ravintolahuomen.fi",
		URL:      "https://www.ravintolahuomen.fi/bioteknia/",
	},
}

// antellRestaurants is appended only when the optional group is enabled.
var antellRestaurants = []Restaurant{
	{
		Code:     "antell-highway",
		Name:     "Antell Highway",
		Provider: menu.HTMLScrape,
		Slug:     "highway",
		URL:      "https://antell.fi/lounas/kuopio/highway/",
	},
	{
		Code:     "antell-round",
		Name:     "Antell Round",
		Provider: menu.HTMLScrape,
		Slug:     "round",
		URL:      "https://antell.fi/lounas/kuopio/round/",
	},
}

// List returns the known restaurants in stable cycle order. The Antell
// group is included only when requested.
func List(includeOptional bool) []Restaurant {
	out := make([]Restaurant, 0, len(campusRestaurants)+len(antellRestaurants))
	out = append(out, campusRestaurants...)
	if includeOptional {
		out = append(out, antellRestaurants...)
	}
	return out
}

// Lookup resolves a restaurant code. Unknown codes fall back to the
// first campus restaurant; Lookup never fails.
func Lookup(code string, includeOptional bool) Restaurant {
	for _, r := range List(includeOptional) {
		if r.Code == code {
			return r
		}
	}
	return campusRestaurants[0]
}

// IsOptional reports whether the code belongs to the optional group.
func IsOptional(code string) bool {
	for _, r := range antellRestaurants {
		if r.Code == code {
			return true
		}
	}
	return false
}

// Cycle steps forward (direction > 0) or backward (direction < 0) from
// the given code in list order, wrapping at both ends. An unknown code
// is treated as the first entry.
func Cycle(code string, direction int, includeOptional bool) Restaurant {
	list := List(includeOptional)
	idx := 0
	for i, r := range list {
		if r.Code == code {
			idx = i
			break
		}
	}
	idx += direction
	if idx < 0 {
		idx = len(list) - 1
	} else if idx >= len(list) {
		idx = 0
	}
	return list[idx]
}
