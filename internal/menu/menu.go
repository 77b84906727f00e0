// Package menu defines the canonical representation of one restaurant's
// lunch offering for one calendar day, shared by every provider parser,
// the payload cache and the refresh controller.
package menu

// ProviderKind identifies one of the external data sources. The set is
// fixed and exhaustive; adding a source is a code change.
type ProviderKind int

const (
	// JSONFeed is the Compass menuapi day-indexed JSON feed.
	JSONFeed ProviderKind = iota
	// RSSFeed is the Compass RSS/XML weekly feed.
	RSSFeed
	// HTMLScrape is the Antell printable lunch page.
	HTMLScrape
	// ThirdPartyJSON is the Huomen weekly menu API with localized fields.
	ThirdPartyJSON
)

// Key returns the stable identifier used in cache file names and logs.
func (k ProviderKind) Key() string {
	switch k {
	case JSONFeed:
		return "compass"
	case RSSFeed:
		return "compassrss"
	case HTMLScrape:
		return "antell"
	case ThirdPartyJSON:
		return "huomen"
	}
	return "unknown"
}

// Ext returns the cache file extension for payloads of this provider.
func (k ProviderKind) Ext() string {
	switch k {
	case RSSFeed:
		return "xml"
	case HTMLScrape:
		return "html"
	}
	return "json"
}

// FreshnessSource tells the controller where the payload date of a
// provider comes from.
type FreshnessSource int

const (
	// FreshnessExplicitDate means the raw payload carries its own dates.
	FreshnessExplicitDate FreshnessSource = iota
	// FreshnessStorageMtime means the cache file modification time is
	// the only date signal for the payload.
	FreshnessStorageMtime
)

// Freshness returns how the payload date for this provider is derived.
// The scraped HTML page never states a date; it is fetched with an
// explicit day-of-week query parameter and trusted to describe today.
func (k ProviderKind) Freshness() FreshnessSource {
	if k == HTMLScrape {
		return FreshnessStorageMtime
	}
	return FreshnessExplicitDate
}

// MenuGroup is one named sub-menu (a serving line, a set menu) with its
// provider-formatted price string and normalized component lines.
type MenuGroup struct {
	Name       string
	Price      string
	Components []string
}

// TodayMenu is exactly one calendar day's offering for one restaurant.
// Groups never contains a group whose component list is empty after
// normalization.
type TodayMenu struct {
	DateISO   string
	LunchTime string
	Groups    []MenuGroup
}

// FetchOutcome is the result of one fetch-and-parse attempt. It is
// consumed synchronously by the controller and then discarded.
//
// PayloadDate is the most authoritative date the source claims to
// describe today or, failing an exact match, the most recent date
// present in the source. It is used purely for staleness comparison and
// may be set even when TodayMenu is nil.
type FetchOutcome struct {
	OK             bool
	ErrorMessage   string
	TodayMenu      *TodayMenu
	RestaurantName string
	RestaurantURL  string
	Provider       ProviderKind
	RawPayload     string
	PayloadDate    string
}
