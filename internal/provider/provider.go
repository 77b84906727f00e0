// Package provider converts raw provider payloads into the canonical
// menu model. Parsers receive bytes plus the reference "today" date and
// never perform network or disk I/O.
package provider

import (
	"regexp"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/menu"
)

// isoDateRe guards the lexicographic max-date comparison: only
// zero-padded YYYY-MM-DD keys may participate, anything else would make
// string ordering diverge from calendar ordering.
var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Parse dispatches the payload to the parser matching the restaurant's
// provider kind.
func Parse(raw string, todayISO, language string, r catalog.Restaurant) *menu.FetchOutcome {
	switch r.Provider {
	case menu.JSONFeed:
		return ParseJSONFeed(raw, todayISO)
	case menu.RSSFeed:
		return ParseRSSFeed(raw, todayISO, r)
	case menu.HTMLScrape:
		return ParseHTMLScrape(raw, todayISO, r)
	case menu.ThirdPartyJSON:
		return ParseThirdPartyJSON(raw, todayISO, language, r)
	}
	return failure(r.Provider, "unknown provider kind", raw)
}

// failure builds the outcome for a failed attempt, keeping whatever raw
// payload was read so the caller can log it.
func failure(kind menu.ProviderKind, message, raw string) *menu.FetchOutcome {
	return &menu.FetchOutcome{
		OK:           false,
		ErrorMessage: message,
		Provider:     kind,
		RawPayload:   raw,
	}
}

// maxDateKey folds a candidate date key into the running lexicographic
// maximum used as the fallback payload date. Invalid keys are ignored.
func maxDateKey(current, candidate string) string {
	if !isoDateRe.MatchString(candidate) {
		return current
	}
	if current == "" || candidate > current {
		return candidate
	}
	return current
}
