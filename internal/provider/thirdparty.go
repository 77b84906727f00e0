package provider

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/textnorm"
)

// Wire shapes of the third-party weekly menu API. Textual fields may be
// a plain string or a map of language to string, so they stay raw until
// resolved through LocalizedString.
type thirdPartyResponse struct {
	Success *bool           `json:"success"`
	Message json.RawMessage `json:"message"`
	Data    thirdPartyData  `json:"data"`
}

type thirdPartyData struct {
	Location thirdPartyLocation `json:"location"`
	Week     thirdPartyWeek     `json:"week"`
}

type thirdPartyLocation struct {
	Name json.RawMessage `json:"name"`
}

type thirdPartyWeek struct {
	Days []thirdPartyDay `json:"days"`
}

type thirdPartyDay struct {
	DateString string            `json:"dateString"`
	IsClosed   bool              `json:"isClosed"`
	Lunches    []thirdPartyLunch `json:"lunches"`
}

type thirdPartyLunch struct {
	Title       json.RawMessage      `json:"title"`
	Description json.RawMessage      `json:"description"`
	Allergens   []thirdPartyAllergen `json:"allergens"`
}

type thirdPartyAllergen struct {
	Abbreviation json.RawMessage `json:"abbreviation"`
}

// ParseThirdPartyJSON parses the third-party weekly menu API payload.
// A day equal to todayISO that is not marked closed becomes the today
// menu; the week's latest date serves as the fallback payload date.
func ParseThirdPartyJSON(raw string, todayISO, language string, r catalog.Restaurant) *menu.FetchOutcome {
	var resp thirdPartyResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return failure(menu.ThirdPartyJSON, (&ParseError{Message: "malformed API JSON", Cause: err}).Error(), raw)
	}

	name := LocalizedString(resp.Data.Location.Name, language)
	if name == "" {
		name = r.Name
	}

	if resp.Success != nil && !*resp.Success {
		message := LocalizedString(resp.Message, language)
		if message == "" {
			message = (&ProviderError{Message: "provider reported failure"}).Error()
		}
		out := failure(menu.ThirdPartyJSON, message, raw)
		out.RestaurantName = name
		out.RestaurantURL = r.URL
		return out
	}

	var (
		today       *menu.TodayMenu
		payloadDate string
	)
	for _, day := range resp.Data.Week.Days {
		dateKey := textnorm.NormalizeText(day.DateString)
		payloadDate = maxDateKey(payloadDate, dateKey)
		if dateKey != todayISO {
			continue
		}
		payloadDate = todayISO
		if !day.IsClosed {
			today = &menu.TodayMenu{
				DateISO: todayISO,
				Groups:  lunchGroups(day.Lunches, language),
			}
		}
		break
	}

	return &menu.FetchOutcome{
		OK:             true,
		TodayMenu:      today,
		RestaurantName: name,
		RestaurantURL:  r.URL,
		Provider:       menu.ThirdPartyJSON,
		RawPayload:     raw,
		PayloadDate:    payloadDate,
	}
}

// lunchGroups renders the day's lunches as one group: each entry is the
// localized title, an optional " - description" when it differs from
// the title, and a parenthesized de-duplicated allergen list.
func lunchGroups(lunches []thirdPartyLunch, language string) []menu.MenuGroup {
	var components []string
	for _, lunch := range lunches {
		title := LocalizedString(lunch.Title, language)
		description := LocalizedString(lunch.Description, language)

		line := title
		if description != "" && !strings.EqualFold(description, title) {
			if line != "" {
				line += " - " + description
			} else {
				line = description
			}
		}
		if line == "" {
			continue
		}
		if suffix := allergenSuffix(lunch.Allergens, language); suffix != "" {
			line += " " + suffix
		}
		components = append(components, line)
	}
	if len(components) == 0 {
		return nil
	}
	return []menu.MenuGroup{{Components: components}}
}

func allergenSuffix(allergens []thirdPartyAllergen, language string) string {
	var (
		out  []string
		seen = map[string]struct{}{}
	)
	for _, a := range allergens {
		abbr := textnorm.CanonicalAllergenToken(LocalizedString(a.Abbreviation, language))
		if abbr == "" {
			continue
		}
		key := strings.ToLower(abbr)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, abbr)
	}
	if len(out) == 0 {
		return ""
	}
	return "(" + strings.Join(out, ", ") + ")"
}
