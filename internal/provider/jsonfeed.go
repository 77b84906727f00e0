package provider

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/textnorm"
)

// Wire shapes of the day-indexed JSON feed. Every field is optional;
// missing values decode to zero values and normalize to empty strings.
type jsonFeedResponse struct {
	RestaurantName string        `json:"RestaurantName"`
	RestaurantURL  string        `json:"RestaurantUrl"`
	ErrorText      string        `json:"ErrorText"`
	MenusForDays   []jsonFeedDay `json:"MenusForDays"`
}

type jsonFeedDay struct {
	Date      string            `json:"Date"`
	LunchTime string            `json:"LunchTime"`
	SetMenus  []jsonFeedSetMenu `json:"SetMenus"`
}

type jsonFeedSetMenu struct {
	SortOrder  *int     `json:"SortOrder"`
	Name       string   `json:"Name"`
	Price      string   `json:"Price"`
	Components []string `json:"Components"`
}

// ParseJSONFeed parses the day-indexed JSON feed. The day whose date
// equals todayISO becomes the today menu; otherwise the feed's latest
// date is kept as the fallback payload date.
func ParseJSONFeed(raw string, todayISO string) *menu.FetchOutcome {
	var feed jsonFeedResponse
	if err := json.Unmarshal([]byte(raw), &feed); err != nil {
		return failure(menu.JSONFeed, (&ParseError{Message: "malformed feed JSON", Cause: err}).Error(), raw)
	}

	name := textnorm.NormalizeText(feed.RestaurantName)
	url := textnorm.NormalizeText(feed.RestaurantURL)

	if errText := textnorm.NormalizeText(feed.ErrorText); errText != "" {
		out := failure(menu.JSONFeed, (&ProviderError{Message: errText}).Error(), raw)
		out.RestaurantName = name
		out.RestaurantURL = url
		return out
	}

	var (
		today       *menu.TodayMenu
		payloadDate string
	)
	for _, day := range feed.MenusForDays {
		dateKey, _, _ := strings.Cut(textnorm.NormalizeText(day.Date), "T")
		payloadDate = maxDateKey(payloadDate, dateKey)
		if dateKey != todayISO {
			continue
		}
		today = &menu.TodayMenu{
			DateISO:   todayISO,
			LunchTime: textnorm.NormalizeText(day.LunchTime),
			Groups:    normalizeSetMenus(day.SetMenus),
		}
		payloadDate = todayISO
		break
	}

	return &menu.FetchOutcome{
		OK:             true,
		TodayMenu:      today,
		RestaurantName: name,
		RestaurantURL:  url,
		Provider:       menu.JSONFeed,
		RawPayload:     raw,
		PayloadDate:    payloadDate,
	}
}

// normalizeSetMenus converts the feed sub-menus to menu groups. When
// any sub-menu carries a sort order, all are stably sorted by
// (sort order, original index); sub-menus without one sort as if their
// index were the key, which keeps their relative order and slots them
// between explicitly ordered entries. Groups left without components
// after normalization are dropped.
func normalizeSetMenus(setMenus []jsonFeedSetMenu) []menu.MenuGroup {
	type indexed struct {
		idx int
		m   jsonFeedSetMenu
	}
	items := make([]indexed, len(setMenus))
	hasSort := false
	for i, m := range setMenus {
		items[i] = indexed{idx: i, m: m}
		if m.SortOrder != nil {
			hasSort = true
		}
	}
	if hasSort {
		sort.SliceStable(items, func(a, b int) bool {
			ka, kb := items[a].idx, items[b].idx
			if items[a].m.SortOrder != nil {
				ka = *items[a].m.SortOrder
			}
			if items[b].m.SortOrder != nil {
				kb = *items[b].m.SortOrder
			}
			if ka != kb {
				return ka < kb
			}
			return items[a].idx < items[b].idx
		})
	}

	var groups []menu.MenuGroup
	for _, it := range items {
		var components []string
		for _, c := range it.m.Components {
			if normalized := textnorm.NormalizeText(c); normalized != "" {
				components = append(components, normalized)
			}
		}
		if len(components) == 0 {
			continue
		}
		groups = append(groups, menu.MenuGroup{
			Name:       textnorm.NormalizeText(it.m.Name),
			Price:      textnorm.NormalizeText(it.m.Price),
			Components: components,
		})
	}
	return groups
}
