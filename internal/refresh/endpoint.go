package refresh

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/provider"
)

// feedURL builds the provider feed URL for one restaurant. It returns a
// ConfigError when the catalog entry lacks a required parameter.
func feedURL(r catalog.Restaurant, language string, now time.Time) (string, error) {
	switch r.Provider {
	case menu.JSONFeed:
		return fmt.Sprintf(
			"https://www.compass-group.fi/menuapi/feed/json?costNumber=%s&language=%s",
			r.Code, language,
		), nil
	case menu.RSSFeed:
		return fmt.Sprintf(
			"https://www.compass-group.fi/menuapi/feed/rss/week?costNumber=%s&language=%s",
			r.Code, language,
		), nil
	case menu.HTMLScrape:
		if r.Slug == "" {
			return "", &provider.ConfigError{Code: r.Code, Param: "slug"}
		}
		return fmt.Sprintf(
			"https://antell.fi/lounas/kuopio/%s/?print_lunch_day=%s&print_lunch_list_day=1",
			r.Slug, strings.ToLower(now.Weekday().String()),
		), nil
	case menu.ThirdPartyJSON:
		if r.APIBase == "" {
			return "", &provider.ConfigError{Code: r.Code, Param: "api-base"}
		}
		return fmt.Sprintf("%s/api/v1/menu/week?lang=%s", strings.TrimRight(r.APIBase, "/"), language), nil
	}
	return "", &provider.ConfigError{Code: r.Code, Param: "provider"}
}
