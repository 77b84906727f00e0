package refresh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/provider"
)

func TestFeedURL(t *testing.T) {
	// A Wednesday, so the scraped page URL carries a known weekday token.
	now := time.Date(2024, 11, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		restaurant catalog.Restaurant
		language   string
		want       string
	}{
		{
			name:       "json feed carries cost number and language",
			restaurant: catalog.Restaurant{Code: "0437", Provider: menu.JSONFeed},
			language:   "fi",
			want:       "https://www.compass-group.fi/menuapi/feed/json?costNumber=0437&language=fi",
		},
		{
			name:       "rss feed uses the weekly endpoint",
			restaurant: catalog.Restaurant{Code: "0436", Provider: menu.RSSFeed},
			language:   "en",
			want:       "https://www.compass-group.fi/menuapi/feed/rss/week?costNumber=0436&language=en",
		},
		{
			name:       "scraped page uses the slug and lowercase weekday",
			restaurant: catalog.Restaurant{Code: "antell-highway", Provider: menu.HTMLScrape, Slug: "highway"},
			language:   "fi",
			want:       "https://antell.fi/lounas/kuopio/highway/?print_lunch_day=wednesday&print_lunch_list_day=1",
		},
		{
			name:       "third-party api builds from its base",
			restaurant: catalog.Restaurant{Code: "huomen-bioteknia", Provider: menu.ThirdPartyJSON, APIBase: "https://api.ravintolahuomen.fi"},
			language:   "en",
			want:       "https://api.ravintolahuomen.fi/api/v1/menu/week?lang=en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := feedURL(tt.restaurant, tt.language, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeedURLMissingParams(t *testing.T) {
	now := time.Now()

	_, err := feedURL(catalog.Restaurant{Code: "x", Provider: menu.HTMLScrape}, "fi", now)
	var cfgErr *provider.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "slug", cfgErr.Param)

	_, err = feedURL(catalog.Restaurant{Code: "y", Provider: menu.ThirdPartyJSON}, "fi", now)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "api-base", cfgErr.Param)
}
