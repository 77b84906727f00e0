package provider

import (
	"testing"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rssRestaurant = catalog.Restaurant{
	Code:     "0436",
	Name:     "Canthia",
	Provider: menu.RSSFeed,
	URL:      "https://example.test/canthia",
}

const sampleRSS = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0">
	<channel>
		<title>Canthia lounaslista</title>
		<item>
			<title>Lounaslista 13.11.2024</title>
			<guid isPermaLink="false">menu-2024-11-13</guid>
			<link>https://example.test/canthia/viikko</link>
			<description><![CDATA[
				<p>Jauhelihakeitto, L, G</p>
				<p>Kasvischili, veg, ilm</p>
				<p>Riisi ja salaatti</p>
			]]></description>
		</item>
	</channel>
</rss>`

func TestParseRSSFeedToday(t *testing.T) {
	out := ParseRSSFeed(sampleRSS, "2024-11-13", rssRestaurant)

	require.True(t, out.OK)
	require.NotNil(t, out.TodayMenu)
	assert.Equal(t, "2024-11-13", out.PayloadDate)
	assert.Equal(t, "Canthia lounaslista", out.RestaurantName)
	assert.Equal(t, "https://example.test/canthia/viikko", out.RestaurantURL)

	require.Len(t, out.TodayMenu.Groups, 1)
	assert.Equal(t, []string{
		"Jauhelihakeitto (L, G)",
		"Kasvischili (Veg, ILM)",
		"Riisi ja salaatti",
	}, out.TodayMenu.Groups[0].Components)
}

func TestParseRSSFeedOtherDay(t *testing.T) {
	out := ParseRSSFeed(sampleRSS, "2024-11-14", rssRestaurant)

	require.True(t, out.OK)
	assert.Nil(t, out.TodayMenu)
	assert.Equal(t, "2024-11-13", out.PayloadDate)
}

func TestParseRSSFeedDateFromGuid(t *testing.T) {
	raw := `<rss><channel><item>
		<title>Viikon lounas</title>
		<guid>lounas 13.11.2024</guid>
		<description><p>Keitto</p></description>
	</item></channel></rss>`
	out := ParseRSSFeed(raw, "2024-11-13", rssRestaurant)

	require.NotNil(t, out.TodayMenu)
	assert.Equal(t, "2024-11-13", out.PayloadDate)
}

func TestParseRSSFeedInvalidCalendarDate(t *testing.T) {
	raw := `<rss><channel><item>
		<title>Lounaslista 32.11.2024</title>
		<description><p>Keitto</p></description>
	</item></channel></rss>`
	out := ParseRSSFeed(raw, "2024-11-13", rssRestaurant)

	require.True(t, out.OK)
	assert.Nil(t, out.TodayMenu)
	assert.Empty(t, out.PayloadDate)
}

func TestParseRSSFeedFallsBackToCatalogIdentity(t *testing.T) {
	raw := `<rss><channel><item>
		<title>Lounaslista 13.11.2024</title>
		<description><p>Keitto</p></description>
	</item></channel></rss>`
	out := ParseRSSFeed(raw, "2024-11-13", rssRestaurant)

	assert.Equal(t, "Canthia", out.RestaurantName)
	assert.Equal(t, "https://example.test/canthia", out.RestaurantURL)
}

func TestParseRSSFeedNoParagraphsUsesWholeDescription(t *testing.T) {
	raw := `<rss><channel><item>
		<title>Lounaslista 13.11.2024</title>
		<description>Hernekeitto ja &amp;pannukakku</description>
	</item></channel></rss>`
	out := ParseRSSFeed(raw, "2024-11-13", rssRestaurant)

	require.NotNil(t, out.TodayMenu)
	require.Len(t, out.TodayMenu.Groups, 1)
	assert.Equal(t, []string{"Hernekeitto ja &pannukakku"}, out.TodayMenu.Groups[0].Components)
}

func TestParseRSSFeedNoItem(t *testing.T) {
	out := ParseRSSFeed(`<rss><channel><title>empty</title></channel></rss>`, "2024-11-13", rssRestaurant)

	assert.False(t, out.OK)
	assert.Contains(t, out.ErrorMessage, "no item")
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Dotted", "Lounaslista 13.11.2024", "2024-11-13"},
		{"Dashed", "3-1-2025 lounas", "2025-01-03"},
		{"Slashed two-digit year", "menu 5/2/25", "2025-02-05"},
		{"Day out of range", "32.11.2024", ""},
		{"Month out of range", "13.13.2024", ""},
		{"No date", "Viikon lounas", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseFlexibleDate(tt.input))
		})
	}
}
