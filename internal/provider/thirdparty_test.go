package provider

import (
	"testing"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var huomenRestaurant = catalog.Restaurant{
	Code:     "huomen-bioteknia",
	Name:     "Huomen Bioteknia",
	Provider: menu.ThirdPartyJSON,
	APIBase:  "https://api.example.test",
	URL:      "https://example.test/bioteknia",
}

const huomenWeek = `{
	"success": true,
	"data": {
		"location": {"name": {"fi": "Huomen Bioteknia", "en": "Huomen Bioteknia Restaurant"}},
		"week": {
			"days": [
				{
					"dateString": "2024-11-12",
					"isClosed": false,
					"lunches": [{"title": {"fi": "Hernekeitto"}, "allergens": []}]
				},
				{
					"dateString": "2024-11-13",
					"isClosed": false,
					"lunches": [
						{
							"title": {"fi": "Uunilohi", "en": "Baked salmon"},
							"description": {"fi": "perunamuusilla", "en": "with mashed potatoes"},
							"allergens": [
								{"abbreviation": "L"},
								{"abbreviation": {"fi": "G"}},
								{"abbreviation": "l"}
							]
						},
						{
							"title": "Kasviskeitto",
							"description": "Kasviskeitto",
							"allergens": [{"abbreviation": "veg"}]
						}
					]
				}
			]
		}
	}
}`

func TestParseThirdPartyJSONToday(t *testing.T) {
	out := ParseThirdPartyJSON(huomenWeek, "2024-11-13", "en", huomenRestaurant)

	require.True(t, out.OK)
	require.NotNil(t, out.TodayMenu)
	assert.Equal(t, "2024-11-13", out.PayloadDate)
	assert.Equal(t, "Huomen Bioteknia Restaurant", out.RestaurantName)
	assert.Equal(t, "https://example.test/bioteknia", out.RestaurantURL)

	require.Len(t, out.TodayMenu.Groups, 1)
	components := out.TodayMenu.Groups[0].Components
	require.Len(t, components, 2)
	assert.Equal(t, "Baked salmon - with mashed potatoes (L, G)", components[0])
	// Description equal to the title is not repeated; "veg" canonicalizes.
	assert.Equal(t, "Kasviskeitto (Veg)", components[1])
}

func TestParseThirdPartyJSONOtherDayKeepsLatestDate(t *testing.T) {
	out := ParseThirdPartyJSON(huomenWeek, "2024-11-20", "fi", huomenRestaurant)

	require.True(t, out.OK)
	assert.Nil(t, out.TodayMenu)
	assert.Equal(t, "2024-11-13", out.PayloadDate)
}

func TestParseThirdPartyJSONClosedDay(t *testing.T) {
	raw := `{
		"success": true,
		"data": {"week": {"days": [
			{"dateString": "2024-11-13", "isClosed": true,
			 "lunches": [{"title": "Keitto"}]}
		]}}
	}`
	out := ParseThirdPartyJSON(raw, "2024-11-13", "fi", huomenRestaurant)

	require.True(t, out.OK)
	assert.Nil(t, out.TodayMenu)
	assert.Equal(t, "2024-11-13", out.PayloadDate)
	assert.Equal(t, "Huomen Bioteknia", out.RestaurantName)
}

func TestParseThirdPartyJSONProviderFailure(t *testing.T) {
	raw := `{"success": false, "message": {"fi": "Ei listaa", "en": "No menu"}}`
	out := ParseThirdPartyJSON(raw, "2024-11-13", "en", huomenRestaurant)

	assert.False(t, out.OK)
	assert.Equal(t, "No menu", out.ErrorMessage)
	assert.Nil(t, out.TodayMenu)
}

func TestParseThirdPartyJSONMalformed(t *testing.T) {
	out := ParseThirdPartyJSON(`{"data":`, "2024-11-13", "fi", huomenRestaurant)

	assert.False(t, out.OK)
	assert.Contains(t, out.ErrorMessage, "parse error")
}
