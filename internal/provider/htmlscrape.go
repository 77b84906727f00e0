package provider

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/textnorm"
)

// ParseHTMLScrape parses the printable lunch page. The page carries no
// date of its own: it is requested with an explicit day-of-week query
// parameter, so the caller's todayISO is used directly as the menu date
// and cache freshness is tracked from storage time instead.
func ParseHTMLScrape(raw string, todayISO string, r catalog.Restaurant) *menu.FetchOutcome {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return failure(menu.HTMLScrape, (&ParseError{Message: "unparseable HTML", Cause: err}).Error(), raw)
	}

	var groups []menu.MenuGroup
	doc.Find("section.menu-section").Each(func(_ int, section *goquery.Selection) {
		var components []string
		section.Find("ul.menu-list > li").Each(func(_ int, li *goquery.Selection) {
			if text := textnorm.NormalizeText(li.Text()); text != "" {
				components = append(components, text)
			}
		})
		if len(components) == 0 {
			return
		}

		name := textnorm.NormalizeText(section.Find("h2.menu-title").First().Text())
		if name == "" {
			name = "Menu"
		}
		price := textnorm.NormalizeText(section.Find("h2.menu-price").First().Text())

		groups = append(groups, menu.MenuGroup{
			Name:       name,
			Price:      price,
			Components: components,
		})
	})

	return &menu.FetchOutcome{
		OK:             true,
		TodayMenu:      &menu.TodayMenu{DateISO: todayISO, Groups: groups},
		RestaurantName: r.Name,
		RestaurantURL:  r.URL,
		Provider:       menu.HTMLScrape,
		RawPayload:     raw,
		PayloadDate:    todayISO,
	}
}
