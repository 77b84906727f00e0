// Package render formats the canonical menu model for display: date
// lines, group headings with price-class filtering and component lines
// with optional allergen suffixes.
package render

import (
	"fmt"
	"strings"

	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/settings"
	"github.com/jonathan/lunch-tray/internal/textnorm"
)

// FormatDisplayDate renders an ISO date in the language's customary
// order: d.m.yyyy for Finnish, m/d/yyyy otherwise. Inputs that are not
// ISO dates are returned normalized but otherwise untouched.
func FormatDisplayDate(dateISO, language string) string {
	iso := textnorm.NormalizeText(dateISO)
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	year, month, day := parts[0], strings.TrimLeft(parts[1], "0"), strings.TrimLeft(parts[2], "0")
	if month == "" || day == "" {
		return iso
	}
	if language == "fi" {
		return fmt.Sprintf("%s.%s.%s", day, month, year)
	}
	return fmt.Sprintf("%s/%s/%s", month, day, year)
}

// DateAndTimeLine combines the menu's display date and lunch time.
func DateAndTimeLine(m *menu.TodayMenu, language string) string {
	if m == nil {
		return ""
	}
	date := FormatDisplayDate(m.DateISO, language)
	lunch := textnorm.NormalizeText(m.LunchTime)
	switch {
	case date != "" && lunch != "":
		return date + " " + lunch
	case date != "":
		return date
	default:
		return lunch
	}
}

// PriceLine renders a group's price string with the enabled price
// classes only. It returns the empty string when prices are hidden or
// every segment is filtered out.
func PriceLine(price string, s settings.Settings) string {
	if !s.ShowPrices {
		return ""
	}
	var kept []string
	for _, seg := range textnorm.SegmentPrices(price) {
		if priceClassEnabled(seg.Class, s) {
			kept = append(kept, seg.Text)
		}
	}
	return strings.Join(kept, " / ")
}

func priceClassEnabled(class textnorm.PriceClass, s settings.Settings) bool {
	switch class {
	case textnorm.PriceStudent:
		return s.ShowStudentPrice
	case textnorm.PriceStaff:
		return s.ShowStaffPrice
	default:
		return s.ShowGuestPrice
	}
}

// MenuHeading renders a group heading, appending the filtered price
// when one remains. A group with no name is headed "Menu".
func MenuHeading(g menu.MenuGroup, s settings.Settings) string {
	heading := textnorm.NormalizeText(g.Name)
	if heading == "" {
		heading = "Menu"
	}
	if price := PriceLine(g.Price, s); price != "" {
		return heading + " - " + price
	}
	return heading
}

// ComponentLine renders one dish line, keeping or dropping the allergen
// suffix per the display toggle.
func ComponentLine(component string, showAllergens bool) string {
	main, suffix := textnorm.SplitComponentSuffix(component)
	if showAllergens && suffix != "" {
		return main + " " + suffix
	}
	return main
}

// UIText returns the fixed user-facing strings for the two supported
// languages.
func UIText(language, key string) string {
	table := uiTextEN
	if language == "fi" {
		table = uiTextFI
	}
	if text, ok := table[key]; ok {
		return text
	}
	return key
}

var uiTextFI = map[string]string{
	"loading":    "Ladataan ruokalistaa...",
	"noMenu":     "Tälle päivälle ei ole lounaslistaa.",
	"stale":      "Ei verkkoyhteyttä. Näytetään viimeisin tallennettu lista",
	"staleDate":  "Lista on eri päivältä kuin tänään",
	"fetchError": "Päivitysvirhe",
}

var uiTextEN = map[string]string{
	"loading":    "Loading menu...",
	"noMenu":     "No lunch menu available for today.",
	"stale":      "Offline. Showing last cached menu",
	"staleDate":  "Menu is for a different day than today",
	"fetchError": "Fetch error",
}
