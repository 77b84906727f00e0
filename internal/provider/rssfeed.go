package provider

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"time"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/textnorm"
)

// The RSS feed is extracted with tag-bounded patterns instead of an XML
// parser: the payload is the only RSS shape consumed and a general
// parser is a non-goal. Patterns are case-insensitive, non-greedy and
// tolerate attributes on the opening tag.
var (
	channelRe   = regexp.MustCompile(`(?is)<channel(?:\s[^>]*)?>(.*?)</channel>`)
	itemRe      = regexp.MustCompile(`(?is)<item(?:\s[^>]*)?>(.*?)</item>`)
	paragraphRe = regexp.MustCompile(`(?is)<p(?:\s[^>]*)?>(.*?)</p>`)
	anyTagRe    = regexp.MustCompile(`(?s)<[^>]*>`)

	// rssDateRe matches D[-./]M[-./]Y with a 2- or 4-digit year.
	rssDateRe = regexp.MustCompile(`(\d{1,2})[-./](\d{1,2})[-./](\d{2,4})`)
)

func tagInner(block, tag string) string {
	re := regexp.MustCompile(`(?is)<` + tag + `(?:\s[^>]*)?>(.*?)</` + tag + `>`)
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseRSSFeed parses the weekly RSS feed. The first item of the first
// channel is the only entry considered, and it counts as today's menu
// only when the date parsed from its title (or guid) equals todayISO.
func ParseRSSFeed(raw string, todayISO string, r catalog.Restaurant) *menu.FetchOutcome {
	scope := raw
	if m := channelRe.FindStringSubmatch(raw); m != nil {
		scope = m[1]
	}
	itemMatch := itemRe.FindStringSubmatch(scope)
	if itemMatch == nil {
		return failure(menu.RSSFeed, (&ParseError{Message: "no item element in feed"}).Error(), raw)
	}
	item := itemMatch[1]

	title := cleanMarkup(tagInner(item, "title"))
	guid := cleanMarkup(tagInner(item, "guid"))
	link := cleanMarkup(tagInner(item, "link"))
	description := tagInner(item, "description")

	itemDate := parseFlexibleDate(title)
	if rssDateRe.FindString(title) == "" {
		itemDate = parseFlexibleDate(guid)
	}

	// The channel's own title, not the item's: search with the item
	// blocks cut out so a title-less channel falls back to the catalog.
	name := cleanMarkup(tagInner(itemRe.ReplaceAllString(scope, ""), "title"))
	if name == "" {
		name = r.Name
	}
	url := link
	if url == "" {
		url = r.URL
	}

	var today *menu.TodayMenu
	if itemDate != "" && itemDate == todayISO {
		today = &menu.TodayMenu{
			DateISO: todayISO,
			Groups:  descriptionGroups(title, description),
		}
	}

	return &menu.FetchOutcome{
		OK:             true,
		TodayMenu:      today,
		RestaurantName: name,
		RestaurantURL:  url,
		Provider:       menu.RSSFeed,
		RawPayload:     raw,
		PayloadDate:    itemDate,
	}
}

// descriptionGroups builds the single menu group of an RSS entry from
// the HTML paragraphs of its description, falling back to the whole
// stripped description when no paragraph matches. Each line runs
// through the loose allergen normalizer.
func descriptionGroups(title, description string) []menu.MenuGroup {
	var lines []string
	for _, m := range paragraphRe.FindAllStringSubmatch(description, -1) {
		if line := cleanMarkup(m[1]); line != "" {
			lines = append(lines, textnorm.AppendLooseAllergenSuffix(line))
		}
	}
	if len(lines) == 0 {
		if whole := cleanMarkup(description); whole != "" {
			lines = append(lines, textnorm.AppendLooseAllergenSuffix(whole))
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return []menu.MenuGroup{{Name: title, Components: lines}}
}

// cleanMarkup strips any remaining tags, decodes HTML entities and
// normalizes whitespace.
func cleanMarkup(s string) string {
	return textnorm.NormalizeText(html.UnescapeString(anyTagRe.ReplaceAllString(s, " ")))
}

// parseFlexibleDate extracts a D[-./]M[-./]Y date from free text and
// returns it as YYYY-MM-DD. A 2-digit year means 2000+Y. Candidates
// that do not form a real calendar date yield an empty string.
func parseFlexibleDate(text string) string {
	m := rssDateRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	if !validCalendarDate(year, month, day) {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// validCalendarDate rejects candidates like day 32 or month 13 by
// checking that constructing the date does not normalize it away.
func validCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
