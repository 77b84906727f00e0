package textnorm

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PriceClass classifies one price segment of a provider price string.
type PriceClass int

const (
	// PriceStudent is the subsidized student price.
	PriceStudent PriceClass = iota
	// PriceStaff is the staff price.
	PriceStaff
	// PriceGuest is the unclassified or visitor price.
	PriceGuest
)

// String returns the display name of the price class.
func (c PriceClass) String() string {
	switch c {
	case PriceStudent:
		return "Student"
	case PriceStaff:
		return "Staff"
	}
	return "Guest"
}

// PriceSegment is one price class extracted from a provider price
// string. Text keeps the raw segment; Value holds the parsed decimal
// when HasValue is true.
type PriceSegment struct {
	Class    PriceClass
	Text     string
	Value    float64
	HasValue bool
}

// priceLabels maps lower-cased label words to their price class, in
// both feed languages.
var priceLabels = []struct {
	word  string
	class PriceClass
}{
	{"opiskelija", PriceStudent},
	{"opisk", PriceStudent},
	{"student", PriceStudent},
	{"henkilökunta", PriceStaff},
	{"henkilokunta", PriceStaff},
	{"staff", PriceStaff},
	{"vierailija", PriceGuest},
	{"vieras", PriceGuest},
	{"guest", PriceGuest},
}

var numberRunRe = regexp.MustCompile(`[0-9][0-9,.]*`)

// SegmentPrices splits a provider price string into classified
// segments. Splitting first tries "/" separators; when that yields a
// single segment the string is sliced at the start offset of each
// recognized label word instead. Segments with no label default to
// Guest.
func SegmentPrices(price string) []PriceSegment {
	text := NormalizeText(price)
	if text == "" {
		return nil
	}

	parts := strings.Split(text, "/")
	if len(parts) == 1 {
		parts = splitAtLabels(text)
	}

	var segments []PriceSegment
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		seg := PriceSegment{Class: classify(part), Text: part}
		seg.Value, seg.HasValue = lastNumber(part)
		segments = append(segments, seg)
	}
	return segments
}

// splitAtLabels slices text at the word-boundary start offset of every
// recognized label word. Without any label the whole string is one
// segment.
func splitAtLabels(text string) []string {
	lower := strings.ToLower(text)
	offsetSet := map[int]struct{}{}
	for _, label := range priceLabels {
		for from := 0; ; {
			idx := strings.Index(lower[from:], label.word)
			if idx < 0 {
				break
			}
			at := from + idx
			if wordStart(lower, at) {
				offsetSet[at] = struct{}{}
			}
			from = at + len(label.word)
		}
	}
	if len(offsetSet) == 0 {
		return []string{text}
	}

	offsets := make([]int, 0, len(offsetSet))
	for off := range offsetSet {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)

	var parts []string
	for i, off := range offsets {
		end := len(text)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		parts = append(parts, text[off:end])
	}
	return parts
}

// wordStart reports whether the byte offset does not fall inside a
// longer alphabetic token.
func wordStart(s string, at int) bool {
	if at == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:at])
	return !unicode.IsLetter(r)
}

func classify(segment string) PriceClass {
	lower := strings.ToLower(segment)
	for _, label := range priceLabels {
		if strings.Contains(lower, label.word) {
			return label.class
		}
	}
	return PriceGuest
}

// lastNumber extracts the last digit/comma/period run of the segment,
// normalizes the decimal comma and trims stray trailing periods.
func lastNumber(segment string) (float64, bool) {
	runs := numberRunRe.FindAllString(segment, -1)
	if len(runs) == 0 {
		return 0, false
	}
	raw := strings.ReplaceAll(runs[len(runs)-1], ",", ".")
	raw = strings.TrimRight(raw, ".")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
