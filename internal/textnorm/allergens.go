package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// allergenAbbrevs is the fixed set of multi-letter allergen codes the
// providers use, keyed by lower case with the canonical casing as value.
var allergenAbbrevs = map[string]string{
	"veg": "Veg",
	"vs":  "VS",
	"ilm": "ILM",
}

// IsAllergenToken reports whether s is a single allergen token: a
// literal "*", a single uppercase letter, or one of the fixed
// abbreviations (case-insensitive).
func IsAllergenToken(s string) bool {
	if s == "*" {
		return true
	}
	if r, size := utf8.DecodeRuneInString(s); size == len(s) && unicode.IsUpper(r) {
		return true
	}
	_, ok := allergenAbbrevs[strings.ToLower(s)]
	return ok
}

// CanonicalAllergenToken returns the canonical casing for a qualifying
// token. Abbreviations map to their fixed form; anything else is
// returned unchanged.
func CanonicalAllergenToken(s string) string {
	if canonical, ok := allergenAbbrevs[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

// SplitComponentSuffix separates an optional trailing allergen group
// from one dish line, returning the main text and the suffix formatted
// as "(A, B, …)" (empty when no group was recognized).
//
// A trailing parenthesized group is peeled first; when none is present
// or it does not qualify, an inline form is attempted: trailing
// comma-separated tokens are peeled, then single trailing
// space-delimited tokens. A disqualifying token inside a parenthesized
// group stops the parenthesized attempt. Tokens are de-duplicated
// case-insensitively, preserving first-seen casing and order.
func SplitComponentSuffix(component string) (string, string) {
	text := NormalizeText(component)
	if text == "" {
		return "", ""
	}

	if main, tokens, ok := peelParenGroups(text); ok {
		return main, formatSuffix(tokens)
	}

	main, tokens := peelInlineTokens(text)
	if len(tokens) == 0 {
		return text, ""
	}
	return main, formatSuffix(tokens)
}

// peelParenGroups strips well-formed trailing "(...)" groups whose
// contents are all allergen tokens. ok is false when no group could be
// stripped, signalling the inline fallback.
func peelParenGroups(text string) (main string, tokens []string, ok bool) {
	main = text
	for strings.HasSuffix(main, ")") {
		open := matchingOpen(main)
		if open < 0 {
			break
		}
		inner := main[open+1 : len(main)-1]
		groupTokens := splitTokens(inner)
		if len(groupTokens) == 0 || !allTokens(groupTokens) {
			break
		}
		// Groups are stripped right to left; prepend to keep reading order.
		tokens = append(groupTokens, tokens...)
		main = strings.TrimSpace(main[:open])
	}
	if len(tokens) == 0 || main == "" {
		return "", nil, false
	}
	return NormalizeText(main), tokens, true
}

// matchingOpen finds the index of the "(" that balances the final ")",
// or -1 when the parentheses are unbalanced.
func matchingOpen(s string) int {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// peelInlineTokens handles allergen tokens written without parentheses:
// first trailing comma-separated parts, then single trailing
// space-delimited words of the remaining main text.
func peelInlineTokens(text string) (string, []string) {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var tokens []string
	end := len(parts)
	for end > 1 && IsAllergenToken(parts[end-1]) {
		tokens = append([]string{parts[end-1]}, tokens...)
		end--
	}

	fields := strings.Fields(strings.Join(parts[:end], ", "))
	for len(fields) > 1 && IsAllergenToken(fields[len(fields)-1]) {
		tokens = append([]string{fields[len(fields)-1]}, tokens...)
		fields = fields[:len(fields)-1]
	}

	return strings.Join(fields, " "), tokens
}

// splitTokens splits the inside of a parenthesized group on commas and
// whitespace, dropping empty segments.
func splitTokens(inner string) []string {
	return strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func allTokens(tokens []string) bool {
	for _, tok := range tokens {
		if !IsAllergenToken(tok) {
			return false
		}
	}
	return true
}

// formatSuffix canonicalizes and de-duplicates tokens into "(A, B, …)".
func formatSuffix(tokens []string) string {
	var (
		out  []string
		seen = map[string]struct{}{}
	)
	for _, tok := range tokens {
		canonical := CanonicalAllergenToken(tok)
		key := strings.ToLower(canonical)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, canonical)
	}
	return "(" + strings.Join(out, ", ") + ")"
}

// AppendLooseAllergenSuffix applies the loose comma/space-delimited
// variant used for feed description lines: when a line has at least two
// comma-separated segments and a contiguous run of trailing segments
// consists entirely of allergen tokens, those segments are trimmed off
// and re-attached as a "(A, B, …)" suffix. Otherwise the line is
// returned untouched.
func AppendLooseAllergenSuffix(line string) string {
	text := NormalizeText(line)
	segments := strings.Split(text, ",")
	if len(segments) < 2 {
		return text
	}
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	start := len(segments)
	for start > 1 {
		fields := strings.Fields(segments[start-1])
		if len(fields) == 0 || !allTokens(fields) {
			break
		}
		start--
	}
	if start == len(segments) {
		return text
	}

	var tokens []string
	for _, seg := range segments[start:] {
		tokens = append(tokens, strings.Fields(seg)...)
	}
	main := strings.Join(segments[:start], ", ")
	return NormalizeText(main) + " " + formatSuffix(tokens)
}
