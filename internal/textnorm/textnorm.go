// Package textnorm provides the text normalization primitives shared by
// every provider parser and by rendering: whitespace collapsing,
// allergen-suffix extraction and price-string segmentation.
package textnorm

import "strings"

// NormalizeText collapses any run of whitespace (including newlines) to
// a single space and trims the result. It is idempotent.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
