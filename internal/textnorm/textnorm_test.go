package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", ""},
		{"Already clean", "a b c", "a b c"},
		{"Collapses runs", "a\n\n  b\t c", "a b c"},
		{"Trims edges", "  kala keitto  ", "kala keitto"},
		{"Only whitespace", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	input := "  Lohikeitto \n ja  leipä "
	once := NormalizeText(input)
	assert.Equal(t, once, NormalizeText(once))
}

func TestSplitComponentSuffix(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantMain   string
		wantSuffix string
	}{
		{"No allergens", "Cheese platter", "Cheese platter", ""},
		{"Parenthesized group", "Lohikeitto (L, G)", "Lohikeitto", "(L, G)"},
		{"Two trailing groups", "Kasvispihvit (Veg) (G, L)", "Kasvispihvit", "(Veg, G, L)"},
		{"Inline comma tokens", "Tofu curry A, ILM, L, Veg", "Tofu curry", "(A, ILM, L, Veg)"},
		{"Inline lowercase veg canonicalized", "Punajuurisalaatti, veg", "Punajuurisalaatti", "(Veg)"},
		{"Bare trailing star", "Päivän keitto *", "Päivän keitto", "(*)"},
		{"Disqualified group kept verbatim", "Pasta (bolognese)", "Pasta (bolognese)", ""},
		{"Qualified group after plain parens", "Pasta (bolognese) (L, G)", "Pasta (bolognese)", "(L, G)"},
		{"Empty group ignored", "Keitto ()", "Keitto ()", ""},
		{"Duplicates dropped case-insensitively", "Salaatti (G, VEG, Veg)", "Salaatti", "(G, Veg)"},
		{"Whitespace collapsed first", "  Uunilohi   (M, G) ", "Uunilohi", "(M, G)"},
		{"Empty input", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main, suffix := SplitComponentSuffix(tt.input)
			assert.Equal(t, tt.wantMain, main)
			assert.Equal(t, tt.wantSuffix, suffix)
		})
	}
}

func TestIsAllergenToken(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"*", true},
		{"G", true},
		{"L", true},
		{"Veg", true},
		{"VEG", true},
		{"vs", true},
		{"ilm", true},
		{"g", false},
		{"GL", false},
		{"kala", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAllergenToken(tt.input))
		})
	}
}

func TestAppendLooseAllergenSuffix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Trailing tokens peeled", "Jauhelihakeitto, L, G", "Jauhelihakeitto (L, G)"},
		{"Vendor codes canonicalized", "Kasvischili, veg, ilm", "Kasvischili (Veg, ILM)"},
		{"Space-delimited segment", "Broileripasta, L G", "Broileripasta (L, G)"},
		{"Single segment untouched", "Hernekeitto L", "Hernekeitto L"},
		{"Non-token tail untouched", "Keitto, leipä", "Keitto, leipä"},
		{"All segments tokens keeps head", "G, L", "G (L)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AppendLooseAllergenSuffix(tt.input))
		})
	}
}
