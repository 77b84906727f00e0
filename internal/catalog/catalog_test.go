package catalog

import (
	"testing"

	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrderIsStable(t *testing.T) {
	base := List(false)
	require.NotEmpty(t, base)
	assert.Equal(t, "0437", base[0].Code)

	withOptional := List(true)
	require.Greater(t, len(withOptional), len(base))
	for i, r := range base {
		assert.Equal(t, r.Code, withOptional[i].Code, "optional group must append, not reorder")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name            string
		code            string
		includeOptional bool
		expectedCode    string
	}{
		{"Known campus code", "0439", false, "0439"},
		{"Unknown code falls back to default", "no-such-code", false, "0437"},
		{"Optional code without flag falls back", "antell-highway", false, "0437"},
		{"Optional code with flag", "antell-highway", true, "antell-highway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Lookup(tt.code, tt.includeOptional)
			assert.Equal(t, tt.expectedCode, r.Code)
		})
	}
}

func TestLookupProviderParams(t *testing.T) {
	antell := Lookup("antell-round", true)
	assert.Equal(t, menu.HTMLScrape, antell.Provider)
	assert.Equal(t, "round", antell.Slug)

	huomen := Lookup("huomen-bioteknia", false)
	assert.Equal(t, menu.ThirdPartyJSON, huomen.Provider)
	assert.NotEmpty(t, huomen.APIBase)
}

func TestCycleWraps(t *testing.T) {
	list := List(true)
	first := list[0]
	last := list[len(list)-1]

	assert.Equal(t, list[1].Code, Cycle(first.Code, 1, true).Code)
	assert.Equal(t, last.Code, Cycle(first.Code, -1, true).Code)
	assert.Equal(t, first.Code, Cycle(last.Code, 1, true).Code)
}

func TestIsOptional(t *testing.T) {
	assert.True(t, IsOptional("antell-highway"))
	assert.False(t, IsOptional("0437"))
}
