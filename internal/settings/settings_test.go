package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "settings.json"))
	assert.Equal(t, Default(), s)
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"restaurant_code": "0439"}`), 0o644))

	s := Load(path)
	assert.Equal(t, "0439", s.RestaurantCode)
	assert.Equal(t, "fi", s.Language)
	assert.Equal(t, 1440, s.RefreshMinutes)
	assert.True(t, s.ShowAllergens)
}

func TestLoadCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"language": `), 0o644))

	assert.Equal(t, Default(), Load(path))
}

func TestLoadInvalidValuesUseDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"restaurant_code": "0437", "language": "sv"}`), 0o644))

	assert.Equal(t, Default(), Load(path))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s := Default()
	s.RestaurantCode = "antell-round"
	s.Language = "en"
	s.IncludeAntell = true
	require.NoError(t, Save(path, s))

	assert.Equal(t, s, Load(path))
}

func TestValidate(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	s.RefreshMinutes = -1
	assert.Error(t, s.Validate())

	s = Default()
	s.Language = "de"
	assert.Error(t, s.Validate())
}
