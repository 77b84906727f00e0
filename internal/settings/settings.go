// Package settings loads and saves the user settings file. The
// controller reads these values; everything here is plain JSON with
// best-effort backward-compatible defaulting for missing fields.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Settings holds the persisted user preferences.
type Settings struct {
	RestaurantCode string `json:"restaurant_code" validate:"required"`
	Language       string `json:"language" validate:"oneof=fi en"`
	RefreshMinutes int    `json:"refresh_minutes" validate:"gte=0"`

	ShowPrices       bool `json:"show_prices"`
	ShowAllergens    bool `json:"show_allergens"`
	ShowStudentPrice bool `json:"show_student_price"`
	ShowStaffPrice   bool `json:"show_staff_price"`
	ShowGuestPrice   bool `json:"show_guest_price"`

	// IncludeAntell enables the optional restaurant group.
	IncludeAntell bool `json:"include_antell_restaurants"`

	LastUpdatedEpochMS int64 `json:"last_updated_epoch_ms"`
}

// Default returns the settings used on first run and as the base for
// files with missing fields.
func Default() Settings {
	return Settings{
		RestaurantCode:   "0437",
		Language:         "fi",
		RefreshMinutes:   1440,
		ShowAllergens:    true,
		ShowStudentPrice: true,
		ShowStaffPrice:   true,
		ShowGuestPrice:   true,
	}
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "lunch-tray", "settings.json"), nil
}

// Load reads settings from path. A missing or unreadable file yields
// the defaults; fields absent from the file keep their default values.
func Load(path string) Settings {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Default()
	}
	if err := s.Validate(); err != nil {
		return Default()
	}
	return s
}

// Save writes settings to path, creating the directory as needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings against their struct constraints.
func (s *Settings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
