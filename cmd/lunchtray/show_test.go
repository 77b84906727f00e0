package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/refresh"
	"github.com/jonathan/lunch-tray/internal/settings"
)

func TestPrintStateOK(t *testing.T) {
	var buf bytes.Buffer
	state := refresh.DisplayState{
		Status:         refresh.StatusOK,
		RestaurantName: "Snellmania",
		TodayMenu: &menu.TodayMenu{
			DateISO:   "2024-11-20",
			LunchTime: "10:30-14:00",
			Groups: []menu.MenuGroup{
				{Name: "Lounas", Price: "Opiskelija 3,95", Components: []string{"Tofu curry (A, L)"}},
			},
		},
	}

	printState(&buf, state, settings.Default())

	out := buf.String()
	assert.Contains(t, out, "Snellmania")
	assert.Contains(t, out, "20.11.2024 10:30-14:00")
	assert.Contains(t, out, "Tofu curry (A, L)")
	assert.NotContains(t, out, "3,95", "prices stay hidden until enabled")
}

func TestPrintStateStaleNotices(t *testing.T) {
	var buf bytes.Buffer
	state := refresh.DisplayState{
		Status:         refresh.StatusStale,
		RestaurantName: "Snellmania",
		NetworkError:   true,
		StaleDateISO:   "2024-11-19",
		TodayMenu: &menu.TodayMenu{
			DateISO: "2024-11-19",
			Groups:  []menu.MenuGroup{{Name: "Lounas", Components: []string{"Hernekeitto"}}},
		},
	}
	s := settings.Default()
	s.Language = "en"

	printState(&buf, state, s)

	out := buf.String()
	assert.Contains(t, out, "Hernekeitto")
	assert.Contains(t, out, "Offline. Showing last cached menu")
	assert.Contains(t, out, "11/19/2024")
}

func TestPrintStateError(t *testing.T) {
	var buf bytes.Buffer
	state := refresh.DisplayState{
		Status:       refresh.StatusError,
		ErrorMessage: "connection refused",
	}
	s := settings.Default()
	s.Language = "en"

	printState(&buf, state, s)

	assert.Contains(t, buf.String(), "Fetch error: connection refused")
}
