package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the
	// API host and refresh time.
	LayoutCompactWidth = 80
)

// Pane sizing.
const (
	// FormHeight is the outer height of the compose/edit form box.
	FormHeight = 11

	// MinListHeight keeps at least a few rows of the list visible.
	MinListHeight = 5

	// ChromeHeight is the header plus command bar.
	ChromeHeight = 2
)

// Activity view limits.
const (
	// ActivityLineLimit is the number of log lines read for the activity view.
	ActivityLineLimit = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// CommandTimeout bounds a single remote command started from the UI.
	CommandTimeout = 30 * time.Second

	// FlashDuration is how long a success message stays in the header.
	FlashDuration = 4 * time.Second
)
