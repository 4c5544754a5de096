package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	frameIntervalMS = 100
	inputCharLimit  = 50
	laneMinHeight   = 5
	defaultWidth    = 80
	defaultHeight   = 24
	presetListWidth = 60
	presetListRows  = 10

	// headerLines covers the title, subtitle, countdown, progress and spacer
	// lines above the comment lanes. Keep in sync with View.
	headerLines = 7
	// footerLines covers the toast, input and footer lines below the lanes.
	footerLines = 4
	// titleRow is the screen row of the clickable title.
	titleRow = 0

	frameInterval = time.Duration(frameIntervalMS) * time.Millisecond
)
