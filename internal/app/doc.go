// Package app is the composition root for postdeck.
//
// Run wires the pieces together in order:
//
//	config.Load()            ~/.config/postdeck/config.toml + env overrides
//	logging.New()            JSON log file (zerolog)
//	prefs.Load()             theme and delete confirmation
//	remote.NewClient()       HTTP client for the /posts service
//	collection.NewStore()    local ordered post list
//	workflow.New()           compose/edit state machine
//	StartPoller()            optional auto-reload (refresh_interval > 0)
//	ui.Run()                 Bubble Tea program (blocks)
//
// # Auto-reload
//
// When refresh_interval is set, StartPoller calls Workflow.Load on a fixed
// ticker. A failed reload keeps the previous collection and is logged; the
// error shows in the header and the next tick tries again. A reload replaces
// the list wholesale, so it is disabled by default.
//
// # Errors
//
// Run returns configuration, logging, and client construction failures.
// Remote failures after startup never stop the program; they surface in the
// header through the workflow's last error.
package app
