// Package ui implements the postdeck terminal interface with Bubble Tea.
//
// # Layout
//
//	┌ header: postdeck  host  10 posts  [COMPOSE|EDIT #7]  loaded 3s  error ┐
//	│ command bar: key hints for the focused pane, theme name               │
//	├ Posts ────────────────────────────────────────────────────────────────┤
//	│ > #1   sunt aut facere repellat                                       │
//	│ * #7   magnam facilis autem        (* marks the post being edited)    │
//	├ Create New Post / Edit Post #7 ───────────────────────────────────────┤
//	│ Title  [textinput]                                                    │
//	│ Body   [textarea]                                                     │
//	└───────────────────────────────────────────────────────────────────────┘
//
// The activity view (l) replaces both boxes with a scrollable viewport over
// the tail of postdeck's own log file.
//
// # Data Flow
//
// The model never owns posts or drafts. It renders collection.Snapshot and
// workflow.State and calls workflow commands:
//
//   - Local transitions (select, cancel, field edits) run inline in Update.
//   - Remote commands (load, create, update, delete) run as tea.Cmds with a
//     bounded context and report back as commandDoneMsg.
//   - Both the store and the workflow publish change events; a waiting
//     command turns each into a message that triggers a re-read.
//
// The form is reseeded from the workflow draft whenever the two differ, so a
// mode switch or a reset after a successful save shows up immediately.
//
// # Focus and Keys
//
// With the list focused, single letters are commands (n, e, d, r, l, T, ?).
// With the title or body focused, keys are text; only ctrl+s, tab,
// shift+tab and esc are intercepted. ctrl+c always quits.
//
// esc cancels an edit in either pane. On the list it also dismisses the last
// error; a compose draft is never discarded by esc.
//
// # Themes
//
// Nightfox, Kanagawa and Slate. T cycles and persists the choice to
// prefs.toml.
package ui
