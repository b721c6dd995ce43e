// Package logtail reads postdeck's own log file back for the activity view.
//
// # Overview
//
// postdeck logs zerolog JSON lines to a file. This package extracts the last
// N lines without loading the whole file and decodes them into Entry values
// the UI can style.
//
// # Reading
//
// Read uses a ring buffer of maxLines strings, so memory stays bounded no
// matter how large the file grows. A missing file yields no lines and no
// error, which is the normal state before the first log write.
//
// # Parsing
//
//	{"level":"warn","component":"workflow","id":7,"message":"command failed"}
//	→ Entry{Level: "warn", Component: "workflow", Message: "command failed",
//	        Fields: {"id": "7"}}
//
// time, level, message, component and error map to struct fields. caller,
// pid and git_revision are dropped from Fields. Non-JSON lines (for example
// a crash trace) are kept verbatim as the Message.
package logtail
