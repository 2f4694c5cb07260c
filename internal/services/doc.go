// Package services defines the shared error taxonomy and context plumbing
// used by every pipeline stage.
//
// Stage code wraps concrete failures with the sentinel markers exported here
// so the orchestrator and CLI can classify outcomes with errors.Is instead of
// inspecting message text. The context helpers carry stage names and run
// identifiers into structured logs.
package services
