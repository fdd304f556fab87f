// Package notify delivers pipeline progress events to interested parties.
//
// Bus fans events out to in-process subscribers (the TUI, the MCP server,
// the job runner's waiters). LogNotifier mirrors events into the logger,
// and Multi combines notifiers so the orchestrator sees a single one.
package notify
