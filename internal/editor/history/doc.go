// Package history provides undo/redo tracking for the editing core.
//
// History keeps two stacks of full document snapshots. Each Entry pairs
// the content with a deep copy of the cursor set, so restoring an entry
// brings back both text and cursors exactly as they were.
//
// # Coalescing
//
// Rapid edits are coalesced into a single undo step: when a push arrives
// while the newest undo entry is younger than the coalesce window, the
// push is dropped and that entry stays the undo target. The effect is
// that undoing a burst of fast typing returns to the state before the
// burst began. Entries recorded with PushCheckpoint carry no timestamp
// and are never coalesced into, marking explicit boundaries such as
// save points.
//
// # Restore suppression
//
// Callers that reuse ordinary mutation paths to apply an undone or
// redone state wrap the restore in BeginRestore/EndRestore so the
// restore itself is not recorded as a new edit.
//
// # Clock
//
// Coalescing decisions read time from an injectable clock, letting
// tests simulate elapsed time instead of sleeping.
package history
