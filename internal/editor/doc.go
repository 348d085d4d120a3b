// Package editor implements the document engine: a contiguous in-memory
// content string together with the cursor set, undo/redo history, and the
// version/modified bookkeeping that every mutation must keep consistent.
//
// The Document owns its cursors and history exclusively. Mutations snapshot
// the prior state into history before applying, collapse or move the primary
// cursor, and bump the version counter exactly once. Hosts poll the version
// to detect staleness; the engine never pushes events.
//
// All offset and column arithmetic is in Unicode code points (runes), never
// bytes. PositionToOffset and OffsetToPosition are the only fallible
// operations; everything else reports no-op outcomes through boolean
// results.
//
// A Document serves a single editing session and is not safe for concurrent
// use. Hosts that edit from multiple goroutines must serialize access
// themselves.
package editor
