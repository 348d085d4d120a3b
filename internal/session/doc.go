// Package session manages the documents a host application has open.
//
// A Session tracks open documents by id, remembers open order, and pairs
// each file-backed document with the bookkeeping the core leaves to hosts:
// loading and saving, language detection, restoring the last cursor
// position from the Store, and watching for external file changes.
//
// External changes follow the core's pull model. The watcher only flags a
// document as stale and invokes the change hook; the host decides when to
// call Reload, which applies the disk content through ReplaceContent so the
// update never becomes a local undo step. A document with unsaved local
// edits is flagged as conflicted instead of being overwritten.
//
// Session methods are safe for concurrent use, but the editor.Document
// values it hands out are not; each document must be driven from one
// goroutine, normally the host's event loop.
package session
