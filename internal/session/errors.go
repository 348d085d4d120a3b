package session

import "errors"

// Session errors.
var (
	// ErrDocumentNotFound indicates no open document matches the id or
	// path.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoPath indicates a file operation on a scratch document.
	ErrNoPath = errors.New("document has no file path")

	// ErrSessionClosed is returned when operating on a closed session.
	ErrSessionClosed = errors.New("session is closed")
)
