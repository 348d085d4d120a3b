// Package find implements the search and replace engine. A State holds
// the query, the options, and the match list computed by the most recent
// Search; matches are non-overlapping, in ascending order, addressed by
// rune offsets into the searched text.
//
// Searching is a pure scan over a content snapshot: the engine never
// mutates a document. Replacement operations return new text for the
// caller to apply through the document engine, keeping replaces undoable.
//
// Failure is soft throughout. An empty query or an invalid regular
// expression yields zero matches, and navigation on an empty match list
// reports false; nothing here returns an error.
package find
