// Package cursor provides position, selection, and multi-cursor types for
// the editing core.
//
// The cursor package handles:
//
//   - Document coordinates with the Position type (0-indexed line and
//     character column)
//   - Text selections with an anchor/head model via the Selection type
//   - Single cursors carrying a preferred column for vertical movement
//   - Multi-cursor support with CursorSet
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: the position where the selection started
//   - Head: the active end (where typing would occur)
//
// When Anchor == Head the selection is a caret with no selected text. The
// selection can extend forward (head after anchor) or backward (head before
// anchor), preserving the user's selection direction.
//
// Multi-Cursor Support:
//
// CursorSet manages an ordered, never-empty collection of cursors. The
// first cursor is the primary. After every mutation the set is kept sorted
// by selection start and overlapping or touching selections are merged,
// with the incoming cursor's orientation deciding which end extends.
//
// Thread Safety:
//
// Position, Selection, and Cursor are immutable value types and safe for
// concurrent use. CursorSet is not thread-safe and should be confined to a
// single editing session, matching the ownership model of the rest of the
// core.
package cursor
