package editor

import (
	"unicode/utf8"

	"github.com/dshills/inkstone/internal/editor/cursor"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// remapCursors carries cursor positions across an external content
// replacement by diffing old and new text and translating each cursor end
// through the edit script. Positions inside deleted spans collapse to the
// deletion point, so a cursor after an untouched tail keeps its place even
// when text earlier in the document grew or shrank.
func (d *Document) remapCursors(old, updated string) {
	if old == updated {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, updated, false)

	d.cursors.Map(func(c cursor.Cursor) cursor.Cursor {
		c.Head = d.remapPosition(diffs, old, c.Head)
		c.Anchor = d.remapPosition(diffs, old, c.Anchor)
		return c
	})
}

func (d *Document) remapPosition(diffs []diffmatchpatch.Diff, old string, pos cursor.Position) cursor.Position {
	oldOff, err := positionToOffset(old, pos)
	if err != nil {
		return d.clampPosition(pos)
	}
	mapped, err := d.OffsetToPosition(mapOffset(diffs, oldOff))
	if err != nil {
		return d.endPosition()
	}
	return mapped
}

// mapOffset translates a rune offset in the pre-diff text to the
// corresponding offset in the post-diff text.
func mapOffset(diffs []diffmatchpatch.Diff, offset int) int {
	oldOff, newOff := 0, 0
	for _, diff := range diffs {
		n := utf8.RuneCountInString(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			if offset < oldOff+n {
				return newOff + (offset - oldOff)
			}
			oldOff += n
			newOff += n
		case diffmatchpatch.DiffDelete:
			if offset < oldOff+n {
				return newOff
			}
			oldOff += n
		case diffmatchpatch.DiffInsert:
			newOff += n
		}
	}
	return newOff
}
