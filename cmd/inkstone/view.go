package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/inkstone/internal/config"
	"github.com/dshills/inkstone/internal/editor/cursor"
	"github.com/dshills/inkstone/internal/editor/find"
	"github.com/dshills/inkstone/internal/editor/fold"
	"github.com/dshills/inkstone/internal/editor/stats"
	"github.com/dshills/inkstone/internal/session"
	"github.com/dshills/inkstone/internal/syntax"
	"github.com/dshills/inkstone/internal/textutil"
)

// eventFileChanged is posted from the session's change hook so the
// event loop learns about on-disk edits without touching editor state
// from the watcher goroutine.
type eventFileChanged struct {
	tcell.EventTime
	path string
}

// eventConfigReloaded carries a freshly loaded configuration from the
// config watcher into the event loop.
type eventConfigReloaded struct {
	tcell.EventTime
	cfg *config.Config
}

func runView(opts options) int {
	cfg, err := loadViewConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.ReadOnly {
		cfg.Editor.ReadOnly = true
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	store := openStateStore()
	sessOpts := []session.Option{
		session.WithEditorConfig(cfg.Editor),
		session.WithFileWatching(),
		session.WithChangeHook(func(_ uuid.UUID, path string) {
			ev := &eventFileChanged{path: path}
			ev.SetEventTime(time.Now())
			_ = screen.PostEvent(ev) // best-effort; queue may be full
		}),
	}
	if store != nil {
		sessOpts = append(sessOpts, session.WithStore(store))
	}

	sess, err := session.New(sessOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc, err := sess.Open(opts.Files[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = sess.Shutdown()
		return 1
	}

	// Reload the config live when an explicit config file was given.
	var cfgWatcher *config.Watcher
	if opts.ConfigPath != "" {
		if w, werr := config.Watch(opts.ConfigPath); werr == nil {
			cfgWatcher = w
			w.OnReload(func(c *config.Config) {
				ev := &eventConfigReloaded{cfg: c}
				ev.SetEventTime(time.Now())
				_ = screen.PostEvent(ev)
			})
		}
	}

	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init terminal: %v\n", err)
		_ = sess.Shutdown()
		return 1
	}
	screen.EnableMouse()
	screen.EnablePaste()

	v := newViewer(screen, sess, doc, cfg.Editor)
	code := v.loop()

	// Stop watchers before tearing the screen down so no hook posts to
	// a finalized screen, then persist cursors and release the store.
	if cfgWatcher != nil {
		_ = cfgWatcher.Close()
	}
	_ = sess.Shutdown()
	if store != nil {
		_ = store.Close()
	}
	screen.Fini()
	return code
}

func loadViewConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// openStateStore opens the recent-file database under the user config
// directory. Best-effort; the viewer works without it.
func openStateStore() *session.Store {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	dir := filepath.Join(base, "inkstone")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	store, err := session.OpenStore(filepath.Join(dir, "state.db"))
	if err != nil {
		return nil
	}
	return store
}

// viewer renders one document and drives it from the tcell event loop.
// All state is owned by that loop; watcher goroutines reach it only
// through posted events.
type viewer struct {
	screen tcell.Screen
	sess   *session.Session
	doc    *session.Document
	cfg    config.EditorConfig

	folds  *fold.State
	finder *find.State
	hl     syntax.Highlighter

	// top is the first candidate document line of the viewport; hidden
	// lines below it are skipped at draw time.
	top       int
	searching bool
	input     []rune
	message   string

	// matchCols caches current search matches as column ranges per
	// line for draw-time highlighting.
	matchCols map[int][][2]int

	statsVersion uint64
	statsValid   bool
	statsCache   stats.TextStats
}

func newViewer(screen tcell.Screen, sess *session.Session, doc *session.Document, cfg config.EditorConfig) *viewer {
	v := &viewer{
		screen: screen,
		sess:   sess,
		doc:    doc,
		cfg:    cfg,
		finder: find.NewState(),
	}
	v.refreshDerived()
	return v
}

// refreshDerived rebuilds the fold regions and highlighter after the
// content or language changed.
func (v *viewer) refreshDerived() {
	ed := v.doc.Editor
	if ed.Language() == syntax.LangMarkdown {
		v.folds = fold.DetectMarkdownFolds(ed.Content())
	} else {
		v.folds = fold.NewState()
	}
	if h, ok := syntax.DefaultRegistry().ForLanguage(ed.Language()); ok {
		v.hl = h
	} else {
		v.hl = syntax.PlainHighlighter{}
	}
	if v.finder.Query != "" {
		v.finder.Search(ed.Content())
		v.buildMatchHighlights()
	}
}

func (v *viewer) loop() int {
	for {
		v.draw()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()

		case *tcell.EventKey:
			if v.handleKey(ev) {
				return 0
			}

		case *eventFileChanged:
			v.message = fmt.Sprintf("%s changed on disk (r to reload)", filepath.Base(ev.path))

		case *eventConfigReloaded:
			v.cfg = ev.cfg.Editor
			v.message = "configuration reloaded"
		}
	}
}

// handleKey processes one key event and reports whether to quit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	if v.searching {
		v.handleSearchKey(ev)
		return false
	}
	v.message = ""

	ed := v.doc.Editor
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.moveVertical(-1)
	case tcell.KeyDown:
		v.moveVertical(1)
	case tcell.KeyLeft:
		ed.MoveLeft(false)
		v.snapToVisible()
	case tcell.KeyRight:
		ed.MoveRight(false)
		v.snapToVisible()
	case tcell.KeyHome:
		ed.MoveLineStart(false)
	case tcell.KeyEnd:
		ed.MoveLineEnd(false)
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		v.moveVertical(-v.pageSize())
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		v.moveVertical(v.pageSize())
	case tcell.KeyTab, tcell.KeyEnter:
		v.toggleFold()
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return false
}

func (v *viewer) handleRune(r rune) bool {
	ed := v.doc.Editor
	switch r {
	case 'q':
		return true
	case 'h':
		ed.MoveLeft(false)
		v.snapToVisible()
	case 'l':
		ed.MoveRight(false)
		v.snapToVisible()
	case 'k':
		v.moveVertical(-1)
	case 'j':
		v.moveVertical(1)
	case 'w':
		ed.MoveWordRight(false)
		v.snapToVisible()
	case 'b':
		ed.MoveWordLeft(false)
		v.snapToVisible()
	case '0':
		ed.MoveLineStart(false)
	case '$':
		ed.MoveLineEnd(false)
	case 'g':
		ed.MoveDocStart(false)
	case 'G':
		ed.MoveDocEnd(false)
		v.snapToVisible()
	case 'T':
		v.toggleFold()
	case 'F':
		v.folds.FoldAll()
		v.snapToVisible()
		v.message = "all regions folded"
	case 'U':
		v.folds.UnfoldAll()
		v.message = "all regions unfolded"
	case '/':
		v.searching = true
		v.input = v.input[:0]
	case 'n':
		if m, ok := v.finder.Next(); ok {
			v.jumpToMatch(m)
		} else {
			v.message = "no matches"
		}
	case 'N':
		if m, ok := v.finder.Prev(); ok {
			v.jumpToMatch(m)
		} else {
			v.message = "no matches"
		}
	case 'y':
		v.yankLine()
	case 'r':
		v.reload()
	case 's':
		v.message = v.textStats().String() + " | " + v.textStats().ReadingTimeLabel()
	}
	return false
}

func (v *viewer) handleSearchKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		v.searching = false
		v.input = v.input[:0]
	case tcell.KeyEnter:
		v.searching = false
		v.commitSearch()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(v.input) > 0 {
			v.input = v.input[:len(v.input)-1]
		}
	case tcell.KeyRune:
		v.input = append(v.input, ev.Rune())
	}
}

func (v *viewer) commitSearch() {
	query := string(v.input)
	if query == "" {
		return
	}
	v.finder.Query = query
	v.finder.Search(v.doc.Editor.Content())
	v.buildMatchHighlights()

	if m, ok := v.finder.Current(); ok {
		v.jumpToMatch(m)
	} else {
		v.message = fmt.Sprintf("no matches for %q", query)
	}
}

// buildMatchHighlights converts the finder's rune offsets into per-line
// column ranges. Matches spanning lines are clamped to their first line.
func (v *viewer) buildMatchHighlights() {
	v.matchCols = make(map[int][][2]int)
	ed := v.doc.Editor
	for _, m := range v.finder.Matches() {
		start, err := ed.OffsetToPosition(m.Start)
		if err != nil {
			continue
		}
		endCol := start.Column + m.Len()
		end, err := ed.OffsetToPosition(m.End)
		if err == nil && end.Line == start.Line {
			endCol = end.Column
		}
		v.matchCols[start.Line] = append(v.matchCols[start.Line], [2]int{start.Column, endCol})
	}
}

func (v *viewer) jumpToMatch(m find.Match) {
	ed := v.doc.Editor
	pos, err := ed.OffsetToPosition(m.Start)
	if err != nil {
		return
	}

	// Unfold whatever hides the match, innermost first.
	for v.folds.IsLineHidden(pos.Line) {
		unfolded := false
		for _, r := range v.folds.Regions() {
			if r.Folded && r.ContainsLine(pos.Line) {
				r.Folded = false
				unfolded = true
			}
		}
		if !unfolded {
			break
		}
	}

	ed.SetCursor(pos)
	v.message = fmt.Sprintf("match %d/%d", v.finder.CurrentIndex()+1, v.finder.MatchCount())
}

func (v *viewer) toggleFold() {
	line := v.doc.Editor.CursorPosition().Line
	if !v.folds.ToggleAtLine(line) {
		v.message = "no fold at this line"
		return
	}
	v.snapToVisible()
}

func (v *viewer) yankLine() {
	pos := v.doc.Editor.CursorPosition()
	line, ok := v.doc.Editor.Line(pos.Line)
	if !ok {
		return
	}
	if err := clipboard.WriteAll(line + "\n"); err != nil {
		v.message = fmt.Sprintf("clipboard unavailable: %v", err)
		return
	}
	v.message = fmt.Sprintf("yanked line %d", pos.Line+1)
}

func (v *viewer) reload() {
	if !v.doc.IsStale() && !v.doc.IsConflicted() {
		v.message = "file unchanged on disk"
		return
	}
	changed, err := v.sess.Reload(v.doc.ID)
	if err != nil {
		v.message = fmt.Sprintf("reload failed: %v", err)
		return
	}
	if v.doc.IsConflicted() {
		v.message = "file changed on disk and in memory; not reloaded"
		return
	}
	if changed {
		v.refreshDerived()
		v.snapToVisible()
		v.message = "reloaded from disk"
		return
	}
	v.message = "file unchanged on disk"
}

func (v *viewer) textStats() stats.TextStats {
	ed := v.doc.Editor
	if !v.statsValid || ed.Version() != v.statsVersion {
		v.statsCache = stats.ComputeText(ed.Content())
		v.statsVersion = ed.Version()
		v.statsValid = true
	}
	return v.statsCache
}

// moveVertical moves the cursor by delta visible lines, skipping folded
// bodies.
func (v *viewer) moveVertical(delta int) {
	ed := v.doc.Editor
	pos := ed.CursorPosition()
	line := pos.Line

	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	for ; delta > 0; delta-- {
		next := v.nextVisibleLine(line, step)
		if next == line {
			break
		}
		line = next
	}

	col := pos.Column
	if text, ok := ed.Line(line); ok {
		if n := utf8.RuneCountInString(text); col > n {
			col = n
		}
	}
	ed.SetCursor(cursor.Position{Line: line, Column: col})
}

// nextVisibleLine returns the nearest visible line strictly beyond the
// given one in the step direction, or the line itself at the edges.
func (v *viewer) nextVisibleLine(line, step int) int {
	count := v.doc.Editor.LineCount()
	for next := line + step; next >= 0 && next < count; next += step {
		if !v.folds.IsLineHidden(next) {
			return next
		}
	}
	return line
}

// snapToVisible moves the cursor out of a folded body, onto the nearest
// visible line above it.
func (v *viewer) snapToVisible() {
	ed := v.doc.Editor
	pos := ed.CursorPosition()
	if !v.folds.IsLineHidden(pos.Line) {
		return
	}
	line := pos.Line
	for line > 0 && v.folds.IsLineHidden(line) {
		line--
	}
	col := pos.Column
	if text, ok := ed.Line(line); ok {
		if n := utf8.RuneCountInString(text); col > n {
			col = n
		}
	}
	ed.SetCursor(cursor.Position{Line: line, Column: col})
}

func (v *viewer) pageSize() int {
	_, h := v.screen.Size()
	if h <= 2 {
		return 1
	}
	return h - 2
}

// ensureCursorVisible scrolls the viewport so the cursor's line has a
// screen row.
func (v *viewer) ensureCursorVisible(textRows int) {
	cur := v.doc.Editor.CursorPosition().Line

	if v.top > cur || v.folds.IsLineHidden(v.top) {
		v.top = cur
	}
	for v.top > 0 && v.folds.IsLineHidden(v.top) {
		v.top--
	}

	rows := 0
	for line := v.top; line < cur; line++ {
		if !v.folds.IsLineHidden(line) {
			rows++
		}
	}
	for rows >= textRows {
		v.top = v.nextVisibleLine(v.top, 1)
		rows--
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w <= 0 || h <= 1 {
		v.screen.Show()
		return
	}
	textRows := h - 1
	v.ensureCursorVisible(textRows)

	ed := v.doc.Editor
	gutter := 0
	if v.cfg.ShowLineNumbers {
		gutter = numberWidth(ed.LineCount()) + 1
	}
	foldCol := gutter
	textCol := gutter + 2

	spans := v.highlightAll()
	cur := ed.CursorPosition()

	row := 0
	for line := v.top; row < textRows && line < ed.LineCount(); line++ {
		if v.folds.IsLineHidden(line) {
			continue
		}
		v.drawLine(row, line, w, gutter, foldCol, textCol, spans[line], line == cur.Line)
		if line == cur.Line {
			v.screen.ShowCursor(textCol+v.screenColumn(line, cur.Column), row)
		}
		row++
	}

	v.drawStatus(h-1, w)
	v.screen.Show()
}

func (v *viewer) drawLine(row, line, width, gutter, foldCol, textCol int, spans []syntax.Span, current bool) {
	base := tcell.StyleDefault
	if current && v.cfg.HighlightCurrentLine {
		base = base.Background(tcell.PaletteColor(236))
		for x := 0; x < width; x++ {
			v.screen.SetContent(x, row, ' ', nil, base)
		}
	}

	if gutter > 0 {
		numStyle := base.Foreground(tcell.ColorGray)
		if current {
			numStyle = base.Foreground(tcell.ColorWhite)
		}
		num := fmt.Sprintf("%*d", gutter-1, line+1)
		for i, r := range num {
			v.screen.SetContent(i, row, r, nil, numStyle)
		}
	}

	region, hasRegion := v.folds.RegionAtLine(line)
	if hasRegion {
		marker := '▾'
		if region.Folded {
			marker = '▸'
		}
		v.screen.SetContent(foldCol, row, marker, nil, base.Foreground(tcell.ColorTeal))
	}

	text, _ := v.doc.Editor.Line(line)
	x := textCol
	col := 0
	for _, r := range text {
		if x >= width {
			break
		}
		style := v.styleAt(line, col, spans, base)
		if r == '\t' {
			stop := v.cfg.TabSize - ((x - textCol) % v.cfg.TabSize)
			for i := 0; i < stop && x < width; i++ {
				v.screen.SetContent(x, row, ' ', nil, style)
				x++
			}
		} else {
			v.screen.SetContent(x, row, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
		col++
	}

	if hasRegion && region.Folded && x < width {
		note := fmt.Sprintf(" ⋯ %d lines", region.LineCount()-1)
		noteStyle := base.Foreground(tcell.ColorGray).Italic(true)
		for _, r := range note {
			if x >= width {
				break
			}
			v.screen.SetContent(x, row, r, nil, noteStyle)
			x += runewidth.RuneWidth(r)
		}
	}
}

// styleAt resolves the style for one rune column: syntax span first,
// search-match reverse on top.
func (v *viewer) styleAt(line, col int, spans []syntax.Span, base tcell.Style) tcell.Style {
	style := base
	for _, s := range spans {
		if col >= s.Start && col < s.End {
			style = spanStyle(s.Kind, base)
			break
		}
	}
	for _, m := range v.matchCols[line] {
		if col >= m[0] && col < m[1] {
			return style.Reverse(true)
		}
	}
	return style
}

func spanStyle(kind syntax.SpanKind, base tcell.Style) tcell.Style {
	switch kind {
	case syntax.SpanHeading:
		return base.Foreground(tcell.ColorYellow).Bold(true)
	case syntax.SpanBold:
		return base.Bold(true)
	case syntax.SpanItalic:
		return base.Italic(true)
	case syntax.SpanStrike:
		return base.StrikeThrough(true)
	case syntax.SpanCode, syntax.SpanCodeBlock:
		return base.Foreground(tcell.ColorAqua)
	case syntax.SpanQuote:
		return base.Foreground(tcell.ColorGreen).Italic(true)
	case syntax.SpanList:
		return base.Foreground(tcell.ColorFuchsia)
	case syntax.SpanLink:
		return base.Foreground(tcell.ColorBlue).Underline(true)
	case syntax.SpanKeyword:
		return base.Foreground(tcell.ColorPurple).Bold(true)
	case syntax.SpanString:
		return base.Foreground(tcell.ColorGreen)
	case syntax.SpanNumber:
		return base.Foreground(tcell.ColorRed)
	case syntax.SpanComment:
		return base.Foreground(tcell.ColorGray).Italic(true)
	default:
		return base
	}
}

// highlightAll styles every line, threading lexer state from the top so
// multi-line constructs stay correct regardless of scroll position.
func (v *viewer) highlightAll() [][]syntax.Span {
	ed := v.doc.Editor
	all := make([][]syntax.Span, ed.LineCount())
	state := syntax.StateNormal
	for i := 0; i < ed.LineCount(); i++ {
		line, _ := ed.Line(i)
		all[i], state = v.hl.HighlightLine(line, state)
	}
	return all
}

// screenColumn converts a rune column to a screen column, accounting
// for tab stops and wide runes.
func (v *viewer) screenColumn(line, col int) int {
	text, ok := v.doc.Editor.Line(line)
	if !ok {
		return col
	}
	x := 0
	i := 0
	for _, r := range text {
		if i >= col {
			break
		}
		if r == '\t' {
			x += v.cfg.TabSize - (x % v.cfg.TabSize)
		} else {
			x += runewidth.RuneWidth(r)
		}
		i++
	}
	return x
}

func (v *viewer) drawStatus(row, width int) {
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, row, ' ', nil, style)
	}

	var left string
	switch {
	case v.searching:
		left = "/" + string(v.input) + "▌"
	case v.message != "":
		left = v.message
	default:
		name := v.doc.Name
		if v.doc.Editor.IsModified() {
			name += " [+]"
		}
		if v.doc.Editor.ReadOnly() {
			name += " [RO]"
		}
		if v.doc.IsStale() {
			name += " [disk]"
		}
		left = name
	}

	pos := v.doc.Editor.CursorPosition()
	st := v.textStats()
	right := fmt.Sprintf("%s | %s | Ln %d/%d, Col %d",
		v.doc.Editor.Language(), st.String(), pos.Line+1, v.doc.Editor.LineCount(), pos.Column+1)

	left = textutil.TruncateWidth(left, width-2, "…")
	drawText(v.screen, 1, row, style, left)
	if rw := textutil.DisplayWidth(right); rw < width-textutil.DisplayWidth(left)-4 {
		drawText(v.screen, width-rw-1, row, style, right)
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func numberWidth(lines int) int {
	width := 1
	for lines >= 10 {
		lines /= 10
		width++
	}
	return width
}
