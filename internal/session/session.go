package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/inkstone/internal/config"
	"github.com/dshills/inkstone/internal/editor"
	"github.com/dshills/inkstone/internal/editor/cursor"
	"github.com/dshills/inkstone/internal/syntax"
)

// Document is an open document: the editing core plus the file identity
// and host-level flags the core does not track.
type Document struct {
	// ID identifies the document for the session's lifetime.
	ID uuid.UUID

	// Path is the absolute file path, empty for scratch documents.
	Path string

	// Name is the display name: the file name, or "Untitled" for
	// scratch documents.
	Name string

	// Editor is the document engine. It is single-owner state; drive it
	// from one goroutine.
	Editor *editor.Document

	stale      atomic.Bool
	conflicted atomic.Bool
}

// IsScratch reports whether the document has no backing file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// IsStale reports whether the backing file changed on disk since the
// content was last loaded or saved. Reload consumes the flag.
func (d *Document) IsStale() bool {
	return d.stale.Load()
}

// IsConflicted reports whether an external change was declined because
// the document holds unsaved local edits.
func (d *Document) IsConflicted() bool {
	return d.conflicted.Load()
}

// ClearConflict clears the conflict flag, e.g. after the host resolved
// the divergence by saving or force-reloading.
func (d *Document) ClearConflict() {
	d.conflicted.Store(false)
}

// Session manages open documents. See the package documentation for the
// ownership and concurrency contract.
type Session struct {
	mu       sync.RWMutex
	docs     map[uuid.UUID]*Document
	byPath   map[string]uuid.UUID
	order    []uuid.UUID
	active   uuid.UUID
	scratchN int
	closed   bool

	cfg      config.EditorConfig
	store    *Store
	watcher  *reloadWatcher
	onChange func(id uuid.UUID, path string)

	watchFiles bool
}

// Option configures a Session.
type Option func(*Session)

// WithEditorConfig applies editor settings to every document the session
// opens.
func WithEditorConfig(cfg config.EditorConfig) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithStore attaches a Store used to restore and persist per-file state.
// The session does not close the store; its creator does.
func WithStore(st *Store) Option {
	return func(s *Session) {
		s.store = st
	}
}

// WithFileWatching enables the external-change watcher for file-backed
// documents.
func WithFileWatching() Option {
	return func(s *Session) {
		s.watchFiles = true
	}
}

// WithChangeHook registers a hook invoked when a watched file changes on
// disk. The hook runs on the watcher goroutine; hosts typically forward
// it to their event loop and call Reload from there.
func WithChangeHook(fn func(id uuid.UUID, path string)) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

// New creates a Session.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		docs:   make(map[uuid.UUID]*Document),
		byPath: make(map[string]uuid.UUID),
		cfg:    config.Default().Editor,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.watchFiles {
		w, err := newReloadWatcher(s.markChanged)
		if err != nil {
			return nil, fmt.Errorf("starting file watcher: %w", err)
		}
		s.watcher = w
	}
	return s, nil
}

// Open opens the file at path, or returns the already-open document for
// it. The document's language is detected from the file extension and
// the last cursor position is restored when the store knows the file.
func (s *Session) Open(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	if id, ok := s.byPath[absPath]; ok {
		s.active = id
		return s.docs[id], nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", absPath, err)
	}

	language := syntax.DetectLanguage(absPath)
	doc := &Document{
		ID:     uuid.New(),
		Path:   absPath,
		Name:   filepath.Base(absPath),
		Editor: editor.New(string(content), s.editorOptions(language)...),
	}

	// Store access is best-effort: a broken state database never blocks
	// opening a file.
	if s.store != nil {
		if rec, ok, err := s.store.Lookup(absPath); err == nil && ok {
			doc.Editor.SetCursor(cursor.Position{Line: rec.Line, Column: rec.Column})
		}
		_ = s.store.Save(FileRecord{
			Path:     absPath,
			Language: language,
			Line:     doc.Editor.CursorPosition().Line,
			Column:   doc.Editor.CursorPosition().Column,
			OpenedAt: time.Now(),
		})
	}

	if s.watcher != nil {
		if err := s.watcher.watch(absPath); err != nil {
			return nil, fmt.Errorf("watching %s: %w", absPath, err)
		}
	}

	s.register(doc)
	return doc, nil
}

// NewScratch creates an unsaved document with empty content.
func (s *Session) NewScratch() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scratchN++
	name := "Untitled"
	if s.scratchN > 1 {
		name = "Untitled-" + strconv.Itoa(s.scratchN)
	}

	doc := &Document{
		ID:     uuid.New(),
		Name:   name,
		Editor: editor.New("", s.editorOptions("")...),
	}
	s.register(doc)
	return doc
}

// register adds a document and makes it active. Caller holds the lock.
func (s *Session) register(doc *Document) {
	s.docs[doc.ID] = doc
	if doc.Path != "" {
		s.byPath[doc.Path] = doc.ID
	}
	s.order = append(s.order, doc.ID)
	s.active = doc.ID
}

// editorOptions translates the session's editor settings into document
// options.
func (s *Session) editorOptions(language string) []editor.Option {
	opts := []editor.Option{editor.WithTabSize(s.cfg.TabSize)}
	if language != "" {
		opts = append(opts, editor.WithLanguage(language))
	}
	if s.cfg.InsertSpaces {
		opts = append(opts, editor.WithInsertSpaces())
	}
	if s.cfg.AutoIndent {
		opts = append(opts, editor.WithAutoIndent())
	}
	if s.cfg.ReadOnly {
		opts = append(opts, editor.WithReadOnly())
	}
	return opts
}

// Save writes the document's content to its file, clears the modified
// flag, and places a history checkpoint so later edits never coalesce
// across the save point. Saving overwrites any external change; hosts
// that care should check IsStale first.
func (s *Session) Save(id uuid.UUID) error {
	doc, ok := s.Get(id)
	if !ok {
		return ErrDocumentNotFound
	}
	if doc.IsScratch() {
		return fmt.Errorf("saving %s: %w", doc.Name, ErrNoPath)
	}

	if err := os.WriteFile(doc.Path, []byte(doc.Editor.Content()), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", doc.Path, err)
	}

	doc.Editor.SetModified(false)
	doc.Editor.History().PushCheckpoint(doc.Editor.Content(), doc.Editor.Cursors())
	doc.stale.Store(false)
	doc.conflicted.Store(false)

	s.persistState(doc)
	return nil
}

// SaveAs writes the document to a new path and rebinds it to that file.
func (s *Session) SaveAs(id uuid.UUID, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	s.mu.Lock()
	doc, ok := s.docs[id]
	if !ok {
		s.mu.Unlock()
		return ErrDocumentNotFound
	}
	oldPath := doc.Path
	if oldPath != "" {
		delete(s.byPath, oldPath)
	}
	doc.Path = absPath
	doc.Name = filepath.Base(absPath)
	s.byPath[absPath] = id
	s.mu.Unlock()

	if s.watcher != nil {
		if oldPath != "" {
			s.watcher.unwatch(oldPath)
		}
		if err := s.watcher.watch(absPath); err != nil {
			return fmt.Errorf("watching %s: %w", absPath, err)
		}
	}
	doc.Editor.SetLanguage(syntax.DetectLanguage(absPath))

	return s.Save(id)
}

// Close closes the document, persisting its cursor position for the next
// open. Unsaved changes are discarded.
func (s *Session) Close(id uuid.UUID) error {
	s.mu.Lock()
	doc, ok := s.docs[id]
	if !ok {
		s.mu.Unlock()
		return ErrDocumentNotFound
	}

	delete(s.docs, id)
	if doc.Path != "" {
		delete(s.byPath, doc.Path)
	}
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.active == id {
		s.active = uuid.Nil
		if len(s.order) > 0 {
			s.active = s.order[len(s.order)-1]
		}
	}
	s.mu.Unlock()

	if s.watcher != nil && doc.Path != "" {
		s.watcher.unwatch(doc.Path)
	}
	s.persistState(doc)
	return nil
}

// Get returns the open document with the given id.
func (s *Session) Get(id uuid.UUID) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// GetByPath returns the open document backed by the given file.
func (s *Session) GetByPath(path string) (*Document, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPath[absPath]
	if !ok {
		return nil, false
	}
	return s.docs[id], true
}

// List returns the open documents in open order.
func (s *Session) List() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*Document, 0, len(s.order))
	for _, id := range s.order {
		if doc, ok := s.docs[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Count returns the number of open documents.
func (s *Session) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Active returns the most recently opened or activated document, or nil
// when none are open.
func (s *Session) Active() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == uuid.Nil {
		return nil
	}
	return s.docs[s.active]
}

// SetActive makes the given document the active one.
func (s *Session) SetActive(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrDocumentNotFound
	}
	s.active = id
	return nil
}

// Modified returns the open documents with unsaved changes.
func (s *Session) Modified() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var modified []*Document
	for _, id := range s.order {
		if doc, ok := s.docs[id]; ok && doc.Editor.IsModified() {
			modified = append(modified, doc)
		}
	}
	return modified
}

// Reload re-reads the document's file and applies the disk content
// through ReplaceContent, so the update is not a local undo step and
// cursors are carried across the change. It reports whether content was
// applied: false with a nil error means the disk copy matched, or the
// document holds unsaved edits and was flagged conflicted instead.
func (s *Session) Reload(id uuid.UUID) (bool, error) {
	doc, ok := s.Get(id)
	if !ok {
		return false, ErrDocumentNotFound
	}
	if doc.IsScratch() {
		return false, fmt.Errorf("reloading %s: %w", doc.Name, ErrNoPath)
	}

	data, err := os.ReadFile(doc.Path)
	if err != nil {
		return false, fmt.Errorf("reloading %s: %w", doc.Path, err)
	}
	doc.stale.Store(false)

	content := string(data)
	if content == doc.Editor.Content() {
		doc.conflicted.Store(false)
		return false, nil
	}
	if doc.Editor.IsModified() {
		doc.conflicted.Store(true)
		return false, nil
	}

	doc.Editor.ReplaceContent(content)
	doc.conflicted.Store(false)
	return true, nil
}

// markChanged flags the document backed by path as stale and invokes the
// change hook. Runs on the watcher goroutine; it must not touch the
// editor state.
func (s *Session) markChanged(path string) {
	s.mu.RLock()
	id, ok := s.byPath[path]
	var doc *Document
	if ok {
		doc = s.docs[id]
	}
	hook := s.onChange
	s.mu.RUnlock()

	if doc == nil {
		return
	}
	doc.stale.Store(true)
	if hook != nil {
		hook(id, path)
	}
}

// persistState saves the document's cursor position and language to the
// store. Best-effort; scratch documents are skipped.
func (s *Session) persistState(doc *Document) {
	if s.store == nil || doc.Path == "" {
		return
	}
	pos := doc.Editor.CursorPosition()
	_ = s.store.Save(FileRecord{
		Path:     doc.Path,
		Language: doc.Editor.Language(),
		Line:     pos.Line,
		Column:   pos.Column,
		OpenedAt: time.Now(),
	})
}

// Shutdown stops the file watcher and persists the state of every open
// file-backed document. The session cannot be used afterwards.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	docs := make([]*Document, 0, len(s.order))
	for _, id := range s.order {
		if doc, ok := s.docs[id]; ok {
			docs = append(docs, doc)
		}
	}
	s.mu.Unlock()

	var err error
	if s.watcher != nil {
		err = s.watcher.close()
	}
	for _, doc := range docs {
		s.persistState(doc)
	}
	return err
}
