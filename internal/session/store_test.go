package session

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := OpenStore(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStoreSaveAndLookup(t *testing.T) {
	st := newTestStore(t)

	rec := FileRecord{
		Path:     "/tmp/a.md",
		Language: "markdown",
		Line:     4,
		Column:   12,
		OpenedAt: time.Unix(1700000000, 0),
	}
	if err := st.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := st.Lookup("/tmp/a.md")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected record to exist")
	}
	if got.Language != "markdown" || got.Line != 4 || got.Column != 12 {
		t.Errorf("unexpected record %+v", got)
	}
	if !got.OpenedAt.Equal(rec.OpenedAt) {
		t.Errorf("opened_at %v, want %v", got.OpenedAt, rec.OpenedAt)
	}
}

func TestStoreLookupMissing(t *testing.T) {
	st := newTestStore(t)

	_, ok, err := st.Lookup("/nowhere")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok {
		t.Error("lookup of unknown path should report no record")
	}
}

func TestStoreSaveUpserts(t *testing.T) {
	st := newTestStore(t)

	base := FileRecord{Path: "/tmp/a.md", Line: 1, OpenedAt: time.Unix(100, 0)}
	if err := st.Save(base); err != nil {
		t.Fatalf("first save: %v", err)
	}
	base.Line = 9
	base.OpenedAt = time.Unix(200, 0)
	if err := st.Save(base); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, ok, err := st.Lookup("/tmp/a.md")
	if err != nil || !ok {
		t.Fatalf("lookup: ok=%v err=%v", ok, err)
	}
	if got.Line != 9 {
		t.Errorf("line %d after upsert, want 9", got.Line)
	}

	recent, err := st.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("expected 1 record after upsert, got %d", len(recent))
	}
}

func TestStoreRecentOrdersByOpenTime(t *testing.T) {
	st := newTestStore(t)

	for i, path := range []string{"/old", "/mid", "/new"} {
		rec := FileRecord{Path: path, OpenedAt: time.Unix(int64(100*(i+1)), 0)}
		if err := st.Save(rec); err != nil {
			t.Fatalf("save %s: %v", path, err)
		}
	}

	recent, err := st.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].Path != "/new" || recent[1].Path != "/mid" {
		t.Errorf("unexpected order: %s, %s", recent[0].Path, recent[1].Path)
	}
}

func TestStoreForget(t *testing.T) {
	st := newTestStore(t)

	if err := st.Save(FileRecord{Path: "/gone", OpenedAt: time.Now()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Forget("/gone"); err != nil {
		t.Fatalf("forget: %v", err)
	}

	if _, ok, _ := st.Lookup("/gone"); ok {
		t.Error("forgotten record still present")
	}
}

func TestStorePruneKeepsNewest(t *testing.T) {
	st := newTestStore(t)

	for i := 0; i < 5; i++ {
		rec := FileRecord{
			Path:     "/f" + string(rune('a'+i)),
			OpenedAt: time.Unix(int64(i), 0),
		}
		if err := st.Save(rec); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	if err := st.Prune(2); err != nil {
		t.Fatalf("prune: %v", err)
	}

	recent, err := st.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records after prune, got %d", len(recent))
	}
	if recent[0].Path != "/fe" || recent[1].Path != "/fd" {
		t.Errorf("prune kept %s, %s", recent[0].Path, recent[1].Path)
	}
}
