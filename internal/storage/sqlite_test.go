package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-brush/internal/brush"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testSelection(session, series string, x0, x1 float64) Selection {
	return Selection{
		Session: session,
		Series:  series,
		Bounds:  brush.Bounds{X0: 0, X1: 100, Y0: 0, Y1: 50},
		Start:   brush.Point{X: x0, Y: 10},
		End:     brush.Point{X: x1, Y: 20},
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSelection(testSelection("local", "walk", 10, 30))
	if err != nil {
		t.Fatalf("SaveSelection() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveSelection() id = %d, expected positive", id)
	}
	store.SaveSelection(testSelection("local", "walk", 40, 60))
	store.SaveSelection(testSelection("alice", "sine", 0, 5))

	walk, err := store.RecentSelections("walk", 10)
	if err != nil {
		t.Fatalf("RecentSelections() failed: %v", err)
	}
	if len(walk) != 2 {
		t.Fatalf("Expected 2 walk selections, got %d", len(walk))
	}
	// Newest first
	if walk[0].Start.X != 40 || walk[1].Start.X != 10 {
		t.Errorf("selections not newest-first: %v, %v", walk[0].Start, walk[1].Start)
	}
	if walk[0].SelectionID == "" || walk[0].SelectionID == walk[1].SelectionID {
		t.Error("each selection should get its own generated ID")
	}
	if walk[0].Bounds != (brush.Bounds{X0: 0, X1: 100, Y0: 0, Y1: 50}) {
		t.Errorf("bounds round trip = %+v", walk[0].Bounds)
	}

	all, err := store.RecentSelections("", 10)
	if err != nil {
		t.Fatalf("RecentSelections(\"\") failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 selections across series, got %d", len(all))
	}
}

func TestStoreRecentLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		store.SaveSelection(testSelection("local", "walk", float64(i), float64(i+1)))
	}

	got, err := store.RecentSelections("walk", 3)
	if err != nil {
		t.Fatalf("RecentSelections() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 selections with limit, got %d", len(got))
	}
}

func TestStoreSelectionsForSession(t *testing.T) {
	store := openTestStore(t)
	store.SaveSelection(testSelection("alice", "walk", 1, 2))
	store.SaveSelection(testSelection("bob", "walk", 3, 4))
	store.SaveSelection(testSelection("alice", "sine", 5, 6))

	got, err := store.SelectionsForSession("alice", 0)
	if err != nil {
		t.Fatalf("SelectionsForSession() failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 selections for alice, got %d", len(got))
	}
}

func TestStoreSelectionByID(t *testing.T) {
	store := openTestStore(t)

	sel := testSelection("local", "steps", 2, 8)
	sel.SelectionID = "fixed-id"
	if _, err := store.SaveSelection(sel); err != nil {
		t.Fatalf("SaveSelection() failed: %v", err)
	}

	got, err := store.SelectionByID("fixed-id")
	if err != nil {
		t.Fatalf("SelectionByID() failed: %v", err)
	}
	if got == nil || got.End.X != 8 || got.Series != "steps" {
		t.Errorf("SelectionByID() = %+v", got)
	}

	missing, err := store.SelectionByID("nope")
	if err != nil || missing != nil {
		t.Errorf("SelectionByID(missing) = %+v, %v; expected nil, nil", missing, err)
	}

	if _, err := store.SaveSelection(sel); err == nil {
		t.Error("saving a duplicate selection ID should fail")
	}
}

func TestStoreClearSelections(t *testing.T) {
	store := openTestStore(t)
	store.SaveSelection(testSelection("local", "walk", 1, 2))
	store.SaveSelection(testSelection("local", "walk", 1, 2))
	store.SaveSelection(testSelection("local", "sine", 1, 2))

	n, err := store.ClearSelections("walk")
	if err != nil {
		t.Fatalf("ClearSelections() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearSelections() removed %d rows, expected 2", n)
	}

	rest, _ := store.RecentSelections("", 10)
	if len(rest) != 1 || rest[0].Series != "sine" {
		t.Errorf("sine selections should not be affected, got %+v", rest)
	}

	n, _ = store.ClearSelections("")
	if n != 1 {
		t.Errorf("ClearSelections(\"\") removed %d rows, expected 1", n)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetStats("walk")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if empty.Count != 0 || !empty.LastBrushed.IsZero() {
		t.Errorf("stats for empty series = %+v", empty)
	}

	store.SaveSelection(testSelection("local", "walk", 0, 10))
	store.SaveSelection(testSelection("local", "walk", 0, 30))

	stats, err := store.GetStats("walk")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Count != 2 || stats.AvgWidth != 20 || stats.AvgHeight != 10 {
		t.Errorf("GetStats() = %+v, expected count 2, width 20, height 10", stats)
	}
}

func TestSelectionFromState(t *testing.T) {
	st := brush.State{
		Start:  brush.Point{X: 1, Y: 2},
		End:    brush.Point{X: 3, Y: 4},
		Bounds: brush.Bounds{X1: 10, Y1: 10},
	}
	sel := SelectionFromState("me", "sine", st)
	if sel.Start != st.Start || sel.End != st.End || sel.Bounds != st.Bounds || sel.Session != "me" {
		t.Errorf("SelectionFromState() = %+v", sel)
	}
}
