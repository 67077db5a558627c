package session

import (
	"path/filepath"
	"testing"

	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

func TestStore_ZeroState(t *testing.T) {
	s := NewStore()
	if s.Authenticated() {
		t.Error("new store must be unauthenticated")
	}
	if s.Page() != 1 {
		t.Errorf("page = %d, want 1", s.Page())
	}
	if !s.AutoRefresh() {
		t.Error("auto-refresh must default on")
	}
	if f := s.Filters(); f.Status != nil || f.BranchID != nil {
		t.Errorf("filters = %+v, want empty", f)
	}
}

func TestStore_SetSession(t *testing.T) {
	s := NewStore()
	s.SetSession(models.Session{WorkerID: 7, WorkerName: "Dilnoza", Token: "tok"})

	sess, ok := s.Session()
	if !ok || sess.WorkerID != 7 || sess.WorkerName != "Dilnoza" {
		t.Errorf("session = %+v ok=%v", sess, ok)
	}
	if !s.Authenticated() {
		t.Error("expected authenticated")
	}
}

func TestStore_FilterChangeResetsPage(t *testing.T) {
	s := NewStore()
	s.SetPage(5)

	status := models.StatusCompleted
	s.SetFilters(models.Filters{Status: &status})

	if s.Page() != 1 {
		t.Errorf("page = %d after filter change, want 1", s.Page())
	}
	if f := s.Filters(); f.Status == nil || *f.Status != models.StatusCompleted {
		t.Errorf("filters = %+v", f)
	}
}

func TestStore_PageChangeKeepsFilters(t *testing.T) {
	s := NewStore()
	branch := 3
	s.SetFilters(models.Filters{BranchID: &branch})
	s.SetPage(4)

	if s.Page() != 4 {
		t.Errorf("page = %d, want 4", s.Page())
	}
	if f := s.Filters(); f.BranchID == nil || *f.BranchID != 3 {
		t.Errorf("filters = %+v, want branch 3 kept", f)
	}
}

func TestStore_SetPageClampsBelowOne(t *testing.T) {
	s := NewStore()
	s.SetPage(0)
	if s.Page() != 1 {
		t.Errorf("page = %d, want clamp to 1", s.Page())
	}
	s.SetPage(-3)
	if s.Page() != 1 {
		t.Errorf("page = %d, want clamp to 1", s.Page())
	}
}

func TestStore_Reset(t *testing.T) {
	s := NewStore()
	status := models.StatusInProgress
	s.SetSession(models.Session{WorkerID: 7})
	s.SetFilters(models.Filters{Status: &status})
	s.SetPage(9)
	s.SetAutoRefresh(false)

	s.Reset()

	if s.Authenticated() {
		t.Error("reset must clear the session")
	}
	if s.Page() != 1 || !s.AutoRefresh() {
		t.Errorf("page=%d autoRefresh=%v after reset", s.Page(), s.AutoRefresh())
	}
	if f := s.Filters(); f.Status != nil {
		t.Errorf("filters = %+v after reset", f)
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.SetSession(models.Session{WorkerID: 7, WorkerName: "Dilnoza"})

	st := s.Snapshot()
	st.Session.WorkerName = "mutated"

	sess, _ := s.Session()
	if sess.WorkerName != "Dilnoza" {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestTokenFile_RoundTrip(t *testing.T) {
	tf := TokenFile{Path: filepath.Join(t.TempDir(), "shikoyat", "session.yaml")}

	if _, ok, err := tf.Load(); err != nil || ok {
		t.Fatalf("Load on missing file: ok=%v err=%v", ok, err)
	}

	want := models.Session{WorkerID: 7, WorkerName: "Dilnoza", Token: "tok-1"}
	if err := tf.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := tf.Load()
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	if err := tf.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := tf.Load(); ok {
		t.Error("session survived Clear")
	}
	if err := tf.Clear(); err != nil {
		t.Errorf("Clear on missing file: %v", err)
	}
}
