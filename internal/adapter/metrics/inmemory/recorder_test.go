package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("build")
	r.RecordSuccess("upgrade")
	r.RecordConflict()
	r.RecordFailure()

	s := r.Snapshot()
	if s.ActionTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.ActionTotal)
	}
	if s.ActionSuccess != 2 {
		t.Fatalf("expected success 2, got %d", s.ActionSuccess)
	}
	if s.ActionConflict != 1 {
		t.Fatalf("expected conflict 1, got %d", s.ActionConflict)
	}
	if s.ActionFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.ActionFailure)
	}
	if s.ByActionTag["build"] != 1 {
		t.Fatalf("expected build count 1")
	}
	if s.ByActionTag["upgrade"] != 1 {
		t.Fatalf("expected upgrade count 1")
	}
}
