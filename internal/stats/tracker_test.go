package stats

import (
	"math/rand"
	"testing"
)

func TestTrackerCatchesNeverExceedAttempts(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	var tr Tracker
	for i := 0; i < 1000; i++ {
		if rnd.Intn(2) == 0 {
			tr.RecordAttempt()
		} else {
			tr.RecordCatch()
		}
		s := tr.Snapshot()
		if s.Catches > s.Attempts {
			t.Fatalf("catches %d exceed attempts %d after %d ops", s.Catches, s.Attempts, i+1)
		}
	}
}

func TestTrackerNearMissesThenCatch(t *testing.T) {
	var tr Tracker
	for i := 0; i < 4; i++ {
		tr.RecordAttempt()
	}
	s := tr.RecordCatch()
	if s.Attempts != 5 || s.Catches != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if rate := tr.SuccessRate(); rate != 20 {
		t.Fatalf("expected 20%% success rate, got %d", rate)
	}
}

func TestTrackerReset(t *testing.T) {
	var tr Tracker
	tr.RecordCatch()
	tr.RecordAttempt()
	tr.Reset()
	if s := tr.Snapshot(); s.Attempts != 0 || s.Catches != 0 {
		t.Fatalf("expected zero stats after reset, got %+v", s)
	}
	if tr.SuccessRate() != 0 {
		t.Fatalf("expected 0%% for empty stats")
	}
}
