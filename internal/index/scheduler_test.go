package index

import (
	"context"
	"testing"
	"time"
)

func TestSchedulerRunOnce(t *testing.T) {
	idx, dir := newTestIndexer(t)
	writeDoc(t, dir, "0001_學生自治會章程.txt", charter)

	var got Stats
	calls := 0
	s, err := NewScheduler(idx, func(st Stats, _ time.Duration, err error) {
		if err != nil {
			t.Errorf("pass failed: %v", err)
		}
		got = st
		calls++
	})
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	defer func() { _ = s.Stop() }()

	if _, err := s.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || got.Indexed != 1 {
		t.Errorf("calls = %d, stats = %+v", calls, got)
	}

	if _, err := s.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got.Indexed != 0 || got.Unchanged != 1 {
		t.Errorf("second pass stats = %+v", got)
	}
}

func TestSchedulerRejectsZeroInterval(t *testing.T) {
	idx, _ := newTestIndexer(t)
	s, err := NewScheduler(idx, nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	defer func() { _ = s.Stop() }()

	if _, err := s.Every(context.Background(), 0); err == nil {
		t.Error("expected an error for a zero interval")
	}
	id, err := s.Every(context.Background(), time.Hour)
	if err != nil || id == "" {
		t.Errorf("Every(1h) = %q, %v", id, err)
	}
}
