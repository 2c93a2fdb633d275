package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestRecordAndSnapshot(t *testing.T) {
	c := NewCollector()

	c.Record(OpSearch, 10*time.Millisecond)
	c.Record(OpSearch, 30*time.Millisecond)
	c.Record(OpRun, 100*time.Millisecond)

	snap := c.Snapshot()

	s, ok := snap.Operations[OpSearch]
	if !ok {
		t.Fatal("search operation missing from snapshot")
	}
	if s.Count != 2 {
		t.Errorf("Count = %d, want 2", s.Count)
	}
	if s.MinTimeMs != 10 {
		t.Errorf("MinTimeMs = %d, want 10", s.MinTimeMs)
	}
	if s.MaxTimeMs != 30 {
		t.Errorf("MaxTimeMs = %d, want 30", s.MaxTimeMs)
	}
	if s.AvgTimeMs != 20 {
		t.Errorf("AvgTimeMs = %f, want 20", s.AvgTimeMs)
	}

	if snap.Operations[OpRun].Count != 1 {
		t.Errorf("run Count = %d, want 1", snap.Operations[OpRun].Count)
	}
}

func TestObserveRecordsCall(t *testing.T) {
	c := NewCollector()

	called := false
	c.Observe(OpQuery, func() {
		called = true
		time.Sleep(time.Millisecond)
	})

	if !called {
		t.Fatal("Observe did not invoke the function")
	}
	s, ok := c.Snapshot().Operations[OpQuery]
	if !ok {
		t.Fatal("search_query operation missing from snapshot")
	}
	if s.Count != 1 {
		t.Errorf("Count = %d, want 1", s.Count)
	}
	if s.TotalTimeMs < 1 {
		t.Errorf("TotalTimeMs = %d, want >= 1", s.TotalTimeMs)
	}
}

func TestEmptySnapshot(t *testing.T) {
	c := NewCollector()
	snap := c.Snapshot()
	if len(snap.Operations) != 0 {
		t.Errorf("expected empty operations map, got %d entries", len(snap.Operations))
	}
}

func TestConcurrentRecord(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record(OpExtract, time.Millisecond)
		}()
	}
	wg.Wait()

	if got := c.Snapshot().Operations[OpExtract].Count; got != 50 {
		t.Errorf("Count = %d, want 50", got)
	}
}
