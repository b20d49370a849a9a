package utils

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestURLSetNoDuplicates(t *testing.T) {
	s := NewURLSet()

	added := s.Add("https://example.com/1")
	if !added {
		t.Error("first Add should return true")
	}

	added = s.Add("https://example.com/1")
	if added {
		t.Error("second Add of same URL should return false")
	}

	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestURLSetConcurrency(t *testing.T) {
	s := NewURLSet()
	var added int64

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Add("https://example.com/same") {
				atomic.AddInt64(&added, 1)
			}
		}()
	}
	wg.Wait()

	if added != 1 {
		t.Errorf("expected exactly 1 successful add, got %d", added)
	}
}

func TestInstanceCounterSequence(t *testing.T) {
	c := NewInstanceCounter()

	if got := c.Next(); got != 1 {
		t.Errorf("first Next: got %d, want 1", got)
	}
	if got := c.Next(); got != 2 {
		t.Errorf("second Next: got %d, want 2", got)
	}
}

func TestInstanceCounterConcurrency(t *testing.T) {
	c := NewInstanceCounter()

	var wg sync.WaitGroup
	seen := make(chan int64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- c.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]struct{})
	for n := range seen {
		if _, dup := unique[n]; dup {
			t.Fatalf("duplicate instance number %d", n)
		}
		unique[n] = struct{}{}
	}
	if len(unique) != 100 {
		t.Errorf("expected 100 unique numbers, got %d", len(unique))
	}
}
