package hledger

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCacheComputesOncePerTTL(t *testing.T) {
	c := NewCache()
	calls := 0
	get := func() (any, error) {
		return c.GetOrCompute("k", time.Minute, func() (any, error) {
			calls++
			return calls, nil
		})
	}

	for i := 0; i < 3; i++ {
		v, err := get()
		if err != nil {
			t.Fatal(err)
		}
		if v != 1 {
			t.Fatalf("call %d returned %v, want 1", i, v)
		}
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	calls := 0
	get := func() (any, error) {
		return c.GetOrCompute("k", time.Minute, func() (any, error) {
			calls++
			return calls, nil
		})
	}

	if v, _ := get(); v != 1 {
		t.Fatalf("first read = %v", v)
	}
	now = now.Add(59 * time.Second)
	if v, _ := get(); v != 1 {
		t.Errorf("read within TTL = %v, want 1", v)
	}
	now = now.Add(2 * time.Second)
	if v, _ := get(); v != 2 {
		t.Errorf("read past TTL = %v, want 2", v)
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2", calls)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache()
	calls := 0
	get := func(key string) (any, error) {
		return c.GetOrCompute(key, time.Minute, func() (any, error) {
			calls++
			return calls, nil
		})
	}

	get("a")
	get("b")
	c.Invalidate("a")

	if v, _ := get("a"); v != 3 {
		t.Errorf("invalidated key = %v, want a fresh compute", v)
	}
	if v, _ := get("b"); v != 2 {
		t.Errorf("untouched key = %v, want the cached value", v)
	}
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	c := NewCache()
	boom := errors.New("boom")
	calls := 0

	_, err := c.GetOrCompute("k", time.Minute, func() (any, error) {
		calls++
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}

	v, err := c.GetOrCompute("k", time.Minute, func() (any, error) {
		calls++
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Fatalf("read after failure = %v, %v", v, err)
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2", calls)
	}
}

func TestCacheSharesInFlightCompute(t *testing.T) {
	c := NewCache()
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrCompute("k", time.Minute, func() (any, error) {
				calls.Add(1)
				<-release
				return "shared", nil
			})
			if err != nil || v != "shared" {
				t.Errorf("got %v, %v", v, err)
			}
		}()
	}

	// let all goroutines reach the cache before the compute finishes
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("compute ran %d times, want 1", n)
	}
}
