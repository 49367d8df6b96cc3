package fetchguard

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardSharesConcurrentFetches(t *testing.T) {
	guard := NewGuard()

	var calls int32
	release := make(chan struct{})

	const workers = 8
	var wg sync.WaitGroup
	results := make([]interface{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := guard.Do("locations&warehouse=wh-1", func() (interface{}, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return "payload", nil
			})
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let all workers pile onto the same key before the fetch finishes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, "payload", v)
	}
}

func TestGuardDistinctKeysRunIndependently(t *testing.T) {
	guard := NewGuard()

	var calls int32
	fetch := func() (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}

	_, _, err := guard.Do("a", fetch)
	require.NoError(t, err)
	_, _, err = guard.Do("b", fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestKeyIsOrderIndependent(t *testing.T) {
	a := Key("locations", map[string]string{"zone": "MAIN", "type": "STORAGE"})
	b := Key("locations", map[string]string{"type": "STORAGE", "zone": "MAIN"})

	assert.Equal(t, a, b)
	assert.Equal(t, "locations", Key("locations", nil))
	assert.NotEqual(t, a, Key("locations", map[string]string{"type": "STORAGE"}))
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var runs int32
	done := make(chan struct{})

	for i := 0; i < 5; i++ {
		d.Trigger(func(stale func() bool) {
			atomic.AddInt32(&runs, 1)
			close(done)
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced run never fired")
	}

	// Give a superseded timer a chance to fire if one survived.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestDebouncerMarksSupersededRunsStale(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	staleSeen := make(chan bool, 1)
	d.Trigger(func(stale func() bool) {
		// Simulate a slow network response; a newer trigger arrives
		// while this one is in flight.
		time.Sleep(50 * time.Millisecond)
		staleSeen <- stale()
	})

	time.Sleep(30 * time.Millisecond)
	d.Trigger(func(stale func() bool) {})

	select {
	case wasStale := <-staleSeen:
		assert.True(t, wasStale)
	case <-time.After(time.Second):
		t.Fatal("first run never reported")
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var runs int32
	d.Trigger(func(stale func() bool) {
		atomic.AddInt32(&runs, 1)
	})
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs))
}
