/*
Copyright © 2025 the FieldView authors.
This file is part of FieldView.

FieldView is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FieldView is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FieldView.  If not, see <http://www.gnu.org/licenses/>.
*/

package fieldview

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestSchedulerDebounce checks that a burst of mutations produces one
// low-resolution pass per mutation but only a single high-resolution pass
// once the input settles.
func TestSchedulerDebounce(t *testing.T) {
	var mu sync.Mutex
	var lows, highs int
	run := func(ctx context.Context, tag ResolutionTag) error {
		mu.Lock()
		defer mu.Unlock()
		if tag == LowResolution {
			lows++
		} else {
			highs++
		}
		return nil
	}
	s := newScheduler(run, 50*time.Millisecond)
	for i := 0; i < 5; i++ {
		s.mutated()
	}
	time.Sleep(300 * time.Millisecond)
	s.close()

	mu.Lock()
	defer mu.Unlock()
	if lows != 5 {
		t.Errorf("want 5 low-resolution passes, got %d", lows)
	}
	if highs != 1 {
		t.Errorf("want exactly 1 high-resolution pass after settling, got %d", highs)
	}
}

// TestSchedulerZeroDebounce checks that a zero debounce skips the
// interactive pass entirely and computes at full resolution on every
// mutation.
func TestSchedulerZeroDebounce(t *testing.T) {
	var mu sync.Mutex
	var lows, highs int
	run := func(ctx context.Context, tag ResolutionTag) error {
		mu.Lock()
		defer mu.Unlock()
		if tag == LowResolution {
			lows++
		} else {
			highs++
		}
		return nil
	}
	s := newScheduler(run, 0)
	for i := 0; i < 3; i++ {
		s.mutated()
	}
	s.close()

	mu.Lock()
	defer mu.Unlock()
	if lows != 0 {
		t.Errorf("zero debounce should skip low-resolution passes, got %d", lows)
	}
	if highs != 3 {
		t.Errorf("want 3 high-resolution passes, got %d", highs)
	}
}

// TestSchedulerCancelsInFlight checks that a mutation arriving while a
// high-resolution pass is computing cancels that pass.
func TestSchedulerCancelsInFlight(t *testing.T) {
	started := make(chan struct{}, 8)
	canceled := make(chan struct{}, 8)
	run := func(ctx context.Context, tag ResolutionTag) error {
		if tag != HighResolution {
			return nil
		}
		started <- struct{}{}
		select {
		case <-ctx.Done():
			canceled <- struct{}{}
			return ctx.Err()
		case <-time.After(2 * time.Second):
			return nil
		}
	}
	s := newScheduler(run, 10*time.Millisecond)
	defer s.close()

	s.mutated()
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the settled pass to start")
	}
	s.mutated()
	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("a new mutation should cancel the in-flight settled pass")
	}
}

func TestSchedulerClosedIgnoresMutations(t *testing.T) {
	var mu sync.Mutex
	var calls int
	run := func(ctx context.Context, tag ResolutionTag) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	}
	s := newScheduler(run, 0)
	s.close()
	s.mutated()
	s.close() // idempotent

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("a closed scheduler should not run passes, got %d calls", calls)
	}
}
