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
	"time"
)

type schedState int

const (
	schedIdle schedState = iota
	schedInteractivePending
	schedDebouncing
	schedSettledComputing
)

// scheduler serializes interpolation passes: a synchronous low-resolution
// pass on every mutation, and one debounced high-resolution pass once the
// input has settled. At most one high-resolution computation is in flight
// at a time; a new mutation cancels it.
type scheduler struct {
	mu       sync.Mutex
	state    schedState
	debounce time.Duration
	timer    *time.Timer
	cancel   context.CancelFunc // cancels the in-flight settled pass
	seq      uint64             // invalidates stale timer fires
	closed   bool
	wg       sync.WaitGroup

	// run executes one pass and emits its result. It must honor ctx
	// cancellation between batches of work.
	run func(ctx context.Context, tag ResolutionTag) error
}

func newScheduler(run func(context.Context, ResolutionTag) error, debounce time.Duration) *scheduler {
	return &scheduler{run: run, debounce: debounce}
}

func (s *scheduler) setDebounce(d time.Duration) {
	s.mu.Lock()
	s.debounce = d
	s.mu.Unlock()
}

// mutated is called after every point or boundary change. It cancels any
// in-flight settled computation, runs a low-resolution pass on the calling
// goroutine, and (re)starts the debounce timer. A zero debounce disables
// the interactive pass and computes at high resolution immediately.
func (s *scheduler) mutated() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	s.state = schedInteractivePending
	d := s.debounce
	s.mu.Unlock()

	if d > 0 {
		s.run(context.Background(), LowResolution)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != schedInteractivePending {
		return
	}
	if d == 0 {
		s.startSettled()
		return
	}
	s.state = schedDebouncing
	if s.timer != nil {
		s.timer.Stop()
	}
	seq := s.seq
	s.timer = time.AfterFunc(d, func() { s.timerFired(seq) })
}

func (s *scheduler) timerFired(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.seq || s.state != schedDebouncing {
		return
	}
	s.startSettled()
}

// startSettled launches the high-resolution pass on a worker goroutine.
// The caller must hold s.mu.
func (s *scheduler) startSettled() {
	s.state = schedSettledComputing
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	seq := s.seq
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.run(ctx, HighResolution)
		s.mu.Lock()
		defer s.mu.Unlock()
		if seq == s.seq {
			s.state = schedIdle
			s.cancel = nil
		}
	}()
}

// close cancels any in-flight computation and waits for workers to exit.
// The scheduler cannot be reused afterwards.
func (s *scheduler) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}
