// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Rotary encoder core.

package encoder

import (
	"fmt"
	"sync"
)

// Source is the inbound signal source feeding samples to Step.
// Suspend masks delivery of new samples and does not return while a
// sample is still being processed; Resume unmasks delivery. Used to
// hold off the signal path during reconfiguration.
type Source interface {
	Suspend()
	Resume()
}

// Rotary combines a quadrature Decoder with a range-policy Counter.
// Step is driven by the signal source; Value, Set and Reset are called
// from application code. A single mutex forms the exclusion domain for
// the decoder state and counter, so the pair is never observed
// half-updated. Step itself does no allocation and no blocking beyond
// the mutex, so it is safe to call from an edge-delivery goroutine.
type Rotary struct {
	mu  sync.Mutex
	dec Decoder
	cnt Counter
	src Source
}

// New creates a Rotary with the given bounds, direction reversal and
// range mode. The initial value defaults to min; use WithValue to
// override it. min > max is rejected for the Wrap and Bounded modes.
func New(min, max int, reverse bool, mode RangeMode, opts ...Option) (*Rotary, error) {
	r := new(Rotary)
	r.cnt.min = min
	r.cnt.max = max
	r.cnt.reverse = sign(reverse)
	r.cnt.mode = mode
	r.cnt.value = min
	if err := r.cnt.validate(); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&change{rotary: r, cnt: &r.cnt})
	}
	if err := r.cnt.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Step feeds one sample of the two channel levels into the decoder,
// and applies any completed step to the counter. The direction applied
// (if any) is returned. Never fails; a noisy or incomplete sequence
// simply decodes to no movement.
func (r *Rotary) Step(clk, dt bool) Direction {
	r.mu.Lock()
	d := r.dec.Step(clk, dt)
	r.cnt.Apply(d)
	r.mu.Unlock()
	return d
}

// Value returns the current counter value.
func (r *Rotary) Value() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cnt.Value()
}

// Reset sets the value back to zero. The bounds, mode and decoder
// state are left alone; use Set to reconfigure.
func (r *Rotary) Reset() {
	r.mu.Lock()
	r.cnt.value = 0
	r.mu.Unlock()
}

// Position returns the current value as an offset from the minimum
// bound, along with the number of positions in the configured range.
// For an unbounded counter the value is folded into one notional
// revolution of 24 positions, so a dial can still be drawn for it.
func (r *Rotary) Position() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cnt.mode == Unbounded {
		const rev = 24
		return wrap(r.cnt.value, 0, 0, rev-1), rev
	}
	rng := r.cnt.max - r.cnt.min + 1
	return wrap(r.cnt.value, 0, r.cnt.min, r.cnt.max) - r.cnt.min, rng
}

// Set applies a partial reconfiguration. Only the fields named by the
// supplied options change; everything else keeps its prior setting.
// The signal source (if attached) is suspended for the duration so a
// sample is never decoded against half-updated settings, and the
// decoder is reset to START since a bounds or mode change invalidates
// any partially observed cycle. The merged configuration is validated
// before anything is committed.
func (r *Rotary) Set(opts ...Option) error {
	if r.src != nil {
		r.src.Suspend()
		defer r.src.Resume()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cnt := r.cnt
	for _, opt := range opts {
		opt(&change{rotary: r, cnt: &cnt})
	}
	if err := cnt.validate(); err != nil {
		return err
	}
	r.cnt = cnt
	r.dec.Reset()
	return nil
}

// validate checks a counter configuration.
func (c *Counter) validate() error {
	switch c.mode {
	case Unbounded, Wrap, Bounded:
	default:
		return fmt.Errorf("range mode %d: unknown", int(c.mode))
	}
	if c.mode != Unbounded && c.min > c.max {
		return fmt.Errorf("range [%d, %d]: min exceeds max", c.min, c.max)
	}
	return nil
}

func sign(reverse bool) int {
	if reverse {
		return -1
	}
	return 1
}
