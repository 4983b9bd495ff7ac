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

// Options for New and Set.

package encoder

// change is the pending configuration an option mutates. Set validates
// and commits the counter settings as a unit after all options have
// been applied.
type change struct {
	rotary *Rotary
	cnt    *Counter
}

// Option configures a Rotary at construction or via Set.
type Option func(*change)

// WithValue sets the counter value.
func WithValue(v int) Option {
	return func(c *change) {
		c.cnt.value = v
	}
}

// WithBounds sets the minimum and maximum counter values (inclusive).
func WithBounds(min, max int) Option {
	return func(c *change) {
		c.cnt.min = min
		c.cnt.max = max
	}
}

// WithReverse sets whether the decoded direction is inverted before
// being applied, for encoders with mirrored channel wiring.
func WithReverse(reverse bool) Option {
	return func(c *change) {
		c.cnt.reverse = sign(reverse)
	}
}

// WithMode sets the range policy.
func WithMode(m RangeMode) Option {
	return func(c *change) {
		c.cnt.mode = m
	}
}

// WithSource attaches the signal source so that Set can mask sample
// delivery while reconfiguring.
func WithSource(s Source) Option {
	return func(c *change) {
		c.rotary.src = s
	}
}
