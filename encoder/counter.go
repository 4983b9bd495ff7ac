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

// Counter range policies.

package encoder

import "fmt"

// RangeMode selects what happens when the counter value would move
// past the configured bounds.
type RangeMode int

const (
	Unbounded RangeMode = iota + 1 // No bounds applied
	Wrap                           // Wrap around into [min, max]
	Bounded                        // Clamp at min/max
)

func (m RangeMode) String() string {
	switch m {
	case Unbounded:
		return "unbounded"
	case Wrap:
		return "wrap"
	case Bounded:
		return "bounded"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseRangeMode converts a config string to a RangeMode.
func ParseRangeMode(s string) (RangeMode, error) {
	switch s {
	case "unbounded":
		return Unbounded, nil
	case "wrap":
		return Wrap, nil
	case "bounded":
		return Bounded, nil
	}
	return 0, fmt.Errorf("%s: unknown range mode", s)
}

// Counter holds the value adjusted by decoded rotation.
// Under Wrap and Bounded, the value stays within [min, max] inclusive.
// reverse is +1 or -1 and flips the effect of the decoded direction,
// compensating for mirrored channel wiring.
type Counter struct {
	value   int
	min     int
	max     int
	reverse int
	mode    RangeMode
}

// Apply adjusts the value by one step in the given direction,
// under the configured range policy. A None direction is ignored.
func (c *Counter) Apply(d Direction) {
	var incr int
	switch d {
	case Clockwise:
		incr = 1
	case CounterClockwise:
		incr = -1
	default:
		return
	}
	incr *= c.reverse
	switch c.mode {
	case Wrap:
		c.value = wrap(c.value, incr, c.min, c.max)
	case Bounded:
		c.value = clamp(c.value+incr, c.min, c.max)
	default:
		c.value += incr
	}
}

// Value returns the current counter value.
func (c *Counter) Value() int {
	return c.value
}

// wrap adds incr to value and wraps the result into [min, max] using
// floored modulo, so the result is correct for negative increments and
// for a value starting outside the range.
func wrap(value, incr, min, max int) int {
	rng := max - min + 1
	value += incr
	if value < min {
		value += rng * ((min-value)/rng + 1)
	}
	return min + (value-min)%rng
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
