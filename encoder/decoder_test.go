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

package encoder

import "testing"

// One clean detent in each direction, as (clk, dt) level pairs from
// the 11 rest position.
var cwDetent = [][2]bool{{true, false}, {false, false}, {false, true}, {true, true}}
var ccwDetent = [][2]bool{{false, true}, {false, false}, {true, false}, {true, true}}

func feed(t *testing.T, d *Decoder, samples [][2]bool) []Direction {
	t.Helper()
	var dirs []Direction
	for _, s := range samples {
		if dir := d.Step(s[0], s[1]); dir != None {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func TestTableTotal(t *testing.T) {
	for s := 0; s < 8; s++ {
		for c := 0; c < 4; c++ {
			next := transitions[s][c]
			if int(next&stateMask) > rIllegal {
				t.Errorf("state %d code %d: next state %d out of range", s, c, next&stateMask)
			}
			switch next & dirMask {
			case 0:
			case dirCw, dirCcw:
				// A direction is only ever emitted on the
				// transition back to START.
				if next&stateMask != rStart {
					t.Errorf("state %d code %d: direction flag without START", s, c)
				}
			default:
				t.Errorf("state %d code %d: bad direction flags %#x", s, c, next&dirMask)
			}
		}
	}
}

func TestClockwiseDetent(t *testing.T) {
	var d Decoder
	dirs := feed(t, &d, cwDetent)
	if len(dirs) != 1 || dirs[0] != Clockwise {
		t.Fatalf("expected one clockwise event, got %v", dirs)
	}
	if d.state != rStart {
		t.Fatalf("decoder not back at start (state %d)", d.state)
	}
}

func TestCounterClockwiseDetent(t *testing.T) {
	var d Decoder
	dirs := feed(t, &d, ccwDetent)
	if len(dirs) != 1 || dirs[0] != CounterClockwise {
		t.Fatalf("expected one counter-clockwise event, got %v", dirs)
	}
	if d.state != rStart {
		t.Fatalf("decoder not back at start (state %d)", d.state)
	}
}

// The direction must be reported on the final transition of the cycle
// and not before.
func TestEmissionPoint(t *testing.T) {
	var d Decoder
	for i, s := range cwDetent[:3] {
		if dir := d.Step(s[0], s[1]); dir != None {
			t.Fatalf("sample %d: premature direction %v", i, dir)
		}
	}
	if dir := d.Step(true, true); dir != Clockwise {
		t.Fatalf("final sample: expected clockwise, got %v", dir)
	}
}

// A half-cycle bounce that returns to rest must never count.
func TestBounce(t *testing.T) {
	var d Decoder
	bounce := [][2]bool{
		{true, false}, {true, true},
		{true, false}, {true, true},
		{true, false}, {false, false}, {true, false}, {false, false},
		{true, true},
	}
	for i := 0; i < 10; i++ {
		if dirs := feed(t, &d, bounce); dirs != nil {
			t.Fatalf("iteration %d: bounce emitted %v", i, dirs)
		}
	}
	// A clean detent still counts after all that noise.
	if dirs := feed(t, &d, cwDetent); len(dirs) != 1 || dirs[0] != Clockwise {
		t.Fatalf("post-bounce detent: got %v", dirs)
	}
}

// A reversal mid-cycle unwinds without emitting in either direction.
func TestMidCycleReversal(t *testing.T) {
	var d Decoder
	seq := [][2]bool{
		{true, false}, {false, false}, {false, true}, // 3/4 clockwise
		{false, false}, {true, false}, // back out
		{true, true}, // rest
	}
	if dirs := feed(t, &d, seq); dirs != nil {
		t.Fatalf("reversal emitted %v", dirs)
	}
}

func TestDecoderReset(t *testing.T) {
	var d Decoder
	// Advance partway into a clockwise cycle, then reset.
	feed(t, &d, cwDetent[:3])
	d.Reset()
	if d.state != rStart {
		t.Fatalf("state %d after reset", d.state)
	}
	// The remaining sample of the cycle must not complete a detent.
	if dir := d.Step(true, true); dir != None {
		t.Fatalf("detent completed across reset: %v", dir)
	}
}

// Every state must find its way back to START within a bounded number
// of rest samples, so no input sequence can wedge the decoder.
func TestSelfRecovery(t *testing.T) {
	for s := 0; s < 8; s++ {
		d := Decoder{state: byte(s)}
		d.Step(true, true)
		if d.state != rStart {
			t.Errorf("state %d: rest sample did not recover to start (state %d)", s, d.state)
		}
	}
}
