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

// Package encoder decodes quadrature rotary encoder signals and
// maintains a bounded counter driven by the decoded rotation.
package encoder

// Direction is the result of decoding one signal sample.
type Direction int

const (
	None Direction = iota
	Clockwise
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "none"
	}
}

// Decoder states. The low 3 bits of a table entry select the next state;
// a direction flag may be set alongside the next state.
const (
	rStart = iota
	rCw1
	rCw2
	rCw3
	rCcw1
	rCcw2
	rCcw3
	rIllegal

	stateMask = 0x07
	dirCw     = 0x10
	dirCcw    = 0x20
	dirMask   = 0x30
)

// transitions maps (current state, 2-bit sample) to the next state.
// The sample code is (clk << 1) | dt. A direction flag is emitted only
// on the transition that completes a full 4-phase cycle (*_3 back to
// START on code 11), so a bounce that reverses mid-cycle unwinds
// without ever reporting a step. Read-only after init.
var transitions = [8][4]byte{
	//  00        01        10        11
	{rStart, rCcw1, rCw1, rStart},            // START
	{rCw2, rStart, rCw1, rStart},             // CW_1
	{rCw2, rCw3, rCw1, rStart},               // CW_2
	{rCw2, rCw3, rStart, rStart | dirCw},     // CW_3
	{rCcw2, rCcw1, rStart, rStart},           // CCW_1
	{rCcw2, rCcw1, rCcw3, rStart},            // CCW_2
	{rCcw2, rStart, rCcw3, rStart | dirCcw},  // CCW_3
	{rStart, rStart, rStart, rStart},         // ILLEGAL
}

// Decoder is a quadrature decoder state machine.
// One Step call consumes one sample of the two channel levels and
// reports a direction once per complete detent cycle.
// The table is total, so there is no error path; noisy or incomplete
// sequences route back towards START.
type Decoder struct {
	state byte
}

// Step feeds one sample of the channel levels to the decoder.
func (d *Decoder) Step(clk, dt bool) Direction {
	code := 0
	if clk {
		code |= 2
	}
	if dt {
		code |= 1
	}
	next := transitions[d.state&stateMask][code]
	d.state = next & stateMask
	switch next & dirMask {
	case dirCw:
		return Clockwise
	case dirCcw:
		return CounterClockwise
	}
	return None
}

// Reset forces the decoder back to the START state, discarding any
// partially observed cycle.
func (d *Decoder) Reset() {
	d.state = rStart
}
