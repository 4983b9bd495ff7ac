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

// Simulator knob program.
// Drives a rotary encoder core with synthetic quadrature waveforms so
// the decoder and range policies can be exercised without hardware.

package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/aamcrae/rotary/encoder"
)

// One detent is a 4-phase Gray code cycle of the (clk, dt) levels,
// starting and ending at the 11 rest position.
var cwCycle = [][2]bool{{true, false}, {false, false}, {false, true}, {true, true}}
var ccwCycle = [][2]bool{{false, true}, {false, false}, {true, false}, {true, true}}

var port = flag.Int("port", 0, "Web server port number (0 to disable)")
var bounce = flag.Int("bounce", 20, "Percentage of detents with contact bounce")
var seed = flag.Int64("seed", 0, "Random seed (0 uses the current time)")

type knob struct {
	name string
	rot  *encoder.Rotary
	turn []int // Script of detents to turn, +ve CW, -ve CCW
}

func main() {
	flag.Parse()
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(*seed))
	var knobs []*knob
	for _, p := range []struct {
		name     string
		min, max int
		mode     encoder.RangeMode
		turn     []int
	}{
		{"volume", 0, 20, encoder.Bounded, []int{15, 10, -40}},
		{"channel", 0, 9, encoder.Wrap, []int{23, -5}},
		{"jog", 0, 0, encoder.Unbounded, []int{50, -120}},
	} {
		rot, err := encoder.New(p.min, p.max, false, p.mode)
		if err != nil {
			log.Fatalf("%s: %v", p.name, err)
		}
		knobs = append(knobs, &knob{name: p.name, rot: rot, turn: p.turn})
	}
	if *port != 0 {
		go encoder.Serve(*port, knobs[0].name, knobs[0].rot)
	}
	for _, k := range knobs {
		for _, t := range k.turn {
			k.spin(rnd, t)
		}
		fmt.Printf("%s: final value %d\n", k.name, k.rot.Value())
	}
}

// spin turns the knob the given number of detents, injecting contact
// bounce on a percentage of them. A bounce backs partway into a cycle
// and out again before the detent completes; the decoder must not
// count it.
func (k *knob) spin(rnd *rand.Rand, detents int) {
	cycle := cwCycle
	if detents < 0 {
		cycle = ccwCycle
		detents = -detents
	}
	for i := 0; i < detents; i++ {
		if rnd.Intn(100) < *bounce {
			// Start the cycle, bounce back to rest, then start over.
			k.step(cycle[0])
			k.step([2]bool{true, true})
			k.step(cycle[0])
			k.step(cycle[1])
			k.step(cycle[0])
			k.step(cycle[1])
		}
		for _, s := range cycle {
			k.step(s)
		}
	}
}

func (k *knob) step(s [2]bool) {
	if d := k.rot.Step(s[0], s[1]); d != encoder.None {
		fmt.Printf("%s: %s, value %d\n", k.name, d, k.rot.Value())
	}
}
