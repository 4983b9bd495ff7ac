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

// Program to demonstrate decoding a quadrature encoder from raw
// edge-triggered inputs, without the counter layer.

package main

import (
	"flag"
	"log"

	"github.com/aamcrae/rotary/encoder"
	"github.com/aamcrae/rotary/io"
)

var clkPin = flag.Int("clk", 17, "GPIO pin for the clk channel")
var dtPin = flag.Int("dt", 27, "GPIO pin for the dt channel")

func main() {
	flag.Parse()
	clk, err := io.Pin(*clkPin, io.PULL_NONE)
	if err != nil {
		log.Fatalf("Pin %d: %v", *clkPin, err)
	}
	defer clk.Close()
	dt, err := io.Pin(*dtPin, io.PULL_NONE)
	if err != nil {
		log.Fatalf("Pin %d: %v", *dtPin, err)
	}
	defer dt.Close()
	var dec encoder.Decoder
	w, err := io.NewWatcher(clk, dt, func(c, d bool) {
		if dir := dec.Step(c, d); dir != encoder.None {
			log.Printf("%s", dir)
		}
	})
	if err != nil {
		log.Fatalf("watcher: %v", err)
	}
	defer w.Close()
	select {}
}
