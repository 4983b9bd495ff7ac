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

// Rotary encoder driver program.
// Decodes a quadrature rotary encoder attached to two GPIO pins and
// logs the value of the knob as it is turned.

package main

import (
	"flag"
	"log"

	"github.com/aamcrae/config"
	"github.com/aamcrae/rotary/encoder"
	"github.com/aamcrae/rotary/io"
)

var configFile = flag.String("config", "", "Configuration file")
var section = flag.String("knob", "knob", "Config section for the knob")
var clkPin = flag.Int("clk", 17, "GPIO pin for the clk channel")
var dtPin = flag.Int("dt", 27, "GPIO pin for the dt channel")
var minVal = flag.Int("min", 0, "Minimum counter value")
var maxVal = flag.Int("max", 10, "Maximum counter value")
var mode = flag.String("mode", "unbounded", "Range mode (unbounded, wrap, bounded)")
var reverse = flag.Bool("reverse", false, "Invert the rotation direction")
var pullup = flag.Bool("pullup", false, "Request pull-ups on both pins")
var port = flag.Int("port", 0, "Web server port number (0 to disable)")

func main() {
	flag.Parse()
	k, err := knobConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	rot, err := encoder.NewKnob(k)
	if err != nil {
		log.Fatalf("%s: %v", k.Name, err)
	}
	pull := io.PULL_NONE
	if k.PullUp {
		pull = io.PULL_UP
	}
	clk, err := io.Pin(k.Clk, pull)
	if err != nil {
		log.Fatalf("Pin %d: %v", k.Clk, err)
	}
	defer clk.Close()
	dt, err := io.Pin(k.Dt, pull)
	if err != nil {
		log.Fatalf("Pin %d: %v", k.Dt, err)
	}
	defer dt.Close()
	w, err := io.NewWatcher(clk, dt, func(c, d bool) {
		if dir := rot.Step(c, d); dir != encoder.None {
			log.Printf("%s: %s, value %d", k.Name, dir, rot.Value())
		}
	})
	if err != nil {
		log.Fatalf("%s: %v", k.Name, err)
	}
	defer w.Close()
	// Attach the watcher so reconfiguration masks sample delivery.
	err = rot.Set(encoder.WithSource(w))
	if err != nil {
		log.Fatalf("%s: %v", k.Name, err)
	}
	log.Printf("%s: pins clk %d dt %d, range [%d, %d], mode %s, value %d",
		k.Name, k.Clk, k.Dt, k.Min, k.Max, k.Mode, rot.Value())
	if *port != 0 {
		go encoder.Serve(*port, k.Name, rot)
	}
	select {}
}

// knobConfig builds the knob configuration, either from a config file
// section or from the command line flags.
func knobConfig() (*encoder.KnobConfig, error) {
	if *configFile != "" {
		conf, err := config.ParseFile(*configFile)
		if err != nil {
			return nil, err
		}
		return encoder.Config(conf, *section)
	}
	m, err := encoder.ParseRangeMode(*mode)
	if err != nil {
		return nil, err
	}
	return &encoder.KnobConfig{
		Name:    *section,
		Clk:     *clkPin,
		Dt:      *dtPin,
		Min:     *minVal,
		Max:     *maxVal,
		Value:   *minVal,
		Reverse: *reverse,
		Mode:    m,
		PullUp:  *pullup,
	}, nil
}
