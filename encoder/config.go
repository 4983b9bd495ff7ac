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

import (
	"fmt"
	"strconv"

	"github.com/aamcrae/config"
)

// Configuration data for one encoder knob, read from a configuration file.
type KnobConfig struct {
	Name    string
	Clk     int       // GPIO pin for the clock channel
	Dt      int       // GPIO pin for the data channel
	Min     int
	Max     int
	Value   int       // Initial value
	Reverse bool
	Mode    RangeMode
	PullUp  bool
}

// Config reads and validates a KnobConfig from a config file section.
// Only the pins are mandatory; the remaining keys default to the range
// [0, 10], unbounded mode, no reversal, no pull-up, and an initial
// value of Min.
// Sample config:
//  [volume]                 # name of knob
//  pins=17,27               # GPIO pins for the clk and dt channels
//  range=0,20               # min,max counter values
//  mode=wrap                # unbounded, wrap or bounded
//  reverse=true             # invert the rotation direction
//  pullup=true              # enable pull-ups on both pins
//  value=5                  # initial value
func Config(conf *config.Config, name string) (*KnobConfig, error) {
	s := conf.GetSection(name)
	if s == nil {
		return nil, fmt.Errorf("no config for %s", name)
	}
	k := &KnobConfig{Name: name, Min: 0, Max: 10, Mode: Unbounded}
	n, err := s.Parse("pins", "%d,%d", &k.Clk, &k.Dt)
	if err != nil {
		return nil, fmt.Errorf("pins: %v", err)
	}
	if n != 2 {
		return nil, fmt.Errorf("invalid pins arguments")
	}
	if _, err := s.GetArg("range"); err == nil {
		n, err = s.Parse("range", "%d,%d", &k.Min, &k.Max)
		if err != nil {
			return nil, fmt.Errorf("range: %v", err)
		}
		if n != 2 {
			return nil, fmt.Errorf("invalid range arguments")
		}
	}
	k.Value = k.Min
	if m, err := s.GetArg("mode"); err == nil {
		k.Mode, err = ParseRangeMode(m)
		if err != nil {
			return nil, fmt.Errorf("mode: %v", err)
		}
	}
	if v, err := s.GetArg("reverse"); err == nil {
		k.Reverse, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("reverse: %v", err)
		}
	}
	if v, err := s.GetArg("pullup"); err == nil {
		k.PullUp, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("pullup: %v", err)
		}
	}
	if _, err := s.GetArg("value"); err == nil {
		n, err = s.Parse("value", "%d", &k.Value)
		if err != nil {
			return nil, fmt.Errorf("value: %v", err)
		}
		if n != 1 {
			return nil, fmt.Errorf("value: argument count")
		}
	}
	if k.Mode != Unbounded && k.Min > k.Max {
		return nil, fmt.Errorf("range [%d, %d]: min exceeds max", k.Min, k.Max)
	}
	return k, nil
}

// NewKnob builds a Rotary from a parsed config.
func NewKnob(k *KnobConfig) (*Rotary, error) {
	return New(k.Min, k.Max, k.Reverse, k.Mode, WithValue(k.Value))
}
