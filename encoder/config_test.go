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
	"os"
	"path/filepath"
	"testing"

	"github.com/aamcrae/config"
)

const testConf = `[volume]
pins=17,27
range=0,20
mode=wrap
reverse=true
pullup=true
value=5

[basic]
pins=5,6

[badmode]
pins=1,2
mode=sideways

[badrange]
pins=1,2
range=9,3
mode=bounded

[nopins]
range=0,5
`

func parseTestConf(t *testing.T) *config.Config {
	t.Helper()
	f := filepath.Join(t.TempDir(), "rotary.conf")
	if err := os.WriteFile(f, []byte(testConf), 0o644); err != nil {
		t.Fatalf("write %s: %v", f, err)
	}
	conf, err := config.ParseFile(f)
	if err != nil {
		t.Fatalf("parse %s: %v", f, err)
	}
	return conf
}

func TestConfigFull(t *testing.T) {
	conf := parseTestConf(t)
	k, err := Config(conf, "volume")
	if err != nil {
		t.Fatalf("volume: %v", err)
	}
	if k.Clk != 17 || k.Dt != 27 {
		t.Errorf("pins: expected 17/27, got %d/%d", k.Clk, k.Dt)
	}
	if k.Min != 0 || k.Max != 20 {
		t.Errorf("range: expected [0, 20], got [%d, %d]", k.Min, k.Max)
	}
	if k.Mode != Wrap {
		t.Errorf("mode: expected wrap, got %s", k.Mode)
	}
	if !k.Reverse || !k.PullUp {
		t.Errorf("flags: expected reverse and pullup set")
	}
	if k.Value != 5 {
		t.Errorf("value: expected 5, got %d", k.Value)
	}
}

func TestConfigDefaults(t *testing.T) {
	conf := parseTestConf(t)
	k, err := Config(conf, "basic")
	if err != nil {
		t.Fatalf("basic: %v", err)
	}
	if k.Min != 0 || k.Max != 10 || k.Mode != Unbounded {
		t.Errorf("defaults: got [%d, %d] %s", k.Min, k.Max, k.Mode)
	}
	if k.Value != k.Min {
		t.Errorf("default value: expected %d, got %d", k.Min, k.Value)
	}
	if k.Reverse || k.PullUp {
		t.Errorf("defaults: reverse/pullup should be off")
	}
}

func TestConfigErrors(t *testing.T) {
	conf := parseTestConf(t)
	for _, section := range []string{"badmode", "badrange", "nopins", "missing"} {
		if _, err := Config(conf, section); err == nil {
			t.Errorf("%s: expected error", section)
		}
	}
}

func TestNewKnob(t *testing.T) {
	conf := parseTestConf(t)
	k, err := Config(conf, "volume")
	if err != nil {
		t.Fatalf("volume: %v", err)
	}
	r, err := NewKnob(k)
	if err != nil {
		t.Fatalf("NewKnob: %v", err)
	}
	if r.Value() != 5 {
		t.Fatalf("initial value: expected 5, got %d", r.Value())
	}
	// With reversal configured, clockwise detents decrement.
	turn(r, 6)
	if r.Value() != 20 {
		t.Fatalf("6 cw from 5 with reversal in [0,20] wrap: expected 20, got %d", r.Value())
	}
}
