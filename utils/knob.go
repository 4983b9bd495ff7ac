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

// Interactive knob utility.
// Runs a knob against live hardware and accepts commands to
// reconfigure it while samples are being delivered, which exercises
// the suspend/update/resume path of the driver.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aamcrae/config"
	"github.com/aamcrae/rotary/encoder"
	"github.com/aamcrae/rotary/io"
)

var configFile = flag.String("config", "", "Configuration file")
var section = flag.String("knob", "knob", "Config section for the knob")

func main() {
	flag.Parse()
	conf, err := config.ParseFile(*configFile)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	k, err := encoder.Config(conf, *section)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
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
		rot.Step(c, d)
	})
	if err != nil {
		log.Fatalf("%s: %v", k.Name, err)
	}
	defer w.Close()
	if err := rot.Set(encoder.WithSource(w)); err != nil {
		log.Fatalf("%s: %v", k.Name, err)
	}
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s value %d\n", k.Name, rot.Value())
		fmt.Print("Enter command ('help' for help) ")
		text, _ := reader.ReadString('\n')
		text = strings.TrimSuffix(text, "\n")
		var min, max, value int
		var word string
		switch {
		case text == "help":
			fmt.Println("  help - print help")
			fmt.Println("  v - print current value")
			fmt.Println("  set NNN - set value")
			fmt.Println("  range MIN MAX - set bounds")
			fmt.Println("  mode unbounded|wrap|bounded - set range mode")
			fmt.Println("  reverse on|off - set direction reversal")
			fmt.Println("  reset - reset value to 0")
			fmt.Println("  q - quit")
		case text == "q":
			return
		case text == "v":
		case text == "reset":
			rot.Reset()
		case scan(text, "set %d", &value):
			report(rot.Set(encoder.WithValue(value)))
		case scan(text, "range %d %d", &min, &max):
			report(rot.Set(encoder.WithBounds(min, max)))
		case scan(text, "mode %s", &word):
			m, err := encoder.ParseRangeMode(word)
			if err != nil {
				fmt.Printf("%v\n", err)
			} else {
				report(rot.Set(encoder.WithMode(m)))
			}
		case scan(text, "reverse %s", &word):
			report(rot.Set(encoder.WithReverse(word == "on")))
		default:
			fmt.Printf("Unrecognised input\n")
		}
	}
}

func scan(text, format string, args ...interface{}) bool {
	n, err := fmt.Sscanf(text, format, args...)
	return err == nil && n == len(args)
}

func report(err error) {
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}
