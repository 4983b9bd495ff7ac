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

// HTTP server for knob status
package encoder

import (
	"fmt"
	"image/png"
	"log"
	"math"
	"net/http"

	"github.com/fogleman/gg"
)

const (
	dialSize   = 300
	dialMid    = dialSize / 2
	dialRadius = 120
)

// Serve runs a web server showing the state of the knob.
// /dial.png renders the current value as a dial, and /value returns
// the value as plain text for scripting.
func Serve(port int, name string, r *Rotary) {
	http.Handle("/dial.png", http.HandlerFunc(dialHandler(name, r)))
	http.Handle("/value", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, "%d\n", r.Value())
	}))
	url := fmt.Sprintf(":%d", port)
	log.Printf("Starting server on %s", url)
	server := &http.Server{Addr: url}
	log.Fatal(server.ListenAndServe())
}

func dialHandler(name string, r *Rotary) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		c := gg.NewContext(dialSize, dialSize)
		c.SetRGB(1, 1, 1)
		c.Clear()
		c.SetRGB(0, 0, 0)
		c.SetLineWidth(3)
		c.DrawCircle(dialMid, dialMid, dialRadius)
		c.Stroke()
		p, span := r.Position()
		drawTicks(c, span)
		drawNeedle(c, p, span)
		c.DrawStringAnchored(fmt.Sprintf("%s: %d", name, r.Value()),
			dialMid, dialSize-20, 0.5, 0.5)
		err := png.Encode(w, c.Image())
		if err != nil {
			log.Printf("Error writing image: %v\n", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}

// drawTicks draws a tick mark for each position on the dial, up to a
// limit so a wide range does not turn the rim solid.
func drawTicks(c *gg.Context, span int) {
	ticks := span
	if ticks > 60 {
		ticks = 60
	}
	for i := 0; i < ticks; i++ {
		radians := float64(i) * 2 * math.Pi / float64(ticks)
		x1 := float64(dialRadius-8)*math.Sin(radians) + dialMid
		y1 := dialMid - float64(dialRadius-8)*math.Cos(radians)
		x2 := float64(dialRadius)*math.Sin(radians) + dialMid
		y2 := dialMid - float64(dialRadius)*math.Cos(radians)
		c.SetLineWidth(1)
		c.DrawLine(x1, y1, x2, y2)
		c.Stroke()
	}
}

func drawNeedle(c *gg.Context, p, span int) {
	radians := float64(p) * 2 * math.Pi / float64(span)
	x := float64(dialRadius-15)*math.Sin(radians) + dialMid
	y := dialMid - float64(dialRadius-15)*math.Cos(radians)
	c.SetRGB(1, 0, 0)
	c.SetLineWidth(4)
	c.DrawLine(dialMid, dialMid, x, y)
	c.Stroke()
}
