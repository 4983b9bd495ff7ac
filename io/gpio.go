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

// Package io manages GPIO input pins via the sysfs interface.

package io

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"golang.org/x/sys/unix"
)

// Edge
const (
	NONE    = iota // Default
	RISING  = iota
	FALLING = iota
	BOTH    = iota
)

// Pull resistor request.
const (
	PULL_NONE = iota // Default
	PULL_UP   = iota
	PULL_DOWN = iota
)

const (
	baseDir      = "/sys/class/gpio/"
	exportFile   = baseDir + "export"
	unexportFile = baseDir + "unexport"
	valueFile    = "/value"
)

const verifyTimeout = 2 * time.Second

// Verify will wait for exported files to become writable.
// This is necessary if the process is not running as root - systemd
// and udev will change the group permissions on the exported files, but
// this takes some time to do. If we try and access the files before
// the file group/modes are changed, we will get a permission error.
var Verify = false

// EdgeDenied lists pins that must not be used as edge-triggered
// interrupt sources. Some SoCs cannot route an interrupt from every
// pin; platform setup code populates this before pins are opened, and
// Edge rejects a listed pin with a descriptive error.
var EdgeDenied []int

// Gpio represents one GPIO input pin.
type Gpio struct {
	number int
	value  *os.File
	buf    []byte
}

func init() {
	// If the user is not root, enable Verify mode
	u, err := user.Current()
	if err == nil && u.Uid != "0" {
		Verify = true
	}
}

// Pin opens a GPIO pin as an input.
// The sysfs interface cannot program pull resistors, so any pull
// request other than PULL_NONE is rejected rather than silently
// ignored - an encoder without its expected pulls reads garbage.
func Pin(gpio, pull int) (*Gpio, error) {
	if pull != PULL_NONE {
		return nil, fmt.Errorf("gpio%d: pull resistors are not programmable via sysfs", gpio)
	}
	g := new(Gpio)
	g.number = gpio
	g.buf = make([]byte, 1)

	err := export(g.number)
	if err != nil {
		return nil, err
	}
	err = writeFile(fmt.Sprintf("%s/gpio%d/direction", baseDir, gpio), "in")
	if err != nil {
		unexport(gpio)
		return nil, err
	}
	err = g.Edge(NONE)
	if err != nil {
		unexport(gpio)
		return nil, err
	}
	g.value, err = os.OpenFile(fmt.Sprintf("%s/gpio%d%s", baseDir, gpio, valueFile), os.O_RDWR, 0600)
	if err != nil {
		unexport(gpio)
		return nil, err
	}
	return g, nil
}

// Edge sets the edge detection on the GPIO pin.
func (g *Gpio) Edge(e int) error {
	if e != NONE {
		for _, d := range EdgeDenied {
			if d == g.number {
				return fmt.Errorf("gpio%d: not available as an edge interrupt source on this platform", g.number)
			}
		}
	}
	var s string
	switch e {
	case NONE:
		s = "none"
	case RISING:
		s = "rising"
	case FALLING:
		s = "falling"
	case BOTH:
		s = "both"
	default:
		return fmt.Errorf("gpio%d: unknown edge", g.number)
	}
	return writeFile(fmt.Sprintf("%s/gpio%d/edge", baseDir, g.number), s)
}

// Read returns the current value of the GPIO pin without waiting.
func (g *Gpio) Read() (int, error) {
	_, err := g.value.ReadAt(g.buf, 0)
	if err != nil {
		return 0, err
	}
	if g.buf[0] == '0' {
		return 0, nil
	} else if g.buf[0] == '1' {
		return 1, nil
	} else {
		return 0, fmt.Errorf("gpio%d: unknown value %s", g.number, g.buf)
	}
}

// Close the GPIO pin and unexport it.
func (g *Gpio) Close() {
	g.value.Close()
	unexport(g.number)
}

func unexport(g int) error {
	return writeFile(unexportFile, fmt.Sprintf("%d", g))
}

func export(g int) error {
	// Check if directory and files already exist.
	val := fmt.Sprintf("%s/gpio%d%s", baseDir, g, valueFile)
	err := unix.Access(val, unix.W_OK|unix.R_OK)
	if err == nil {
		return nil
	}
	err = writeFile(exportFile, fmt.Sprintf("%d", g))
	if err == nil && Verify {
		return verifyFile(val)
	}
	return err
}

func writeFile(fname, s string) error {
	f, err := os.OpenFile(fname, os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write([]byte(s))
	return err
}

// Wait for file to become writable
func verifyFile(f string) error {
	var tout time.Duration
	sl := time.Millisecond
	for tout = 0; tout < verifyTimeout; tout += sl {
		err := unix.Access(f, unix.W_OK)
		if err == nil {
			return nil
		}
		time.Sleep(sl)
	}
	return fmt.Errorf("%s: not writable", f)
}
