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

// Edge watcher for quadrature input pairs.

package io

import (
	"log"
	"sync"

	"golang.org/x/sys/unix"
)

// Watcher watches the two channel pins of a quadrature encoder and
// delivers the pin levels to a handler whenever either pin sees an
// edge. Both pins are serviced by a single poll loop, so the handler
// is never invoked reentrantly - even when the two channels toggle
// back to back, the samples arrive one at a time.
//
// Suspend masks delivery; it does not return while a handler call is
// in flight, and edges arriving while suspended are dropped, matching
// the behaviour of a masked interrupt line.
type Watcher struct {
	clk, dt   *Gpio
	handler   func(clk, dt bool)
	mu        sync.Mutex // Guards suspended/closed against the dispatch path
	suspended bool
	closed    bool
}

// NewWatcher enables edge detection on both pins and starts the
// delivery goroutine. The handler receives the current levels of both
// pins after every edge on either pin.
func NewWatcher(clk, dt *Gpio, handler func(clk, dt bool)) (*Watcher, error) {
	if err := clk.Edge(BOTH); err != nil {
		return nil, err
	}
	if err := dt.Edge(BOTH); err != nil {
		return nil, err
	}
	w := &Watcher{clk: clk, dt: dt, handler: handler}
	go w.run()
	return w, nil
}

// Suspend masks sample delivery. On return, no handler call is in
// flight and none will start until Resume.
func (w *Watcher) Suspend() {
	w.mu.Lock()
	w.suspended = true
	w.mu.Unlock()
}

// Resume unmasks sample delivery.
func (w *Watcher) Resume() {
	w.mu.Lock()
	w.suspended = false
	w.mu.Unlock()
}

// Close stops delivery permanently. The pins remain open; closing
// them is up to the caller, and unblocks the poll loop if it is
// waiting for an edge.
func (w *Watcher) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}

// run is the single exclusion domain for sample delivery.
// Both pin file descriptors are polled together; whichever pin fired,
// the current levels of both are read and handed over as one sample.
func (w *Watcher) run() {
	fds := []unix.PollFd{
		{Fd: int32(w.clk.value.Fd()), Events: unix.POLLPRI | unix.POLLERR},
		{Fd: int32(w.dt.value.Fd()), Events: unix.POLLPRI | unix.POLLERR},
	}
	for {
		fds[0].Revents = 0
		fds[1].Revents = 0
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return
		}
		w.mu.Unlock()
		if err != nil {
			log.Fatalf("gpio poll: %v", err)
		}
		c, cerr := w.clk.Read()
		d, derr := w.dt.Read()
		if cerr != nil || derr != nil {
			w.mu.Lock()
			closed := w.closed
			w.mu.Unlock()
			if closed {
				return
			}
			log.Fatalf("encoder input: clk %v, dt %v", cerr, derr)
		}
		w.mu.Lock()
		if !w.suspended && !w.closed {
			w.handler(c == 1, d == 1)
		}
		w.mu.Unlock()
	}
}
