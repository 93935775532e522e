//
//  Copyright 2021 The AVFS authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package physfs

import (
	"sync"

	"github.com/MSylvia/physfs/internal/goid"
)

// errMessageMax mirrors the original's fixed 80-byte message buffer: setError
// truncates every message to this many bytes, so getLastError() callers
// always receive a short, single-line message.
const errMessageMax = 79

// errSlot is one goroutine's latched last-error message.
type errSlot struct {
	present bool
	message string
}

// errChannel is the process-global per-goroutine error channel of spec.md
// §4.1. The mutex guards the slot map: every lookup and insertion takes it.
// A slot's own fields are read and written without the mutex, since only its
// owning goroutine ever touches them.
type errChannel struct {
	mu    sync.Mutex
	slots map[int64]*errSlot
}

var globalErrChannel = &errChannel{slots: make(map[int64]*errSlot)} //nolint:gochecknoglobals

// slotFor returns the calling goroutine's slot, allocating it if absent.
func (ec *errChannel) slotFor(id int64) *errSlot {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	slot, ok := ec.slots[id]
	if !ok {
		slot = &errSlot{}
		ec.slots[id] = slot
	}

	return slot
}

// setError latches msg, truncated to errMessageMax bytes, to the calling
// goroutine's slot. There is no allocation-failure path in Go (unlike the C
// original, where a failed malloc silently drops the message); logging of
// the event, if any, happens at the call site via the package logger.
func setError(msg string) {
	if len(msg) > errMessageMax {
		msg = msg[:errMessageMax]
	}

	slot := globalErrChannel.slotFor(goid.Current())
	slot.message = msg
	slot.present = true
}

// GetLastError returns the calling goroutine's latched error message and
// clears it (single-consumption latch semantics, spec.md §7/§8 property 5).
// It returns ("", false) if no error is latched.
func GetLastError() (string, bool) {
	slot := globalErrChannel.slotFor(goid.Current())
	if !slot.present {
		return "", false
	}

	slot.present = false

	return slot.message, true
}

// freeErrorMessages drops every goroutine's latched error. Called only from
// Deinit, as in the original.
func freeErrorMessages() {
	globalErrChannel.mu.Lock()
	defer globalErrChannel.mu.Unlock()

	globalErrChannel.slots = make(map[int64]*errSlot)
}
