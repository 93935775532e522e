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
	"strings"
	"sync"
	"testing"
)

// TestGetLastErrorLatchSemantics exercises testable property 5: a second
// consecutive GetLastError call with no intervening failure reports absent.
func TestGetLastErrorLatchSemantics(t *testing.T) {
	defer freeErrorMessages()

	setError("boom")

	msg, ok := GetLastError()
	if !ok || msg != "boom" {
		t.Fatalf("GetLastError: want (%q, true), got (%q, %v)", "boom", msg, ok)
	}

	msg, ok = GetLastError()
	if ok || msg != "" {
		t.Errorf("GetLastError after consuming: want (\"\", false), got (%q, %v)", msg, ok)
	}
}

func TestGetLastErrorAbsentByDefault(t *testing.T) {
	defer freeErrorMessages()

	msg, ok := GetLastError()
	if ok || msg != "" {
		t.Errorf("GetLastError with nothing latched: want (\"\", false), got (%q, %v)", msg, ok)
	}
}

// TestErrorChannelIsPerGoroutine exercises testable property 4: concurrent
// goroutines each latching a distinct message must not observe each other's
// error.
func TestErrorChannelIsPerGoroutine(t *testing.T) {
	defer freeErrorMessages()

	const n = 50

	var wg sync.WaitGroup

	results := make([]string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			want := strings.Repeat("x", i%5+1)
			setError(want)

			got, ok := GetLastError()
			if !ok {
				results[i] = "MISSING"
				return
			}

			results[i] = got
		}(i)
	}

	wg.Wait()

	for i, got := range results {
		want := strings.Repeat("x", i%5+1)
		if got != want {
			t.Errorf("goroutine %d: want %q, got %q", i, want, got)
		}
	}
}

func TestFreeErrorMessagesClearsAllSlots(t *testing.T) {
	setError("leftover")
	freeErrorMessages()

	msg, ok := GetLastError()
	if ok || msg != "" {
		t.Errorf("GetLastError after freeErrorMessages: want (\"\", false), got (%q, %v)", msg, ok)
	}
}

func TestNewErrorLatchesFormattedMessage(t *testing.T) {
	defer freeErrorMessages()

	err := newError("openRead", "saves/slot1.sav", ErrNoSuchFile)

	msg, ok := GetLastError()
	if !ok {
		t.Fatal("GetLastError after newError: want an error latched, got none")
	}

	if msg != err.Error() {
		t.Errorf("GetLastError: want %q, got %q", err.Error(), msg)
	}
}
