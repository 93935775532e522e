// Package goid extracts the calling goroutine's runtime id.
//
// Go deliberately has no public goroutine-local-storage facility: the
// runtime treats goroutine identity as an implementation detail. The
// retrieval pack for this module carries no library that fills the gap (the
// common community approach, github.com/petermattis/goid, uses a linkname
// trick to a private runtime symbol and isn't present anywhere in the pack),
// so this package implements the well-known fallback directly: it parses the
// "goroutine N [...]" header that runtime.Stack always emits as the first
// line of a single-goroutine dump.
//
// This is deliberately the only place in the module that performs this kind
// of parsing; every other package treats the goroutine id as an opaque key.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

// Current returns the id of the calling goroutine.
//
// The id is stable for the lifetime of the goroutine and is never reused
// concurrently, which is all the error channel (spec.md §4.1) requires: it
// does not need to survive the goroutine's exit.
func Current() int64 {
	var buf [64]byte

	n := runtime.Stack(buf[:], false)
	data := buf[:n]

	const prefix = "goroutine "

	data = data[len(prefix):]

	end := bytes.IndexByte(data, ' ')
	if end < 0 {
		return 0
	}

	id, err := strconv.ParseInt(string(data[:end]), 10, 64)
	if err != nil {
		return 0
	}

	return id
}
