//
//  Copyright 2020 The AVFS authors
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

package memfs

import (
	"sync/atomic"

	"github.com/MSylvia/physfs/dirreader"
)

// memFile is a handle over a node's byte slice, guarded by the owning
// MemFS's mutex since nodes are shared, mutable state.
type memFile struct {
	m      *MemFS
	n      *node
	pos    int64
	closed bool
}

var _ dirreader.FileHandle = (*memFile)(nil)

func (h *memFile) Read(p []byte) (int, error) {
	h.m.mu.RLock()
	defer h.m.mu.RUnlock()

	if h.pos >= int64(len(h.n.data)) {
		return 0, nil
	}

	n := copy(p, h.n.data[h.pos:])
	h.pos += int64(n)

	return n, nil
}

func (h *memFile) Write(p []byte) (int, error) {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()

	end := h.pos + int64(len(p))
	if end > int64(len(h.n.data)) {
		grown := make([]byte, end)
		copy(grown, h.n.data)
		h.n.data = grown
	}

	copy(h.n.data[h.pos:end], p)
	h.pos = end

	return len(p), nil
}

func (h *memFile) Eof() bool {
	h.m.mu.RLock()
	defer h.m.mu.RUnlock()

	return h.pos >= int64(len(h.n.data))
}

func (h *memFile) Tell() (int64, error) {
	return h.pos, nil
}

func (h *memFile) Seek(offset int64, whence int) (int64, error) {
	h.m.mu.RLock()
	size := int64(len(h.n.data))
	h.m.mu.RUnlock()

	var base int64

	switch whence {
	case 0:
		base = 0
	case 1:
		base = h.pos
	case 2:
		base = size
	}

	newPos := base + offset
	if newPos < 0 || newPos > size {
		return h.pos, dirreader.ErrPastEOF
	}

	h.pos = newPos

	return h.pos, nil
}

func (h *memFile) Length() (int64, error) {
	h.m.mu.RLock()
	defer h.m.mu.RUnlock()

	return int64(len(h.n.data)), nil
}

func (h *memFile) Close() error {
	if h.closed {
		return nil
	}

	h.closed = true
	atomic.AddInt64(&h.m.handles, -1)

	return nil
}
