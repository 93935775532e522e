//
//  Copyright 2022 The AVFS authors
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

package zipfs

import (
	"sync/atomic"

	"github.com/MSylvia/physfs/dirreader"
)

// zipFile is a read-only handle over a fully buffered archive entry.
type zipFile struct {
	z      *ZipFS
	data   []byte
	pos    int64
	closed bool
}

var _ dirreader.FileHandle = (*zipFile)(nil)

func (h *zipFile) Read(p []byte) (int, error) {
	if h.pos >= int64(len(h.data)) {
		return 0, nil
	}

	n := copy(p, h.data[h.pos:])
	h.pos += int64(n)

	return n, nil
}

// Write always fails: archive entries are read-only (spec.md non-goals).
func (h *zipFile) Write([]byte) (int, error) {
	return 0, dirreader.ErrNotSupported
}

func (h *zipFile) Eof() bool {
	return h.pos >= int64(len(h.data))
}

func (h *zipFile) Tell() (int64, error) {
	return h.pos, nil
}

func (h *zipFile) Seek(offset int64, whence int) (int64, error) {
	var base int64

	switch whence {
	case 0:
		base = 0
	case 1:
		base = h.pos
	case 2:
		base = int64(len(h.data))
	}

	newPos := base + offset
	if newPos < 0 || newPos > int64(len(h.data)) {
		return h.pos, dirreader.ErrPastEOF
	}

	h.pos = newPos

	return h.pos, nil
}

func (h *zipFile) Length() (int64, error) {
	return int64(len(h.data)), nil
}

func (h *zipFile) Close() error {
	if h.closed {
		return nil
	}

	h.closed = true
	atomic.AddInt64(&h.z.handles, -1)
	h.data = nil

	return nil
}
