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

package physfs

import "sync"

// handle is the top-level FileHandle returned to callers of OpenRead,
// OpenWrite and OpenAppend. It enforces the Open→Closed state machine of
// spec.md §4.5, decrements the global open-write-file count exactly once on
// close for write/append handles, and refuses Write on a handle opened by
// OpenRead. Every other call passes through to the backend's handle, which
// reports an operation it lacks itself (e.g. ErrNotSupported).
type handle struct {
	mu       sync.Mutex
	fh       FileHandle
	writable bool
	closed   bool
}

var _ FileHandle = (*handle)(nil)

func (h *handle) Read(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, ErrNotSupported
	}

	return h.fh.Read(p)
}

func (h *handle) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || !h.writable {
		return 0, ErrNotSupported
	}

	return h.fh.Write(p)
}

func (h *handle) Eof() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return true
	}

	return h.fh.Eof()
}

func (h *handle) Tell() (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, ErrNotSupported
	}

	return h.fh.Tell()
}

func (h *handle) Seek(offset int64, whence int) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, ErrNotSupported
	}

	return h.fh.Seek(offset, whence)
}

func (h *handle) Length() (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, ErrNotSupported
	}

	return h.fh.Length()
}

// Close releases the underlying backend handle. A write/append handle's
// contribution to the global open-write-file count is released whether or
// not the backend's Close succeeds; the handle stays marked closed either way,
// since
// spec.md's state machine has no "failed close, still open" state.
func (h *handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	h.closed = true

	err := h.fh.Close()

	if h.writable {
		global.mu.Lock()
		if global.openWriteCount > 0 {
			global.openWriteCount--
		}
		global.mu.Unlock()
	}

	if err != nil {
		return newError("close", "", err)
	}

	return nil
}
