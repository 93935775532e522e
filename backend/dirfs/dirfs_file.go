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

package dirfs

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/MSylvia/physfs/dirreader"
)

// dirFile adapts *os.File to dirreader.FileHandle.
type dirFile struct {
	d      *DirFS
	f      *os.File
	closed bool
}

var _ dirreader.FileHandle = (*dirFile)(nil)

func (h *dirFile) Read(p []byte) (int, error) {
	return h.f.Read(p)
}

func (h *dirFile) Write(p []byte) (int, error) {
	return h.f.Write(p)
}

func (h *dirFile) Eof() bool {
	pos, err := h.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}

	info, err := h.f.Stat()
	if err != nil {
		return false
	}

	return pos >= info.Size()
}

func (h *dirFile) Tell() (int64, error) {
	return h.f.Seek(0, io.SeekCurrent)
}

func (h *dirFile) Seek(offset int64, whence int) (int64, error) {
	pos, err := h.f.Seek(offset, whence)
	if err != nil {
		return 0, dirreader.ErrPastEOF
	}

	return pos, nil
}

func (h *dirFile) Length() (int64, error) {
	info, err := h.f.Stat()
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

func (h *dirFile) Close() error {
	if h.closed {
		return nil
	}

	h.closed = true
	atomic.AddInt64(&h.d.handles, -1)

	return h.f.Close()
}
