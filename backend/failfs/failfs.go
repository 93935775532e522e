//
//  Copyright 2024 The AVFS authors
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

// Package failfs decorates a dirreader.DirReader with an injectable failure
// function, so the core's error-propagation paths (spec.md §7) can be
// exercised deterministically in tests without relying on flaky real
// filesystem conditions (full disks, permission changes, unplugged media).
package failfs

import (
	"github.com/MSylvia/physfs/dirreader"
)

// Op identifies which DirReader method a FailFunc is being asked about.
type Op string

const (
	OpExists    Op = "exists"
	OpIsDir     Op = "isDirectory"
	OpIsSymlink Op = "isSymLink"
	OpEnumerate Op = "enumerate"
	OpOpenRead  Op = "openRead"
	OpOpenWrite Op = "openWrite"
	OpOpenApp   Op = "openAppend"
	OpMkdir     Op = "mkdir"
	OpRemove    Op = "remove"
	OpClose     Op = "close"
)

// FailFunc decides whether the named operation on path should fail. Return
// nil to let the call through to the base DirReader.
type FailFunc func(op Op, path string) error

// OkFunc never fails; it is the default before SetFailFunc is called.
func OkFunc(Op, string) error { return nil }

// FailFS wraps a base DirReader, intercepting every call through failFunc
// except Features and OpenHandles, which go straight to the base.
type FailFS struct {
	base     dirreader.DirReader
	failFunc FailFunc
}

var (
	_ dirreader.DirReader     = (*FailFS)(nil)
	_ dirreader.Writable      = (*FailFS)(nil)
	_ dirreader.HandleCounter = (*FailFS)(nil)
)

// New wraps base with a FailFS whose failure function is initially OkFunc.
func New(base dirreader.DirReader) *FailFS {
	return &FailFS{base: base, failFunc: OkFunc}
}

// SetFailFunc replaces the failure function.
func (f *FailFS) SetFailFunc(fn FailFunc) {
	if fn == nil {
		fn = OkFunc
	}

	f.failFunc = fn
}

// AlwaysFail returns a FailFunc that fails every call to the named op with
// err, regardless of path.
func AlwaysFail(op Op, err error) FailFunc {
	return func(gotOp Op, _ string) error {
		if gotOp == op {
			return err
		}

		return nil
	}
}

func (f *FailFS) Features() dirreader.Feature {
	return f.base.Features()
}

func (f *FailFS) Exists(path string) bool {
	if f.failFunc(OpExists, path) != nil {
		return false
	}

	return f.base.Exists(path)
}

func (f *FailFS) IsDirectory(path string) bool {
	if f.failFunc(OpIsDir, path) != nil {
		return false
	}

	return f.base.IsDirectory(path)
}

func (f *FailFS) IsSymLink(path string) bool {
	if f.failFunc(OpIsSymlink, path) != nil {
		return false
	}

	return f.base.IsSymLink(path)
}

func (f *FailFS) Enumerate(path string) ([]string, error) {
	if err := f.failFunc(OpEnumerate, path); err != nil {
		return nil, err
	}

	return f.base.Enumerate(path)
}

func (f *FailFS) OpenRead(path string) (dirreader.FileHandle, error) {
	if err := f.failFunc(OpOpenRead, path); err != nil {
		return nil, err
	}

	return f.base.OpenRead(path)
}

func (f *FailFS) Close() error {
	if err := f.failFunc(OpClose, ""); err != nil {
		return err
	}

	return f.base.Close()
}

// OpenHandles delegates to the base DirReader when it tracks handle counts,
// and reports zero otherwise.
func (f *FailFS) OpenHandles() int {
	if hc, ok := f.base.(dirreader.HandleCounter); ok {
		return hc.OpenHandles()
	}

	return 0
}

// OpenWrite, OpenAppend, Mkdir and Remove forward to the base DirReader's
// Writable capability, if it has one, through the same fail hook.
func (f *FailFS) OpenWrite(path string) (dirreader.FileHandle, error) {
	w, ok := f.base.(dirreader.Writable)
	if !ok {
		return nil, dirreader.ErrNotSupported
	}

	if err := f.failFunc(OpOpenWrite, path); err != nil {
		return nil, err
	}

	return w.OpenWrite(path)
}

func (f *FailFS) OpenAppend(path string) (dirreader.FileHandle, error) {
	w, ok := f.base.(dirreader.Writable)
	if !ok {
		return nil, dirreader.ErrNotSupported
	}

	if err := f.failFunc(OpOpenApp, path); err != nil {
		return nil, err
	}

	return w.OpenAppend(path)
}

func (f *FailFS) Mkdir(path string) error {
	w, ok := f.base.(dirreader.Writable)
	if !ok {
		return dirreader.ErrNotSupported
	}

	if err := f.failFunc(OpMkdir, path); err != nil {
		return err
	}

	return w.Mkdir(path)
}

func (f *FailFS) Remove(path string) error {
	w, ok := f.base.(dirreader.Writable)
	if !ok {
		return dirreader.ErrNotSupported
	}

	if err := f.failFunc(OpRemove, path); err != nil {
		return err
	}

	return w.Remove(path)
}
