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

import (
	"os"

	"github.com/MSylvia/physfs/backend/dirfs"
)

// GetWriteDir returns the currently configured write directory, or "" if
// none is set.
func GetWriteDir() string {
	global.mu.RLock()
	defer global.mu.RUnlock()

	return global.writeDir
}

// SetWriteDir configures dir (a native, existing, writable directory) as the
// single write-dir root. It refuses while any write handle is still open
// (spec.md §3 invariant, §8 property 7). Passing "" clears the write dir.
func SetWriteDir(dir string) error {
	const op = "setWriteDir"

	global.mu.Lock()
	defer global.mu.Unlock()

	if !global.initialized {
		return newError(op, dir, ErrNotInitialized)
	}

	if global.openWriteCount > 0 {
		return newError(op, dir, ErrFilesOpenWrite)
	}

	if global.writeReader != nil {
		global.writeReader.Close()
		global.writeReader = nil
	}

	global.writeDir = ""

	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return newError(op, dir, ErrNoSuchPath)
	}

	reader, err := dirfs.New(dir)
	if err != nil {
		return newError(op, dir, err)
	}

	global.writeDir = dir
	global.writeReader = reader

	log.WithField("dir", dir).Debug("physfs: write dir set")

	return nil
}

// writable returns the current write-dir reader's Writable capability, or
// fails with ErrNoWriteDir if none is configured.
func writable(op, path string) (Writable, error) {
	if global.writeReader == nil {
		return nil, newError(op, path, ErrNoWriteDir)
	}

	w, ok := global.writeReader.(Writable)
	if !ok {
		return nil, newError(op, path, ErrNotSupported)
	}

	return w, nil
}

// Mkdir creates path, and any missing intermediate components, rooted at the
// write directory.
func Mkdir(path string) error {
	const op = "mkdir"

	global.mu.Lock()
	defer global.mu.Unlock()

	norm, err := normalize(path)
	if err != nil {
		return newError(op, path, ErrInvalidPath)
	}

	w, err := writable(op, path)
	if err != nil {
		return err
	}

	if err := w.Mkdir(norm); err != nil {
		return newError(op, path, ErrNoDirCreate)
	}

	return nil
}

// Delete removes the file or empty directory at path, rooted at the write
// directory.
func Delete(path string) error {
	const op = "delete"

	global.mu.Lock()
	defer global.mu.Unlock()

	norm, err := normalize(path)
	if err != nil {
		return newError(op, path, ErrInvalidPath)
	}

	w, err := writable(op, path)
	if err != nil {
		return err
	}

	if err := w.Remove(norm); err != nil {
		return newError(op, path, ErrIO)
	}

	return nil
}

// OpenWrite creates or truncates path in the write directory and opens it
// for writing. The returned handle increments the global open-write-file
// count until it is closed (spec.md §3, §4.5, §8 property 7).
func OpenWrite(path string) (FileHandle, error) {
	return openForWrite("openWrite", path, Writable.OpenWrite)
}

// OpenAppend opens path in the write directory for appending, creating it if
// absent, and increments the global open-write-file count the same way
// OpenWrite does.
func OpenAppend(path string) (FileHandle, error) {
	return openForWrite("openAppend", path, Writable.OpenAppend)
}

func openForWrite(op, path string, fn func(Writable, string) (FileHandle, error)) (FileHandle, error) {
	global.mu.Lock()
	defer global.mu.Unlock()

	if !global.initialized {
		return nil, newError(op, path, ErrNotInitialized)
	}

	norm, err := normalize(path)
	if err != nil {
		return nil, newError(op, path, ErrInvalidPath)
	}

	w, err := writable(op, path)
	if err != nil {
		return nil, err
	}

	fh, err := fn(w, norm)
	if err != nil {
		return nil, newError(op, path, err)
	}

	global.openWriteCount++

	return &handle{fh: fh, writable: true}, nil
}
