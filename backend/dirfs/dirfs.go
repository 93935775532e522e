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

// Package dirfs implements dirreader.DirReader over a real directory on the
// host filesystem, using os and path/filepath the way vfs/osfs wraps those
// same packages for a full POSIX file system, plus filepath-securejoin to
// resolve the paths of OpenWrite, OpenAppend and Mkdir inside the root.
//
// Name matching is byte-exact at the VFS layer even on case-insensitive
// hosts (spec.md §4.2): ReadDir is used to find the entry whose Name()
// matches the wanted logical component exactly, rather than handing the
// path straight to os.Open and letting the host's case folding decide.
package dirfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/MSylvia/physfs/dirreader"
)

// DirFS is a DirReader rooted at a real directory.
type DirFS struct {
	root    string
	handles int64
}

var (
	_ dirreader.DirReader     = (*DirFS)(nil)
	_ dirreader.Writable      = (*DirFS)(nil)
	_ dirreader.HandleCounter = (*DirFS)(nil)
)

// New opens root as a DirReader. root must already exist and be a directory.
func New(root string) (*DirFS, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, dirreader.ErrNotADir
	}

	return &DirFS{root: root}, nil
}

// Features reports the capabilities of a directory root: enumeration,
// writing and symlink reporting, but never FeatArchive.
func (d *DirFS) Features() dirreader.Feature {
	return dirreader.FeatEnumerate | dirreader.FeatWrite | dirreader.FeatSymlink
}

// native resolves a normalized logical path to a native path under root,
// matching each component byte-exactly against the host directory entries.
// It returns os.ErrNotExist if any component is missing.
func (d *DirFS) native(logical string) (string, error) {
	if logical == "" {
		return d.root, nil
	}

	dir := d.root

	for _, part := range strings.Split(logical, "/") {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", err
		}

		found := false

		for _, e := range entries {
			if e.Name() == part {
				dir = filepath.Join(dir, part)
				found = true

				break
			}
		}

		if !found {
			return "", os.ErrNotExist
		}
	}

	return dir, nil
}

// Exists reports whether path names an entry under this root.
func (d *DirFS) Exists(path string) bool {
	_, err := d.native(path)

	return err == nil
}

// IsDirectory reports whether path names a directory under this root.
func (d *DirFS) IsDirectory(path string) bool {
	native, err := d.native(path)
	if err != nil {
		return false
	}

	info, err := os.Lstat(native)

	return err == nil && info.IsDir()
}

// IsSymLink reports whether path, or any intermediate component, is a
// symbolic link.
func (d *DirFS) IsSymLink(path string) bool {
	if path == "" {
		return false
	}

	dir := d.root

	for _, part := range strings.Split(path, "/") {
		dir = filepath.Join(dir, part)

		info, err := os.Lstat(dir)
		if err != nil {
			return false
		}

		if info.Mode()&fs.ModeSymlink != 0 {
			return true
		}
	}

	return false
}

// Enumerate lists the immediate children of path.
func (d *DirFS) Enumerate(path string) ([]string, error) {
	native, err := d.native(path)
	if err != nil {
		return nil, dirreader.ErrNoSuchPath
	}

	entries, err := os.ReadDir(native)
	if err != nil {
		return nil, dirreader.ErrNotADir
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}

	return names, nil
}

// OpenRead opens path for reading.
func (d *DirFS) OpenRead(path string) (dirreader.FileHandle, error) {
	native, err := d.native(path)
	if err != nil {
		return nil, dirreader.ErrNoSuchFile
	}

	info, err := os.Stat(native)
	if err != nil {
		return nil, dirreader.ErrNoSuchFile
	}

	if info.IsDir() {
		return nil, dirreader.ErrNotAFile
	}

	f, err := os.Open(native)
	if err != nil {
		return nil, err
	}

	atomic.AddInt64(&d.handles, 1)

	return &dirFile{d: d, f: f}, nil
}

// OpenWrite creates or truncates path under root and opens it for writing.
// path is resolved with securejoin so a maliciously crafted logical path
// (or a symlink planted inside root) can never escape root.
func (d *DirFS) OpenWrite(path string) (dirreader.FileHandle, error) {
	native, err := securejoin.SecureJoin(d.root, path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(native), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(native, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	atomic.AddInt64(&d.handles, 1)

	return &dirFile{d: d, f: f}, nil
}

// OpenAppend opens path for appending, creating it if absent.
func (d *DirFS) OpenAppend(path string) (dirreader.FileHandle, error) {
	native, err := securejoin.SecureJoin(d.root, path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(native), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(native, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	atomic.AddInt64(&d.handles, 1)

	return &dirFile{d: d, f: f}, nil
}

// Mkdir creates path and any missing intermediate components.
func (d *DirFS) Mkdir(path string) error {
	native, err := securejoin.SecureJoin(d.root, path)
	if err != nil {
		return err
	}

	return os.MkdirAll(native, 0o755)
}

// Remove deletes the file or empty directory at path.
func (d *DirFS) Remove(path string) error {
	native, err := d.native(path)
	if err != nil {
		return dirreader.ErrNoSuchPath
	}

	return os.Remove(native)
}

// OpenHandles returns the number of FileHandles opened through this root
// that have not yet been closed.
func (d *DirFS) OpenHandles() int {
	return int(atomic.LoadInt64(&d.handles))
}

// Close releases the root. DirFS itself holds no OS resources, but Close
// still refuses if handles remain live, matching the contract every other
// backend follows.
func (d *DirFS) Close() error {
	if d.OpenHandles() > 0 {
		return dirreader.ErrNotSupported
	}

	return nil
}
