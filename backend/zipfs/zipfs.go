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

// Package zipfs implements dirreader.DirReader over a ZIP archive, using
// archive/zip for the container format and klauspost/compress/flate as a
// faster drop-in DEFLATE decompressor, registered the way a database/sql
// driver registers itself: importing the package for its side effect wires
// it into the core's backend registry via an init function.
//
// Archive entries are not natively seekable once decompressed, so each
// opened handle buffers its entry fully in memory (spec.md's non-goals
// already exclude random-access writing into archives; read-side seeking is
// still required by the FileHandle contract, and archive entries in the
// target domain — game assets — are small enough that this is the right
// trade).
package zipfs

import (
	"archive/zip"
	"io"
	"path"
	"strings"
	"sync/atomic"

	"github.com/klauspost/compress/flate"

	"github.com/MSylvia/physfs"
	"github.com/MSylvia/physfs/dirreader"
)

// Importing zipfs for its side effect is enough to enable ZIP archives on
// the search path, the same way importing a database/sql driver package
// registers it with database/sql.
func init() { //nolint:gochecknoinits
	physfs.RegisterBackend(Backend{})
}

// info describes this backend for physfs.SupportedArchiveTypes.
var info = dirreader.ArchiveInfo{ //nolint:gochecknoglobals
	Extension:   "zip",
	Description: "ZIP archive",
	Author:      "MSylvia",
	URL:         "https://github.com/MSylvia/physfs",
}

// Backend probes and opens ZIP archives.
type Backend struct{}

var _ dirreader.Backend = Backend{}

// Info returns the backend's ArchiveInfo.
func (Backend) Info() dirreader.ArchiveInfo {
	return info
}

// Probe reports whether nativePath is a readable ZIP archive.
func (Backend) Probe(nativePath string) bool {
	r, err := zip.OpenReader(nativePath)
	if err != nil {
		return false
	}

	r.Close()

	return true
}

// Open parses nativePath as a ZIP archive and returns an owned DirReader.
func (Backend) Open(nativePath string) (dirreader.DirReader, error) {
	r, err := zip.OpenReader(nativePath)
	if err != nil {
		return nil, dirreader.ErrNotAnArchive
	}

	z := &ZipFS{rc: r}

	z.dirs = map[string]bool{"": true}
	z.entries = map[string]*zip.File{}

	for _, f := range r.File {
		name := strings.TrimSuffix(f.Name, "/")
		if name == "" {
			continue
		}

		if f.FileInfo().IsDir() {
			z.dirs[name] = true
		} else {
			z.entries[name] = f
		}

		for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
			z.dirs[dir] = true
		}
	}

	return z, nil
}

// ZipFS is a DirReader backed by an open ZIP archive.
type ZipFS struct {
	rc      *zip.ReadCloser
	dirs    map[string]bool
	entries map[string]*zip.File
	handles int64
}

var (
	_ dirreader.DirReader     = (*ZipFS)(nil)
	_ dirreader.HandleCounter = (*ZipFS)(nil)
)

// Features reports enumeration and archive-ness; ZIP roots are read-only and
// report no symlink support.
func (z *ZipFS) Features() dirreader.Feature {
	return dirreader.FeatEnumerate | dirreader.FeatArchive
}

// Exists reports whether path names a file or directory entry.
func (z *ZipFS) Exists(path string) bool {
	if path == "" {
		return true
	}

	_, isFile := z.entries[path]

	return isFile || z.dirs[path]
}

// IsDirectory reports whether path names a directory entry.
func (z *ZipFS) IsDirectory(p string) bool {
	if p == "" {
		return true
	}

	return z.dirs[p]
}

// IsSymLink always reports false: ZIP archives carry no portable symlink
// representation this backend interprets.
func (z *ZipFS) IsSymLink(string) bool {
	return false
}

// Enumerate lists the immediate children of the directory at p.
func (z *ZipFS) Enumerate(p string) ([]string, error) {
	if !z.IsDirectory(p) {
		if z.Exists(p) {
			return nil, dirreader.ErrNotADir
		}

		return nil, dirreader.ErrNoSuchPath
	}

	seen := map[string]bool{}

	var names []string

	addChild := func(full string) {
		rest := full

		if p != "" {
			rest = strings.TrimPrefix(full, p+"/")
		}

		if rest == full && p != "" {
			return
		}

		child := rest
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			child = rest[:idx]
		}

		if child == "" || seen[child] {
			return
		}

		seen[child] = true

		names = append(names, child)
	}

	for name := range z.entries {
		if path.Dir(name) == p || (p == "" && !strings.Contains(name, "/")) {
			addChild(name)
		}
	}

	for dir := range z.dirs {
		if dir == "" {
			continue
		}

		if path.Dir(dir) == p || (p == "" && !strings.Contains(dir, "/")) {
			addChild(dir)
		}
	}

	return names, nil
}

// OpenRead opens the entry at path, fully buffered for random access.
func (z *ZipFS) OpenRead(path string) (dirreader.FileHandle, error) {
	f, ok := z.entries[path]
	if !ok {
		if z.dirs[path] {
			return nil, dirreader.ErrNotAFile
		}

		return nil, dirreader.ErrNoSuchFile
	}

	rc, err := f.Open()
	if err != nil {
		return nil, dirreader.ErrCorrupt
	}

	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, dirreader.ErrCorrupt
	}

	atomic.AddInt64(&z.handles, 1)

	return &zipFile{z: z, data: data}, nil
}

// Close closes the underlying archive file. It refuses while handles opened
// through it remain live.
func (z *ZipFS) Close() error {
	if atomic.LoadInt64(&z.handles) > 0 {
		return dirreader.ErrNotSupported
	}

	return z.rc.Close()
}

// OpenHandles returns the number of live handles opened through this root.
func (z *ZipFS) OpenHandles() int {
	return int(atomic.LoadInt64(&z.handles))
}

func init() { //nolint:gochecknoinits
	// Register klauspost/compress's flate as the DEFLATE decompressor:
	// archive/zip accepts a pluggable decompressor per method, and
	// klauspost/compress/flate is a drop-in faster implementation of the
	// same interface the standard library's compress/flate exposes.
	zip.RegisterDecompressor(zip.Deflate, flate.NewReader)
}
