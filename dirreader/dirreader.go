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

// Package dirreader defines the capability interfaces shared by the physfs
// core and every backend implementation (directories, archives, and test
// doubles). It exists as its own package, with no dependency on the physfs
// core, so that a backend can implement these interfaces without importing
// the core, following the same split database/sql uses with
// database/sql/driver. The core imports backend/dirfs; a self-registering
// backend such as backend/zipfs imports the core only to call RegisterBackend.
package dirreader

import "errors"

// Sentinel errors a backend returns; the physfs core re-exports the same
// values and wraps them in its own *physfs.Error, so errors.Is works across
// the package boundary.
var (
	ErrNoSuchFile       = errors.New("no such file")
	ErrNoSuchPath       = errors.New("no such path")
	ErrNotADir          = errors.New("not a directory")
	ErrNotAFile         = errors.New("not a file")
	ErrSymlinkForbidden = errors.New("symbolic links are forbidden")
	ErrNotSupported     = errors.New("operation not supported")
	ErrPastEOF          = errors.New("seek past end of file")
	ErrNotAnArchive     = errors.New("not an archive")
	ErrCorrupt          = errors.New("corrupt archive")
)

// Feature describes an optional capability of a DirReader.
type Feature uint32

const (
	// FeatEnumerate indicates the backend can list directory contents.
	FeatEnumerate Feature = 1 << iota

	// FeatWrite indicates the backend implements Writable.
	FeatWrite

	// FeatSymlink indicates the backend can report symbolic links.
	FeatSymlink

	// FeatArchive indicates the root is a parsed archive container rather
	// than a plain directory.
	FeatArchive
)

// HasFeature reports whether f includes want.
func (f Feature) HasFeature(want Feature) bool {
	return f&want == want
}

// ArchiveInfo describes a registered backend, returned verbatim by
// physfs.SupportedArchiveTypes.
type ArchiveInfo struct {
	Extension   string
	Description string
	Author      string
	URL         string
}

// DirReader is the polymorphic read root of spec.md §4.2: an opened
// directory or archive. Every search-path entry and the write-dir slot own
// exactly one DirReader, never shared between them (spec.md §3 invariants).
type DirReader interface {
	// Features reports the capabilities this root supports.
	Features() Feature

	// Exists reports whether the normalized logical path names an entry.
	Exists(path string) bool

	// IsDirectory reports whether path names a directory.
	IsDirectory(path string) bool

	// IsSymLink reports whether path, or an intermediate component leading
	// to it, is a symbolic link. Backends without symlink support always
	// return false.
	IsSymLink(path string) bool

	// Enumerate lists the immediate children of the directory at path.
	// It fails with ErrNotADir or ErrNoSuchPath.
	Enumerate(path string) ([]string, error)

	// OpenRead opens path for reading.
	// It fails with ErrNoSuchFile, ErrNotAFile, or ErrSymlinkForbidden.
	OpenRead(path string) (FileHandle, error)

	// Close releases any resources held by the root (e.g. an open archive
	// file handle). No other method may be called afterwards.
	Close() error
}

// Writable is implemented by DirReader backends that support mutation.
// Directory backends implement it; archive backends normally do not, since
// spec.md's non-goals exclude random-access writing into archives.
type Writable interface {
	// OpenWrite creates or truncates path and opens it for writing.
	OpenWrite(path string) (FileHandle, error)

	// OpenAppend opens path for appending, creating it if absent.
	OpenAppend(path string) (FileHandle, error)

	// Mkdir creates path and any missing intermediate components.
	Mkdir(path string) error

	// Remove deletes the file or empty directory at path.
	Remove(path string) error
}

// HandleCounter is implemented by backends that track their own live
// FileHandle count, so the core can refuse to remove a root, or deinit,
// while handles opened through it are still live (spec.md §4.3, §4.6).
type HandleCounter interface {
	OpenHandles() int
}

// Backend is what an archive or directory implementation registers with the
// core via physfs.RegisterBackend. Probe and Open are the external
// collaborator interface of spec.md §1; the core only ever calls through
// this interface.
type Backend interface {
	// Info describes the backend for SupportedArchiveTypes.
	Info() ArchiveInfo

	// Probe reports whether this backend recognizes nativePath as one of its
	// archives. It is called before the core checks that nativePath exists,
	// so it must return false for a missing path.
	Probe(nativePath string) bool

	// Open opens nativePath and returns an owned DirReader.
	Open(nativePath string) (DirReader, error)
}

// FileHandle is the abstract open file of spec.md §4.5: a thin
// capability-plus-state object produced by DirReader.OpenRead/Writable.Open*.
// Positions are 64-bit throughout.
type FileHandle interface {
	// Read reads up to len(p) bytes into p.
	Read(p []byte) (n int, err error)

	// Write writes len(p) bytes from p. A handle returned by physfs.OpenRead
	// fails with ErrNotSupported; whether a backend's own read handle refuses
	// writes depends on the backend.
	Write(p []byte) (n int, err error)

	// Eof reports whether the handle is positioned at end of file.
	Eof() bool

	// Tell returns the current byte offset.
	Tell() (int64, error)

	// Seek moves the current offset. It may fail with ErrPastEOF when
	// seeking beyond the end of a backend that cannot grow on seek.
	Seek(offset int64, whence int) (int64, error)

	// Length returns the total size of the underlying file.
	Length() (int64, error)

	// Close releases the handle. No operation is permitted afterwards.
	Close() error
}
