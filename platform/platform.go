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

// Package platform defines the host adapter spec.md §2 item 1 calls
// external: base/user directory discovery, removable-media enumeration,
// case-insensitive comparison and native mkdir/remove. Native provides the
// default backed by os/path/filepath/runtime; Fake provides an in-memory
// stand-in for tests that must not depend on the host.
package platform

// Platform is the host adapter consumed by the core's lifecycle functions
// and by SetSaneConfig.
type Platform interface {
	// Separator is the host's native path separator, independent of
	// physfs.PathSeparator which is always '/'.
	Separator() rune

	// BaseDir returns the directory containing the running executable.
	BaseDir() (string, error)

	// UserDir returns the current user's home directory.
	UserDir() (string, error)

	// RemovableMedia lists currently mounted removable-media roots. A nil,
	// nil-error result means the platform has no such concept, not failure.
	RemovableMedia() ([]string, error)

	// EqualFold reports whether a and b name the same path component under
	// the host's case-folding rules (spec.md §4.2 notes some hosts are
	// case-insensitive even though the VFS logical namespace never is).
	EqualFold(a, b string) bool

	// MkdirAll creates a native directory and any missing parents.
	MkdirAll(path string) error

	// Remove deletes a native file or empty directory.
	Remove(path string) error
}
