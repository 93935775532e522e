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

// visible reports whether path (already normalized) should be considered
// present in e, honoring the symlink gate of spec.md §4.2/§4.4: when
// allowSymlink is false, any root where path (or, for directories, the path
// itself) is reported as a symlink is skipped entirely.
func (e *searchPathEntry) visible(path string, allowSymlink bool) bool {
	if allowSymlink {
		return true
	}

	return !e.reader.IsSymLink(path)
}

// Exists reports whether path names an entry in any search-path root,
// honoring the symlink gate and first-match order (spec.md §4.4).
func Exists(path string) bool {
	const op = "exists"

	global.mu.RLock()
	defer global.mu.RUnlock()

	if !global.initialized {
		newError(op, path, ErrNotInitialized)

		return false
	}

	norm, err := normalize(path)
	if err != nil {
		return false
	}

	for _, e := range global.searchPath {
		if !e.visible(norm, global.allowSymlink) {
			continue
		}

		if e.reader.Exists(norm) {
			return true
		}
	}

	return false
}

// IsDirectory reports whether path names a directory in the first
// search-path root that answers authoritatively.
func IsDirectory(path string) bool {
	const op = "isDirectory"

	global.mu.RLock()
	defer global.mu.RUnlock()

	if !global.initialized {
		newError(op, path, ErrNotInitialized)

		return false
	}

	norm, err := normalize(path)
	if err != nil {
		return false
	}

	for _, e := range global.searchPath {
		if !e.visible(norm, global.allowSymlink) {
			continue
		}

		if e.reader.Exists(norm) {
			return e.reader.IsDirectory(norm)
		}
	}

	return false
}

// IsSymbolicLink reports whether path is a symlink in the first search-path
// root that contains it, bypassing the gate itself (the gate controls
// visibility of the underlying entry, not whether this query can answer).
func IsSymbolicLink(path string) bool {
	global.mu.RLock()
	defer global.mu.RUnlock()

	norm, err := normalize(path)
	if err != nil {
		return false
	}

	for _, e := range global.searchPath {
		if e.reader.Exists(norm) {
			return e.reader.IsSymLink(norm)
		}
	}

	return false
}

// GetRealDir returns the original root string of the first search-path
// entry containing path (spec.md §8 property 1).
func GetRealDir(path string) (string, error) {
	const op = "getRealDir"

	global.mu.RLock()
	defer global.mu.RUnlock()

	norm, err := normalize(path)
	if err != nil {
		return "", newError(op, path, ErrInvalidPath)
	}

	for _, e := range global.searchPath {
		if !e.visible(norm, global.allowSymlink) {
			continue
		}

		if e.reader.Exists(norm) {
			return e.root, nil
		}
	}

	return "", newError(op, path, ErrNoSuchPath)
}

// OpenRead resolves path against the search path in order and opens it
// through the first root that has it (spec.md §4.4, §8 property 1).
func OpenRead(path string) (FileHandle, error) {
	const op = "openRead"

	global.mu.RLock()
	defer global.mu.RUnlock()

	if !global.initialized {
		return nil, newError(op, path, ErrNotInitialized)
	}

	norm, err := normalize(path)
	if err != nil {
		return nil, newError(op, path, ErrInvalidPath)
	}

	for _, e := range global.searchPath {
		if !e.visible(norm, global.allowSymlink) {
			continue
		}

		if !e.reader.Exists(norm) || e.reader.IsDirectory(norm) {
			continue
		}

		fh, err := e.reader.OpenRead(norm)
		if err != nil {
			return nil, newError(op, path, err)
		}

		return &handle{fh: fh}, nil
	}

	return nil, newError(op, path, ErrNoSuchFile)
}

// EnumerateFiles lists the union of every search-path root's children of
// path, de-duplicated, earlier-root names preceding later-root names first
// seen there (spec.md §4.4, §8 property 2).
//
// A child that is itself a symlink is excluded when allowSymlink is false:
// spec.md §4.4's literal algorithm gates only whole roots via visible(), but
// §8 property 3 requires no path whose terminal component is a symlink to be
// visible via enumerate, so the per-child check below resolves that tension
// in property 3's favor. See resolve_test.go's TestEnumerateFilesSymlinkGate.
func EnumerateFiles(path string) ([]string, error) {
	const op = "enumerateFiles"

	global.mu.RLock()
	defer global.mu.RUnlock()

	if !global.initialized {
		return nil, newError(op, path, ErrNotInitialized)
	}

	norm, err := normalize(path)
	if err != nil {
		return nil, newError(op, path, ErrInvalidPath)
	}

	seen := map[string]bool{}

	var names []string

	for _, e := range global.searchPath {
		if !e.visible(norm, global.allowSymlink) {
			continue
		}

		if !e.reader.Exists(norm) || !e.reader.IsDirectory(norm) {
			continue
		}

		children, err := e.reader.Enumerate(norm)
		if err != nil {
			continue
		}

		for _, c := range children {
			if seen[c] {
				continue
			}

			if !global.allowSymlink {
				childPath := c
				if norm != "" {
					childPath = norm + "/" + c
				}

				if e.reader.IsSymLink(childPath) {
					continue
				}
			}

			seen[c] = true

			names = append(names, c)
		}
	}

	return names, nil
}
