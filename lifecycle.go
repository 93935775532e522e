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

import "path/filepath"

// Init prepares the library for use. The base directory is the one the
// Platform adapter's BaseDir reports; only when that fails or is empty does
// the directory of arg0 (normally the invoking application's argv[0]) become
// the base directory, or "." when arg0 is empty. Init refuses if already
// initialized.
func Init(arg0 string) error {
	const op = "init"

	global.mu.Lock()
	defer global.mu.Unlock()

	if global.initialized {
		return newError(op, "", ErrIsInitialized)
	}

	base, err := global.platform.BaseDir()
	if err != nil || base == "" {
		if arg0 != "" {
			base = filepath.Dir(arg0)
		} else {
			base = "."
		}
	}

	global.baseDir = base
	global.userDir = ""
	global.writeDir = ""
	global.writeReader = nil
	global.searchPath = nil
	global.allowSymlink = true
	global.openWriteCount = 0
	global.initialized = true

	log.WithField("baseDir", base).Debug("physfs: initialized")

	return nil
}

// Deinit tears the library down: closes every still-open search-path and
// write-dir reader, frees the error channel, and resets global to its zero
// configuration. It refuses if any FileHandle remains open anywhere, rather
// than silently force-closing backends out from under live handles.
func Deinit() error {
	const op = "deinit"

	global.mu.Lock()
	defer global.mu.Unlock()

	if !global.initialized {
		return newError(op, "", ErrNotInitialized)
	}

	for _, e := range global.searchPath {
		if hc, ok := e.reader.(HandleCounter); ok && hc.OpenHandles() > 0 {
			return newError(op, e.root, ErrFilesStillOpen)
		}
	}

	if global.writeReader != nil {
		if hc, ok := global.writeReader.(HandleCounter); ok && hc.OpenHandles() > 0 {
			return newError(op, global.writeDir, ErrFilesStillOpen)
		}
	}

	for _, e := range global.searchPath {
		e.reader.Close()
	}

	if global.writeReader != nil {
		global.writeReader.Close()
	}

	freeErrorMessages()

	global.initialized = false
	global.baseDir = ""
	global.userDir = ""
	global.writeDir = ""
	global.writeReader = nil
	global.searchPath = nil
	global.openWriteCount = 0

	log.Debug("physfs: deinitialized")

	return nil
}

// IsInit reports whether the library is currently initialized.
func IsInit() bool {
	global.mu.RLock()
	defer global.mu.RUnlock()

	return global.initialized
}

// GetBaseDir returns the base directory computed at Init.
func GetBaseDir() string {
	global.mu.RLock()
	defer global.mu.RUnlock()

	return global.baseDir
}

// GetUserDir returns the current user's home directory, querying the
// Platform adapter on first use and caching the result. Unlike the inherited
// bug in spec.md §9, this returns the computed directory, not the base dir.
func GetUserDir() string {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.userDir != "" {
		return global.userDir
	}

	dir, err := global.platform.UserDir()
	if err != nil || dir == "" {
		return ""
	}

	global.userDir = dir

	return dir
}

// GetCdRomDirs enumerates removable-media roots via the Platform adapter.
// It returns nil when the platform has no such concept or reports an error.
func GetCdRomDirs() []string {
	global.mu.RLock()
	p := global.platform
	global.mu.RUnlock()

	dirs, err := p.RemovableMedia()
	if err != nil {
		return nil
	}

	return dirs
}

// PermitSymbolicLinks toggles the symlink gate (spec.md §4.2, §8 property 3).
// When forbidden, any path whose terminal or intermediate component is a
// symlink in a root is treated as nonexistent during resolution and
// enumeration through that root.
func PermitSymbolicLinks(allow bool) {
	global.mu.Lock()
	defer global.mu.Unlock()

	global.allowSymlink = allow
}

// SymbolicLinksPermitted reports the current state of the symlink gate.
func SymbolicLinksPermitted() bool {
	global.mu.RLock()
	defer global.mu.RUnlock()

	return global.allowSymlink
}
