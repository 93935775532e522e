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

package physfs

import (
	"os"
	"sync"

	"github.com/MSylvia/physfs/backend/dirfs"
)

// registry holds backends in registration order, which is the fixed probe
// order required by spec.md §4.2. RegisterBackend is normally called from an
// imported backend package's init(), the same pattern database/sql drivers
// use for Register.
var registry struct { //nolint:gochecknoglobals
	mu       sync.Mutex
	backends []Backend
}

// RegisterBackend adds backend to the end of the probe order. It is safe to
// call from multiple init() functions but is not meant to be called after
// the search path has been populated: probe order for already-opened roots
// does not change retroactively.
func RegisterBackend(backend Backend) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.backends = append(registry.backends, backend)
}

// SupportedArchiveTypes returns the ArchiveInfo of every registered backend,
// in probe order (spec.md §6).
func SupportedArchiveTypes() []ArchiveInfo {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	infos := make([]ArchiveInfo, len(registry.backends))
	for i, b := range registry.backends {
		infos[i] = b.Info()
	}

	return infos
}

// openDirReader tries each registered backend's Probe in order and opens the
// first match. If none match and nativePath names an existing directory, the
// built-in directory backend (backend/dirfs) is used instead — the one
// backend the core always knows about, since a VFS with no directory support
// at all would be useless out of the box. If nativePath exists but no
// backend accepts it, ErrUnsupportedArchive is returned.
func openDirReader(nativePath string) (DirReader, error) {
	registry.mu.Lock()
	backends := make([]Backend, len(registry.backends))
	copy(backends, registry.backends)
	registry.mu.Unlock()

	for _, b := range backends {
		if b.Probe(nativePath) {
			return b.Open(nativePath)
		}
	}

	info, err := os.Stat(nativePath)
	if err == nil && info.IsDir() {
		return dirfs.New(nativePath)
	}

	if err == nil {
		return nil, newError("addToSearchPath", nativePath, ErrUnsupportedArchive)
	}

	return nil, newError("addToSearchPath", nativePath, ErrNoSuchPath)
}
