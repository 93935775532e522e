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
	"sync"

	"github.com/MSylvia/physfs/platform"
	"github.com/sirupsen/logrus"
)

// searchPathEntry is an owned DirReader plus the original root string it was
// opened from (spec.md §3, SearchPathEntry).
type searchPathEntry struct {
	root   string
	reader DirReader
}

// context is the single process-wide configuration object spec.md §9 calls
// for: every mutable field init/deinit/setWriteDir/addToSearchPath/
// removeFromSearchPath/permitSymbolicLinks touch. Mutators require external
// exclusion from all other calls (spec.md §5); mu enforces that directly
// rather than leaving it to caller discipline.
type context struct {
	mu sync.RWMutex

	initialized bool
	platform    platform.Platform

	baseDir string
	userDir string

	writeDir     string
	writeReader  DirReader
	searchPath   []*searchPathEntry
	allowSymlink bool

	openWriteCount int
}

// global is the process-global instance spec.md §9 requires for API
// compatibility with a C library's single address space.
var global = &context{ //nolint:gochecknoglobals
	platform: platform.Native(),
}

// log is the package's structured logger. By default it emits only Warn and
// higher (the core's contract is the error channel, not logging) and it can
// be swapped by the embedding application with SetLogger.
var log = logrus.New() //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	log.SetLevel(logrus.WarnLevel)
}

// SetLogger replaces the package's logger, e.g. to raise verbosity or route
// output through the host application's own logging pipeline.
func SetLogger(l *logrus.Logger) {
	log = l
}

// SetPlatform overrides the Platform adapter used for base/user directory
// discovery, removable-media enumeration and SetSaneConfig's creation of the
// write directory. It must be
// called before Init; it is primarily a test seam (platform.Fake).
func SetPlatform(p platform.Platform) {
	global.mu.Lock()
	defer global.mu.Unlock()

	global.platform = p
}
