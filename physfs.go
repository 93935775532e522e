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

// Package physfs implements a portable virtual file system for applications
// that read game-style assets from an ordered search path of directories and
// archives, and write user state to a single write directory.
//
// Logical paths are forward-slash separated and case-sensitive regardless of
// the host platform. Reads are resolved against the search path in order,
// first match wins. Writes are always resolved against the write directory.
package physfs

import "fmt"

// PathSeparator is the sole separator of the VFS logical path syntax.
// It has no relationship to the host platform's native separator; write-dir
// paths are translated to native ones by the directory backend
// (backend/dirfs) through path/filepath.
const PathSeparator = '/'

// Version is the semantic version of the package's stable contract.
type Version struct {
	Major, Minor, Patch int
}

// String returns the dotted version string.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// LibVersion is the version of the stable contract described in spec.md §6.
var LibVersion = Version{Major: 3, Minor: 2, Patch: 0} //nolint:gochecknoglobals
