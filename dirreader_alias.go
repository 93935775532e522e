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

import "github.com/MSylvia/physfs/dirreader"

// These aliases let application code and backend authors write physfs.DirReader
// instead of reaching into the dirreader subpackage directly, while keeping
// the physfs core and every backend package free of import cycles: the
// interfaces live in dirreader, so a backend imports physfs only when it
// self-registers (backend/zipfs), and the core imports only backend/dirfs,
// which does not import physfs.
type (
	DirReader     = dirreader.DirReader
	Writable      = dirreader.Writable
	HandleCounter = dirreader.HandleCounter
	Backend       = dirreader.Backend
	FileHandle    = dirreader.FileHandle
	Feature       = dirreader.Feature
	ArchiveInfo   = dirreader.ArchiveInfo
)

const (
	FeatEnumerate = dirreader.FeatEnumerate
	FeatWrite     = dirreader.FeatWrite
	FeatSymlink   = dirreader.FeatSymlink
	FeatArchive   = dirreader.FeatArchive
)
