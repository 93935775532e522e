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
	"os"
	"path/filepath"
)

// SetSaneConfig is the convenience composition spec.md §6 describes: it
// sets the write directory to <userDir>/.<appName>, creating it if absent,
// adds that same directory to the head of the search path so saved files
// shadow shipped assets, optionally appends every CD-ROM/removable-media
// root, then adds every entry of the base directory whose name has the
// given archive extension (archiveExt == "" skips archive discovery) at the
// tail, or at the head when archivesFirst is true, finally placing the base
// directory itself at the tail.
//
// The inherited bug in spec.md §9 — PHYSFS_setSaneConfig calling
// addToSearchPath with an ambiguous second argument — does not exist here:
// every AddToSearchPath call below names exactly one, unambiguous root.
func SetSaneConfig(appName, archiveExt string, includeCdRoms, archivesFirst bool) error {
	const op = "setSaneConfig"

	if !IsInit() {
		return newError(op, "", ErrNotInitialized)
	}

	userDir := GetUserDir()
	if userDir == "" {
		return newError(op, "", ErrNoWriteDir)
	}

	writeDir := filepath.Join(userDir, "."+appName)

	global.mu.RLock()
	p := global.platform
	global.mu.RUnlock()

	if err := p.MkdirAll(writeDir); err != nil {
		return newError(op, writeDir, ErrNoDirCreate)
	}

	if err := SetWriteDir(writeDir); err != nil {
		return err
	}

	if err := AddToSearchPath(writeDir, false); err != nil {
		return err
	}

	if includeCdRoms {
		for _, dir := range GetCdRomDirs() {
			if err := AddToSearchPath(dir, true); err != nil {
				log.WithError(err).WithField("dir", dir).Warn("physfs: setSaneConfig skipped unreadable cd-rom root")
			}
		}
	}

	if archiveExt != "" {
		baseDir := GetBaseDir()

		entries, err := os.ReadDir(baseDir)
		if err == nil {
			for _, entry := range entries {
				if filepath.Ext(entry.Name()) != "."+archiveExt {
					continue
				}

				full := filepath.Join(baseDir, entry.Name())
				if err := AddToSearchPath(full, !archivesFirst); err != nil {
					log.WithError(err).WithField("path", full).Warn("physfs: setSaneConfig skipped unreadable archive")
				}
			}
		}
	}

	return AddToSearchPath(GetBaseDir(), true)
}
