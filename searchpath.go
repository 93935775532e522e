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

import "github.com/sirupsen/logrus"

// AddToSearchPath opens a DirReader for root (trying every registered
// backend's Probe in order, falling back to a plain directory) and links it
// into the search path: at the tail if atTail is true, otherwise at the
// head. Unlike the inherited append-loop bug in spec.md §9, this uses a
// single slice append with no loop at all, so there is no cursor that could
// fail to advance.
func AddToSearchPath(root string, atTail bool) error {
	const op = "addToSearchPath"

	global.mu.Lock()
	defer global.mu.Unlock()

	if !global.initialized {
		return newError(op, root, ErrNotInitialized)
	}

	reader, err := openDirReader(root)
	if err != nil {
		return err
	}

	entry := &searchPathEntry{root: root, reader: reader}

	if atTail {
		global.searchPath = append(global.searchPath, entry)
	} else {
		global.searchPath = append([]*searchPathEntry{entry}, global.searchPath...)
	}

	log.WithFields(logrus.Fields{"root": root, "atTail": atTail}).Debug("physfs: added to search path")

	return nil
}

// RemoveFromSearchPath removes the first entry whose original root string
// matches byte-for-byte and closes its reader. It refuses with
// ErrFilesStillOpen if any FileHandle opened through that reader is still
// live. Unlike the inherited use-after-free in spec.md §9, the entry to
// remove is located, then the slice is rebuilt without it, before Close is
// ever called — there is no freed node left to dereference on a next
// iteration because there is no manual list-walk at all.
func RemoveFromSearchPath(root string) error {
	const op = "removeFromSearchPath"

	global.mu.Lock()
	defer global.mu.Unlock()

	if !global.initialized {
		return newError(op, root, ErrNotInitialized)
	}

	idx := -1

	for i, e := range global.searchPath {
		if e.root == root {
			idx = i

			break
		}
	}

	if idx < 0 {
		return newError(op, root, ErrNotInSearchPath)
	}

	entry := global.searchPath[idx]

	if hc, ok := entry.reader.(HandleCounter); ok && hc.OpenHandles() > 0 {
		return newError(op, root, ErrFilesStillOpen)
	}

	next := make([]*searchPathEntry, 0, len(global.searchPath)-1)
	next = append(next, global.searchPath[:idx]...)
	next = append(next, global.searchPath[idx+1:]...)
	global.searchPath = next

	if err := entry.reader.Close(); err != nil {
		log.WithError(err).WithField("root", root).Warn("physfs: error closing search path reader")
	}

	return nil
}

// GetSearchPath returns the original root strings of every search-path
// entry, in order, as a freshly allocated slice the caller is free to
// mutate.
func GetSearchPath() []string {
	global.mu.RLock()
	defer global.mu.RUnlock()

	out := make([]string, len(global.searchPath))
	for i, e := range global.searchPath {
		out[i] = e.root
	}

	return out
}
