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

// Package memfs implements dirreader.DirReader entirely in memory, the way
// the teacher's vfs/memfs keeps its whole tree in a map rather than
// delegating to the host. It exists for tests that want a writable,
// symlink-capable root with no real filesystem underneath: fast, isolated,
// and safe to mutate concurrently from independent test cases.
package memfs

import (
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/MSylvia/physfs/dirreader"
)

type node struct {
	isDir   bool
	isLink  bool
	data    []byte
	linksTo string
}

// MemFS is an in-memory DirReader and Writable root.
type MemFS struct {
	mu      sync.RWMutex
	nodes   map[string]*node
	handles int64
}

var (
	_ dirreader.DirReader     = (*MemFS)(nil)
	_ dirreader.Writable      = (*MemFS)(nil)
	_ dirreader.HandleCounter = (*MemFS)(nil)
)

// New returns an empty in-memory root.
func New() *MemFS {
	return &MemFS{nodes: map[string]*node{"": {isDir: true}}}
}

// Features reports full read/write/symlink support and no archive-ness.
func (m *MemFS) Features() dirreader.Feature {
	return dirreader.FeatEnumerate | dirreader.FeatWrite | dirreader.FeatSymlink
}

func clean(p string) string {
	return strings.TrimSuffix(p, "/")
}

// Seed populates the tree directly, for test setup convenience. data == nil
// marks p as a directory.
func (m *MemFS) Seed(p string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = clean(p)

	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if _, ok := m.nodes[dir]; !ok {
			m.nodes[dir] = &node{isDir: true}
		}
	}

	if data == nil {
		m.nodes[p] = &node{isDir: true}

		return
	}

	m.nodes[p] = &node{data: append([]byte(nil), data...)}
}

// SeedSymlink registers newName as a symlink to oldName.
func (m *MemFS) SeedSymlink(newName, oldName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nodes[clean(newName)] = &node{isLink: true, linksTo: clean(oldName)}
}

func (m *MemFS) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.nodes[clean(p)]

	return ok
}

func (m *MemFS) IsDirectory(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[clean(p)]

	return ok && n.isDir
}

func (m *MemFS) IsSymLink(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[clean(p)]

	return ok && n.isLink
}

func (m *MemFS) Enumerate(p string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = clean(p)

	n, ok := m.nodes[p]
	if !ok {
		return nil, dirreader.ErrNoSuchPath
	}

	if !n.isDir {
		return nil, dirreader.ErrNotADir
	}

	seen := map[string]bool{}

	var names []string

	for full := range m.nodes {
		if full == "" || full == p {
			continue
		}

		if path.Dir(full) != p {
			continue
		}

		name := path.Base(full)
		if !seen[name] {
			seen[name] = true

			names = append(names, name)
		}
	}

	return names, nil
}

func (m *MemFS) OpenRead(p string) (dirreader.FileHandle, error) {
	m.mu.RLock()
	n, ok := m.nodes[clean(p)]
	m.mu.RUnlock()

	if !ok {
		return nil, dirreader.ErrNoSuchFile
	}

	if n.isDir {
		return nil, dirreader.ErrNotAFile
	}

	atomic.AddInt64(&m.handles, 1)

	return &memFile{m: m, n: n}, nil
}

func (m *MemFS) OpenWrite(p string) (dirreader.FileHandle, error) {
	m.mu.Lock()
	p = clean(p)

	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if _, ok := m.nodes[dir]; !ok {
			m.nodes[dir] = &node{isDir: true}
		}
	}

	n := &node{}
	m.nodes[p] = n
	m.mu.Unlock()

	atomic.AddInt64(&m.handles, 1)

	return &memFile{m: m, n: n}, nil
}

func (m *MemFS) OpenAppend(p string) (dirreader.FileHandle, error) {
	m.mu.Lock()
	p = clean(p)

	n, ok := m.nodes[p]
	if !ok {
		n = &node{}
		m.nodes[p] = n
	}

	m.mu.Unlock()

	atomic.AddInt64(&m.handles, 1)

	return &memFile{m: m, n: n, pos: int64(len(n.data))}, nil
}

func (m *MemFS) Mkdir(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = clean(p)

	for dir := p; dir != "." && dir != "/" && dir != ""; dir = path.Dir(dir) {
		if existing, ok := m.nodes[dir]; ok {
			if !existing.isDir {
				return dirreader.ErrNotADir
			}

			continue
		}

		m.nodes[dir] = &node{isDir: true}
	}

	return nil
}

func (m *MemFS) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = clean(p)

	if _, ok := m.nodes[p]; !ok {
		return dirreader.ErrNoSuchPath
	}

	delete(m.nodes, p)

	return nil
}

func (m *MemFS) OpenHandles() int {
	return int(atomic.LoadInt64(&m.handles))
}

func (m *MemFS) Close() error {
	if m.OpenHandles() > 0 {
		return dirreader.ErrNotSupported
	}

	return nil
}
