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

package platform

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// fakePlatform is an in-memory Platform for tests that must not depend on
// the host's real executable path, home directory or removable media.
// Directories created through MkdirAll/Remove are tracked in a set rather
// than touching the host, the way memfs tracks its tree in memory instead of
// delegating to os.
type fakePlatform struct {
	mu             sync.Mutex
	separator      rune
	baseDir        string
	userDir        string
	removableMedia []string
	caseSensitive  bool
	dirs           map[string]bool
}

var _ Platform = (*fakePlatform)(nil)

// Option configures a Fake Platform.
type Option func(*fakePlatform)

// WithBaseDir sets the value BaseDir returns.
func WithBaseDir(dir string) Option {
	return func(f *fakePlatform) { f.baseDir = dir }
}

// WithUserDir sets the value UserDir returns.
func WithUserDir(dir string) Option {
	return func(f *fakePlatform) { f.userDir = dir }
}

// WithRemovableMedia sets the roots RemovableMedia returns.
func WithRemovableMedia(roots ...string) Option {
	return func(f *fakePlatform) { f.removableMedia = roots }
}

// WithCaseInsensitive makes EqualFold fold case, simulating a Windows- or
// macOS-like host.
func WithCaseInsensitive() Option {
	return func(f *fakePlatform) { f.caseSensitive = false }
}

// Fake returns an in-memory Platform rooted at sane defaults
// ("/base" and "/home/user"), overridable via Option.
func Fake(opts ...Option) Platform {
	f := &fakePlatform{
		separator:     '/',
		baseDir:       "/base",
		userDir:       "/home/user",
		caseSensitive: true,
		dirs:          map[string]bool{"/base": true, "/home/user": true},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *fakePlatform) Separator() rune {
	return f.separator
}

func (f *fakePlatform) BaseDir() (string, error) {
	return f.baseDir, nil
}

func (f *fakePlatform) UserDir() (string, error) {
	return f.userDir, nil
}

func (f *fakePlatform) RemovableMedia() ([]string, error) {
	return f.removableMedia, nil
}

func (f *fakePlatform) EqualFold(a, b string) bool {
	if f.caseSensitive {
		return a == b
	}

	return strings.EqualFold(a, b)
}

func (f *fakePlatform) MkdirAll(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for dir := path; dir != "" && dir != f.separatorString(); dir = filepath.Dir(dir) {
		f.dirs[dir] = true
	}

	return nil
}

func (f *fakePlatform) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.dirs[path] {
		return os.ErrNotExist
	}

	delete(f.dirs, path)

	return nil
}

func (f *fakePlatform) separatorString() string {
	return string(f.separator)
}
