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
	"runtime"
	"strings"
)

// nativePlatform is the default Platform, backed by the real host.
type nativePlatform struct{}

var _ Platform = nativePlatform{}

// Native returns the Platform backed by the real host filesystem and user
// database.
func Native() Platform {
	return nativePlatform{}
}

func (nativePlatform) Separator() rune {
	return filepath.Separator
}

func (nativePlatform) BaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		resolved = exe
	}

	return filepath.Dir(resolved), nil
}

func (nativePlatform) UserDir() (string, error) {
	return os.UserHomeDir()
}

// RemovableMedia reports no removable media on the default adapter: doing
// this properly needs host-specific polling (udev, IOKit, WM_DEVICECHANGE)
// that is out of scope for the bundled default and left to a caller-supplied
// Platform.
func (nativePlatform) RemovableMedia() ([]string, error) {
	return nil, nil
}

func (nativePlatform) EqualFold(a, b string) bool {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.EqualFold(a, b)
	}

	return a == b
}

func (nativePlatform) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (nativePlatform) Remove(path string) error {
	return os.Remove(path)
}
