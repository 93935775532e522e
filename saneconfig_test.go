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
	"path/filepath"
	"testing"

	"github.com/MSylvia/physfs/platform"
)

func TestSetSaneConfigRefusesWhenNotInitialized(t *testing.T) {
	if err := SetSaneConfig("myapp", "", false, false); err == nil {
		t.Error("SetSaneConfig while not initialized: want an error, got nil")
	}
}

// TestSetSaneConfigComposesWriteDirAndSearchPath guards against the
// inherited bug in spec.md §9 where PHYSFS_setSaneConfig called
// addToSearchPath with an ambiguous two-argument call: every root added
// below must land at an unambiguous, individually verifiable position.
func TestSetSaneConfigComposesWriteDirAndSearchPath(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()

	writeDir := filepath.Join(home, ".myapp")
	if err := os.MkdirAll(writeDir, 0o755); err != nil {
		t.Fatal(err)
	}

	SetPlatform(platform.Fake(
		platform.WithBaseDir(base),
		platform.WithUserDir(home),
	))

	t.Cleanup(func() { SetPlatform(platform.Native()) })

	initForTest(t)

	if err := SetSaneConfig("myapp", "", false, false); err != nil {
		t.Fatalf("SetSaneConfig: want err to be nil, got %s", err)
	}

	if got := GetWriteDir(); got != writeDir {
		t.Errorf("GetWriteDir: want %q, got %q", writeDir, got)
	}

	sp := GetSearchPath()
	if len(sp) != 2 {
		t.Fatalf("GetSearchPath: want 2 entries, got %v", sp)
	}

	if sp[0] != writeDir {
		t.Errorf("GetSearchPath[0]: want the write dir %q first, got %q", writeDir, sp[0])
	}

	if sp[1] != base {
		t.Errorf("GetSearchPath[1]: want the base dir %q last, got %q", base, sp[1])
	}
}

// TestSetSaneConfigSkipsUnreadableArchivesWithoutFailing confirms an
// archive-extension match that cannot actually be opened (here, a plain
// file masquerading as one, which no registered backend accepts) is logged
// and skipped rather than aborting the call.
func TestSetSaneConfigSkipsUnreadableArchivesWithoutFailing(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()

	writeDir := filepath.Join(home, ".myapp")
	if err := os.MkdirAll(writeDir, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(base, "assets.zip"), []byte("not a real archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	SetPlatform(platform.Fake(
		platform.WithBaseDir(base),
		platform.WithUserDir(home),
	))

	t.Cleanup(func() { SetPlatform(platform.Native()) })

	initForTest(t)

	if err := SetSaneConfig("myapp", "zip", false, false); err != nil {
		t.Fatalf("SetSaneConfig: want err to be nil, got %s", err)
	}

	for _, root := range GetSearchPath() {
		if root == filepath.Join(base, "assets.zip") {
			t.Error("GetSearchPath: the unreadable archive should have been skipped, not added")
		}
	}
}
