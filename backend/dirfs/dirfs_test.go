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

package dirfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MSylvia/physfs/backend/dirfs"
	"github.com/MSylvia/physfs/dirreader"
)

var (
	_ dirreader.DirReader     = (*dirfs.DirFS)(nil)
	_ dirreader.Writable      = (*dirfs.DirFS)(nil)
	_ dirreader.HandleCounter = (*dirfs.DirFS)(nil)
)

func newTestRoot(tb testing.TB) *dirfs.DirFS {
	tb.Helper()

	root := tb.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "maps"), 0o755); err != nil {
		tb.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(root, "maps", "e1m1.map"), []byte("level one"), 0o644); err != nil {
		tb.Fatal(err)
	}

	d, err := dirfs.New(root)
	if err != nil {
		tb.Fatalf("New: want err to be nil, got %s", err)
	}

	return d
}

func TestExistsAndIsDirectory(t *testing.T) {
	d := newTestRoot(t)

	if !d.Exists("maps") {
		t.Error("Exists(maps): want true, got false")
	}

	if !d.IsDirectory("maps") {
		t.Error("IsDirectory(maps): want true, got false")
	}

	if !d.Exists("maps/e1m1.map") {
		t.Error("Exists(maps/e1m1.map): want true, got false")
	}

	if d.IsDirectory("maps/e1m1.map") {
		t.Error("IsDirectory(maps/e1m1.map): want false, got true")
	}

	if d.Exists("nope") {
		t.Error("Exists(nope): want false, got true")
	}
}

func TestExistsIsCaseSensitive(t *testing.T) {
	d := newTestRoot(t)

	if d.Exists("MAPS") {
		t.Error("Exists(MAPS): want false (case-sensitive), got true")
	}
}

func TestEnumerate(t *testing.T) {
	d := newTestRoot(t)

	names, err := d.Enumerate("maps")
	if err != nil {
		t.Fatalf("Enumerate: want err to be nil, got %s", err)
	}

	if len(names) != 1 || names[0] != "e1m1.map" {
		t.Errorf("Enumerate: want [e1m1.map], got %v", names)
	}

	if _, err := d.Enumerate("maps/e1m1.map"); err == nil {
		t.Error("Enumerate on a file: want an error, got nil")
	}
}

func TestOpenReadAndHandleCount(t *testing.T) {
	d := newTestRoot(t)

	h, err := d.OpenRead("maps/e1m1.map")
	if err != nil {
		t.Fatalf("OpenRead: want err to be nil, got %s", err)
	}

	if d.OpenHandles() != 1 {
		t.Errorf("OpenHandles: want 1, got %d", d.OpenHandles())
	}

	buf := make([]byte, 64)

	n, err := h.Read(buf)
	if err != nil {
		t.Fatalf("Read: want err to be nil, got %s", err)
	}

	if string(buf[:n]) != "level one" {
		t.Errorf("Read: want %q, got %q", "level one", buf[:n])
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close: want err to be nil, got %s", err)
	}

	if d.OpenHandles() != 0 {
		t.Errorf("OpenHandles after Close: want 0, got %d", d.OpenHandles())
	}
}

func TestOpenWriteAndAppend(t *testing.T) {
	d := newTestRoot(t)

	w, err := d.OpenWrite("saves/slot1.sav")
	if err != nil {
		t.Fatalf("OpenWrite: want err to be nil, got %s", err)
	}

	if _, err := w.Write([]byte("first")); err != nil {
		t.Fatalf("Write: want err to be nil, got %s", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: want err to be nil, got %s", err)
	}

	a, err := d.OpenAppend("saves/slot1.sav")
	if err != nil {
		t.Fatalf("OpenAppend: want err to be nil, got %s", err)
	}

	if _, err := a.Write([]byte("second")); err != nil {
		t.Fatalf("Write: want err to be nil, got %s", err)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: want err to be nil, got %s", err)
	}

	r, err := d.OpenRead("saves/slot1.sav")
	if err != nil {
		t.Fatalf("OpenRead: want err to be nil, got %s", err)
	}

	defer r.Close()

	buf := make([]byte, 64)

	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read: want err to be nil, got %s", err)
	}

	if string(buf[:n]) != "firstsecond" {
		t.Errorf("Read: want %q, got %q", "firstsecond", buf[:n])
	}
}

func TestRemove(t *testing.T) {
	d := newTestRoot(t)

	if err := d.Remove("maps/e1m1.map"); err != nil {
		t.Fatalf("Remove: want err to be nil, got %s", err)
	}

	if d.Exists("maps/e1m1.map") {
		t.Error("Exists after Remove: want false, got true")
	}
}

func TestCloseRefusesWithOpenHandles(t *testing.T) {
	d := newTestRoot(t)

	h, err := d.OpenRead("maps/e1m1.map")
	if err != nil {
		t.Fatalf("OpenRead: want err to be nil, got %s", err)
	}

	if err := d.Close(); err == nil {
		t.Error("Close with an open handle: want an error, got nil")
	}

	h.Close()

	if err := d.Close(); err != nil {
		t.Errorf("Close: want err to be nil, got %s", err)
	}
}
