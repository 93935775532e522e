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

package zipfs_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/MSylvia/physfs/backend/zipfs"
	"github.com/MSylvia/physfs/dirreader"
)

func newTestArchive(tb testing.TB) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "assets.zip")

	f, err := os.Create(path)
	if err != nil {
		tb.Fatal(err)
	}

	defer f.Close()

	w := zip.NewWriter(f)

	for name, body := range map[string]string{
		"maps/e1m1.map": "level one",
		"readme.txt":    "hello",
	} {
		entry, err := w.Create(name)
		if err != nil {
			tb.Fatal(err)
		}

		if _, err := entry.Write([]byte(body)); err != nil {
			tb.Fatal(err)
		}
	}

	if err := w.Close(); err != nil {
		tb.Fatal(err)
	}

	return path
}

func TestProbeAndOpen(t *testing.T) {
	path := newTestArchive(t)

	b := zipfs.Backend{}

	if !b.Probe(path) {
		t.Fatal("Probe: want true, got false")
	}

	z, err := b.Open(path)
	if err != nil {
		t.Fatalf("Open: want err to be nil, got %s", err)
	}

	defer z.Close()

	if !z.Exists("maps/e1m1.map") {
		t.Error("Exists(maps/e1m1.map): want true, got false")
	}

	if !z.IsDirectory("maps") {
		t.Error("IsDirectory(maps): want true, got false")
	}
}

func TestProbeRejectsNonArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-zip.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := zipfs.Backend{}

	if b.Probe(path) {
		t.Error("Probe on plain text: want false, got true")
	}
}

func TestEnumerate(t *testing.T) {
	path := newTestArchive(t)

	z, err := (zipfs.Backend{}).Open(path)
	if err != nil {
		t.Fatalf("Open: want err to be nil, got %s", err)
	}

	defer z.Close()

	names, err := z.Enumerate("")
	if err != nil {
		t.Fatalf("Enumerate: want err to be nil, got %s", err)
	}

	want := map[string]bool{"maps": true, "readme.txt": true}

	if len(names) != len(want) {
		t.Fatalf("Enumerate: want %d entries, got %v", len(want), names)
	}

	for _, n := range names {
		if !want[n] {
			t.Errorf("Enumerate: unexpected entry %q", n)
		}
	}
}

func TestOpenReadSeekAndHandleCount(t *testing.T) {
	path := newTestArchive(t)

	z, err := (zipfs.Backend{}).Open(path)
	if err != nil {
		t.Fatalf("Open: want err to be nil, got %s", err)
	}

	defer z.Close()

	hc := z.(dirreader.HandleCounter)

	h, err := z.OpenRead("readme.txt")
	if err != nil {
		t.Fatalf("OpenRead: want err to be nil, got %s", err)
	}

	if hc.OpenHandles() != 1 {
		t.Errorf("OpenHandles: want 1, got %d", hc.OpenHandles())
	}

	if _, err := h.Seek(2, 0); err != nil {
		t.Fatalf("Seek: want err to be nil, got %s", err)
	}

	buf := make([]byte, 16)

	n, err := h.Read(buf)
	if err != nil {
		t.Fatalf("Read: want err to be nil, got %s", err)
	}

	if string(buf[:n]) != "llo" {
		t.Errorf("Read after Seek: want %q, got %q", "llo", buf[:n])
	}

	if _, err := h.Write([]byte("x")); err == nil {
		t.Error("Write on a zip entry: want an error, got nil")
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close: want err to be nil, got %s", err)
	}

	if hc.OpenHandles() != 0 {
		t.Errorf("OpenHandles after Close: want 0, got %d", hc.OpenHandles())
	}
}

func TestOpenReadMissingEntry(t *testing.T) {
	path := newTestArchive(t)

	z, err := (zipfs.Backend{}).Open(path)
	if err != nil {
		t.Fatalf("Open: want err to be nil, got %s", err)
	}

	defer z.Close()

	if _, err := z.OpenRead("nope.txt"); err != dirreader.ErrNoSuchFile {
		t.Errorf("OpenRead(nope.txt): want ErrNoSuchFile, got %v", err)
	}
}
