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

package platform_test

import (
	"testing"

	"github.com/MSylvia/physfs/platform"
)

func TestNativeBaseDir(t *testing.T) {
	dir, err := platform.Native().BaseDir()
	if err != nil {
		t.Fatalf("BaseDir: want err to be nil, got %s", err)
	}

	if dir == "" {
		t.Error("BaseDir: want a non-empty path, got empty string")
	}
}

func TestFakeDefaults(t *testing.T) {
	p := platform.Fake()

	base, err := p.BaseDir()
	if err != nil || base != "/base" {
		t.Errorf("BaseDir: want (/base, nil), got (%q, %v)", base, err)
	}

	user, err := p.UserDir()
	if err != nil || user != "/home/user" {
		t.Errorf("UserDir: want (/home/user, nil), got (%q, %v)", user, err)
	}

	media, err := p.RemovableMedia()
	if err != nil || media != nil {
		t.Errorf("RemovableMedia: want (nil, nil), got (%v, %v)", media, err)
	}
}

func TestFakeOptions(t *testing.T) {
	p := platform.Fake(
		platform.WithBaseDir("/custom/base"),
		platform.WithUserDir("/custom/home"),
		platform.WithRemovableMedia("/media/usb0"),
		platform.WithCaseInsensitive(),
	)

	if base, _ := p.BaseDir(); base != "/custom/base" {
		t.Errorf("BaseDir: want /custom/base, got %s", base)
	}

	media, _ := p.RemovableMedia()
	if len(media) != 1 || media[0] != "/media/usb0" {
		t.Errorf("RemovableMedia: want [/media/usb0], got %v", media)
	}

	if !p.EqualFold("ASSETS", "assets") {
		t.Error("EqualFold with WithCaseInsensitive: want true, got false")
	}
}

func TestFakeEqualFoldDefaultIsCaseSensitive(t *testing.T) {
	p := platform.Fake()

	if p.EqualFold("ASSETS", "assets") {
		t.Error("EqualFold default: want false, got true")
	}
}

func TestFakeMkdirAllAndRemove(t *testing.T) {
	p := platform.Fake()

	if err := p.MkdirAll("/base/saves/slot1"); err != nil {
		t.Fatalf("MkdirAll: want err to be nil, got %s", err)
	}

	if err := p.Remove("/base/saves/slot1"); err != nil {
		t.Fatalf("Remove: want err to be nil, got %s", err)
	}

	if err := p.Remove("/base/saves/slot1"); err == nil {
		t.Error("Remove on a missing dir: want an error, got nil")
	}
}
