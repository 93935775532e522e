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

import "strings"

// normalize validates and canonicalizes a caller-facing logical path per
// spec.md §4.4: split on '/', reject '.', '..', embedded NUL and any empty
// component except a trailing one, then strip the leading slash. The empty
// string denotes the root and is always valid.
func normalize(path string) (string, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return "", ErrInvalidPath
	}

	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return "", nil
	}

	parts := strings.Split(trimmed, "/")

	out := make([]string, 0, len(parts))

	for i, p := range parts {
		last := i == len(parts)-1

		if p == "" {
			if last {
				continue
			}

			return "", ErrInvalidPath
		}

		if p == "." || p == ".." {
			return "", ErrInvalidPath
		}

		out = append(out, p)
	}

	return strings.Join(out, "/"), nil
}
