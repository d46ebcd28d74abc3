/*
 * Copyright 2024 The Spindle Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package router

import "strings"

// Placeholder is the sentinel prefix marking a pattern segment that matches
// any single concrete segment and binds its value
const Placeholder = ':'

// Path is an ordered sequence of segments split on "/". Splitting is exact:
// leading and trailing slashes produce empty segments that must still line
// up positionally when matching.
type Path struct {
	segments []string
}

// ParsePath splits s on "/" into a Path
func ParsePath(s string) Path {
	return Path{segments: strings.Split(s, "/")}
}

// Len returns the number of segments
func (p Path) Len() int {
	return len(p.segments)
}

func (p Path) String() string {
	return strings.Join(p.segments, "/")
}

// Params is a mapping from placeholder name to the concrete segment value
// bound at that position
type Params map[string]string

// Match tests the concrete path against the pattern path. A match requires
// an identical segment count, with every non-placeholder pattern segment
// byte-equal to the corresponding concrete segment. Placeholder segments
// bind unconditionally. A pattern that reuses a placeholder name binds the
// later occurrence; this is not validated at registration time.
func Match(concrete, pattern Path) (Params, bool) {
	if len(concrete.segments) != len(pattern.segments) {
		return nil, false
	}
	params := make(Params)
	for i, seg := range pattern.segments {
		if strings.HasPrefix(seg, string(Placeholder)) {
			params[seg[1:]] = concrete.segments[i]
			continue
		}
		if seg != concrete.segments[i] {
			return nil, false
		}
	}
	return params, true
}
