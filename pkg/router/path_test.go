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

import (
	"reflect"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 1},
		{"/", 2},
		{"/dict", 2},
		{"/dict/", 3},
		{"/dict/:key", 3},
		{"a/b/c", 3},
	}
	for _, test := range tests {
		p := ParsePath(test.input)
		if p.Len() != test.expected {
			t.Errorf("path %q: expected %d segments got %d", test.input,
				test.expected, p.Len())
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		title       string
		concrete    string
		pattern     string
		shouldMatch bool
		params      Params
	}{
		{
			title:       "literal match",
			concrete:    "/dict",
			pattern:     "/dict",
			shouldMatch: true,
			params:      Params{},
		},
		{
			title:       "literal mismatch",
			concrete:    "/dict",
			pattern:     "/list",
			shouldMatch: false,
		},
		{
			title:       "placeholder binds literal value",
			concrete:    "/dict/a",
			pattern:     "/dict/:key",
			shouldMatch: true,
			params:      Params{"key": "a"},
		},
		{
			title:       "placeholder binds any content",
			concrete:    "/dict/:odd",
			pattern:     "/dict/:key",
			shouldMatch: true,
			params:      Params{"key": ":odd"},
		},
		{
			title:       "segment count mismatch fails regardless of content",
			concrete:    "/dict/a/b",
			pattern:     "/dict/:key",
			shouldMatch: false,
		},
		{
			title:       "trailing slash is not normalized",
			concrete:    "/dict/",
			pattern:     "/dict",
			shouldMatch: false,
		},
		{
			title:       "empty trailing segments line up",
			concrete:    "/dict/",
			pattern:     "/dict/",
			shouldMatch: true,
			params:      Params{},
		},
		{
			title:       "placeholder binds empty segment",
			concrete:    "/dict/",
			pattern:     "/dict/:key",
			shouldMatch: true,
			params:      Params{"key": ""},
		},
		{
			title:       "multiple placeholders",
			concrete:    "/a/1/b/2",
			pattern:     "/a/:x/b/:y",
			shouldMatch: true,
			params:      Params{"x": "1", "y": "2"},
		},
		{
			title:       "duplicate placeholder keeps the later binding",
			concrete:    "/a/b",
			pattern:     "/:x/:x",
			shouldMatch: true,
			params:      Params{"x": "b"},
		},
	}
	for _, test := range tests {
		params, ok := Match(ParsePath(test.concrete), ParsePath(test.pattern))
		if ok != test.shouldMatch {
			t.Errorf("%s: expected match=%t got %t", test.title,
				test.shouldMatch, ok)
			continue
		}
		if ok && !reflect.DeepEqual(params, test.params) {
			t.Errorf("%s: expected params %v got %v", test.title,
				test.params, params)
		}
	}
}
