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

// Package headers provides a case-insensitive HTTP header collection and
// common header names and values
package headers

import (
	"sort"
	"strings"
)

const (
	// Common HTTP Header Names

	// NameContentLength represents the HTTP Header Name of "Content-Length"
	NameContentLength = "Content-Length"
	// NameContentType represents the HTTP Header Name of "Content-Type"
	NameContentType = "Content-Type"
	// NameHost represents the HTTP Header Name of "Host"
	NameHost = "Host"

	// Common HTTP Header Values

	// ValueApplicationJSON represents the HTTP Header Value of "application/json"
	ValueApplicationJSON = "application/json"
	// ValueApplicationOctetStream represents the HTTP Header Value of "application/octet-stream"
	ValueApplicationOctetStream = "application/octet-stream"
	// ValueTextPlainUTF8 represents the HTTP Header Value of "text/plain; charset=UTF-8"
	ValueTextPlainUTF8 = "text/plain; charset=UTF-8"
)

// Entry is a single header with its name as first seen
type Entry struct {
	Name  string
	Value string
}

// Lookup is a collection of headers keyed by lowercased name. Lookups are
// case-insensitive; the name is stored as seen. Setting a name already
// present overwrites the prior value (last write wins).
type Lookup map[string]Entry

// New returns an empty Lookup
func New() Lookup {
	return make(Lookup)
}

// Set stores the header, replacing any existing entry for the same
// case-insensitive name
func (l Lookup) Set(name, value string) {
	l[strings.ToLower(name)] = Entry{Name: name, Value: value}
}

// Get returns the value for the case-insensitive name, and whether it was set
func (l Lookup) Get(name string) (string, bool) {
	e, ok := l[strings.ToLower(name)]
	return e.Value, ok
}

// Value returns the value for the case-insensitive name, or the empty string
func (l Lookup) Value(name string) string {
	return l[strings.ToLower(name)].Value
}

// Clone returns an exact copy of the Lookup
func (l Lookup) Clone() Lookup {
	l2 := make(Lookup, len(l))
	for k, v := range l {
		l2[k] = v
	}
	return l2
}

// Sorted returns the entries ordered by lowercased name, for deterministic
// serialization
func (l Lookup) Sorted() []Entry {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = l[k]
	}
	return entries
}
