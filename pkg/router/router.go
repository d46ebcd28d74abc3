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

// Package router provides the ordered route table and its path-matching
// rules. Dispatch is first-match-wins in registration order, so overlapping
// patterns must be registered most-specific-first by the caller; the table
// performs no specificity reordering.
package router

import (
	"fmt"
	"strings"

	"github.com/spindlehttp/spindle/pkg/errors"
	"github.com/spindlehttp/spindle/pkg/request"
)

// Handler is the function bound to a route. A returned error is caught at
// the dispatch boundary and converted to a response by the server's error
// handler; it never crosses the connection boundary.
type Handler[S any] func(*request.Request[S]) error

// Route is one registered method/pattern/handler binding
type Route[S any] struct {
	Method  string
	Pattern Path
	Handler Handler[S]
}

// Routes is the ordered route table. It is populated before the server
// starts accepting connections and is read-only thereafter, so it is shared
// across connection goroutines without locking.
type Routes[S any] struct {
	routes []*Route[S]
}

// New returns an empty route table
func New[S any]() *Routes[S] {
	return &Routes[S]{}
}

// Add registers a route from a spec in the form "METHOD /pattern". The
// pattern may contain placeholder segments that start with a colon, for
// example "/resource/:key"; these match any single concrete segment. The
// method is matched byte-for-byte as received, and registration order is
// preserved for dispatch.
func (rt *Routes[S]) Add(spec string, handler Handler[S]) error {
	tokens := strings.Fields(spec)
	if len(tokens) != 2 {
		return fmt.Errorf("%w: %q", errors.ErrInvalidRouteSpec, spec)
	}
	if handler == nil {
		return fmt.Errorf("%w: %q", errors.ErrNilHandler, spec)
	}
	rt.routes = append(rt.routes, &Route[S]{
		Method:  tokens[0],
		Pattern: ParsePath(tokens[1]),
		Handler: handler,
	})
	return nil
}

// Len returns the number of registered routes
func (rt *Routes[S]) Len() int {
	return len(rt.routes)
}

// Dispatch scans the table in registration order and returns the first
// route whose method equals the request method and whose pattern matches
// the path, along with the placeholder bindings. The ok result is false
// when no route matches; this is a normal outcome, not an error.
func (rt *Routes[S]) Dispatch(method string, path Path) (*Route[S], Params, bool) {
	for _, r := range rt.routes {
		if r.Method != method {
			continue
		}
		if params, ok := Match(path, r.Pattern); ok {
			return r, params, true
		}
	}
	return nil, nil, false
}
