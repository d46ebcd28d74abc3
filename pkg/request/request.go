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

// Package request provides the Request passed to route handlers. It carries
// both the parsed input request and the accumulated output response, as well
// as access to state shared across requests.
package request

import (
	"encoding/json"
	"net/url"

	"github.com/spindlehttp/spindle/pkg/errors"
	"github.com/spindlehttp/spindle/pkg/headers"
	"github.com/spindlehttp/spindle/pkg/state"
	"github.com/spindlehttp/spindle/pkg/status"
)

// Request is the value threaded through a single handler invocation. The
// response accumulates with defaults of status 200, no headers, and an
// empty body. S is the application state type held by the server's state
// cell.
type Request[S any] struct {
	method     string
	url        *url.URL
	pathParams map[string]string
	reqHeaders headers.Lookup
	reqBody    []byte
	cell       *state.Cell[S]

	respStatus  status.Code
	respHeaders headers.Lookup
	respBody    []byte
}

// New returns a Request for one dispatch. The path parameter bindings are
// attached separately by the dispatcher once a route has matched.
func New[S any](method string, u *url.URL, reqHeaders headers.Lookup,
	reqBody []byte, cell *state.Cell[S]) *Request[S] {
	if reqHeaders == nil {
		reqHeaders = headers.New()
	}
	return &Request[S]{
		method:      method,
		url:         u,
		pathParams:  make(map[string]string),
		reqHeaders:  reqHeaders,
		reqBody:     reqBody,
		cell:        cell,
		respStatus:  status.OK,
		respHeaders: headers.New(),
	}
}

// Method returns the request method as received, e.g. "GET"
func (r *Request[S]) Method() string {
	return r.method
}

// URL returns the request URL
func (r *Request[S]) URL() *url.URL {
	return r.url
}

// Header returns the value of the named request header; lookups are
// case-insensitive
func (r *Request[S]) Header(name string) (string, bool) {
	return r.reqHeaders.Get(name)
}

// Headers returns the request headers. The returned Lookup must be treated
// as read-only.
func (r *Request[S]) Headers() headers.Lookup {
	return r.reqHeaders
}

// Body returns the raw request body. A request without a well-formed
// Content-Length header has an empty body.
func (r *Request[S]) Body() []byte {
	return r.reqBody
}

// SetPathParams attaches the placeholder bindings produced by route
// matching. It is called by the dispatcher, not by handlers.
func (r *Request[S]) SetPathParams(params map[string]string) {
	if params == nil {
		params = make(map[string]string)
	}
	r.pathParams = params
}

// ReadJSON deserializes the request body as JSON into the provided pointer
func (r *Request[S]) ReadJSON(into any) error {
	if err := json.Unmarshal(r.reqBody, into); err != nil {
		return &errors.BodyDecodeError{Err: err}
	}
	return nil
}

// WriteJSON serializes v as the response body and sets the Content-Type to
// "application/json". A serialization failure leaves the response unchanged.
func (r *Request[S]) WriteJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.respBody = b
	r.SetContentType(headers.ValueApplicationJSON)
	return nil
}

// WriteText writes s as the response body and sets the Content-Type to
// "text/plain; charset=UTF-8"
func (r *Request[S]) WriteText(s string) {
	r.respBody = []byte(s)
	r.SetContentType(headers.ValueTextPlainUTF8)
}

// WriteBytes writes b as the response body and sets the Content-Type to
// "application/octet-stream"
func (r *Request[S]) WriteBytes(b []byte) {
	r.respBody = append([]byte(nil), b...)
	r.SetContentType(headers.ValueApplicationOctetStream)
}

// ReplaceBody replaces the response body without touching any headers
func (r *Request[S]) ReplaceBody(b []byte) {
	r.respBody = b
}

// SetStatus sets the response status code; the last call wins
func (r *Request[S]) SetStatus(code status.Code) {
	r.respStatus = code
}

// SetNotFound sets the response status code to 404
func (r *Request[S]) SetNotFound() {
	r.SetStatus(status.NotFound)
}

// SetHeader sets a response header. Names and values are not validated.
func (r *Request[S]) SetHeader(name, value string) {
	r.respHeaders.Set(name, value)
}

// SetContentType sets the Content-Type response header
func (r *Request[S]) SetContentType(value string) {
	r.SetHeader(headers.NameContentType, value)
}

// WithRead runs fn with shared read access to the application state. See
// state.Cell for the access contract.
func (r *Request[S]) WithRead(fn func(s S)) error {
	return r.cell.WithRead(fn)
}

// WithWrite runs fn with exclusive access to the application state. See
// state.Cell for the access contract.
func (r *Request[S]) WithWrite(fn func(s *S)) error {
	return r.cell.WithWrite(fn)
}

// Status returns the accumulated response status code
func (r *Request[S]) Status() status.Code {
	return r.respStatus
}

// ResponseHeaders returns the accumulated response headers
func (r *Request[S]) ResponseHeaders() headers.Lookup {
	return r.respHeaders
}

// ResponseBody returns the accumulated response body
func (r *Request[S]) ResponseBody() []byte {
	return r.respBody
}
