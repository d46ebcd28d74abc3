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

// Package testutil provides synthetic requests for driving a server's
// dispatch path in tests without any socket I/O
package testutil

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spindlehttp/spindle/pkg/errors"
	"github.com/spindlehttp/spindle/pkg/headers"
	"github.com/spindlehttp/spindle/pkg/status"
)

// Request is a synthetic request for Server.TestRequest
type Request struct {
	Method  string
	URL     *url.URL
	Headers headers.Lookup
	Body    []byte
}

// NewRequest builds a Request from a spec in the form "METHOD /path". The
// path is expanded to the full URL "http://example.com/path".
func NewRequest(spec string) (*Request, error) {
	return NewRequestWithBody(spec, nil)
}

// NewRequestWithBody builds a Request from a "METHOD /path" spec and a raw
// body
func NewRequestWithBody(spec string, body []byte) (*Request, error) {
	tokens := strings.Fields(spec)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidRouteSpec, spec)
	}
	u, err := url.Parse("http://example.com" + tokens[1])
	if err != nil {
		return nil, err
	}
	return &Request{
		Method:  tokens[0],
		URL:     u,
		Headers: headers.New(),
		Body:    body,
	}, nil
}

// NewRequestWithJSON builds a Request from a "METHOD /path" spec with the
// JSON serialization of v as the body
func NewRequestWithJSON(spec string, v any) (*Request, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return NewRequestWithBody(spec, body)
}

// Response is the comparable result of Server.TestRequest
type Response struct {
	Status  status.Code
	Headers headers.Lookup
	Body    []byte
}

// JSON deserializes the response body into the provided pointer
func (r *Response) JSON(into any) error {
	if err := json.Unmarshal(r.Body, into); err != nil {
		return &errors.BodyDecodeError{Err: err}
	}
	return nil
}
