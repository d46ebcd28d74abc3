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

// Package errors provides the error values shared across the spindle packages
package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidRouteSpec is an error for a route spec that is not exactly
// "METHOD /pattern"
var ErrInvalidRouteSpec = errors.New("invalid route spec")

// ErrNilHandler is an error for a route registered with a nil handler
var ErrNilHandler = errors.New("nil handler")

// ErrMalformedRequestLine is an error for a request line with fewer than
// three tokens
var ErrMalformedRequestLine = errors.New("malformed request line")

// ErrMissingHostHeader is an error for a request that omitted the Host header
var ErrMissingHostHeader = errors.New("missing host header")

// ErrNoRoute indicates no registered route matched the request; the default
// error handler maps it to a 404 response
var ErrNoRoute = errors.New("no route matched")

// ErrStatePoisoned is an error for a state cell whose prior holder failed
// while holding the lock
var ErrStatePoisoned = errors.New("state cell poisoned")

// ErrServerBusy is an error for a launcher that cannot accept more work
var ErrServerBusy = errors.New("server busy")

// MissingParamError is an error for a path parameter name with no binding
// on the request
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("path param %s not found", e.Name)
}

// ParamParseError is an error for a path parameter value that could not be
// converted to the requested type
type ParamParseError struct {
	Name string
	Err  error
}

func (e *ParamParseError) Error() string {
	return fmt.Sprintf("failed to parse path param %s: %s", e.Name, e.Err)
}

func (e *ParamParseError) Unwrap() error {
	return e.Err
}

// BodyDecodeError is an error for a request body that could not be decoded
// as the requested type
type BodyDecodeError struct {
	Err error
}

func (e *BodyDecodeError) Error() string {
	return fmt.Sprintf("failed to decode request body: %s", e.Err)
}

func (e *BodyDecodeError) Unwrap() error {
	return e.Err
}
