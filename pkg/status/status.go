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

// Package status provides HTTP status codes and their canonical reason phrases
package status

import (
	"net/http"
	"strconv"
)

// Code is a numeric HTTP response status code
type Code int

const (
	OK                  Code = http.StatusOK
	Created             Code = http.StatusCreated
	NoContent           Code = http.StatusNoContent
	MovedPermanently    Code = http.StatusMovedPermanently
	Found               Code = http.StatusFound
	BadRequest          Code = http.StatusBadRequest
	Unauthorized        Code = http.StatusUnauthorized
	Forbidden           Code = http.StatusForbidden
	NotFound            Code = http.StatusNotFound
	MethodNotAllowed    Code = http.StatusMethodNotAllowed
	Conflict            Code = http.StatusConflict
	PayloadTooLarge     Code = http.StatusRequestEntityTooLarge
	InternalServerError Code = http.StatusInternalServerError
	NotImplemented      Code = http.StatusNotImplemented
	BadGateway          Code = http.StatusBadGateway
	ServiceUnavailable  Code = http.StatusServiceUnavailable
)

// Reason returns the canonical reason phrase for the code, or "Unknown" for
// a code with no registered phrase
func (c Code) Reason() string {
	if r := http.StatusText(int(c)); r != "" {
		return r
	}
	return "Unknown"
}

func (c Code) String() string {
	return strconv.Itoa(int(c))
}
