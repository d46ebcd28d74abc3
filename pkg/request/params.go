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

package request

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/spindlehttp/spindle/pkg/errors"
)

// PathParam returns the named placeholder binding converted to T. For a
// route "GET /resource/:key", the handler retrieves the ":key" portion with
// PathParam[string](req, "key"). T may be any string, integer, float, or
// bool type, or a type whose pointer implements encoding.TextUnmarshaler.
// An absent binding fails with *errors.MissingParamError; a failed
// conversion fails with *errors.ParamParseError carrying the cause.
func PathParam[T any, S any](r *Request[S], name string) (T, error) {
	var out T
	value, ok := r.pathParams[name]
	if !ok {
		return out, &errors.MissingParamError{Name: name}
	}
	if err := convertParam(value, &out); err != nil {
		return out, &errors.ParamParseError{Name: name, Err: err}
	}
	return out, nil
}

func convertParam(s string, into any) error {
	if tu, ok := into.(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText([]byte(s))
	}
	elem := reflect.ValueOf(into).Elem()
	switch elem.Kind() {
	case reflect.String:
		elem.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, elem.Type().Bits())
		if err != nil {
			return err
		}
		elem.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, elem.Type().Bits())
		if err != nil {
			return err
		}
		elem.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, elem.Type().Bits())
		if err != nil {
			return err
		}
		elem.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		elem.SetBool(b)
	default:
		return fmt.Errorf("unsupported path param type %s", elem.Type())
	}
	return nil
}
