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

package main

import (
	"github.com/spindlehttp/spindle/pkg/request"
	"github.com/spindlehttp/spindle/pkg/server"
)

// dict is the shared application state: one key/value map guarded by the
// server's state cell
type dict map[string]string

type dictItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// newServer builds the key/value server: POST /dict stores an item, and
// GET /dict/:key returns it or a 404
func newServer(address string) (*server.Server[dict], error) {
	srv := server.New(address, dict{})
	if err := srv.Route("GET /dict/:key", getDict); err != nil {
		return nil, err
	}
	if err := srv.Route("POST /dict", postDict); err != nil {
		return nil, err
	}
	return srv, nil
}

func getDict(req *request.Request[dict]) error {
	key, err := request.PathParam[string](req, "key")
	if err != nil {
		return err
	}
	var value string
	var found bool
	if err := req.WithRead(func(d dict) {
		value, found = d[key]
	}); err != nil {
		return err
	}
	if !found {
		req.SetNotFound()
		return nil
	}
	return req.WriteJSON(&dictItem{Key: key, Value: value})
}

func postDict(req *request.Request[dict]) error {
	var item dictItem
	if err := req.ReadJSON(&item); err != nil {
		return err
	}
	return req.WithWrite(func(d *dict) {
		(*d)[item.Key] = item.Value
	})
}
