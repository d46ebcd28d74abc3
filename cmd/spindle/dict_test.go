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
	"testing"

	"github.com/spindlehttp/spindle/pkg/observability/logging"
	"github.com/spindlehttp/spindle/pkg/status"
	"github.com/spindlehttp/spindle/pkg/testutil"
)

func TestDictServer(t *testing.T) {
	srv, err := newServer("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv.SetLogger(logging.NoopLogger())

	tr, _ := testutil.NewRequest("GET /dict/a")
	resp := srv.TestRequest(tr)
	if resp.Status != status.NotFound {
		t.Errorf("expected 404 got %d", resp.Status)
	}

	tr, err = testutil.NewRequestWithJSON("POST /dict",
		&dictItem{Key: "a", Value: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if resp = srv.TestRequest(tr); resp.Status != status.OK {
		t.Errorf("expected 200 got %d", resp.Status)
	}

	tr, _ = testutil.NewRequest("GET /dict/a")
	resp = srv.TestRequest(tr)
	if resp.Status != status.OK {
		t.Errorf("expected 200 got %d", resp.Status)
	}
	var item dictItem
	if err := resp.JSON(&item); err != nil {
		t.Fatal(err)
	}
	if item.Key != "a" || item.Value != "b" {
		t.Errorf("expected {a b} got %v", item)
	}
}
