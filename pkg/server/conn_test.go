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

package server

import (
	"bytes"
	goerrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/spindlehttp/spindle/pkg/observability/logging"
	"github.com/spindlehttp/spindle/pkg/request"
)

type rwPair struct {
	io.Reader
	io.Writer
}

// drive runs the connection state machine over an in-memory stream and
// returns the serialized response
func drive[S any](s *Server[S], raw string) string {
	out := &bytes.Buffer{}
	s.handle(rwPair{Reader: strings.NewReader(raw), Writer: out})
	return out.String()
}

func newEchoServer(t *testing.T) *Server[struct{}] {
	t.Helper()
	s := New("127.0.0.1:0", struct{}{})
	s.SetLogger(logging.NoopLogger())
	err := s.Route("GET /hello/:name", func(req *request.Request[struct{}]) error {
		name, err := request.PathParam[string](req, "name")
		if err != nil {
			return err
		}
		req.WriteText("hello " + name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	err = s.Route("POST /echo", func(req *request.Request[struct{}]) error {
		req.WriteBytes(req.Body())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestHandleBasicRequest(t *testing.T) {
	s := newEchoServer(t)
	got := drive(s, "GET /hello/world HTTP/1.1\r\nHost: example.com\r\n\r\n")
	expected := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"Content-Length: 11\r\n" +
		"\r\n" +
		"hello world"
	if got != expected {
		t.Errorf("expected\n%q\ngot\n%q", expected, got)
	}
}

func TestHandleToleratesBareNewlines(t *testing.T) {
	s := newEchoServer(t)
	got := drive(s, "GET /hello/world HTTP/1.1\nHost: example.com\n\n")
	if !strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("expected a 200 response got %q", got)
	}
}

func TestHandleRequestBody(t *testing.T) {
	s := newEchoServer(t)
	got := drive(s, "POST /echo HTTP/1.1\r\nHost: example.com\r\n"+
		"Content-Length: 5\r\n\r\nabcde")
	if !strings.HasSuffix(got, "\r\n\r\nabcde") {
		t.Errorf("expected the echoed body got %q", got)
	}
}

func TestHandleMissingContentLengthMeansEmptyBody(t *testing.T) {
	s := New("127.0.0.1:0", struct{}{})
	s.SetLogger(logging.NoopLogger())
	var observed []byte
	s.Route("POST /echo", func(req *request.Request[struct{}]) error {
		observed = req.Body()
		return nil
	})
	// a body is present on the stream but not announced
	drive(s, "POST /echo HTTP/1.1\r\nHost: example.com\r\n\r\nabcde")
	if len(observed) != 0 {
		t.Errorf("expected an empty body got %q", observed)
	}
}

func TestHandleHeaderParsing(t *testing.T) {
	s := New("127.0.0.1:0", struct{}{})
	s.SetLogger(logging.NoopLogger())
	var accept, odd string
	s.Route("GET /x", func(req *request.Request[struct{}]) error {
		accept, _ = req.Header("accept")
		odd, _ = req.Header("just-a-name")
		return nil
	})
	drive(s, "GET /x HTTP/1.1\r\nHost: example.com\r\n"+
		"Accept:   application/json\r\n"+
		"just-a-name\r\n\r\n")
	if accept != "application/json" {
		t.Errorf("expected trimmed value got %q", accept)
	}
	if odd != "" {
		t.Errorf("expected empty value for a colonless line got %q", odd)
	}
}

func TestHandleContentLengthIsAlwaysComputed(t *testing.T) {
	s := New("127.0.0.1:0", struct{}{})
	s.SetLogger(logging.NoopLogger())
	s.Route("GET /x", func(req *request.Request[struct{}]) error {
		// a handler-set Content-Length must not produce a second line
		req.SetHeader("Content-Length", "9999")
		req.ReplaceBody([]byte("abcde"))
		return nil
	})
	got := drive(s, "GET /x HTTP/1.1\r\nHost: example.com\r\n\r\n")
	expected := "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nabcde"
	if got != expected {
		t.Errorf("expected\n%q\ngot\n%q", expected, got)
	}
	if strings.Count(got, "Content-Length") != 1 {
		t.Errorf("expected exactly one Content-Length line got %q", got)
	}
}

func TestHandleNotFound(t *testing.T) {
	s := newEchoServer(t)
	got := drive(s, "GET /nope HTTP/1.1\r\nHost: example.com\r\n\r\n")
	expected := "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n"
	if got != expected {
		t.Errorf("expected\n%q\ngot\n%q", expected, got)
	}
}

func TestHandleMalformedRequestLine(t *testing.T) {
	s := newEchoServer(t)
	for _, raw := range []string{
		"\r\n",
		"GET\r\n",
		"GET /hello/world\r\n",
	} {
		if got := drive(s, raw); got != "" {
			t.Errorf("request %q: expected a dropped connection got %q", raw, got)
		}
	}
}

func TestHandleMissingHost(t *testing.T) {
	s := newEchoServer(t)
	if got := drive(s, "GET /hello/world HTTP/1.1\r\n\r\n"); got != "" {
		t.Errorf("expected a dropped connection got %q", got)
	}
}

func TestHandlerErrorProducesGeneric500(t *testing.T) {
	s := New("127.0.0.1:0", struct{}{})
	s.SetLogger(logging.NoopLogger())
	s.Route("GET /fail", func(req *request.Request[struct{}]) error {
		req.SetHeader("X-Before", "kept")
		return goerrors.New("application exploded")
	})
	got := drive(s, "GET /fail HTTP/1.1\r\nHost: example.com\r\n\r\n")
	expected := "HTTP/1.1 500 Internal Server Error\r\n" +
		"X-Before: kept\r\n" +
		"Content-Length: 21\r\n" +
		"\r\n" +
		"internal server error"
	if got != expected {
		t.Errorf("expected\n%q\ngot\n%q", expected, got)
	}
	if strings.Contains(got, "application exploded") {
		t.Error("internal error detail must not leak to the client")
	}
}

func TestHandlerPanicDropsConnection(t *testing.T) {
	s := New("127.0.0.1:0", struct{}{})
	s.SetLogger(logging.NoopLogger())
	s.Route("GET /panic", func(*request.Request[struct{}]) error {
		panic("boom")
	})
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("panic escaped the connection handler: %v", r)
		}
	}()
	got := drive(s, "GET /panic HTTP/1.1\r\nHost: example.com\r\n\r\n")
	if got != "" {
		t.Errorf("expected a dropped connection got %q", got)
	}
}
