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
	"bufio"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/spindlehttp/spindle/pkg/errors"
	"github.com/spindlehttp/spindle/pkg/headers"
	"github.com/spindlehttp/spindle/pkg/observability/logging"
	"github.com/spindlehttp/spindle/pkg/observability/metrics"
	"github.com/spindlehttp/spindle/pkg/request"
	"github.com/spindlehttp/spindle/pkg/router"
)

// handleConnection runs one request/response cycle over the accepted
// connection and closes it. There is no keep-alive: the connection is
// terminal after one response.
func (s *Server[S]) handleConnection(nc net.Conn) {
	defer nc.Close()
	s.handle(nc)
}

// handle is the connection state machine over any byte stream: read the
// request line, headers, and body, dispatch, then serialize the response.
// Errors while reading or writing abort the connection without a response;
// they are logged and never propagated to the accept loop. A handler panic
// likewise drops the connection rather than crashing the process.
func (s *Server[S]) handle(rw io.ReadWriter) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ConnectionsDropped.Inc()
			s.log.Error("panic in connection handler",
				logging.Pairs{"panic": fmt.Sprintf("%v", r)})
		}
	}()
	br := bufio.NewReader(rw)

	method, rawPath, err := readRequestLine(br)
	if err != nil {
		s.drop("failed to read request line", err)
		return
	}

	reqHeaders, err := readHeaders(br)
	if err != nil {
		s.drop("failed to read headers", err)
		return
	}

	body, err := readBody(br, reqHeaders)
	if err != nil {
		s.drop("failed to read body", err)
		return
	}

	host, ok := reqHeaders.Get(headers.NameHost)
	if !ok {
		s.drop("rejected request", errors.ErrMissingHostHeader)
		return
	}
	u, err := url.Parse("http://" + host + rawPath)
	if err != nil {
		s.drop("failed to parse request url", err)
		return
	}

	req := request.New(method, u, reqHeaders, body, s.cell)
	s.runRequest(req, u.Path)

	if err := writeResponse(rw, req); err != nil {
		s.drop("failed to write response", err)
		return
	}
	metrics.RequestStatus.WithLabelValues(method, req.Status().String()).Inc()
}

// runRequest dispatches the request to the first matching route and applies
// the error handler to any handler failure or missing route. It is the
// shared path between live connections and TestRequest.
func (s *Server[S]) runRequest(req *request.Request[S], path string) {
	route, params, ok := s.routes.Dispatch(req.Method(), router.ParsePath(path))
	if !ok {
		s.log.Debug("no route matched",
			logging.Pairs{"method": req.Method(), "path": path})
		s.errorHandler(req, errors.ErrNoRoute)
		return
	}
	req.SetPathParams(params)
	if err := route.Handler(req); err != nil {
		s.log.Error("handler error",
			logging.Pairs{"method": req.Method(), "path": path, "error": err})
		s.errorHandler(req, err)
	}
}

func (s *Server[S]) drop(event string, err error) {
	metrics.ConnectionsDropped.Inc()
	s.log.Error(event, logging.Pairs{"error": err})
}

// readRequestLine reads one line and splits it into method, path, and
// protocol version tokens; fewer than three tokens is fatal for the
// connection. Tokens past the third are ignored.
func readRequestLine(br *bufio.Reader) (method, rawPath string, err error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return "", "", fmt.Errorf("%w: %q", errors.ErrMalformedRequestLine, line)
	}
	return tokens[0], tokens[1], nil
}

// readHeaders reads header lines until an empty line. Each line splits once
// on the first colon with the value whitespace-trimmed; a line with no
// colon contributes an entry with an empty value. Duplicate names are
// last-write-wins.
func readHeaders(br *bufio.Reader) (headers.Lookup, error) {
	lookup := headers.New()
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return lookup, nil
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			lookup.Set(line, "")
			continue
		}
		lookup.Set(name, strings.TrimSpace(value))
	}
}

// readBody reads exactly Content-Length bytes when the header is present
// and parses as a non-negative integer; otherwise the body is empty. A body
// sent without Content-Length is never read.
func readBody(br *bufio.Reader, lookup headers.Lookup) ([]byte, error) {
	cl, ok := lookup.Get(headers.NameContentLength)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(cl)
	if err != nil || n < 0 {
		return nil, nil
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(br, body); err != nil {
		return nil, err
	}
	return body, nil
}

// writeResponse emits the status line, the accumulated headers in sorted
// order, a computed Content-Length, a blank line, and the body. Lines are
// CRLF-terminated. Content-Length is always computed from the body; a
// handler-set value is discarded so the header is never emitted twice.
func writeResponse[S any](w io.Writer, req *request.Request[S]) error {
	bw := bufio.NewWriter(w)
	code := req.Status()
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", int(code),
		code.Reason()); err != nil {
		return err
	}
	for _, e := range req.ResponseHeaders().Sorted() {
		if strings.EqualFold(e.Name, headers.NameContentLength) {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", e.Name, e.Value); err != nil {
			return err
		}
	}
	body := req.ResponseBody()
	if _, err := fmt.Fprintf(bw, "%s: %d\r\n\r\n", headers.NameContentLength,
		len(body)); err != nil {
		return err
	}
	if _, err := bw.Write(body); err != nil {
		return err
	}
	return bw.Flush()
}
