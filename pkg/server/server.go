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

// Package server provides the spindle HTTP/1.1 server: an accept loop that
// runs one connection handler per accepted connection over a shared route
// table and state cell.
//
// Example usage:
//
//	srv := server.New("127.0.0.1:8680", map[string]string{})
//	srv.Route("GET /hello", func(req *request.Request[map[string]string]) error {
//		req.WriteText("hello")
//		return nil
//	})
//	if err := srv.Serve(); err != nil {
//		// bind failure
//	}
package server

import (
	goerrors "errors"
	"net"

	"github.com/spindlehttp/spindle/pkg/errors"
	"github.com/spindlehttp/spindle/pkg/observability/logging"
	"github.com/spindlehttp/spindle/pkg/observability/logging/level"
	"github.com/spindlehttp/spindle/pkg/observability/metrics"
	"github.com/spindlehttp/spindle/pkg/request"
	"github.com/spindlehttp/spindle/pkg/router"
	"github.com/spindlehttp/spindle/pkg/state"
	"github.com/spindlehttp/spindle/pkg/status"
	"github.com/spindlehttp/spindle/pkg/testutil"
)

// ErrorHandler converts a failed dispatch into a response. It receives
// errors.ErrNoRoute when no route matched, or whatever error the route
// handler returned.
type ErrorHandler[S any] func(req *request.Request[S], err error)

// Server is an HTTP/1.1 server sharing one route table and one state cell
// across all connections. Routes are registered before Serve and are
// read-only thereafter.
type Server[S any] struct {
	address      string
	routes       *router.Routes[S]
	cell         *state.Cell[S]
	log          logging.Logger
	launcher     Launcher
	errorHandler ErrorHandler[S]
}

// New returns a Server that will bind to address, with the application
// state cell initialized to initialState
func New[S any](address string, initialState S) *Server[S] {
	s := &Server[S]{
		address:  address,
		routes:   router.New[S](),
		cell:     state.New(initialState),
		log:      logging.ConsoleLogger(level.Info),
		launcher: NewGoroutineLauncher(),
	}
	s.errorHandler = s.defaultErrorHandler
	return s
}

// Route registers a handler for a "METHOD /pattern" spec. Registration
// order is dispatch order. Must not be called once Serve has started.
func (s *Server[S]) Route(spec string, handler router.Handler[S]) error {
	return s.routes.Add(spec, handler)
}

// SetLogger replaces the server's logger
func (s *Server[S]) SetLogger(logger logging.Logger) {
	s.log = logger
}

// SetLauncher replaces the launcher used to start connection handlers
func (s *Server[S]) SetLauncher(l Launcher) {
	s.launcher = l
}

// SetErrorHandler replaces the default error handler. The replacement is
// responsible for mapping errors.ErrNoRoute as well as handler errors onto
// the response.
func (s *Server[S]) SetErrorHandler(h ErrorHandler[S]) {
	s.errorHandler = h
}

// defaultErrorHandler maps a missing route to an empty 404 and any other
// error to a 500 with a generic body. Headers already set by the handler
// are kept, so the body is replaced without a Content-Type side effect.
func (s *Server[S]) defaultErrorHandler(req *request.Request[S], err error) {
	if goerrors.Is(err, errors.ErrNoRoute) {
		req.SetNotFound()
		return
	}
	req.SetStatus(status.InternalServerError)
	req.ReplaceBody([]byte("internal server error"))
}

// Serve binds the listener and accepts connections forever, launching one
// connection handler per accepted connection. A bind failure is returned to
// the caller; accept and launch failures are logged and the loop continues.
// There is no shutdown path.
func (s *Server[S]) Serve() error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ln)
}

func (s *Server[S]) serve(ln net.Listener) error {
	s.log.Info("server listening", logging.Pairs{"address": ln.Addr()})
	for {
		nc, err := ln.Accept()
		if err != nil {
			s.log.Error("accept failed", logging.Pairs{"error": err})
			continue
		}
		metrics.ConnectionsAccepted.Inc()
		if err := s.launcher.Launch(func() { s.handleConnection(nc) }); err != nil {
			metrics.LaunchFailures.Inc()
			s.log.Error("failed to launch connection handler",
				logging.Pairs{"error": err})
			nc.Close()
		}
	}
}

// TestRequest drives the dispatch and error-handler path with a synthetic
// request and no socket I/O, returning the accumulated response
func (s *Server[S]) TestRequest(tr *testutil.Request) *testutil.Response {
	req := request.New(tr.Method, tr.URL, tr.Headers.Clone(), tr.Body, s.cell)
	s.runRequest(req, tr.URL.Path)
	return &testutil.Response{
		Status:  req.Status(),
		Headers: req.ResponseHeaders().Clone(),
		Body:    req.ResponseBody(),
	}
}
