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

// Package state provides the synchronized cell through which handlers access
// application state shared across connections
package state

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spindlehttp/spindle/pkg/errors"
)

// Cell wraps a single application state value behind a readers-writer lock.
// Any number of WithRead closures may run concurrently; WithWrite excludes
// all other readers and writers for its duration. The closure must not
// re-enter the cell; a re-entrant acquisition deadlocks like the underlying
// sync.RWMutex.
type Cell[S any] struct {
	mtx      sync.RWMutex
	poisoned atomic.Bool
	value    S
}

// New returns a Cell holding the provided initial state
func New[S any](initial S) *Cell[S] {
	return &Cell[S]{value: initial}
}

// WithRead calls fn with a copy of the state value while holding the read
// lock. The state must not be mutated through any reference types it
// contains. Results are moved out by capture in fn's closure.
func (c *Cell[S]) WithRead(fn func(s S)) (err error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	if c.poisoned.Load() {
		return errors.ErrStatePoisoned
	}
	defer c.recoverAccess(&err)
	fn(c.value)
	return nil
}

// WithWrite calls fn with exclusive access to the state value. If fn panics,
// the cell is poisoned and all subsequent accesses fail with
// errors.ErrStatePoisoned.
func (c *Cell[S]) WithWrite(fn func(s *S)) (err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.poisoned.Load() {
		return errors.ErrStatePoisoned
	}
	defer c.recoverAccess(&err)
	fn(&c.value)
	return nil
}

// recoverAccess converts a panic inside an access closure into a poisoned
// cell and a recoverable error, mirroring lock poisoning semantics
func (c *Cell[S]) recoverAccess(err *error) {
	if r := recover(); r != nil {
		c.poisoned.Store(true)
		*err = fmt.Errorf("%w: %v", errors.ErrStatePoisoned, r)
	}
}
