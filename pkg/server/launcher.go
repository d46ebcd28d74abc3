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
	"github.com/spindlehttp/spindle/pkg/errors"
)

// Launcher abstracts how per-connection work is started, so the default
// goroutine-per-connection model can be swapped for a bounded variant
// without touching the parsing or dispatch logic
type Launcher interface {
	// Launch starts fn on its own unit of concurrency, or returns an error
	// if it cannot; fn is not run in that case
	Launch(fn func()) error
}

type goroutineLauncher struct{}

func (goroutineLauncher) Launch(fn func()) error {
	go fn()
	return nil
}

// NewGoroutineLauncher returns the default Launcher, which starts one
// goroutine per connection with no cap
func NewGoroutineLauncher() Launcher {
	return goroutineLauncher{}
}

type boundedLauncher struct {
	slots chan struct{}
}

func (b *boundedLauncher) Launch(fn func()) error {
	select {
	case b.slots <- struct{}{}:
	default:
		return errors.ErrServerBusy
	}
	go func() {
		defer func() { <-b.slots }()
		fn()
	}()
	return nil
}

// NewBoundedLauncher returns a Launcher that declines work with
// errors.ErrServerBusy while limit launched units are still running
func NewBoundedLauncher(limit int) Launcher {
	return &boundedLauncher{slots: make(chan struct{}, limit)}
}
