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

// Package logging provides the structured logger used across the spindle
// packages, emitting sorted key=value lines to the console or to a rotated
// log file
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spindlehttp/spindle/pkg/observability/logging/level"
	"github.com/spindlehttp/spindle/pkg/observability/logging/options"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	_ Logger    = &logger{}
	_ io.Writer = &logger{}
)

// Logger writes structured log events at or above its configured level
type Logger interface {
	SetLogLevel(level.Level)
	Level() level.Level
	Close()
	//
	Log(logLevel level.Level, event string, detail Pairs)
	Debug(event string, detail Pairs)
	Info(event string, detail Pairs)
	Warn(event string, detail Pairs)
	Error(event string, detail Pairs)
	Fatal(code int, event string, detail Pairs)
}

// Pairs represents the key=value pairs that describe a log event
type Pairs map[string]any

// New returns a Logger for the provided logging options, writing to stdout
// when no log file is configured, or to a size-rotated log file otherwise
func New(o *options.Options) Logger {
	if o == nil {
		o = options.New()
	}
	l := &logger{now: time.Now}
	if o.LogFile == "" {
		l.writer = os.Stdout
	} else {
		l.writer = &lumberjack.Logger{
			Filename:   o.LogFile,
			MaxSize:    256, // megabytes
			MaxBackups: 80,
			MaxAge:     7, // days
			Compress:   true,
		}
	}
	if c, ok := l.writer.(io.Closer); ok {
		l.closer = c
	}
	l.SetLogLevel(level.Level(o.LogLevel))
	return l
}

// NoopLogger returns a Logger that discards all events
func NoopLogger() Logger {
	return &logger{levelID: level.InfoID, l: level.Info, now: time.Now}
}

// StreamLogger returns a Logger that writes to the provided io.Writer
func StreamLogger(w io.Writer, logLevel level.Level) Logger {
	l := &logger{writer: w, now: time.Now}
	if c, ok := l.writer.(io.Closer); ok {
		l.closer = c
	}
	l.SetLogLevel(logLevel)
	return l
}

// ConsoleLogger returns a Logger that writes to stdout
func ConsoleLogger(logLevel level.Level) Logger {
	l := &logger{writer: os.Stdout, now: time.Now}
	l.SetLogLevel(logLevel)
	return l
}

type logger struct {
	l       level.Level
	levelID level.ID
	writer  io.Writer
	closer  io.Closer
	mtx     sync.Mutex
	now     func() time.Time
}

func (l *logger) Write(b []byte) (int, error) {
	if l.writer == nil {
		return 0, nil
	}
	return l.writer.Write(b)
}

func (l *logger) SetLogLevel(logLevel level.Level) {
	id := level.GetID(logLevel)
	if id == 0 {
		l.log(level.Warn, "unknown log level; using info",
			Pairs{"providedLevel": logLevel})
		logLevel = level.Info
		id = level.InfoID
	}
	l.l = logLevel
	l.levelID = id
}

func (l *logger) Level() level.Level {
	return l.l
}

func (l *logger) Log(logLevel level.Level, event string, detail Pairs) {
	lid := level.GetID(logLevel)
	if lid == 0 || lid < l.levelID {
		return
	}
	l.log(logLevel, event, detail)
}

func (l *logger) Debug(event string, detail Pairs) {
	l.Log(level.Debug, event, detail)
}

func (l *logger) Info(event string, detail Pairs) {
	l.Log(level.Info, event, detail)
}

func (l *logger) Warn(event string, detail Pairs) {
	l.Log(level.Warn, event, detail)
}

func (l *logger) Error(event string, detail Pairs) {
	l.Log(level.Error, event, detail)
}

func (l *logger) Fatal(code int, event string, detail Pairs) {
	l.log(level.Fatal, event, detail)
	if code < 0 {
		// tests send a negative code to avoid exiting the test binary
		return
	}
	if code == 0 {
		code = 1
	}
	os.Exit(code)
}

func (l *logger) log(logLevel level.Level, event string, detail Pairs) {
	if l.writer == nil {
		return
	}
	line := "time=" + l.now().UTC().Format(time.RFC3339Nano) +
		" app=spindle level=" + string(logLevel) +
		" event=" + quoteAsNeeded(strings.TrimSpace(event))
	if len(detail) > 0 {
		keys := make([]string, 0, len(detail))
		for k := range detail {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line += " " + k + "=" + quoteAsNeeded(formatValue(detail[k]))
		}
	}
	l.mtx.Lock()
	l.writer.Write([]byte(line + "\n"))
	l.mtx.Unlock()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}
	return fmt.Sprintf("%v", v)
}

func quoteAsNeeded(input string) string {
	if !strings.Contains(input, " ") {
		return input
	}
	return `"` + strings.ReplaceAll(input, `"`, `\"`) + `"`
}

func (l *logger) Close() {
	if l.closer != nil {
		l.closer.Close()
	}
}
