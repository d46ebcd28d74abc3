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

package level

import "testing"

func TestGetID(t *testing.T) {
	tests := []struct {
		logLevel Level
		expected ID
	}{
		{Debug, DebugID},
		{Info, InfoID},
		{Warn, WarnID},
		{Error, ErrorID},
		{Fatal, FatalID},
		{Level("invalid"), 0},
		{Level(""), 0},
	}
	for _, test := range tests {
		if id := GetID(test.logLevel); id != test.expected {
			t.Errorf("level %q: expected %d got %d", test.logLevel,
				test.expected, id)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(DebugID < InfoID && InfoID < WarnID && WarnID < ErrorID &&
		ErrorID < FatalID) {
		t.Error("severity IDs must increase from debug to fatal")
	}
}
