// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chainmap

import (
	"fmt"

	"github.com/op/go-logging"
)

// Tracer receives printf-style diagnostics from a Map. A Map traces the
// bucket index computed for each key and the old and new values of every
// overwrite. Tracers must not call back into the Map.
type Tracer func(format string, args ...any)

// StdoutTracer writes each trace line to standard output.
func StdoutTracer(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// LoggerTracer returns a Tracer that logs at debug level to l.
func LoggerTracer(l *logging.Logger) Tracer {
	return func(format string, args ...any) {
		l.Debugf(format, args...)
	}
}
