/*
   Copyright 2025 The Kismet Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package kismet

// FaultOption is a functional option for constructing or transforming a
// Fault. It always takes a *Fault and returns a (possibly new) *Fault.
type FaultOption func(*Fault) *Fault

// WithMessageOption sets the human message on the fault being constructed.
// Intended to be used with NewFault(...).
func WithMessageOption(msg string) FaultOption {
	return func(f *Fault) *Fault {
		return f.WithMessage(msg)
	}
}

// WithFieldOption adds a single payload field on construction.
// Intended to be used with NewFault(...).
func WithFieldOption(k string, v any) FaultOption {
	return func(f *Fault) *Fault {
		return f.WithField(k, v)
	}
}

// WithFieldsOption merges multiple payload fields on construction.
// Intended to be used with NewFault(...).
func WithFieldsOption(kv map[string]any) FaultOption {
	return func(f *Fault) *Fault {
		return f.WithFields(kv)
	}
}

// WithCauseOption attaches a cause on construction.
// Intended to be used with NewFault(...).
func WithCauseOption(err error) FaultOption {
	return func(f *Fault) *Fault {
		return f.WithCause(err)
	}
}
