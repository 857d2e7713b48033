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

// Package adapter converts kismet faults into the transport-friendly view
// types of the apis package. Both the HTTP and gRPC layers build their wire
// representations from these conversions.
package adapter

import (
	"errors"
	"sort"
	"time"

	"github.com/kukalajet/kismet"
	"github.com/kukalajet/kismet/apis"
	"github.com/kukalajet/kismet/tag"
)

// ToDescriptor converts a fault together with its resolved transport status
// into a portable FaultDescriptor.
//
// The descriptor is intended for structured logging, tracing, or message bus
// propagation. It carries both the logical tag and the concrete transport
// statuses (HTTP and gRPC).
func ToDescriptor(f *kismet.Fault, st apis.Status) apis.FaultDescriptor {
	if f == nil {
		return apis.FaultDescriptor{}
	}
	return apis.FaultDescriptor{
		Tag:        string(f.Tag),
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		Message:    f.Message,
	}
}

// ToView converts a fault into a public FaultView. This function performs no
// automatic redaction or filtering; it exposes exactly what the fault
// contains. It is up to the caller or API layer to decide whether to redact
// or filter sensitive fields.
func ToView(f *kismet.Fault) apis.FaultView {
	if f == nil {
		return apis.FaultView{}
	}
	return apis.FaultView{
		Tag:     string(f.Tag),
		Message: f.Message,
		Fields:  Fields(f),
	}
}

// FaultOf normalizes an arbitrary error into a *kismet.Fault.
//
// An error that is (or wraps) a *kismet.Fault is returned as-is. A foreign
// error advertising a valid tag through apis.TaggedError is rebuilt as a
// fault with that tag; its payload and cause are picked up through the
// optional apis.FieldedError and apis.CausedError contracts when the type
// provides them. Everything else is captured as the reserved UnknownFailure
// fault. Returns nil for a nil error.
func FaultOf(err error) *kismet.Fault {
	if err == nil {
		return nil
	}
	var f *kismet.Fault
	if errors.As(err, &f) {
		return f
	}
	var te apis.TaggedError
	if errors.As(err, &te) {
		if t, perr := tag.Parse(te.ErrorTag()); perr == nil {
			f := kismet.NewFault(t, kismet.WithMessageOption(err.Error()))
			if fe, ok := te.(apis.FieldedError); ok {
				if fs := fe.ErrorFields(); len(fs) > 0 {
					m := make(map[string]any, len(fs))
					for _, fd := range fs {
						m[fd.Name] = fd.Value
					}
					f = f.WithFields(m)
				}
			}
			if ce, ok := te.(apis.CausedError); ok {
				if c := ce.ErrorCause(); c != nil {
					f = f.WithCause(c)
				}
			}
			return f
		}
	}
	return kismet.Unknown(err)
}

// Fields converts a fault's payload map into the apis view form, sorted by
// field name so serialized output is deterministic. Returns nil for a fault
// without payload.
func Fields(f *kismet.Fault) []apis.Field {
	if f == nil {
		return nil
	}
	return FieldsFromMap(f.Fields)
}

// FieldsFromMap is Fields for a bare payload map, e.g. one decoded from a
// wire detail rather than held by a fault.
func FieldsFromMap(m map[string]any) []apis.Field {
	if len(m) == 0 {
		return nil
	}
	out := make([]apis.Field, 0, len(m))
	for name, v := range m {
		out = append(out, apis.Field{Name: name, Type: classify(v), Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// classify derives the view-level type label for a payload value. The
// labels mirror the factory's kind names so a declared shape and its
// serialized payload read the same.
func classify(v any) string {
	switch v.(type) {
	case nil:
		return ""
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return "number"
	case time.Time:
		return "time"
	case []any, []string, []int, []float64:
		return "array"
	default:
		return "object"
	}
}
