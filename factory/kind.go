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

package factory

import (
	"fmt"
	"reflect"
	"time"
)

// Kind is a semantic-type placeholder used when declaring a payload shape.
//
// Kinds are declarative first and checks second: the primary purpose of a
// Shape is to document — at the point where a domain declares its error
// set — which fields each variant carries. Constructors additionally verify
// supplied payloads against the declared kinds, so a call site that drifts
// from the declaration fails at construction rather than at the consumer.
type Kind struct {
	name string

	// elem is set for the composite kinds (ArrayOf, OptionalOf, NullableOf).
	elem *Kind

	// optional marks a field that may be absent from the payload entirely.
	optional bool

	// nullable marks a field that must be present but may hold nil.
	nullable bool

	conforms func(v any) bool
}

// Base kinds for payload field declarations.
var (
	// String accepts Go string values.
	String = Kind{name: "string", conforms: func(v any) bool {
		_, ok := v.(string)
		return ok
	}}

	// Number accepts any Go numeric value (integers of any width, signed or
	// unsigned, and floats).
	Number = Kind{name: "number", conforms: isNumeric}

	// Boolean accepts Go bool values.
	Boolean = Kind{name: "boolean", conforms: func(v any) bool {
		_, ok := v.(bool)
		return ok
	}}

	// Time accepts time.Time values.
	Time = Kind{name: "time", conforms: func(v any) bool {
		_, ok := v.(time.Time)
		return ok
	}}

	// Any accepts every value, nil included. Use it for payload fields whose
	// type the domain does not care to pin down (e.g. a captured raw value).
	Any = Kind{name: "any", conforms: func(any) bool { return true }}
)

// ArrayOf declares a field holding a slice or array whose elements all
// conform to k.
func ArrayOf(k Kind) Kind {
	e := k
	return Kind{
		name: "array<" + k.name + ">",
		elem: &e,
		conforms: func(v any) bool {
			rv := reflect.ValueOf(v)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return false
			}
			for i := 0; i < rv.Len(); i++ {
				if !e.accepts(rv.Index(i).Interface()) {
					return false
				}
			}
			return true
		},
	}
}

// OptionalOf declares a field that may be omitted from the payload; when
// present its value must conform to k.
func OptionalOf(k Kind) Kind {
	e := k
	return Kind{
		name:     "optional<" + k.name + ">",
		elem:     &e,
		optional: true,
		conforms: e.accepts,
	}
}

// NullableOf declares a field that must appear in the payload but may hold
// nil; a non-nil value must conform to k.
func NullableOf(k Kind) Kind {
	e := k
	return Kind{
		name:     "nullable<" + k.name + ">",
		elem:     &e,
		nullable: true,
		conforms: e.accepts,
	}
}

// String returns the declaration-style name of the kind, e.g.
// "array<string>" or "optional<number>".
func (k Kind) String() string { return k.name }

// accepts reports whether v conforms to the kind, honoring nullability.
func (k Kind) accepts(v any) bool {
	if v == nil {
		return k.nullable || k.name == "any"
	}
	if k.conforms == nil {
		// zero Kind: declared but unknown, accept nothing
		return false
	}
	return k.conforms(v)
}

func isNumeric(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// Shape declares the payload of one tagged variant: field name → kind.
// A nil or empty Shape declares a variant with no payload.
type Shape map[string]Kind

func (s Shape) String() string {
	if len(s) == 0 {
		return "{}"
	}
	return fmt.Sprintf("%d field(s)", len(s))
}
