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
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kukalajet/kismet"
	"github.com/kukalajet/kismet/tag"
	"github.com/kukalajet/kismet/tagset"
)

type definition struct {
	// raw is the tag name exactly as given to Define; validated in New.
	raw string
	// shape is the declared payload; nil means "no payload".
	shape Shape
}

type builder struct {
	defs []definition
}

// Option declares one part of the factory at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Factory.
type Option func(*builder)

// Define declares one tagged variant: its tag name and payload shape.
// Pass a nil Shape for a variant without payload. Validation (tag syntax,
// duplicates) happens in New, not here.
func Define(tagName string, s Shape) Option {
	return func(b *builder) { b.defs = append(b.defs, definition{raw: tagName, shape: s}) }
}

// Factory is an immutable set of tagged-variant definitions built once per
// domain, at module level, and reused to construct arbitrarily many fault
// instances. It holds no mutable state and is safe for concurrent use.
type Factory struct {
	shapes map[tag.Tag]Shape
}

// New constructs an immutable Factory snapshot.
//
// Build process:
//
//  1. Apply the Define options to an internal builder.
//  2. Normalize and validate every tag name (via tag.Parse).
//  3. Reject duplicate tags and freeze each shape into a factory-owned copy.
//
// Errors indicate an invalid tag name or a duplicate definition; a factory
// with zero definitions is valid and simply constructs nothing.
func New(opts ...Option) (*Factory, error) {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	shapes := make(map[tag.Tag]Shape, len(b.defs))
	for _, d := range b.defs {
		t, err := tag.Parse(d.raw)
		if err != nil {
			return nil, fmt.Errorf("factory: cannot define variant %q: %w", d.raw, err)
		}
		if _, dup := shapes[t]; dup {
			return nil, fmt.Errorf("factory: duplicate definition for tag %q", t)
		}
		// freeze the shape into a factory-owned copy
		var s Shape
		if len(d.shape) > 0 {
			s = make(Shape, len(d.shape))
			for k, v := range d.shape {
				s[k] = v
			}
		}
		shapes[t] = s
	}

	return &Factory{shapes: shapes}, nil
}

// MustNew is New for module-level factory declarations; it panics on an
// invalid definition, which is the right behavior for a var initializer.
func MustNew(opts ...Option) *Factory {
	f, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Ctor is a constructor for one tagged variant: it accepts exactly the
// payload fields declared for the tag and stamps them, plus the
// discriminant, into a fault.
type Ctor func(fields map[string]any) *kismet.Fault

// Ctor returns the constructor for tag t.
//
// Asking for an undeclared tag is a contract violation and panics: the
// factory's definitions are the domain's closed error set, and a request
// outside it is a programming error, not a runtime condition.
//
// The returned constructor likewise treats payload conformance as the
// caller's obligation: a fields map that omits a required field, carries an
// undeclared field, or holds a value of the wrong kind panics with a
// *kismet.Violation describing the mismatch. Construction itself never
// returns an error.
func (f *Factory) Ctor(t tag.Tag) Ctor {
	shape, ok := f.shapes[t]
	if !ok {
		panic(kismet.Violationf("factory: no definition for tag %q", t))
	}
	return func(fields map[string]any) *kismet.Fault {
		checkShape(t, shape, fields)
		if len(fields) == 0 {
			return kismet.NewFault(t)
		}
		return kismet.NewFault(t).WithFields(fields)
	}
}

// Make is the one-shot form of Ctor: it builds a fault for tag t with the
// given payload without retaining the constructor.
func (f *Factory) Make(t tag.Tag, fields map[string]any) *kismet.Fault {
	return f.Ctor(t)(fields)
}

// Has reports whether the factory declares tag t.
func (f *Factory) Has(t tag.Tag) bool {
	_, ok := f.shapes[t]
	return ok
}

// Shape returns the declared payload shape for tag t, or nil when the tag
// is undeclared or declared without payload. The returned map is a copy.
func (f *Factory) Shape(t tag.Tag) Shape {
	s, ok := f.shapes[t]
	if !ok || len(s) == 0 {
		return nil
	}
	cp := make(Shape, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}

// Tags returns the closed error union declared by this factory, ready to be
// passed to Declare on a chain or task that may fail with any of its
// variants.
func (f *Factory) Tags() tagset.Set {
	ts := make([]tag.Tag, 0, len(f.shapes))
	for t := range f.shapes {
		ts = append(ts, t)
	}
	return tagset.Of(ts...)
}

// checkShape verifies fields against the declared shape and panics with a
// *kismet.Violation on the first mismatch. Mismatches are reported in
// sorted field order so the failure is deterministic.
func checkShape(t tag.Tag, shape Shape, fields map[string]any) {
	names := make([]string, 0, len(shape))
	for name := range shape {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		k := shape[name]
		v, present := fields[name]
		if !present {
			if k.optional {
				continue
			}
			panic(kismet.Violationf("factory: %s: missing required field %q (%s)", t, name, k))
		}
		if !k.accepts(v) {
			panic(kismet.Violationf("factory: %s: field %q does not conform to %s (got %T)", t, name, k, v))
		}
	}

	var extra []string
	for name := range fields {
		if _, declared := shape[name]; !declared {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		panic(kismet.Violationf("factory: %s: undeclared field(s): %s", t, strings.Join(extra, ", ")))
	}
}

// Typed builds a constructor whose payload shape is a Go struct, giving the
// compile-time conformance that map payloads cannot: the caller declares a
// payload struct per variant and the field set is fixed by its type.
//
//	type notFound struct {
//	    ID string
//	}
//	newNotFound := factory.Typed[notFound](tag.NotFound)
//	f := newNotFound(notFound{ID: "123"})
//
// Exported struct fields become payload fields; the name is taken from the
// `fault` struct tag when present, otherwise from the field name with its
// first rune lowered. Unexported fields are skipped. P must be a struct
// type; a non-struct P is a contract violation reported on first use.
func Typed[P any](t tag.Tag) func(P) *kismet.Fault {
	return func(p P) *kismet.Fault {
		rv := reflect.ValueOf(p)
		if rv.Kind() != reflect.Struct {
			panic(kismet.Violationf("factory: Typed payload for %s must be a struct, got %T", t, p))
		}
		rt := rv.Type()
		fields := make(map[string]any, rt.NumField())
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			name := sf.Tag.Get("fault")
			if name == "" {
				name = lowerFirst(sf.Name)
			}
			fields[name] = rv.Field(i).Interface()
		}
		if len(fields) == 0 {
			return kismet.NewFault(t)
		}
		return kismet.NewFault(t).WithFields(fields)
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
