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

import (
	"github.com/kukalajet/kismet/tag"
	"github.com/kukalajet/kismet/tagset"
)

// Result is the two-variant container at the bottom of kismet: it holds
// either a success value of type T or a *Fault, never both and never
// neither.
//
// Alongside the variant it carries the error union — the tagset of every
// fault the producing computation may emit. The union is what the exhaustive
// matcher checks handler tables against, and what narrows when tags are
// recovered. Constructors and combinators maintain one invariant at all
// times: a failure's tag is a member of the union.
//
// Results are immutable once built; transformations always produce a new
// Result. The zero value is Ok with T's zero value and an empty union.
type Result[T any] struct {
	value T
	fault *Fault
	union tagset.Set
}

// Ok wraps a success value. The error union of the result is empty until
// the result is combined with a fallible path (or widened via Declare).
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps a fault. The error union contains exactly the fault's tag.
// A nil fault is a programmer error and panics with a *Violation.
func Fail[T any](f *Fault) Result[T] {
	if f == nil {
		panic(&Violation{msg: "kismet: Fail called with nil fault"})
	}
	return Result[T]{fault: f, union: tagset.Of(f.Tag)}
}

// FailTagged is shorthand for Fail(NewFault(t, opts...)).
func FailTagged[T any](t tag.Tag, opts ...FaultOption) Result[T] {
	return Fail[T](NewFault(t, opts...))
}

// IsOK reports whether r holds a success value.
func (r Result[T]) IsOK() bool { return r.fault == nil }

// IsFail reports whether r holds a fault. IsOK and IsFail are total,
// mutually exclusive and jointly exhaustive.
func (r Result[T]) IsFail() bool { return r.fault != nil }

// Value returns the contained success value. For a failure it returns T's
// zero value; callers that need the distinction should check IsOK first or
// go through the matcher.
func (r Result[T]) Value() T { return r.value }

// Fault returns the contained fault, or nil for a success.
func (r Result[T]) Fault() *Fault { return r.fault }

// Err bridges the result into plain Go error handling: it returns nil for a
// success and the fault (as error) for a failure.
func (r Result[T]) Err() error {
	if r.fault == nil {
		return nil
	}
	return r.fault
}

// Union returns the result's error union: the set of tags that remain to be
// handled before the value can be unconditionally extracted.
func (r Result[T]) Union() tagset.Set { return r.union }

// Declare returns a copy of r with the given tags added to its error union.
//
// This is the runtime analogue of a type annotation: a computation that
// took a non-failing path still declares which faults it could have
// produced, so that handler tables are checked against the full union
// rather than the one tag that happened to occur.
func (r Result[T]) Declare(tags ...tag.Tag) Result[T] {
	if len(tags) == 0 {
		return r
	}
	cp := r
	cp.union = cp.union.Add(tags...)
	return cp
}

// withUnion returns a copy of r with the union replaced. Internal to the
// combinators; the invariant that a failure's tag stays in the union is the
// caller's responsibility.
func (r Result[T]) withUnion(u tagset.Set) Result[T] {
	cp := r
	cp.union = u
	return cp
}
