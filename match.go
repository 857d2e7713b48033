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
	"fmt"

	"github.com/kukalajet/kismet/tag"
)

// Cases is a handler table for exhaustive matching.
//
// Ok receives the success value; Err maps every tag of the result's error
// union to the handler for that variant. Each fault handler sees the fault
// already narrowed to its own tag — by the time it runs, the discriminant
// has been dispatched on, so the handler can read the variant's payload
// fields without further checks. All handlers must produce the same result
// type R.
//
// Handlers registered for tags outside the union are permitted and simply
// never invoked; the union is tracked at runtime and is a lower bound of
// what a static checker would carry, so a table built for a wider chain
// stays usable after the union has narrowed (see package doc).
type Cases[T, R any] struct {
	// Ok handles the success variant. Required.
	Ok func(T) R

	// Err maps each tag in the error union to its handler. One entry per
	// tag; a missing entry is a contract violation reported by Match.
	Err map[tag.Tag]func(*Fault) R
}

// Violation is the fatal condition raised on a contract violation: a
// handler table missing a tag that the error union requires, an unwrap
// before the union was narrowed to empty, or a malformed construction.
//
// These are programmer errors, not domain failures. They are never returned
// as values; Match and Unwrap panic with a *Violation, and the panic is
// expected to propagate (recover it only at a boundary that can do no
// better, e.g. a server interceptor turning it into an internal status).
type Violation struct {
	// Tag is the unmatched tag, when the violation is about one.
	Tag tag.Tag

	// Fault is the fault that could not be handled, if the violation was
	// observed while holding one.
	Fault *Fault

	msg string
}

// Error implements the built-in error interface.
func (v *Violation) Error() string { return v.msg }

// unhandled builds the violation for a tag with no registered handler.
// The message format is load-bearing: tooling and tests grep for the
// "Unhandled error tag: <tag>" form.
func unhandled(t tag.Tag, f *Fault) *Violation {
	return &Violation{
		Tag:   t,
		Fault: f,
		msg:   fmt.Sprintf("kismet: Unhandled error tag: %s", t),
	}
}

// Violationf builds a contract violation with a formatted message. It is
// the constructor used by subpackages (e.g. the error factory) to raise
// their own contract violations; callers include their package prefix in
// the message.
func Violationf(format string, args ...any) *Violation {
	return &Violation{msg: fmt.Sprintf(format, args...)}
}

// AsViolation extracts a *Violation from a recovered panic value.
// Useful in tests and at process boundaries:
//
//	defer func() {
//	    if v, ok := kismet.AsViolation(recover()); ok {
//	        // report v.Error() and fail the request, not the process
//	    }
//	}()
func AsViolation(recovered any) (*Violation, bool) {
	v, ok := recovered.(*Violation)
	return v, ok
}

// Match dispatches r against a complete handler table and returns the
// single outcome value.
//
//  1. The table is checked for completeness first, regardless of which
//     variant r holds: Ok must be set and every tag in r's error union must
//     have an entry in Err. An incomplete table panics with a *Violation
//     naming the first missing tag. Checking on the success path too is
//     deliberate — it is what makes incomplete tables a deterministic
//     defect rather than one that only surfaces when the failure happens
//     to occur.
//  2. A success invokes exactly the Ok handler with the contained value.
//  3. A failure reads the fault's tag and invokes exactly the handler
//     registered under it, passing the fault; no other handler runs.
//
// A fault whose tag is somehow absent from both the union and the table —
// only reachable by constructing a Result outside the package constructors —
// is the same contract violation and panics identically.
func Match[T, R any](r Result[T], c Cases[T, R]) R {
	if c.Ok == nil {
		panic(&Violation{msg: "kismet: Match requires an Ok handler"})
	}
	// Completeness: one handler per tag in the union, missing tags are
	// fatal. Tags are visited in sorted order so the reported tag is
	// deterministic when several are missing.
	for _, t := range r.union.Tags() {
		if _, ok := c.Err[t]; !ok {
			panic(unhandled(t, r.fault))
		}
	}

	if r.fault == nil {
		return c.Ok(r.value)
	}

	h, ok := c.Err[r.fault.Tag]
	if !ok {
		// The fault escaped its declared union. Under correct use this
		// branch is unreachable; see the function comment.
		panic(unhandled(r.fault.Tag, r.fault))
	}
	return h(r.fault)
}

// Fold is the non-exhaustive two-way counterpart of Match: one handler for
// success, one for any fault. Both must return the same type R. No
// completeness accounting is involved — the whole union is discharged by
// the single err handler.
func Fold[T, R any](r Result[T], ok func(T) R, err func(*Fault) R) R {
	if r.fault != nil {
		return err(r.fault)
	}
	return ok(r.value)
}
