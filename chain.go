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
	"github.com/kukalajet/kismet/tagset"
)

// Chain is the synchronous fluent wrapper around a Result.
//
// A Chain owns exactly one Result, set at construction and never mutated;
// every operation returns a new Chain. Transformations delegate to the
// Result container and recovery narrows the error union tag by tag, until a
// terminal operation (UnwrapOr, Unwrap, MatchChain, Result) ends the chain.
//
// Operations that change the value type cannot be methods in Go (methods
// cannot introduce type parameters), so Map, FlatMap and MatchChain are
// package-level functions taking the chain as their first argument.
type Chain[T any] struct {
	res Result[T]
}

// Succeed starts a chain from a success value.
func Succeed[T any](v T) Chain[T] {
	return Chain[T]{res: Ok(v)}
}

// FailWith starts a chain from a fault.
func FailWith[T any](f *Fault) Chain[T] {
	return Chain[T]{res: Fail[T](f)}
}

// From starts a chain from an existing Result, preserving its error union.
func From[T any](r Result[T]) Chain[T] {
	return Chain[T]{res: r}
}

// Attempt runs fn and captures its error return into a fault.
//
// A nil error yields a success chain. A non-nil error is mapped through
// onError; when onError is nil the error is captured as the reserved
// UnknownFailure fault. This is the synchronous try/catch-to-Result
// adapter.
func Attempt[T any](fn func() (T, error), onError func(error) *Fault) Chain[T] {
	v, err := fn()
	if err == nil {
		return Succeed(v)
	}
	if onError == nil {
		return FailWith[T](Unknown(err))
	}
	return FailWith[T](onError(err))
}

// Result extracts the underlying container. No side effects.
func (c Chain[T]) Result() Result[T] { return c.res }

// Declare widens the chain's error union with tags the computation could
// have produced on another path. See Result.Declare.
func (c Chain[T]) Declare(tags ...tag.Tag) Chain[T] {
	return Chain[T]{res: c.res.Declare(tags...)}
}

// Tap runs a side-effecting callback on the success value, if any, and
// passes the chain through unchanged. The callback runs at most once and
// never on a failure.
func (c Chain[T]) Tap(fn func(T)) Chain[T] {
	if c.res.fault == nil {
		fn(c.res.value)
	}
	return c
}

// TapFault is the failure-side Tap: it runs the callback on the fault, if
// any, without altering the chain.
func (c Chain[T]) TapFault(fn func(*Fault)) Chain[T] {
	if c.res.fault != nil {
		fn(c.res.fault)
	}
	return c
}

// MapFault transforms the failure side only. A success passes through
// unchanged; on a failure the fault is replaced by fn's output and the
// union swaps the old tag for the new one.
func (c Chain[T]) MapFault(fn func(*Fault) *Fault) Chain[T] {
	if c.res.fault == nil {
		return c
	}
	nf := fn(c.res.fault)
	if nf == nil {
		panic(&Violation{msg: "kismet: MapFault handler returned nil fault"})
	}
	u := c.res.union.Remove(c.res.fault.Tag).Add(nf.Tag)
	return Chain[T]{res: Result[T]{fault: nf, union: u}}
}

// CatchTag recovers one specific tag.
//
// If the chain is a failure carrying exactly tag t, handler runs with the
// narrowed fault and its chain replaces this one; the resulting union is
// (E ∖ {t}) ∪ F, where F is whatever the handler's chain may fail with.
// On any other variant the chain passes through with t removed from the
// union: a differently-tagged failure cannot have been a t, so t is
// discharged on the pass-through path as well.
func (c Chain[T]) CatchTag(t tag.Tag, handler func(*Fault) Chain[T]) Chain[T] {
	narrowed := c.res.union.Remove(t)
	if c.res.fault == nil || c.res.fault.Tag != t {
		return Chain[T]{res: c.res.withUnion(narrowed)}
	}
	next := handler(c.res.fault)
	return Chain[T]{res: next.res.withUnion(narrowed.Union(next.res.union))}
}

// CatchAll recovers any failure: the handler receives the fault and its
// chain replaces this one, discharging the full original union. A success
// passes through with its union emptied — every tag it declared has been
// handled by the mere presence of the catch-all.
func (c Chain[T]) CatchAll(handler func(*Fault) Chain[T]) Chain[T] {
	if c.res.fault == nil {
		return Chain[T]{res: c.res.withUnion(tagset.Empty)}
	}
	return handler(c.res.fault)
}

// OrElseTag replaces a failure carrying tag t with a success fallback.
// On every path the union is narrowed by t, exactly like CatchTag with a
// constant handler.
func (c Chain[T]) OrElseTag(t tag.Tag, fallback T) Chain[T] {
	narrowed := c.res.union.Remove(t)
	if c.res.fault != nil && c.res.fault.Tag == t {
		return Chain[T]{res: Ok(fallback).withUnion(narrowed)}
	}
	return Chain[T]{res: c.res.withUnion(narrowed)}
}

// UnwrapOr extracts the value, substituting def on any failure. It never
// panics and does not require the union to be empty.
func (c Chain[T]) UnwrapOr(def T) T {
	if c.res.fault != nil {
		return def
	}
	return c.res.value
}

// Unwrap extracts the value unconditionally.
//
// It is only legal once the error union has been narrowed to the empty set
// by prior handling; calling it earlier is a contract violation and panics
// with a *Violation naming the remaining tags (and carrying the serialized
// fault when one is present).
func (c Chain[T]) Unwrap() T {
	if !c.res.union.IsEmpty() {
		panic(&Violation{
			Fault: c.res.fault,
			msg: fmt.Sprintf("kismet: Unwrap before error union was narrowed to empty; remaining tags: %s",
				c.res.union),
		})
	}
	if c.res.fault != nil {
		// Unreachable through the package constructors: a failure's tag is
		// always a member of the union.
		panic(&Violation{
			Tag:   c.res.fault.Tag,
			Fault: c.res.fault,
			msg:   fmt.Sprintf("kismet: Unwrap on failure: %s", c.res.fault.Error()),
		})
	}
	return c.res.value
}

// Map applies fn to the success value, producing a chain of the new value
// type. A failure passes through untouched — fn is never invoked on one —
// and keeps the full error union.
func Map[T, U any](c Chain[T], fn func(T) U) Chain[U] {
	if c.res.fault != nil {
		return Chain[U]{res: Result[U]{fault: c.res.fault, union: c.res.union}}
	}
	return Chain[U]{res: Ok(fn(c.res.value)).withUnion(c.res.union)}
}

// FlatMap chains a dependent fallible step.
//
// On success fn runs with the value and its chain is the continuation; the
// resulting union is the accumulation E1 ∪ E2 of both steps. On failure fn
// is never invoked and the original fault short-circuits. The union carried
// by the short-circuit path is E1 — the runtime cannot know E2 without
// running fn; use Declare on the outer chain when the full union is needed
// on that path.
func FlatMap[T, U any](c Chain[T], fn func(T) Chain[U]) Chain[U] {
	if c.res.fault != nil {
		return Chain[U]{res: Result[U]{fault: c.res.fault, union: c.res.union}}
	}
	next := fn(c.res.value)
	return Chain[U]{res: next.res.withUnion(c.res.union.Union(next.res.union))}
}

// MatchChain dispatches the chain's result against a complete handler
// table. See Match for the completeness contract.
func MatchChain[T, R any](c Chain[T], cs Cases[T, R]) R {
	return Match(c.res, cs)
}

// FoldChain is the two-way, non-exhaustive fold over the chain's result.
func FoldChain[T, R any](c Chain[T], ok func(T) R, err func(*Fault) R) R {
	return Fold(c.res, ok, err)
}
