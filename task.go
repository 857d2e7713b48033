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
	"context"

	"github.com/kukalajet/kismet/tag"
)

// Task is the asynchronous counterpart of Chain: it holds a suspended
// computation that eventually yields a Result instead of an immediately
// available one.
//
// Nothing runs until a terminal operation (Run, UnwrapOr, Unwrap,
// MatchTask) drives the task with a context. Chain methods compose
// continuations: each step runs strictly after its upstream step's result
// is available, giving total ordering along one chain. Across
// independently constructed tasks the library imposes no ordering; fan-out
// and any concurrency control belong to the caller.
//
// Cancellation is likewise the caller's concern: the context is passed
// through to the wrapped computation untouched. A computation that honors
// it stops early; one that ignores it leaves the task pending until it
// returns.
//
// Tasks are immutable values; every method returns a new Task and the
// original can be re-run or re-composed freely.
type Task[T any] struct {
	run func(context.Context) Result[T]
}

// Defer lifts a suspended computation that already produces a Result.
func Defer[T any](run func(context.Context) Result[T]) Task[T] {
	return Task[T]{run: run}
}

// Resolve builds an already-succeeded task.
func Resolve[T any](v T) Task[T] {
	return Task[T]{run: func(context.Context) Result[T] { return Ok(v) }}
}

// Reject builds an already-failed task.
func Reject[T any](f *Fault) Task[T] {
	r := Fail[T](f)
	return Task[T]{run: func(context.Context) Result[T] { return r }}
}

// TaskFrom lifts an existing Result into a task, preserving its error
// union.
func TaskFrom[T any](r Result[T]) Task[T] {
	return Task[T]{run: func(context.Context) Result[T] { return r }}
}

// Async runs work when the task is driven and captures anything it raises
// into a fault.
//
// A normal completion wraps the produced value as a success. A returned
// error, or a panic escaping the computation, is passed to onError as the
// raised value and its fault becomes the failure. A nil onError maps every
// raised value to the reserved UnknownFailure fault.
//
// Contract-violation panics (*Violation) are never captured; programmer
// errors stay fatal.
func Async[T any](work func(context.Context) (T, error), onError func(any) *Fault) Task[T] {
	if onError == nil {
		onError = UnknownValue
	}
	return Task[T]{run: func(ctx context.Context) (out Result[T]) {
		defer func() {
			if rv := recover(); rv != nil {
				if _, ok := AsViolation(rv); ok {
					panic(rv)
				}
				out = Fail[T](onError(rv))
			}
		}()
		v, err := work(ctx)
		if err != nil {
			return Fail[T](onError(err))
		}
		return Ok(v)
	}}
}

// Wrap is the no-config convenience over Async: any raised value is
// captured into the reserved UnknownFailure fault, retaining the original
// cause and a best-effort message.
func Wrap[T any](work func(context.Context) (T, error)) Task[T] {
	return Async(work, nil)
}

// TryCatch is the configuration form for WrapWith: Try is the computation,
// Catch maps whatever it raises (a returned error or a panic value) to a
// domain fault.
type TryCatch[T any] struct {
	Try   func(context.Context) (T, error)
	Catch func(any) *Fault
}

// WrapWith is Wrap with a caller-supplied raised-value mapping.
func WrapWith[T any](tc TryCatch[T]) Task[T] {
	return Async(tc.Try, tc.Catch)
}

// Run drives the task to completion and returns its Result. This is the
// asynchronous analogue of Chain.Result.
func (t Task[T]) Run(ctx context.Context) Result[T] {
	return t.run(ctx)
}

// Declare widens the task's eventual error union. See Result.Declare.
func (t Task[T]) Declare(tags ...tag.Tag) Task[T] {
	return Task[T]{run: func(ctx context.Context) Result[T] {
		return t.run(ctx).Declare(tags...)
	}}
}

// Tap runs a side-effecting callback on the success value without altering
// it. The callback runs at most once, after the upstream computation
// resolves and before any downstream step; a callback that blocks is
// awaited, not fired and forgotten.
func (t Task[T]) Tap(fn func(context.Context, T)) Task[T] {
	return Task[T]{run: func(ctx context.Context) Result[T] {
		r := t.run(ctx)
		if r.fault == nil {
			fn(ctx, r.value)
		}
		return r
	}}
}

// TapFault is the failure-side Tap.
func (t Task[T]) TapFault(fn func(context.Context, *Fault)) Task[T] {
	return Task[T]{run: func(ctx context.Context) Result[T] {
		r := t.run(ctx)
		if r.fault != nil {
			fn(ctx, r.fault)
		}
		return r
	}}
}

// MapFault transforms the failure side only, mirroring Chain.MapFault.
func (t Task[T]) MapFault(fn func(*Fault) *Fault) Task[T] {
	return Task[T]{run: func(ctx context.Context) Result[T] {
		return From(t.run(ctx)).MapFault(fn).Result()
	}}
}

// CatchTag recovers one specific tag, awaiting the handler's task when it
// runs. Union bookkeeping matches Chain.CatchTag: t is discharged on every
// path and the handler's union is accumulated when it runs.
func (t Task[T]) CatchTag(tg tag.Tag, handler func(*Fault) Task[T]) Task[T] {
	return Task[T]{run: func(ctx context.Context) Result[T] {
		return From(t.run(ctx)).CatchTag(tg, func(f *Fault) Chain[T] {
			return From(handler(f).run(ctx))
		}).Result()
	}}
}

// CatchAll recovers any failure, discharging the full union.
func (t Task[T]) CatchAll(handler func(*Fault) Task[T]) Task[T] {
	return Task[T]{run: func(ctx context.Context) Result[T] {
		return From(t.run(ctx)).CatchAll(func(f *Fault) Chain[T] {
			return From(handler(f).run(ctx))
		}).Result()
	}}
}

// OrElseTag replaces a failure carrying tag tg with a success fallback,
// narrowing the union by tg on every path.
func (t Task[T]) OrElseTag(tg tag.Tag, fallback T) Task[T] {
	return Task[T]{run: func(ctx context.Context) Result[T] {
		return From(t.run(ctx)).OrElseTag(tg, fallback).Result()
	}}
}

// UnwrapOr drives the task and extracts the value, substituting def on any
// failure. Never panics.
func (t Task[T]) UnwrapOr(ctx context.Context, def T) T {
	return From(t.run(ctx)).UnwrapOr(def)
}

// Unwrap drives the task and extracts the value unconditionally. The same
// contract as Chain.Unwrap applies: the error union must have been
// narrowed to empty, otherwise the call panics with a *Violation.
func (t Task[T]) Unwrap(ctx context.Context) T {
	return From(t.run(ctx)).Unwrap()
}

// MapTask applies fn to the eventual success value. A failure passes
// through untouched and fn is never invoked on it.
func MapTask[T, U any](t Task[T], fn func(T) U) Task[U] {
	return Task[U]{run: func(ctx context.Context) Result[U] {
		return Map(From(t.run(ctx)), fn).Result()
	}}
}

// FlatMapTask chains a dependent fallible step, awaiting fn's task after
// the upstream resolves. Union accumulation and short-circuiting follow
// FlatMap.
func FlatMapTask[T, U any](t Task[T], fn func(T) Task[U]) Task[U] {
	return Task[U]{run: func(ctx context.Context) Result[U] {
		return FlatMap(From(t.run(ctx)), func(v T) Chain[U] {
			return From(fn(v).run(ctx))
		}).Result()
	}}
}

// MatchTask drives the task and dispatches its result against a complete
// handler table. See Match for the completeness contract.
func MatchTask[T, R any](ctx context.Context, t Task[T], cs Cases[T, R]) R {
	return Match(t.run(ctx), cs)
}

// FoldTask drives the task and folds its result two ways.
func FoldTask[T, R any](ctx context.Context, t Task[T], ok func(T) R, err func(*Fault) R) R {
	return Fold(t.run(ctx), ok, err)
}
