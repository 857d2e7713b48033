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

// Package kismet represents fallible computations as values with exhaustive,
// tag-by-tag handling of every distinct failure kind.
//
// # Model
//
// A fallible operation produces a Result: success with a value, or failure
// with a Fault — a tagged variant whose discriminant (kismet/tag.Tag)
// uniquely determines its payload fields. The set of tags an operation may
// fail with is its error union, carried on every Result as a tagset.Set:
//
//   - chaining two fallible operations takes the union of their tag sets;
//   - recovering a specific tag subtracts it from the set;
//   - a value can only be unconditionally unwrapped once the set is empty.
//
// At decision points the exhaustive matcher (Match) dispatches a Result
// against a handler table with one entry per tag in the union plus one for
// success, and treats an incomplete table as a fatal contract violation.
//
// # Runtime-checked exhaustiveness
//
// In the type systems this discipline comes from, union accumulation and
// narrowing happen at compile time and an incomplete handler table does not
// type-check. Go cannot express that, so kismet implements the documented
// weaker guarantee: the union is tracked at runtime and Match verifies the
// handler table against it deterministically — on the success path as well
// as the failure path — panicking with a *Violation that names the
// unmatched tag. An incomplete table is therefore caught on the first
// Match it ever reaches, not only when the unlucky failure occurs.
//
// On a short-circuited FlatMap the downstream step never runs, so its tags
// cannot be discovered; the tracked union is a lower bound of the static
// one. Declare closes that gap where it matters, and handlers for tags
// outside the tracked union are permitted and ignored.
//
// # Chaining
//
// Chain wraps a Result for fluent composition; Task does the same for a
// suspended computation yielding a Result, with every operation deferred
// until the task is driven with a context. Both are immutable values:
//
//	n := kismet.Map(kismet.Succeed(21), func(v int) int { return v * 2 }).
//		UnwrapOr(0) // 42
//
//	out := kismet.MatchChain(
//		kismet.FailWith[string](kismet.NewFault(tag.NotFound,
//			kismet.WithFieldOption("id", "123"))),
//		kismet.Cases[string, string]{
//			Ok: func(v string) string { return v },
//			Err: map[tag.Tag]func(*kismet.Fault) string{
//				tag.NotFound: func(f *kismet.Fault) string {
//					id, _ := f.Field("id")
//					return fmt.Sprintf("missing %v", id)
//				},
//			},
//		})
//
// The library itself never logs, retries or suppresses a failure; all such
// policy belongs to the handlers the caller supplies. Subpackages provide
// the surrounding machinery: kismet/factory declares closed error sets and
// their constructors, kismet/mapper resolves tags to transport statuses,
// and kismet/grpcx, kismet/httpx, kismet/logx adapt faults to gRPC, HTTP
// and structured logs at the boundary.
package kismet
