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

// Package factory generates fault constructors from a declarative mapping
// of tag names to payload shapes.
//
// # Overview
//
// A domain declares its error set once, at module level:
//
//	var faults = factory.MustNew(
//	    factory.Define("NotFound", factory.Shape{"id": factory.String}),
//	    factory.Define("RateLimited", factory.Shape{
//	        "retryAfter": factory.Number,
//	        "hint":       factory.OptionalOf(factory.String),
//	    }),
//	    factory.Define("Canceled", nil), // no payload
//	)
//
//	var newNotFound = faults.Ctor("NotFound")
//
// and constructs variants through the generated constructors:
//
//	f := newNotFound(map[string]any{"id": "123"})
//	// f.Tag == "NotFound", f.Fields["id"] == "123"
//
// The factory performs no matching logic of its own: it is purely a
// data-shaping convenience that stamps the discriminant and the declared
// payload fields into a kismet.Fault.
//
// # Shape conformance
//
// Payload conformance is the caller's obligation. A constructor called
// with a payload that contradicts the declared shape (missing required
// field, undeclared field, wrong kind) panics with a *kismet.Violation —
// the same fatal treatment the matcher gives an incomplete handler table.
// Construction never returns an error; a factory constructor that runs at
// all produces a well-formed fault.
//
// Callers that want the shape checked by the compiler instead of at
// construction declare a payload struct per variant and use Typed.
//
// # Declaring unions
//
// Factory.Tags returns the closed set of declared tags, which slots
// directly into chain declarations:
//
//	kismet.Succeed(v).Declare(faults.Tags().Tags()...)
//
// # Immutability
//
// Definitions are copied during New; after construction the Factory does
// not observe changes to the caller's Shape maps. A single Factory is safe
// to share across goroutines for the life of the process.
package factory
