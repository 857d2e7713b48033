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

// Package tagset provides immutable sets of fault tags and the set
// arithmetic that tracks error unions through chains of fallible
// operations.
//
// In languages with variant types the error union of an operation lives in
// the type system: chaining takes the union of two variant lists, recovery
// subtracts the handled variant, and a value can only be unwrapped when the
// list is empty. Go has no type-level list arithmetic, so kismet carries the
// union as a value instead: every Result and wrapper owns a tagset.Set and
// the exhaustive matcher checks handler tables against it at match time.
//
// Sets are immutable. Union, Diff, Remove and Add always return a new Set,
// which makes results and wrappers trivially safe to share: no locking
// discipline is needed anywhere in the library.
package tagset
