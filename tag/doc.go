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

// Package tag provides parsing, normalization and validation for kismet
// fault tags.
//
// A "tag" is the discriminant of a fault variant: the single value that
// identifies which member of a closed error union a given fault is, such as
// "NotFound", "Unauthorized" or "storage.Timeout". Tags are meant to be:
//
//   - short and stable;
//   - dot-separated when namespaced (not slash-separated);
//   - suitable for use in JSON payloads, handler tables and registries.
//
// IMPORTANT: Empty tags ("") are NOT allowed. Every fault MUST have a
// non-empty tag.
//
// This package defines the canonical representation and the functions that
// convert arbitrary user input to that canonical form. It also declares the
// reserved UnknownFailure tag and a small set of conventional domain tags
// that the rest of the system ships defaults for.
package tag
