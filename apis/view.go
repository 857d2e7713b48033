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

package apis

// Field is a single named payload value attached to a fault. This is a
// *view type* — small, transport-friendly, and suitable for JSON or proto
// serialization.
//
// We keep it in apis so that different parts of the system (transport
// adapters, loggers) can speak about payload fields without importing the
// concrete fault implementation.
type Field struct {
	// Name is the payload field name as declared by the variant, e.g. "id",
	// "retryAfter".
	Name string `json:"name"`

	// Type is a short classifier of the value ("string", "number", ...).
	// Callers MAY leave it empty; providing it makes client-side handling
	// simpler.
	Type string `json:"type,omitempty"`

	// Value is the field's value. It should be JSON-serializable; adapters
	// that cannot represent a value fall back to its string formatting.
	Value any `json:"value"`
}

// ViewProvider is implemented by errors that can produce a
// transport-friendly, self-contained representation of themselves.
//
// The returned view MUST be safe to marshal (to JSON/proto) and SHOULD
// contain all information that is safe to disclose to the client.
type ViewProvider interface {
	error

	// ErrorView returns a transport-friendly snapshot of the error.
	ErrorView() FaultView
}

// FaultView is a minimal, serializable representation of a fault.
//
// This is *not* the concrete fault type used internally — it is the shape
// we are comfortable exposing over the wire or logging. Keeping it here (in
// apis) allows the HTTP and gRPC adapters to share the same struct.
type FaultView struct {
	// Tag is the discriminant, e.g. "NotFound", "storage.Timeout".
	//
	// Implementations SHOULD store only validated tags here.
	Tag string `json:"tag"`

	// Message is an optional human-friendly message, typically the fault's
	// own message or a default taken from the descriptor.
	Message string `json:"message,omitempty"`

	// Fields is the variant's payload, one entry per declared field.
	Fields []Field `json:"fields,omitempty"`
}
