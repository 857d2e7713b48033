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

// Package httpx adapts kismet faults to HTTP error responses.
package httpx

import (
	"fmt"
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kukalajet/kismet"
	"github.com/kukalajet/kismet/adapter"
	"github.com/kukalajet/kismet/apis"
)

// Writer is a thin adapter that knows how to turn a *kismet.Fault into an
// HTTP response using the provided status mapper.
type Writer struct {
	Mapper apis.Mapper
}

// Write serializes the fault's view as a JSON body and writes it to the
// response writer. The HTTP status is resolved via the Mapper.
//
// No automatic redaction or filtering is performed here: whatever payload
// the fault carries is exposed as-is. Higher-level handlers should apply
// policies if needed.
func (w Writer) Write(rw http.ResponseWriter, f *kismet.Fault) {
	if f == nil {
		return
	}

	st := w.Mapper.Status(f.Tag)

	view, err := faultBody(f, st)
	if err != nil {
		// Payload not serializable at all; fall back to a body-less status.
		rw.WriteHeader(st.HTTP)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(st.HTTP)

	// protobuf JSON through protojson keeps the serialization consistent
	// with the gRPC detail path (field names, well-known types).
	b, _ := (protojson.MarshalOptions{
		EmitUnpopulated: false,
	}).Marshal(view)
	_, _ = rw.Write(b)
}

// WriteError is Write for a plain error value, normalized through
// adapter.FaultOf: an error that is (or wraps) a *kismet.Fault is serialized
// as that fault, a foreign error advertising a tag via the apis contracts
// keeps it, anything else is captured as the reserved UnknownFailure fault.
// Callers can route every error through this one code path.
func (w Writer) WriteError(rw http.ResponseWriter, err error) {
	w.Write(rw, adapter.FaultOf(err))
}

// faultBody builds the JSON wire body for a fault: its view plus the
// resolved transport statuses. Payload values that are not representable as
// JSON are carried as their string formatting.
func faultBody(f *kismet.Fault, st apis.Status) (*structpb.Struct, error) {
	fields := make(map[string]any, len(f.Fields))
	for k, v := range f.Fields {
		if _, err := structpb.NewValue(v); err != nil {
			fields[k] = fmt.Sprint(v)
			continue
		}
		fields[k] = v
	}
	body := map[string]any{
		"tag":         string(f.Tag),
		"http_status": st.HTTP,
		"grpc_code":   int(st.GRPC),
	}
	if f.Message != "" {
		body["message"] = f.Message
	}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	return structpb.NewStruct(body)
}
