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

// Package grpcx adapts kismet faults to gRPC status errors at the server
// boundary. The interceptor is the one place where a contract-violation
// panic is allowed to be recovered: a broken handler fails its request with
// codes.Internal instead of taking the process down.
package grpcx

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kukalajet/kismet"
	"github.com/kukalajet/kismet/adapter"
	"github.com/kukalajet/kismet/apis"
)

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// *kismet.Fault errors into gRPC status errors carrying a structured detail.
//
// The provided apis.Mapper resolves fault tags into transport status codes.
//
// Behavior:
//   - a nil handler error passes through untouched;
//   - an error that is (or wraps) a *kismet.Fault becomes a status error
//     with the mapped code, the fault's message, and a structpb.Struct
//     detail holding the fault view and both resolved statuses;
//   - any other error is not ours and is returned as-is;
//   - a *kismet.Violation panic from the handler is recovered and returned
//     as codes.Internal — a broken handler table or premature unwrap fails
//     the request, not the server. Other panics propagate.
func UnaryServerInterceptor(m apis.Mapper) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if rv := recover(); rv != nil {
				v, ok := kismet.AsViolation(rv)
				if !ok {
					panic(rv)
				}
				resp = nil
				err = gstatus.Error(gcodes.Internal, v.Error())
			}
		}()

		resp, err = handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var f *kismet.Fault
		if !errors.As(err, &f) {
			// Not ours — return as-is.
			return nil, err
		}

		st := m.Status(f.Tag)
		base := gstatus.New(st.GRPC, f.Error())

		// Try to attach the fault view as details. If it fails — return base.
		if detail, derr := faultDetail(f, st); derr == nil {
			if with, werr := base.WithDetails(detail); werr == nil {
				return nil, with.Err()
			}
		}

		return nil, base.Err()
	}
}

// faultDetail builds the wire detail for a fault: a structpb.Struct holding
// the serialized view plus both resolved statuses. Payload values that are
// not representable as JSON are carried as their string formatting.
func faultDetail(f *kismet.Fault, st apis.Status) (*structpb.Struct, error) {
	fields := make(map[string]any, len(f.Fields))
	for k, v := range f.Fields {
		fields[k] = jsonable(v)
	}
	return structpb.NewStruct(map[string]any{
		"tag":         string(f.Tag),
		"message":     f.Message,
		"http_status": st.HTTP,
		"grpc_code":   int(st.GRPC),
		"fields":      fields,
	})
}

// jsonable coerces a payload value into something structpb can hold.
func jsonable(v any) any {
	if v == nil {
		return nil
	}
	if _, err := structpb.NewValue(v); err == nil {
		return v
	}
	return fmt.Sprint(v)
}

// ExtractFault pulls the fault view out of a gRPC status error, if present.
// Useful in tests and client code:
//
//	view, ok := grpcx.ExtractFault(err)
//	if ok && view.Tag == "NotFound" { ... }
func ExtractFault(err error) (apis.FaultView, bool) {
	if err == nil {
		return apis.FaultView{}, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return apis.FaultView{}, false
	}
	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		m := s.AsMap()
		tagName, _ := m["tag"].(string)
		if tagName == "" {
			continue
		}
		view := apis.FaultView{Tag: tagName}
		view.Message, _ = m["message"].(string)
		if fm, ok := m["fields"].(map[string]any); ok && len(fm) > 0 {
			view.Fields = adapter.FieldsFromMap(fm)
		}
		return view, true
	}
	return apis.FaultView{}, false
}
