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

// Package logx integrates kismet faults with zerolog. The core library
// never logs on its own; this package provides the opt-in glue for
// applications that want failure-side observation on their chains.
package logx

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kukalajet/kismet"
)

// FaultMarshaler wraps a fault as a zerolog.LogObjectMarshaler so it can be
// attached to any event as one structured object:
//
//	log.Warn().Object("fault", logx.Object(f)).Msg("request failed")
type FaultMarshaler struct {
	f *kismet.Fault
}

// Object wraps f for structured logging. A nil fault marshals to an empty
// object.
func Object(f *kismet.Fault) FaultMarshaler {
	return FaultMarshaler{f: f}
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (m FaultMarshaler) MarshalZerologObject(e *zerolog.Event) {
	if m.f == nil {
		return
	}
	e.Str("tag", string(m.f.Tag))
	if m.f.Message != "" {
		e.Str("message", m.f.Message)
	}
	if m.f.Cause != nil {
		e.AnErr("cause", m.f.Cause)
	}
	if len(m.f.Fields) > 0 {
		d := zerolog.Dict()
		for k, v := range m.f.Fields {
			d.Interface(k, v)
		}
		e.Dict("fields", d)
	}
}

// ErrorEvent starts an error-level event on log with the fault already
// attached, for call sites that log faults directly:
//
//	logx.ErrorEvent(log, f).Msg("lookup failed")
func ErrorEvent(log zerolog.Logger, f *kismet.Fault) *zerolog.Event {
	return log.Error().Object("fault", Object(f))
}

// TapFault returns a failure-side callback for Chain.TapFault that logs the
// fault at warn level and passes it through:
//
//	kismet.FailWith[int](f).TapFault(logx.TapFault(log))
func TapFault(log zerolog.Logger) func(*kismet.Fault) {
	return func(f *kismet.Fault) {
		log.Warn().Object("fault", Object(f)).Msg("chain failed")
	}
}

// TapFaultCtx is TapFault for Task.TapFault, which passes the task's
// context through to the callback.
func TapFaultCtx(log zerolog.Logger) func(context.Context, *kismet.Fault) {
	return func(ctx context.Context, f *kismet.Fault) {
		log.Warn().Ctx(ctx).Object("fault", Object(f)).Msg("task failed")
	}
}

// Violation logs a recovered contract violation at error level. This
// belongs at process boundaries that choose to survive violations (e.g.
// alongside the gRPC interceptor's recovery).
func Violation(log zerolog.Logger, v *kismet.Violation) {
	e := log.Error()
	if v.Tag != "" {
		e = e.Str("tag", string(v.Tag))
	}
	if v.Fault != nil {
		e = e.Object("fault", Object(v.Fault))
	}
	e.Msg(fmt.Sprintf("contract violation: %s", v.Error()))
}
