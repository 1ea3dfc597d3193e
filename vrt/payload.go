/*
Copyright (c) Facebook, Inc. and its affiliates.

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

package vrt

// PayloadKind names the variant a Payload currently holds.
type PayloadKind uint8

// Recognized payload kinds.
const (
	PayloadKindSignalData PayloadKind = iota
	PayloadKindContext
	PayloadKindCommand
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadKindSignalData:
		return "SignalData"
	case PayloadKindContext:
		return "Context"
	case PayloadKindCommand:
		return "Command"
	default:
		return "Unknown"
	}
}

// Payload is a sum type over {Context, Command, SignalData}. The
// variant actually in use is tracked by Kind; the other two fields are
// the zero value and must not be read directly; use the As* accessors.
type Payload struct {
	Kind       PayloadKind
	SignalData SignalData
	Context    Context
	Command    Command
}

// AsContext returns the Context variant, or WrongPayloadKind if this
// Payload holds something else.
func (p *Payload) AsContext() (*Context, error) {
	if p.Kind != PayloadKindContext {
		return nil, errWrongPayloadKind(PayloadKindContext.String(), p.Kind.String())
	}
	return &p.Context, nil
}

// AsCommand returns the Command variant, or WrongPayloadKind otherwise.
func (p *Payload) AsCommand() (*Command, error) {
	if p.Kind != PayloadKindCommand {
		return nil, errWrongPayloadKind(PayloadKindCommand.String(), p.Kind.String())
	}
	return &p.Command, nil
}

// AsSignalData returns the SignalData variant, or WrongPayloadKind otherwise.
func (p *Payload) AsSignalData() (*SignalData, error) {
	if p.Kind != PayloadKindSignalData {
		return nil, errWrongPayloadKind(PayloadKindSignalData.String(), p.Kind.String())
	}
	return &p.SignalData, nil
}

func payloadKindForPacketType(pt PacketType) PayloadKind {
	switch {
	case pt.IsContext():
		return PayloadKindContext
	case pt.IsCommand():
		return PayloadKindCommand
	default:
		return PayloadKindSignalData
	}
}
