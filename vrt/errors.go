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

import "fmt"

// Kind enumerates the recognizable ways a Packet decode, mutation, or
// encode can fail. Every malformed input maps to exactly one Kind; the
// codec never panics on hostile input.
type Kind int

// Recognized error kinds, see Error.
const (
	// KindShortBuffer means input ended before a required field.
	KindShortBuffer Kind = iota
	// KindLengthMismatch means Header.PacketSize*4 != len(input).
	KindLengthMismatch
	// KindInvalidPacketType means the 4-bit packet type is reserved.
	KindInvalidPacketType
	// KindInvalidHeader means header flags are incompatible with the packet type.
	KindInvalidHeader
	// KindInvalidClassID means the Class ID OUI high byte is nonzero.
	KindInvalidClassID
	// KindWrongPayloadKind means an accessor was called for the wrong payload variant.
	KindWrongPayloadKind
	// KindSizeStale means Serialize was called without a prior RecomputeSize after a mutation.
	KindSizeStale
	// KindCIF7NotSupported means a CIF7 bit was encountered in a build without the cif7 tag.
	KindCIF7NotSupported
	// KindUnsupportedCommand means the control word does not name a known body shape.
	KindUnsupportedCommand
	// KindUnsupportedCIFField means an indicator bit names a field this codec has no schema row for.
	KindUnsupportedCIFField
	// KindFixedPointOverflow means a setter value cannot fit the field's fixed-point range.
	KindFixedPointOverflow
	// KindInternalCIFInconsistency means a CIF bit was set without a backing value or vice
	// versa at encode time; unreachable through the public API, indicates a programming bug.
	KindInternalCIFInconsistency
)

var kindNames = map[Kind]string{
	KindShortBuffer:              "ShortBuffer",
	KindLengthMismatch:           "LengthMismatch",
	KindInvalidPacketType:        "InvalidPacketType",
	KindInvalidHeader:            "InvalidHeader",
	KindInvalidClassID:           "InvalidClassID",
	KindWrongPayloadKind:         "WrongPayloadKind",
	KindSizeStale:                "SizeStale",
	KindCIF7NotSupported:         "Cif7NotSupported",
	KindUnsupportedCommand:       "UnsupportedCommand",
	KindUnsupportedCIFField:      "UnsupportedCIFField",
	KindFixedPointOverflow:       "FixedPointOverflow",
	KindInternalCIFInconsistency: "InternalCifInconsistency",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("UnknownKind(%d)", int(k))
}

// Error is the single error taxonomy returned by this package. Fields
// beyond Kind and Msg are populated on a best-effort basis depending on
// which kind was raised; see the Kind-specific constructors below.
type Error struct {
	Kind Kind
	Msg  string

	Need, Got   int    // ShortBuffer
	HeaderSays  int    // LengthMismatch
	Actual      int    // LengthMismatch
	PacketType  uint8  // InvalidPacketType
	Expected    string // WrongPayloadKind
	Got2        string // WrongPayloadKind
	ControlWord uint32 // UnsupportedCommand
	FixedValue  float64
	FixedRadix  int
	FixedWidth  int
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("vrt: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("vrt: %s", e.Kind)
}

// Is lets errors.Is(err, vrt.ErrKind(k)) style comparisons work: two
// *Error values are "the same" error for errors.Is purposes when their
// Kind matches.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// ErrKind builds a bare sentinel for the given Kind, suitable for use
// with errors.Is.
func ErrKind(k Kind) *Error { return &Error{Kind: k} }

func errShortBuffer(need, got int) *Error {
	return &Error{Kind: KindShortBuffer, Need: need, Got: got,
		Msg: fmt.Sprintf("need %d bytes, got %d", need, got)}
}

func errLengthMismatch(headerSays, actual int) *Error {
	return &Error{Kind: KindLengthMismatch, HeaderSays: headerSays, Actual: actual,
		Msg: fmt.Sprintf("header declares %d bytes, actual input is %d bytes", headerSays, actual)}
}

func errInvalidPacketType(pt uint8) *Error {
	return &Error{Kind: KindInvalidPacketType, PacketType: pt,
		Msg: fmt.Sprintf("reserved packet type 0x%x", pt)}
}

func errInvalidHeader(reason string) *Error {
	return &Error{Kind: KindInvalidHeader, Msg: reason}
}

func errInvalidClassID(reason string) *Error {
	return &Error{Kind: KindInvalidClassID, Msg: reason}
}

func errWrongPayloadKind(expected, got string) *Error {
	return &Error{Kind: KindWrongPayloadKind, Expected: expected, Got2: got,
		Msg: fmt.Sprintf("expected payload %s, got %s", expected, got)}
}

func errSizeStale() *Error {
	return &Error{Kind: KindSizeStale, Msg: "recompute_size() was not called after the last mutation"}
}

func errCIF7NotSupported() *Error {
	return &Error{Kind: KindCIF7NotSupported, Msg: "CIF7 enable bit set but this build has no cif7 support"}
}

func errUnsupportedCommand(controlWord uint32) *Error {
	return &Error{Kind: KindUnsupportedCommand, ControlWord: controlWord,
		Msg: fmt.Sprintf("control word 0x%08x does not name a known command body shape", controlWord)}
}

func errUnsupportedCIFField(cif int, bit uint) *Error {
	return &Error{Kind: KindUnsupportedCIFField,
		Msg: fmt.Sprintf("CIF%d bit %d has no field schema in this build", cif, bit)}
}

func errFixedPointOverflow(value float64, radix, width int) *Error {
	return &Error{Kind: KindFixedPointOverflow, FixedValue: value, FixedRadix: radix, FixedWidth: width,
		Msg: fmt.Sprintf("value %g does not fit in a %d-bit radix-%d fixed point", value, width, radix)}
}

func errInternalCIFInconsistency(reason string) *Error {
	return &Error{Kind: KindInternalCIFInconsistency, Msg: reason}
}
