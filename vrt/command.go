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

import "encoding/binary"

// AckClass is the 3-bit acknowledgment-class field of a Command
// Control Word, ANSI/VITA 49.2 Table 8.2.1-1. It selects which of the
// three Command body shapes the decoder expects.
type AckClass uint8

// Recognized acknowledgment classes.
const (
	AckControl AckClass = iota
	AckCancellation
	AckValidationAck
	AckExecutionAck
	AckQueryAck
)

var ackClassNames = map[AckClass]string{
	AckControl:       "Control",
	AckCancellation:  "Cancellation",
	AckValidationAck: "ValidationAck",
	AckExecutionAck:  "ExecutionAck",
	AckQueryAck:      "QueryAck",
}

func (a AckClass) String() string {
	if s, ok := ackClassNames[a]; ok {
		return s
	}
	return "Reserved"
}

// IDWidth selects how a Controllee/Controller ID is carried: absent,
// a 32-bit word ID, or a 128-bit UUID.
type IDWidth uint8

// Recognized ID widths.
const (
	IDAbsent IDWidth = iota
	IDWord32
	IDUUID128
)

func (w IDWidth) byteLen() int {
	switch w {
	case IDWord32:
		return 4
	case IDUUID128:
		return 16
	default:
		return 0
	}
}

// TimingControl is the Command Control Word's timing-constraint field.
type TimingControl uint8

// Recognized timing controls.
const (
	TimingLateOK TimingControl = iota
	TimingEarlyOK
	TimingTimed
	TimingTimedPartialOK
)

// ControlWord is the 32-bit Command Control Word: orthogonal choices
// that together select the body shape and delivery semantics of a
// Command payload, ANSI/VITA 49.2 §8.2.
type ControlWord struct {
	AckClass          AckClass
	PartialPermitted  bool
	WarningsEnabled   bool
	ErrorsEnabled     bool
	ControlleeIDWidth IDWidth
	ControllerIDWidth IDWidth
	Timing            TimingControl
	Executed          bool // false = scheduled, true = executed (action taken)

	// raw is the full word as decoded; bits outside controlWordModeledMask
	// are re-emitted verbatim so a parsed word round-trips even when it
	// carries user-defined or reserved bits this struct doesn't model.
	raw uint32
}

// controlWordModeledMask covers the bits the ControlWord fields above
// model; encodeControlWord overwrites exactly these in raw.
const controlWordModeledMask = 0x7<<24 | 1<<23 | 1<<22 | 1<<21 | 0x3<<18 | 0x3<<15 | 0x3<<12 | 1<<11

func decodeControlWord(raw uint32) (ControlWord, error) {
	cw := ControlWord{
		AckClass:          AckClass((raw >> 24) & 0x7),
		PartialPermitted:  raw&(1<<23) != 0,
		WarningsEnabled:   raw&(1<<22) != 0,
		ErrorsEnabled:     raw&(1<<21) != 0,
		ControlleeIDWidth: IDWidth((raw >> 18) & 0x3),
		ControllerIDWidth: IDWidth((raw >> 15) & 0x3),
		Timing:            TimingControl((raw >> 12) & 0x3),
		Executed:          raw&(1<<11) != 0,
		raw:               raw,
	}
	if cw.AckClass > AckQueryAck || cw.ControlleeIDWidth == 3 || cw.ControllerIDWidth == 3 {
		return ControlWord{}, errUnsupportedCommand(raw)
	}
	return cw, nil
}

func encodeControlWord(cw ControlWord) uint32 {
	raw := cw.raw &^ uint32(controlWordModeledMask)
	raw |= uint32(cw.AckClass&0x7) << 24
	if cw.PartialPermitted {
		raw |= 1 << 23
	}
	if cw.WarningsEnabled {
		raw |= 1 << 22
	}
	if cw.ErrorsEnabled {
		raw |= 1 << 21
	}
	raw |= uint32(cw.ControlleeIDWidth&0x3) << 18
	raw |= uint32(cw.ControllerIDWidth&0x3) << 15
	raw |= uint32(cw.Timing&0x3) << 12
	if cw.Executed {
		raw |= 1 << 11
	}
	return raw
}

// CIFStatusWord mirrors Trailer's indicator/state discipline for the
// 32-bit warning/error status words a ValidationAck/ExecutionAck body
// carries for every echoed CIF field.
type CIFStatusWord struct {
	indicator, state uint32
}

// Bit reads status bit n: (value, present).
func (c CIFStatusWord) Bit(n uint) (bool, bool) {
	return c.state&(1<<n) != 0, c.indicator&(1<<n) != 0
}

// SetBit sets status bit n and marks it present.
func (c *CIFStatusWord) SetBit(n uint, v bool) {
	c.indicator |= 1 << n
	if v {
		c.state |= 1 << n
	} else {
		c.state &^= 1 << n
	}
}

func decodeCIFStatusWord(b []byte) CIFStatusWord {
	word := binary.BigEndian.Uint32(b[0:4])
	return CIFStatusWord{indicator: word >> 16, state: word & 0xffff}
}

func encodeCIFStatusWord(c CIFStatusWord) uint32 {
	return (c.indicator&0xffff)<<16 | (c.state & 0xffff)
}

// Command is the Command payload. Exactly one of ControlBody, the ack
// status set, or QueryAckBody is populated, selected by Control.AckClass.
type Command struct {
	Control ControlWord

	MessageID    uint32
	ControlleeID []byte // 0, 4 or 16 bytes, per Control.ControlleeIDWidth
	ControllerID []byte // 0, 4 or 16 bytes, per Control.ControllerIDWidth

	// Control / Cancellation body.
	ControlBody *Context

	// ValidationAck / ExecutionAck body: one status word per field bit
	// echoed in CIF0Echo/CIF1Echo, in the same ascending-bit order
	// fields are emitted in a Context payload. The CIF1 echo word is
	// carried iff CIF0Echo's CIF1-enable bit is set, mirroring decode.
	CIF0Echo CIF0
	CIF1Echo CIF1
	Statuses map[string]CIFStatusWord

	// QueryAck body: identical shape to a Context payload.
	QueryAckBody *Context
}

func (c Command) idHeaderLen() int {
	return 4 + c.Control.ControlleeIDWidth.byteLen() + c.Control.ControllerIDWidth.byteLen()
}

// cif1EchoWord returns the CIF1 echo to carry: the stored word when
// CIF0Echo enables it, zero otherwise, so encode and length accounting
// stay keyed off the same enable bit decode honors.
func (c Command) cif1EchoWord() CIF1 {
	if !c.CIF0Echo.CIF1Enable() {
		return 0
	}
	return c.CIF1Echo
}

// contextBody returns the Control/Cancellation or QueryAck body,
// substituting an empty Context for nil so a freshly-built command
// still encodes a well-formed (all-zero) CIF block.
func (c Command) contextBody() Context {
	var body *Context
	switch c.Control.AckClass {
	case AckControl, AckCancellation:
		body = c.ControlBody
	case AckQueryAck:
		body = c.QueryAckBody
	}
	if body == nil {
		return Context{}
	}
	return *body
}

func (c Command) encodedLen() int {
	n := 4 + c.idHeaderLen() // control word + message id + ids
	switch c.Control.AckClass {
	case AckControl, AckCancellation, AckQueryAck:
		n += c.contextBody().encodedLen()
	case AckValidationAck, AckExecutionAck:
		n += CIFWordSize
		if c.CIF0Echo.CIF1Enable() {
			n += CIFWordSize
		}
		// one status word per echoed field bit, matching what
		// encodeCommand emits even if Statuses has stray entries
		for bit := uint(2); bit <= 31; bit++ {
			if c.CIF0Echo.Bit(bit) {
				if _, ok := findOp(cif0Ops, bit); ok {
					n += 4
				}
			}
		}
		cif1Echo := c.cif1EchoWord()
		for bit := uint(0); bit <= 31; bit++ {
			if cif1Echo.Bit(bit) {
				if _, ok := findOp(cif1Ops, bit); ok {
					n += 4
				}
			}
		}
	}
	return n
}

func encodeCommand(c Command, b []byte) (int, error) {
	pos := 0
	binary.BigEndian.PutUint32(b[pos:pos+4], encodeControlWord(c.Control))
	pos += 4
	binary.BigEndian.PutUint32(b[pos:pos+4], c.MessageID)
	pos += 4
	if n := c.Control.ControlleeIDWidth.byteLen(); n > 0 {
		copy(b[pos:pos+n], c.ControlleeID)
		pos += n
	}
	if n := c.Control.ControllerIDWidth.byteLen(); n > 0 {
		copy(b[pos:pos+n], c.ControllerID)
		pos += n
	}

	switch c.Control.AckClass {
	case AckControl, AckCancellation, AckQueryAck:
		n, err := encodeContext(c.contextBody(), b[pos:])
		if err != nil {
			return 0, err
		}
		pos += n
	case AckValidationAck, AckExecutionAck:
		encodeCIF0(c.CIF0Echo, b[pos:])
		pos += CIFWordSize
		cif1Echo := c.cif1EchoWord()
		if c.CIF0Echo.CIF1Enable() {
			encodeCIF1(cif1Echo, b[pos:])
			pos += CIFWordSize
		}
		for bit := uint(2); bit <= 31; bit++ {
			if !c.CIF0Echo.Bit(bit) {
				continue
			}
			op, ok := findOp(cif0Ops, bit)
			if !ok {
				continue
			}
			sw := c.Statuses[op.name]
			binary.BigEndian.PutUint32(b[pos:pos+4], encodeCIFStatusWord(sw))
			pos += 4
		}
		for bit := uint(0); bit <= 31; bit++ {
			if !cif1Echo.Bit(bit) {
				continue
			}
			op, ok := findOp(cif1Ops, bit)
			if !ok {
				continue
			}
			sw := c.Statuses[op.name]
			binary.BigEndian.PutUint32(b[pos:pos+4], encodeCIFStatusWord(sw))
			pos += 4
		}
	}
	return pos, nil
}

// decodeCommand parses a Command payload from the front of b and
// returns the number of bytes it consumed, mirroring decodeContext so
// Parse can detect trailing residue the header's declared size doesn't
// account for.
func decodeCommand(b []byte) (Command, int, error) {
	if len(b) < 8 {
		return Command{}, 0, errShortBuffer(8, len(b))
	}
	raw := binary.BigEndian.Uint32(b[0:4])
	cw, err := decodeControlWord(raw)
	if err != nil {
		return Command{}, 0, err
	}
	c := Command{Control: cw, MessageID: binary.BigEndian.Uint32(b[4:8])}
	pos := 8

	if n := cw.ControlleeIDWidth.byteLen(); n > 0 {
		if len(b[pos:]) < n {
			return Command{}, 0, errShortBuffer(n, len(b[pos:]))
		}
		c.ControlleeID = append([]byte(nil), b[pos:pos+n]...)
		pos += n
	}
	if n := cw.ControllerIDWidth.byteLen(); n > 0 {
		if len(b[pos:]) < n {
			return Command{}, 0, errShortBuffer(n, len(b[pos:]))
		}
		c.ControllerID = append([]byte(nil), b[pos:pos+n]...)
		pos += n
	}

	switch cw.AckClass {
	case AckControl, AckCancellation:
		ctx, n, err := decodeContext(b[pos:])
		if err != nil {
			return Command{}, 0, err
		}
		c.ControlBody = &ctx
		pos += n
	case AckValidationAck, AckExecutionAck:
		cif0, err := decodeCIF0(b[pos:])
		if err != nil {
			return Command{}, 0, err
		}
		pos += CIFWordSize
		var cif1 CIF1
		if cif0.CIF1Enable() {
			cif1, err = decodeCIF1(b[pos:])
			if err != nil {
				return Command{}, 0, err
			}
			pos += CIFWordSize
		}
		c.CIF0Echo, c.CIF1Echo = cif0, cif1
		c.Statuses = make(map[string]CIFStatusWord)
		for bit := uint(2); bit <= 31; bit++ {
			if !cif0.Bit(bit) {
				continue
			}
			op, ok := findOp(cif0Ops, bit)
			if !ok {
				return Command{}, 0, errUnsupportedCIFField(0, bit)
			}
			if len(b[pos:]) < 4 {
				return Command{}, 0, errShortBuffer(4, len(b[pos:]))
			}
			c.Statuses[op.name] = decodeCIFStatusWord(b[pos : pos+4])
			pos += 4
		}
		for bit := uint(0); bit <= 31; bit++ {
			if !cif1.Bit(bit) {
				continue
			}
			op, ok := findOp(cif1Ops, bit)
			if !ok {
				return Command{}, 0, errUnsupportedCIFField(1, bit)
			}
			if len(b[pos:]) < 4 {
				return Command{}, 0, errShortBuffer(4, len(b[pos:]))
			}
			c.Statuses[op.name] = decodeCIFStatusWord(b[pos : pos+4])
			pos += 4
		}
	case AckQueryAck:
		ctx, n, err := decodeContext(b[pos:])
		if err != nil {
			return Command{}, 0, err
		}
		c.QueryAckBody = &ctx
		pos += n
	}
	return c, pos, nil
}
