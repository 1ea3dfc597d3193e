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

// ClassID is the optional 64-bit class identifier carried right after
// Stream ID when Header.ClassIDPresent is set.
type ClassID struct {
	OUI uint32 // low 24 bits significant, high byte must read 0 (InvalidClassID)
	ICC uint16 // information class code
	PCC uint16 // packet class code
}

const classIDSize = 8

func decodeClassID(b []byte) (ClassID, error) {
	if len(b) < classIDSize {
		return ClassID{}, errShortBuffer(classIDSize, len(b))
	}
	word1 := binary.BigEndian.Uint32(b[0:4])
	if word1>>24 != 0 {
		return ClassID{}, errInvalidClassID("OUI high byte must be 0 (pad bitfield reserved)")
	}
	return ClassID{
		OUI: word1 & 0xffffff,
		ICC: uint16(binary.BigEndian.Uint32(b[4:8]) >> 16),
		PCC: uint16(binary.BigEndian.Uint32(b[4:8])),
	}, nil
}

func encodeClassID(c ClassID, b []byte) {
	binary.BigEndian.PutUint32(b[0:4], c.OUI&0xffffff)
	binary.BigEndian.PutUint32(b[4:8], uint32(c.ICC)<<16|uint32(c.PCC))
}

// Packet is the top-level container: a Header, the optional
// prologue fields its flags select, a Payload, and an optional
// Trailer. It owns all its data; nothing is shared across Packet
// values, matching the purely-synchronous concurrency model.
type Packet struct {
	Header Header

	StreamID *uint32
	ClassID  *ClassID
	// IntegerTimestamp/FractionalTimestamp presence is governed by
	// Header.TSI/TSF, not by a separate pointer: a TSI/TSF of None means
	// absent and any other mode means present, so there is nothing to
	// get out of sync.
	IntegerTimestamp    uint32
	FractionalTimestamp uint64

	Payload Payload

	Trailer *Trailer // only meaningful when Header.PacketType.IsSignalData()

	stale bool
}

// NewPacket builds a zero-value packet for the given type, with
// presence flags left at their defaults. Callers set fields and
// must call RecomputeSize before Serialize.
func NewPacket(pt PacketType) Packet {
	return Packet{
		Header:  Header{PacketType: pt},
		Payload: Payload{Kind: payloadKindForPacketType(pt)},
		stale:   true,
	}
}

// Parse decodes a single, complete VRT packet from b. If
// Header.PacketSize*4 does not equal len(b), it returns LengthMismatch:
// b must be exactly one packet, not a stream of several.
func Parse(b []byte) (Packet, error) {
	h, err := decodeHeader(b)
	if err != nil {
		return Packet{}, err
	}
	declared := int(h.PacketSize) * 4
	if declared != len(b) {
		return Packet{}, errLengthMismatch(declared, len(b))
	}

	pos := HeaderSize
	p := Packet{Header: h}

	if h.PacketType.HasStreamID() {
		if len(b[pos:]) < 4 {
			return Packet{}, errShortBuffer(4, len(b[pos:]))
		}
		id := binary.BigEndian.Uint32(b[pos : pos+4])
		p.StreamID = &id
		pos += 4
	}

	if h.ClassIDPresent {
		cid, err := decodeClassID(b[pos:])
		if err != nil {
			return Packet{}, err
		}
		p.ClassID = &cid
		pos += classIDSize
	}

	if h.TSI != TSINone {
		if len(b[pos:]) < 4 {
			return Packet{}, errShortBuffer(4, len(b[pos:]))
		}
		p.IntegerTimestamp = binary.BigEndian.Uint32(b[pos : pos+4])
		pos += 4
	}

	if h.TSF != TSFNone {
		if len(b[pos:]) < 8 {
			return Packet{}, errShortBuffer(8, len(b[pos:]))
		}
		p.FractionalTimestamp = binary.BigEndian.Uint64(b[pos : pos+8])
		pos += 8
	}

	trailerLen := 0
	if h.PacketType.IsSignalData() && h.TrailerIncluded {
		trailerLen = TrailerSize
	}
	payloadEnd := len(b) - trailerLen
	if payloadEnd < pos {
		return Packet{}, errShortBuffer(pos+trailerLen, len(b))
	}
	payloadBytes := b[pos:payloadEnd]

	// Every branch below must account for exactly len(payloadBytes): a
	// decoder that stops short leaves residue that would otherwise be
	// silently dropped, breaking the packet_size_words*4 == total-length
	// rule and the parse/RecomputeSize/Serialize roundtrip on the
	// resulting Packet.
	switch {
	case h.PacketType.IsContext():
		ctx, n, err := decodeContext(payloadBytes)
		if err != nil {
			return Packet{}, err
		}
		if n != len(payloadBytes) {
			return Packet{}, errLengthMismatch(len(b), pos+n+trailerLen)
		}
		p.Payload = Payload{Kind: PayloadKindContext, Context: ctx}
	case h.PacketType.IsCommand():
		cmd, n, err := decodeCommand(payloadBytes)
		if err != nil {
			return Packet{}, err
		}
		if n != len(payloadBytes) {
			return Packet{}, errLengthMismatch(len(b), pos+n+trailerLen)
		}
		p.Payload = Payload{Kind: PayloadKindCommand, Command: cmd}
	default:
		p.Payload = Payload{Kind: PayloadKindSignalData, SignalData: decodeSignalData(payloadBytes)}
	}

	if trailerLen > 0 {
		tr, err := decodeTrailer(b[payloadEnd:])
		if err != nil {
			return Packet{}, err
		}
		p.Trailer = &tr
	}

	p.stale = false
	return p, nil
}

// payloadEncodedLen returns the wire length of the payload body alone.
func (p Packet) payloadEncodedLen() int {
	switch p.Payload.Kind {
	case PayloadKindContext:
		return p.Payload.Context.encodedLen()
	case PayloadKindCommand:
		return p.Payload.Command.encodedLen()
	default:
		return p.Payload.SignalData.encodedLen()
	}
}

// prologueLen returns the byte count of Stream ID + Class ID +
// timestamps, per the current Header flags.
func (p Packet) prologueLen() int {
	n := 0
	if p.Header.PacketType.HasStreamID() {
		n += 4
	}
	if p.Header.ClassIDPresent {
		n += classIDSize
	}
	if p.Header.TSI != TSINone {
		n += 4
	}
	if p.Header.TSF != TSFNone {
		n += 8
	}
	return n
}

func (p Packet) trailerLen() int {
	if p.Header.PacketType.IsSignalData() && p.Header.TrailerIncluded && p.Trailer != nil {
		return TrailerSize
	}
	return 0
}

// RecomputeSize walks the packet bottom-up, summing byte counts, and
// writes the result into Header.PacketSize. It is idempotent and must
// be called after any mutation that changes presence or payload
// length, before Serialize will succeed again.
func (p *Packet) RecomputeSize() {
	total := HeaderSize + p.prologueLen() + p.payloadEncodedLen() + p.trailerLen()
	p.Header.PacketSize = uint16(total / 4)
	p.stale = false
}

// Serialize encodes p to its wire form. It fails with SizeStale if a
// mutation happened since the last RecomputeSize call, or if
// Header.PacketSize no longer matches the packet's encoded length.
func (p Packet) Serialize() ([]byte, error) {
	total := int(p.Header.PacketSize) * 4
	// payload setters reached through AsContext/AsCommand don't set the
	// stale flag, so the declared size is checked against the contents too
	if p.stale || HeaderSize+p.prologueLen()+p.payloadEncodedLen()+p.trailerLen() != total {
		return nil, errSizeStale()
	}
	b := make([]byte, total)

	encodeHeader(p.Header, b)
	pos := HeaderSize

	if p.Header.PacketType.HasStreamID() {
		if p.StreamID == nil {
			return nil, errInvalidHeader("packet type requires a Stream ID but none is set")
		}
		binary.BigEndian.PutUint32(b[pos:pos+4], *p.StreamID)
		pos += 4
	}

	if p.Header.ClassIDPresent {
		if p.ClassID == nil {
			return nil, errInvalidHeader("ClassIDPresent is set but no ClassID is set")
		}
		encodeClassID(*p.ClassID, b[pos:pos+classIDSize])
		pos += classIDSize
	}

	if p.Header.TSI != TSINone {
		binary.BigEndian.PutUint32(b[pos:pos+4], p.IntegerTimestamp)
		pos += 4
	}

	if p.Header.TSF != TSFNone {
		binary.BigEndian.PutUint64(b[pos:pos+8], p.FractionalTimestamp)
		pos += 8
	}

	switch p.Payload.Kind {
	case PayloadKindContext:
		n, err := encodeContext(p.Payload.Context, b[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
	case PayloadKindCommand:
		n, err := encodeCommand(p.Payload.Command, b[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
	default:
		pos += p.Payload.SignalData.encodeTo(b[pos:])
	}

	if trailerLen := p.trailerLen(); trailerLen > 0 {
		encodeTrailer(*p.Trailer, b[pos:pos+trailerLen])
		pos += trailerLen
	}

	if pos != total {
		return nil, errInternalCIFInconsistency("encoded length does not match RecomputeSize's result")
	}
	return b, nil
}

// SetStreamID sets or clears the Stream ID and marks the packet stale.
func (p *Packet) SetStreamID(id *uint32) {
	p.StreamID = id
	p.stale = true
}

// SetClassID sets or clears the Class ID and marks the packet stale.
func (p *Packet) SetClassID(c *ClassID) {
	p.ClassID = c
	p.Header.ClassIDPresent = c != nil
	p.stale = true
}

// SetTrailer sets or clears the Trailer and marks the packet stale.
// It is a no-op on non-signal-data packet types, which never carry one.
func (p *Packet) SetTrailer(t *Trailer) {
	if !p.Header.PacketType.IsSignalData() {
		return
	}
	p.Trailer = t
	p.Header.TrailerIncluded = t != nil
	p.stale = true
}

// SetTimestamps sets the integer/fractional timestamp modes and values
// together, since None/non-None toggles presence.
func (p *Packet) SetTimestamps(tsi TSIMode, integer uint32, tsf TSFMode, fractional uint64) {
	p.Header.TSI, p.IntegerTimestamp = tsi, integer
	p.Header.TSF, p.FractionalTimestamp = tsf, fractional
	p.stale = true
}

// SetPayload replaces the payload entirely and marks the packet stale.
func (p *Packet) SetPayload(payload Payload) {
	p.Payload = payload
	p.stale = true
}

// IsStale reports whether RecomputeSize must be called before Serialize
// will succeed.
func (p Packet) IsStale() bool { return p.stale }
