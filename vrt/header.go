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

// PacketType is the 4-bit VRT packet type field, Header bits 31-28.
type PacketType uint8

// Defined packet types, ANSI/VITA 49.2-2017 Table 5.1.1-1.
const (
	PacketTypeSignalData           PacketType = 0x0
	PacketTypeSignalDataWithStream PacketType = 0x1
	PacketTypeExtensionData        PacketType = 0x2
	PacketTypeExtensionDataStream  PacketType = 0x3
	PacketTypeContext              PacketType = 0x4
	PacketTypeExtensionContext     PacketType = 0x5
	PacketTypeCommand              PacketType = 0x6
	// 0x7 reserved
	PacketTypeExtensionCommand PacketType = 0x9
	// 0x8, 0xA-0xF reserved
)

var packetTypeNames = map[PacketType]string{
	PacketTypeSignalData:           "SignalData",
	PacketTypeSignalDataWithStream: "SignalDataWithStreamID",
	PacketTypeExtensionData:        "ExtensionData",
	PacketTypeExtensionDataStream:  "ExtensionDataWithStreamID",
	PacketTypeContext:              "Context",
	PacketTypeExtensionContext:     "ExtensionContext",
	PacketTypeCommand:              "Command",
	PacketTypeExtensionCommand:     "ExtensionCommand",
}

func (t PacketType) String() string {
	if s, ok := packetTypeNames[t]; ok {
		return s
	}
	return "Reserved"
}

func (t PacketType) valid() bool {
	_, ok := packetTypeNames[t]
	return ok
}

// HasStreamID reports whether this packet type variant always carries
// a Stream ID in the prologue.
func (t PacketType) HasStreamID() bool {
	switch t {
	case PacketTypeSignalDataWithStream, PacketTypeExtensionDataStream,
		PacketTypeContext, PacketTypeExtensionContext,
		PacketTypeCommand, PacketTypeExtensionCommand:
		return true
	default:
		return false
	}
}

// IsContext reports whether this packet type carries a Context payload.
func (t PacketType) IsContext() bool {
	return t == PacketTypeContext || t == PacketTypeExtensionContext
}

// IsCommand reports whether this packet type carries a Command payload.
func (t PacketType) IsCommand() bool {
	return t == PacketTypeCommand || t == PacketTypeExtensionCommand
}

// IsSignalData reports whether this packet type carries a raw Signal
// Data payload.
func (t PacketType) IsSignalData() bool {
	switch t {
	case PacketTypeSignalData, PacketTypeSignalDataWithStream,
		PacketTypeExtensionData, PacketTypeExtensionDataStream:
		return true
	default:
		return false
	}
}

// TSIMode is the 2-bit integer-timestamp mode, Header bits 23-22.
type TSIMode uint8

// Integer timestamp modes, Table 5.1.1-2.
const (
	TSINone TSIMode = iota
	TSIUTC
	TSIGPS
	TSIOther
)

// TSFMode is the 2-bit fractional-timestamp mode, Header bits 21-20.
type TSFMode uint8

// Fractional timestamp modes, Table 5.1.1-3.
const (
	TSFNone TSFMode = iota
	TSFSampleCount
	TSFRealTimePicoseconds
	TSFFreeRunningCount
)

// HeaderSize is the fixed wire size of the Header, in bytes.
const HeaderSize = 4

// Header is the mandatory 32-bit VRT packet header.
type Header struct {
	PacketType      PacketType
	ClassIDPresent  bool
	TSI             TSIMode
	TSF             TSFMode
	TrailerIncluded bool   // meaningful only for signal-data packet types
	PacketCount     uint8  // 4 bits, mod-16 sequence
	PacketSize      uint16 // packet size in 32-bit words, including this header
}

// decodeHeader parses the 4-byte Header at the front of b.
func decodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, errShortBuffer(HeaderSize, len(b))
	}
	word := binary.BigEndian.Uint32(b[0:4])

	pt := PacketType((word >> 28) & 0xf)
	if !pt.valid() {
		return Header{}, errInvalidPacketType(uint8(pt))
	}

	h := Header{
		PacketType:      pt,
		ClassIDPresent:  (word>>27)&0x1 != 0,
		TrailerIncluded: (word>>26)&0x1 != 0,
		TSI:             TSIMode((word >> 22) & 0x3),
		TSF:             TSFMode((word >> 20) & 0x3),
		PacketCount:     uint8((word >> 16) & 0xf),
		PacketSize:      uint16(word & 0xffff),
	}

	if !pt.IsSignalData() && h.TrailerIncluded {
		return Header{}, errInvalidHeader("trailer_included bit must be 0 for context/command packet types")
	}
	return h, nil
}

// encodeHeader writes the 4-byte wire form of h into b[0:4].
func encodeHeader(h Header, b []byte) {
	trailer := h.TrailerIncluded && h.PacketType.IsSignalData()

	word := uint32(h.PacketType&0xf) << 28
	if h.ClassIDPresent {
		word |= 1 << 27
	}
	if trailer {
		word |= 1 << 26
	}
	word |= uint32(h.TSI&0x3) << 22
	word |= uint32(h.TSF&0x3) << 20
	word |= uint32(h.PacketCount&0xf) << 16
	word |= uint32(h.PacketSize)

	binary.BigEndian.PutUint32(b[0:4], word)
}

// NextPacketCount returns h.PacketCount incremented mod 16, for
// assigning sequence numbers to successive packets in a stream.
func (h Header) NextPacketCount() uint8 {
	return (h.PacketCount + 1) & 0xf
}
