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

// CIFWordSize is the wire size of a single CIF indicator word.
const CIFWordSize = 4

// CIF0 is the first Context Indicator Field word. Bit 0 enables CIF7,
// bit 1 enables CIF1; bits 2-31 each select a data field in the field
// schema (see cif0Ops in contextfields.go).
type CIF0 uint32

// CIF7Enable reports the CIF7-enable bit (bit 0).
func (c CIF0) CIF7Enable() bool { return c&0x1 != 0 }

// CIF1Enable reports the CIF1-enable bit (bit 1).
func (c CIF0) CIF1Enable() bool { return c&0x2 != 0 }

// Bit reports whether data-field indicator bit n (2-31) is set.
func (c CIF0) Bit(n uint) bool { return c&(1<<n) != 0 }

func (c *CIF0) setCIF7Enable(v bool) { c.setBit(0, v) }
func (c *CIF0) setCIF1Enable(v bool) { c.setBit(1, v) }

func (c *CIF0) setBit(n uint, v bool) {
	if v {
		*c |= CIF0(1 << n)
	} else {
		*c &^= CIF0(1 << n)
	}
}

func decodeCIF0(b []byte) (CIF0, error) {
	if len(b) < CIFWordSize {
		return 0, errShortBuffer(CIFWordSize, len(b))
	}
	return CIF0(binary.BigEndian.Uint32(b[0:4])), nil
}

func encodeCIF0(c CIF0, b []byte) { binary.BigEndian.PutUint32(b[0:4], uint32(c)) }

// CIF1 is the second Context Indicator Field word, present iff
// CIF0.CIF1Enable is set. All 32 bits select data fields (see
// cif1Ops in contextfields.go).
type CIF1 uint32

// Bit reports whether data-field indicator bit n (0-31) is set.
func (c CIF1) Bit(n uint) bool { return c&(1<<n) != 0 }

func (c *CIF1) setBit(n uint, v bool) {
	if v {
		*c |= CIF1(1 << n)
	} else {
		*c &^= CIF1(1 << n)
	}
}

func decodeCIF1(b []byte) (CIF1, error) {
	if len(b) < CIFWordSize {
		return 0, errShortBuffer(CIFWordSize, len(b))
	}
	return CIF1(binary.BigEndian.Uint32(b[0:4])), nil
}

func encodeCIF1(c CIF1, b []byte) { binary.BigEndian.PutUint32(b[0:4], uint32(c)) }

// CIF7 is the optional third Context Indicator Field word, present iff
// the cif7 build tag is enabled and CIF0.CIF7Enable is set. Its low 3
// bits give the number of extra per-field attribute values that follow
// every primary field selected by the attribute-presence mask in bits
// 3-31 (mirroring the CIF0/CIF1 bit each primary field occupies).
type CIF7 uint32

// NumExtraAttrs returns the 3-bit attribute count (0-7).
func (c CIF7) NumExtraAttrs() uint8 { return uint8(c & 0x7) }

// AttributeBit reports whether field bit n carries extra attributes.
func (c CIF7) AttributeBit(n uint) bool { return c&(1<<n) != 0 }

func decodeCIF7(b []byte) (CIF7, error) {
	if len(b) < CIFWordSize {
		return 0, errShortBuffer(CIFWordSize, len(b))
	}
	return CIF7(binary.BigEndian.Uint32(b[0:4])), nil
}

func encodeCIF7(c CIF7, b []byte) { binary.BigEndian.PutUint32(b[0:4], uint32(c)) }
