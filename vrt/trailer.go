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

// TrailerSize is the fixed wire size of the Trailer, in bytes.
const TrailerSize = 4

// Positions within the 12-bit indicator/state halves, ANSI/VITA 49.2
// Table 5.1.6-1: the enable for half-position p sits at word bit p+20,
// its state value at word bit p+8.
const (
	trailerBitCalibratedTime    = 11
	trailerBitValidData         = 10
	trailerBitReferenceLock     = 9
	trailerBitAGCMGC            = 8
	trailerBitDetectedSignal    = 7
	trailerBitSpectralInversion = 6
	trailerBitOverRange         = 5
	trailerBitSampleLoss        = 4
	// half positions 3-2: sample frame indicator, not modeled as a single bool
)

// Trailer is the optional 32-bit VRT trailer: an indicator half (word
// bits 31-20) saying which state bits (word bits 19-8) are meaningful,
// plus a 7-bit associated context packet count (word bits 6-0) with its
// own enable at word bit 7. Reading a state bit whose indicator bit is
// clear returns (false, false); setting a state bit also sets its
// indicator.
type Trailer struct {
	indicator uint32 // word bits 31-20
	state     uint32 // word bits 19-8
	acpcValid bool   // word bit 7
	acpc      uint8  // word bits 6-0
}

func decodeTrailer(b []byte) (Trailer, error) {
	if len(b) < TrailerSize {
		return Trailer{}, errShortBuffer(TrailerSize, len(b))
	}
	word := binary.BigEndian.Uint32(b[0:4])
	return Trailer{
		indicator: (word >> 20) & 0xfff,
		state:     (word >> 8) & 0xfff,
		acpcValid: word&(1<<7) != 0,
		acpc:      uint8(word & 0x7f),
	}, nil
}

func encodeTrailer(t Trailer, b []byte) {
	word := (t.indicator&0xfff)<<20 | (t.state&0xfff)<<8 | uint32(t.acpc&0x7f)
	if t.acpcValid {
		word |= 1 << 7
	}
	binary.BigEndian.PutUint32(b[0:4], word)
}

// bit reads bit position p (0-11 within the 12-bit halves) returning
// (value, present).
func (t Trailer) bit(p uint) (bool, bool) {
	present := t.indicator&(1<<p) != 0
	if !present {
		return false, false
	}
	return t.state&(1<<p) != 0, true
}

func (t *Trailer) setBit(p uint, value bool) {
	t.indicator |= 1 << p
	if value {
		t.state |= 1 << p
	} else {
		t.state &^= 1 << p
	}
}

func (t *Trailer) clearBit(p uint) {
	t.indicator &^= 1 << p
	t.state &^= 1 << p
}

// CalibratedTime returns the calibrated-time-indicator state bit and
// whether it is present.
func (t Trailer) CalibratedTime() (bool, bool) { return t.bit(trailerBitCalibratedTime) }

// SetCalibratedTime sets the calibrated-time-indicator bit and its value.
func (t *Trailer) SetCalibratedTime(v bool) { t.setBit(trailerBitCalibratedTime, v) }

// ValidData returns the valid-data-indicator state bit and its presence.
func (t Trailer) ValidData() (bool, bool) { return t.bit(trailerBitValidData) }

// SetValidData sets the valid-data-indicator bit and its value.
func (t *Trailer) SetValidData(v bool) { t.setBit(trailerBitValidData, v) }

// ReferenceLock returns the reference-lock-indicator state bit and its presence.
func (t Trailer) ReferenceLock() (bool, bool) { return t.bit(trailerBitReferenceLock) }

// SetReferenceLock sets the reference-lock-indicator bit and its value.
func (t *Trailer) SetReferenceLock(v bool) { t.setBit(trailerBitReferenceLock, v) }

// AGCMGCActive returns the AGC/MGC-indicator state bit and its presence.
// true means AGC, false means MGC.
func (t Trailer) AGCMGCActive() (bool, bool) { return t.bit(trailerBitAGCMGC) }

// SetAGCMGCActive sets the AGC/MGC-indicator bit and its value.
func (t *Trailer) SetAGCMGCActive(v bool) { t.setBit(trailerBitAGCMGC, v) }

// DetectedSignal returns the signal-detected-indicator state bit and its presence.
func (t Trailer) DetectedSignal() (bool, bool) { return t.bit(trailerBitDetectedSignal) }

// SetDetectedSignal sets the signal-detected-indicator bit and its value.
func (t *Trailer) SetDetectedSignal(v bool) { t.setBit(trailerBitDetectedSignal, v) }

// SpectralInversion returns the spectral-inversion-indicator state bit and its presence.
func (t Trailer) SpectralInversion() (bool, bool) { return t.bit(trailerBitSpectralInversion) }

// SetSpectralInversion sets the spectral-inversion-indicator bit and its value.
func (t *Trailer) SetSpectralInversion(v bool) { t.setBit(trailerBitSpectralInversion, v) }

// OverRange returns the over-range-indicator state bit and its presence.
func (t Trailer) OverRange() (bool, bool) { return t.bit(trailerBitOverRange) }

// SetOverRange sets the over-range-indicator bit and its value.
func (t *Trailer) SetOverRange(v bool) { t.setBit(trailerBitOverRange, v) }

// SampleLoss returns the sample-loss-indicator state bit and its presence.
func (t Trailer) SampleLoss() (bool, bool) { return t.bit(trailerBitSampleLoss) }

// SetSampleLoss sets the sample-loss-indicator bit and its value.
func (t *Trailer) SetSampleLoss(v bool) { t.setBit(trailerBitSampleLoss, v) }

// AssociatedContextPacketCount returns the 7-bit "associated context
// packet count" subfield and whether its own enable bit is set. It has
// the same presence discipline as the single-bit state fields above.
func (t Trailer) AssociatedContextPacketCount() (uint8, bool) {
	if !t.acpcValid {
		return 0, false
	}
	return t.acpc, true
}

// SetAssociatedContextPacketCount sets the subfield and its enable bit.
// Values are masked to 7 bits.
func (t *Trailer) SetAssociatedContextPacketCount(v uint8) {
	t.acpcValid = true
	t.acpc = v & 0x7f
}

// ClearAssociatedContextPacketCount removes the subfield, clearing its
// enable bit.
func (t *Trailer) ClearAssociatedContextPacketCount() {
	t.acpcValid = false
	t.acpc = 0
}
