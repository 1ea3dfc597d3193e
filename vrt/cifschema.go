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

import (
	"encoding/binary"

	"github.com/obsidian-sdr/vrt49/bitfield"
)

// Fixed-point descriptions for the CIF0/CIF1 scalar fields, one per
// distinct width/radix pairing ANSI/VITA 49.2 assigns.
var (
	fpFrequencyHz = bitfield.FixedPoint{Width: 64, Radix: 20, Signed: true} // Hz
	fpGainDB      = bitfield.FixedPoint{Width: 16, Radix: 7, Signed: true}  // dB/dBm
	fpTempC       = bitfield.FixedPoint{Width: 16, Radix: 6, Signed: true}  // degrees C
	fpAngleDeg7   = bitfield.FixedPoint{Width: 16, Radix: 7, Signed: true}  // degrees, +/-180 range
	fpTiltDeg     = bitfield.FixedPoint{Width: 15, Radix: 7, Signed: true}  // degrees, 15-bit (bit 31 of the word is SlantReference)
	fpGeoCoordDeg = bitfield.FixedPoint{Width: 32, Radix: 22, Signed: true} // lat/long degrees
	fpGeoAltM     = bitfield.FixedPoint{Width: 32, Radix: 5, Signed: true}  // altitude meters
	fpVelocityMS  = bitfield.FixedPoint{Width: 32, Radix: 16, Signed: true} // m/s
	fpDistanceM   = bitfield.FixedPoint{Width: 32, Radix: 5, Signed: true}  // meters
)

// GainStages holds the two packed 16-bit radix-7 fixed-point stages of
// the CIF0 Gain field: stage 1 (IF) in the high half, stage 2 (RF) in
// the low half, per ANSI/VITA 49.2 Table 9.5.3-1.
type GainStages struct {
	Stage1DB float64
	Stage2DB float64
}

// DeviceIdentifier names a piece of equipment by manufacturer OUI and
// an OUI-scoped device code, Table 9.10.1-1.
type DeviceIdentifier struct {
	OUI        uint32 // low 24 bits significant
	DeviceCode uint16
}

// DataPayloadFormat describes the packing of a Signal Data payload,
// Table 9.13.3-1. Stored as two raw 32-bit words; this codec does not
// interpret sample layout, matching SignalData's stance on samples.
type DataPayloadFormat struct {
	Word1, Word2 uint32
}

// Geolocation is the composite CIF0 Formatted GPS / Formatted INS
// field: a TSI/TSF/manufacturer-OUI header word followed by several
// radix fixed-point fields, Table 9.4.5-1.
type Geolocation struct {
	TSI                  TSIMode
	TSF                  TSFMode
	ManufacturerOUIValid bool // conditional sub-bit within the header word
	ManufacturerOUI      uint32
	IntegerTimestamp     uint32
	FractionalTimestamp  uint64
	LatitudeDeg          float64
	LongitudeDeg         float64
	AltitudeM            float64
	SpeedOverGroundMS    float64
	HeadingAngleDeg      float64
	TrackAngleDeg        float64
	MagneticVariationDeg float64
}

const geolocationSize = 44 // 11 32-bit words

func encodeGeolocation(g Geolocation, b []byte) {
	var hdr uint32
	hdr |= uint32(g.TSI&0x3) << 30
	hdr |= uint32(g.TSF&0x3) << 28
	if g.ManufacturerOUIValid {
		hdr |= 1 << 27
	}
	hdr |= g.ManufacturerOUI & 0xffffff
	binary.BigEndian.PutUint32(b[0:4], hdr)
	binary.BigEndian.PutUint32(b[4:8], g.IntegerTimestamp)
	binary.BigEndian.PutUint64(b[8:16], g.FractionalTimestamp)
	binary.BigEndian.PutUint32(b[16:20], uint32(fpGeoCoordDeg.FromFloat(g.LatitudeDeg)))
	binary.BigEndian.PutUint32(b[20:24], uint32(fpGeoCoordDeg.FromFloat(g.LongitudeDeg)))
	binary.BigEndian.PutUint32(b[24:28], uint32(fpGeoAltM.FromFloat(g.AltitudeM)))
	binary.BigEndian.PutUint32(b[28:32], uint32(fpGeoAltM.FromFloat(g.SpeedOverGroundMS)))
	binary.BigEndian.PutUint32(b[32:36], uint32(fpGeoCoordDeg.FromFloat(g.HeadingAngleDeg)))
	binary.BigEndian.PutUint32(b[36:40], uint32(fpGeoCoordDeg.FromFloat(g.TrackAngleDeg)))
	binary.BigEndian.PutUint32(b[40:44], uint32(fpGeoCoordDeg.FromFloat(g.MagneticVariationDeg)))
}

func decodeGeolocation(b []byte) Geolocation {
	hdr := binary.BigEndian.Uint32(b[0:4])
	g := Geolocation{
		TSI:                  TSIMode((hdr >> 30) & 0x3),
		TSF:                  TSFMode((hdr >> 28) & 0x3),
		ManufacturerOUIValid: (hdr>>27)&0x1 != 0,
		ManufacturerOUI:      hdr & 0xffffff,
		IntegerTimestamp:     binary.BigEndian.Uint32(b[4:8]),
		FractionalTimestamp:  binary.BigEndian.Uint64(b[8:16]),
	}
	g.LatitudeDeg = fpGeoCoordDeg.ToFloat(int64(int32(binary.BigEndian.Uint32(b[16:20]))))
	g.LongitudeDeg = fpGeoCoordDeg.ToFloat(int64(int32(binary.BigEndian.Uint32(b[20:24]))))
	g.AltitudeM = fpGeoAltM.ToFloat(int64(int32(binary.BigEndian.Uint32(b[24:28]))))
	g.SpeedOverGroundMS = fpGeoAltM.ToFloat(int64(int32(binary.BigEndian.Uint32(b[28:32]))))
	g.HeadingAngleDeg = fpGeoCoordDeg.ToFloat(int64(int32(binary.BigEndian.Uint32(b[32:36]))))
	g.TrackAngleDeg = fpGeoCoordDeg.ToFloat(int64(int32(binary.BigEndian.Uint32(b[36:40]))))
	g.MagneticVariationDeg = fpGeoCoordDeg.ToFloat(int64(int32(binary.BigEndian.Uint32(b[40:44]))))
	return g
}

// Ephemeris is the composite CIF0 ECEF/Relative Ephemeris field,
// Table 9.4.8-1/9.4.9-1: position, velocity and attitude in an
// Earth-centered frame, sharing Geolocation's TSI/TSF/OUI header shape.
type Ephemeris struct {
	TSI                  TSIMode
	TSF                  TSFMode
	ManufacturerOUIValid bool
	ManufacturerOUI      uint32
	IntegerTimestamp     uint32
	FractionalTimestamp  uint64
	PositionXM           float64
	PositionYM           float64
	PositionZM           float64
	VelocityXMS          float64
	VelocityYMS          float64
	VelocityZMS          float64
	AttitudeAlphaDeg     float64
	AttitudeBetaDeg      float64
	AttitudePhiDeg       float64
}

const ephemerisSize = 56 // 14 32-bit words

func encodeEphemeris(e Ephemeris, b []byte) {
	var hdr uint32
	hdr |= uint32(e.TSI&0x3) << 30
	hdr |= uint32(e.TSF&0x3) << 28
	if e.ManufacturerOUIValid {
		hdr |= 1 << 27
	}
	hdr |= e.ManufacturerOUI & 0xffffff
	binary.BigEndian.PutUint32(b[0:4], hdr)
	binary.BigEndian.PutUint32(b[4:8], e.IntegerTimestamp)
	binary.BigEndian.PutUint64(b[8:16], e.FractionalTimestamp)
	binary.BigEndian.PutUint32(b[16:20], uint32(fpGeoAltM.FromFloat(e.PositionXM)))
	binary.BigEndian.PutUint32(b[20:24], uint32(fpGeoAltM.FromFloat(e.PositionYM)))
	binary.BigEndian.PutUint32(b[24:28], uint32(fpGeoAltM.FromFloat(e.PositionZM)))
	binary.BigEndian.PutUint32(b[28:32], uint32(fpVelocityMS.FromFloat(e.VelocityXMS)))
	binary.BigEndian.PutUint32(b[32:36], uint32(fpVelocityMS.FromFloat(e.VelocityYMS)))
	binary.BigEndian.PutUint32(b[36:40], uint32(fpVelocityMS.FromFloat(e.VelocityZMS)))
	binary.BigEndian.PutUint32(b[40:44], uint32(fpGeoCoordDeg.FromFloat(e.AttitudeAlphaDeg)))
	binary.BigEndian.PutUint32(b[44:48], uint32(fpGeoCoordDeg.FromFloat(e.AttitudeBetaDeg)))
	binary.BigEndian.PutUint32(b[48:52], uint32(fpGeoCoordDeg.FromFloat(e.AttitudePhiDeg)))
	binary.BigEndian.PutUint32(b[52:56], 0) // reserved
}

func decodeEphemeris(b []byte) Ephemeris {
	hdr := binary.BigEndian.Uint32(b[0:4])
	e := Ephemeris{
		TSI:                  TSIMode((hdr >> 30) & 0x3),
		TSF:                  TSFMode((hdr >> 28) & 0x3),
		ManufacturerOUIValid: (hdr>>27)&0x1 != 0,
		ManufacturerOUI:      hdr & 0xffffff,
		IntegerTimestamp:     binary.BigEndian.Uint32(b[4:8]),
		FractionalTimestamp:  binary.BigEndian.Uint64(b[8:16]),
	}
	e.PositionXM = fpGeoAltM.ToFloat(int64(int32(binary.BigEndian.Uint32(b[16:20]))))
	e.PositionYM = fpGeoAltM.ToFloat(int64(int32(binary.BigEndian.Uint32(b[20:24]))))
	e.PositionZM = fpGeoAltM.ToFloat(int64(int32(binary.BigEndian.Uint32(b[24:28]))))
	e.VelocityXMS = fpVelocityMS.ToFloat(int64(int32(binary.BigEndian.Uint32(b[28:32]))))
	e.VelocityYMS = fpVelocityMS.ToFloat(int64(int32(binary.BigEndian.Uint32(b[32:36]))))
	e.VelocityZMS = fpVelocityMS.ToFloat(int64(int32(binary.BigEndian.Uint32(b[36:40]))))
	e.AttitudeAlphaDeg = fpGeoCoordDeg.ToFloat(int64(int32(binary.BigEndian.Uint32(b[40:44]))))
	e.AttitudeBetaDeg = fpGeoCoordDeg.ToFloat(int64(int32(binary.BigEndian.Uint32(b[44:48]))))
	e.AttitudePhiDeg = fpGeoCoordDeg.ToFloat(int64(int32(binary.BigEndian.Uint32(b[48:52]))))
	return e
}

// Polarization is the CIF1 polarization sub-structure: tilt and
// ellipticity angle, plus a reference-frame sub-bit of its own,
// Table 9.4.11-1.
type Polarization struct {
	SlantReference      bool // conditional bit: true = slant linear reference, false = horizontal/vertical
	TiltAngleDeg        float64
	EllipticityAngleDeg float64
}

// signExtend15 interprets the low 15 bits of v as two's complement.
func signExtend15(v uint32) int64 {
	v &= 0x7fff
	if v&0x4000 != 0 {
		return int64(v) - (1 << 15)
	}
	return int64(v)
}

func encodePolarization(p Polarization, b []byte) {
	tilt := uint32(fpTiltDeg.FromFloat(p.TiltAngleDeg)) & 0x7fff
	ellip := uint32(uint16(fpAngleDeg7.FromFloat(p.EllipticityAngleDeg)))
	word := tilt<<16 | ellip
	if p.SlantReference {
		word |= 1 << 31
	}
	binary.BigEndian.PutUint32(b[0:4], word)
}

func decodePolarization(b []byte) Polarization {
	word := binary.BigEndian.Uint32(b[0:4])
	p := Polarization{SlantReference: word&(1<<31) != 0}
	p.TiltAngleDeg = fpTiltDeg.ToFloat(signExtend15(word >> 16))
	p.EllipticityAngleDeg = fpAngleDeg7.ToFloat(int64(int16(uint16(word))))
	return p
}

// PointingVector is the CIF1 elevation/azimuth pair, Table 9.4.10-1.
type PointingVector struct {
	ElevationDeg float64
	AzimuthDeg   float64
}

func encodePointingVector(p PointingVector, b []byte) {
	el := uint32(uint16(fpAngleDeg7.FromFloat(p.ElevationDeg)))
	az := uint32(uint16(fpAngleDeg7.FromFloat(p.AzimuthDeg)))
	binary.BigEndian.PutUint32(b[0:4], el<<16|az)
}

func decodePointingVector(b []byte) PointingVector {
	word := binary.BigEndian.Uint32(b[0:4])
	return PointingVector{
		ElevationDeg: fpAngleDeg7.ToFloat(int64(int16(uint16(word >> 16)))),
		AzimuthDeg:   fpAngleDeg7.ToFloat(int64(int16(uint16(word)))),
	}
}

// ThresholdPair is the CIF1 paired radix Threshold field: lower and
// upper bound, packed the same way Gain is, Table 9.5.12-1.
type ThresholdPair struct {
	LowerDB float64
	UpperDB float64
}

func encodeGainStages(g GainStages, b []byte) {
	s1 := uint32(uint16(fpGainDB.FromFloat(g.Stage1DB)))
	s2 := uint32(uint16(fpGainDB.FromFloat(g.Stage2DB)))
	binary.BigEndian.PutUint32(b[0:4], s1<<16|s2)
}

func decodeGainStages(b []byte) GainStages {
	word := binary.BigEndian.Uint32(b[0:4])
	return GainStages{
		Stage1DB: fpGainDB.ToFloat(int64(int16(uint16(word >> 16)))),
		Stage2DB: fpGainDB.ToFloat(int64(int16(uint16(word)))),
	}
}

func encodeThresholdPair(t ThresholdPair, b []byte) {
	lo := uint32(uint16(fpGainDB.FromFloat(t.LowerDB)))
	hi := uint32(uint16(fpGainDB.FromFloat(t.UpperDB)))
	binary.BigEndian.PutUint32(b[0:4], hi<<16|lo)
}

func decodeThresholdPair(b []byte) ThresholdPair {
	word := binary.BigEndian.Uint32(b[0:4])
	return ThresholdPair{
		UpperDB: fpGainDB.ToFloat(int64(int16(uint16(word >> 16)))),
		LowerDB: fpGainDB.ToFloat(int64(int16(uint16(word)))),
	}
}

// ContextAssociationLists is the CIF0 variable-length association-list
// field: a count header followed by that many 32-bit source and
// system identifiers, Table 9.13.2-1.
type ContextAssociationLists struct {
	SourceListAssociations []uint32
	SystemListAssociations []uint32
}

func (c ContextAssociationLists) encodedLen() int {
	return 4 + 4*len(c.SourceListAssociations) + 4*len(c.SystemListAssociations)
}

func encodeContextAssociationLists(c ContextAssociationLists, b []byte) int {
	binary.BigEndian.PutUint32(b[0:4], uint32(len(c.SourceListAssociations))<<16|uint32(len(c.SystemListAssociations)))
	pos := 4
	for _, v := range c.SourceListAssociations {
		binary.BigEndian.PutUint32(b[pos:pos+4], v)
		pos += 4
	}
	for _, v := range c.SystemListAssociations {
		binary.BigEndian.PutUint32(b[pos:pos+4], v)
		pos += 4
	}
	return pos
}

func decodeContextAssociationLists(b []byte) (ContextAssociationLists, int, error) {
	if len(b) < 4 {
		return ContextAssociationLists{}, 0, errShortBuffer(4, len(b))
	}
	hdr := binary.BigEndian.Uint32(b[0:4])
	nSource := int(hdr >> 16)
	nSystem := int(hdr & 0xffff)
	need := 4 + 4*nSource + 4*nSystem
	if len(b) < need {
		return ContextAssociationLists{}, 0, errShortBuffer(need, len(b))
	}
	c := ContextAssociationLists{
		SourceListAssociations: make([]uint32, nSource),
		SystemListAssociations: make([]uint32, nSystem),
	}
	pos := 4
	for i := 0; i < nSource; i++ {
		c.SourceListAssociations[i] = binary.BigEndian.Uint32(b[pos : pos+4])
		pos += 4
	}
	for i := 0; i < nSystem; i++ {
		c.SystemListAssociations[i] = binary.BigEndian.Uint32(b[pos : pos+4])
		pos += 4
	}
	return c, pos, nil
}
