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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCIF0EnableBits(t *testing.T) {
	var c CIF0
	assert.False(t, c.CIF7Enable())
	assert.False(t, c.CIF1Enable())

	c.setCIF1Enable(true)
	assert.True(t, c.CIF1Enable())
	assert.False(t, c.CIF7Enable())

	c.setCIF7Enable(true)
	assert.True(t, c.CIF7Enable())
}

func TestCIF0BitRoundTrip(t *testing.T) {
	b, err := decodeCIF0(ScenarioContextBandwidth[8:12])
	require.NoError(t, err)
	assert.True(t, b.Bit(29))
	assert.False(t, b.Bit(27))

	out := make([]byte, CIFWordSize)
	encodeCIF0(b, out)
	assert.Equal(t, ScenarioContextBandwidth[8:12], out)
}

func TestCIF1BitRoundTrip(t *testing.T) {
	c, err := decodeCIF1(ScenarioContextWithCIF1[12:16])
	require.NoError(t, err)
	assert.True(t, c.Bit(9))
	assert.False(t, c.Bit(0))
}

func TestCIF7AttributeBits(t *testing.T) {
	var c CIF7
	c |= 1 << 27
	c |= 3 // num_extra_attrs = 3
	assert.Equal(t, uint8(3), c.NumExtraAttrs())
	assert.True(t, c.AttributeBit(27))
	assert.False(t, c.AttributeBit(28))
}

func TestGainStagesPacking(t *testing.T) {
	g := GainStages{Stage1DB: 10.0, Stage2DB: -5.0}
	b := make([]byte, 4)
	encodeGainStages(g, b)
	got := decodeGainStages(b)
	assert.InDelta(t, g.Stage1DB, got.Stage1DB, 1.0/128)
	assert.InDelta(t, g.Stage2DB, got.Stage2DB, 1.0/128)
}

func TestGeolocationRoundTrip(t *testing.T) {
	g := Geolocation{
		TSI:                  TSIUTC,
		TSF:                  TSFRealTimePicoseconds,
		ManufacturerOUIValid: true,
		ManufacturerOUI:      0x001122,
		IntegerTimestamp:     1700000000,
		FractionalTimestamp:  123456789,
		LatitudeDeg:          37.7749,
		LongitudeDeg:         -122.4194,
		AltitudeM:            15.5,
		SpeedOverGroundMS:    3.2,
		HeadingAngleDeg:      90.0,
		TrackAngleDeg:        91.5,
		MagneticVariationDeg: 2.5,
	}
	b := make([]byte, geolocationSize)
	encodeGeolocation(g, b)
	got := decodeGeolocation(b)
	assert.Equal(t, g.TSI, got.TSI)
	assert.Equal(t, g.TSF, got.TSF)
	assert.Equal(t, g.ManufacturerOUIValid, got.ManufacturerOUIValid)
	assert.Equal(t, g.ManufacturerOUI, got.ManufacturerOUI)
	assert.InDelta(t, g.LatitudeDeg, got.LatitudeDeg, 1e-4)
	assert.InDelta(t, g.LongitudeDeg, got.LongitudeDeg, 1e-4)
}

func TestEphemerisRoundTrip(t *testing.T) {
	e := Ephemeris{
		TSI: TSIGPS, TSF: TSFSampleCount,
		PositionXM: 1000.0, PositionYM: -2000.0, PositionZM: 3000.5,
		VelocityXMS: 7.5, VelocityYMS: -1.25, VelocityZMS: 0.0,
		AttitudeAlphaDeg: 10.0, AttitudeBetaDeg: -10.0, AttitudePhiDeg: 0.0,
	}
	b := make([]byte, ephemerisSize)
	encodeEphemeris(e, b)
	got := decodeEphemeris(b)
	assert.InDelta(t, e.PositionXM, got.PositionXM, 0.1)
	assert.InDelta(t, e.VelocityXMS, got.VelocityXMS, 1e-3)
	assert.InDelta(t, e.AttitudeAlphaDeg, got.AttitudeAlphaDeg, 1e-3)
}

func TestPolarizationRoundTrip(t *testing.T) {
	for _, slant := range []bool{false, true} {
		p := Polarization{SlantReference: slant, TiltAngleDeg: 12.5, EllipticityAngleDeg: -3.25}
		b := make([]byte, 4)
		encodePolarization(p, b)
		got := decodePolarization(b)
		assert.Equal(t, slant, got.SlantReference)
		assert.InDelta(t, p.TiltAngleDeg, got.TiltAngleDeg, 1.0/8192)
	}
}

func TestContextAssociationListsVariableLength(t *testing.T) {
	c := ContextAssociationLists{
		SourceListAssociations: []uint32{1, 2, 3},
		SystemListAssociations: []uint32{4},
	}
	b := make([]byte, c.encodedLen())
	n := encodeContextAssociationLists(c, b)
	assert.Equal(t, len(b), n)

	got, consumed, err := decodeContextAssociationLists(b)
	require.NoError(t, err)
	assert.Equal(t, len(b), consumed)
	assert.Equal(t, c, got)
}

func TestContextAssociationListsShortBuffer(t *testing.T) {
	_, _, err := decodeContextAssociationLists([]byte{0x00, 0x00})
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindShortBuffer, verr.Kind)
}
