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

func TestDecodeHeaderMinimalSignalData(t *testing.T) {
	h, err := decodeHeader(ScenarioMinimalSignalData[:4])
	require.NoError(t, err)
	assert.Equal(t, PacketTypeSignalDataWithStream, h.PacketType)
	assert.Equal(t, uint16(4), h.PacketSize)
	assert.True(t, h.PacketType.HasStreamID())
}

func TestDecodeHeaderRejectsReservedPacketType(t *testing.T) {
	b := []byte{0x70, 0x00, 0x00, 0x01} // type=0x7, reserved
	_, err := decodeHeader(b)
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindInvalidPacketType, verr.Kind)
}

func TestDecodeHeaderRejectsTrailerOnContext(t *testing.T) {
	b := []byte{0x44, 0x00, 0x00, 0x01} // type=Context, bit26 (trailer) set
	_, err := decodeHeader(b)
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindInvalidHeader, verr.Kind)
}

func TestEncodeHeaderRoundTrip(t *testing.T) {
	h := Header{
		PacketType:      PacketTypeCommand,
		ClassIDPresent:  true,
		TSI:             TSIUTC,
		TSF:             TSFRealTimePicoseconds,
		TrailerIncluded: false,
		PacketCount:     7,
		PacketSize:      12,
	}
	b := make([]byte, HeaderSize)
	encodeHeader(h, b)
	got, err := decodeHeader(b)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestEncodeHeaderForcesTrailerOffForNonSignalData(t *testing.T) {
	h := Header{PacketType: PacketTypeContext, TrailerIncluded: true, PacketSize: 1}
	b := make([]byte, HeaderSize)
	encodeHeader(h, b)
	got, err := decodeHeader(b)
	require.NoError(t, err)
	assert.False(t, got.TrailerIncluded)
}

func TestHeaderNextPacketCountWraps(t *testing.T) {
	h := Header{PacketCount: 15}
	assert.Equal(t, uint8(0), h.NextPacketCount())
}

func TestPacketTypeClassification(t *testing.T) {
	assert.True(t, PacketTypeContext.IsContext())
	assert.True(t, PacketTypeExtensionContext.IsContext())
	assert.True(t, PacketTypeCommand.IsCommand())
	assert.True(t, PacketTypeSignalData.IsSignalData())
	assert.False(t, PacketTypeContext.IsSignalData())
}
