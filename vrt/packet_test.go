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

// TestScenarioMinimalSignalData parses the minimal signal-data
// fixture and round-trips it.
func TestScenarioMinimalSignalData(t *testing.T) {
	p, err := Parse(ScenarioMinimalSignalData)
	require.NoError(t, err)
	assert.Equal(t, PacketTypeSignalDataWithStream, p.Header.PacketType)
	assert.Equal(t, uint16(4), p.Header.PacketSize)
	require.NotNil(t, p.StreamID)
	assert.Equal(t, uint32(1), *p.StreamID)

	sd, err := p.Payload.AsSignalData()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE, 0xBA, 0xBE}, sd.Samples)

	p.RecomputeSize()
	assert.False(t, p.IsStale())
	out, err := p.Serialize()
	require.NoError(t, err)
	assert.Equal(t, ScenarioMinimalSignalData, out)
}

// TestScenarioContextBandwidth checks the bandwidth field decodes to
// 100 MHz in engineering units.
func TestScenarioContextBandwidth(t *testing.T) {
	p, err := Parse(ScenarioContextBandwidth)
	require.NoError(t, err)
	ctx, err := p.Payload.AsContext()
	require.NoError(t, err)
	hz, ok := ctx.BandwidthHz()
	require.True(t, ok)
	assert.InDelta(t, 1.0e8, hz, 1.0/(1<<20))

	out, err := p.Serialize()
	require.NoError(t, err)
	assert.Equal(t, ScenarioContextBandwidth, out)
}

// TestScenarioContextWithCIF1 checks a CIF1-selected field survives a
// round trip along with both indicator words.
func TestScenarioContextWithCIF1(t *testing.T) {
	p, err := Parse(ScenarioContextWithCIF1)
	require.NoError(t, err)
	ctx, err := p.Payload.AsContext()
	require.NoError(t, err)
	bs, ok := ctx.BufferSize()
	require.True(t, ok)
	assert.Equal(t, uint32(4096), bs)

	out, err := p.Serialize()
	require.NoError(t, err)
	assert.Equal(t, ScenarioContextWithCIF1, out)
}

// TestScenarioCommandControl parses a Control command, mutates its
// frequency, recomputes and serializes.
func TestScenarioCommandControl(t *testing.T) {
	p, err := Parse(ScenarioCommandControl)
	require.NoError(t, err)
	cmd, err := p.Payload.AsCommand()
	require.NoError(t, err)
	assert.Equal(t, AckControl, cmd.Control.AckClass)
	assert.Equal(t, uint32(42), cmd.MessageID)

	hz, ok := cmd.FrequencyHz()
	require.True(t, ok)
	assert.InDelta(t, 2.44e9, hz, 1.0/(1<<20))

	require.NoError(t, cmd.SetFrequencyHz(5.8e9))
	p.SetPayload(Payload{Kind: PayloadKindCommand, Command: *cmd})
	p.RecomputeSize()
	out, err := p.Serialize()
	require.NoError(t, err)

	roundTripped, err := Parse(out)
	require.NoError(t, err)
	cmd2, err := roundTripped.Payload.AsCommand()
	require.NoError(t, err)
	hz2, ok := cmd2.FrequencyHz()
	require.True(t, ok)
	assert.InDelta(t, 5.8e9, hz2, 1.0/(1<<20))
}

// TestScenarioValidationAckError reads the error half of a
// ValidationAck status word.
func TestScenarioValidationAckError(t *testing.T) {
	p, err := Parse(ScenarioValidationAckError)
	require.NoError(t, err)
	cmd, err := p.Payload.AsCommand()
	require.NoError(t, err)
	assert.Equal(t, AckValidationAck, cmd.Control.AckClass)

	sw, ok := cmd.AckStatusFor("rf_reference_frequency")
	require.True(t, ok)
	errBit, present := sw.Bit(0)
	require.True(t, present)
	assert.True(t, errBit)

	out, err := p.Serialize()
	require.NoError(t, err)
	assert.Equal(t, ScenarioValidationAckError, out)
}

// TestScenarioLengthMismatch checks a header that over-declares the
// packet size is rejected with both byte counts reported.
func TestScenarioLengthMismatch(t *testing.T) {
	_, err := Parse(ScenarioLengthMismatch)
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindLengthMismatch, verr.Kind)
	assert.Equal(t, 32, verr.HeaderSays)
	assert.Equal(t, 16, verr.Actual)
}

// TestContextTrailingResidueRejected proves a Context body that
// declares no CIF0 bits set but is followed by extra bytes the header
// counted as part of the packet is rejected rather than silently
// dropped: header 0x40000005 (Context, size=5 words/20 bytes), a
// stream id, an all-zero CIF0, and 8 bytes of trailing junk.
func TestContextTrailingResidueRejected(t *testing.T) {
	b := []byte{
		0x40, 0x00, 0x00, 0x05, // header: Context, size=5 words
		0x00, 0x00, 0x00, 0x02, // stream id
		0x00, 0x00, 0x00, 0x00, // CIF0, no bits set
		0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef, // 8 bytes of residue
	}
	_, err := Parse(b)
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindLengthMismatch, verr.Kind)
}

// TestRoundtripIdentity: for every fixture, parse then serialize
// reproduces the input byte-for-byte, and RecomputeSize on a
// freshly-parsed packet is a no-op.
func TestRoundtripIdentity(t *testing.T) {
	fixtures := [][]byte{
		ScenarioMinimalSignalData,
		ScenarioContextBandwidth,
		ScenarioContextWithCIF1,
		ScenarioCommandControl,
		ScenarioValidationAckError,
	}
	for _, b := range fixtures {
		p, err := Parse(b)
		require.NoError(t, err)
		assert.False(t, p.IsStale(), "freshly-parsed packet must not be stale")

		before := p.Header.PacketSize
		p.RecomputeSize()
		assert.Equal(t, before, p.Header.PacketSize, "RecomputeSize must be a no-op after Parse")

		out, err := p.Serialize()
		require.NoError(t, err)
		assert.Equal(t, b, out)
	}
}

// TestSizeCoherence: after RecomputeSize, the header's word count
// matches the serialized length.
func TestSizeCoherence(t *testing.T) {
	p := NewPacket(PacketTypeContext)
	id := uint32(7)
	p.SetStreamID(&id)
	ctx, _ := p.Payload.AsContext()
	require.NoError(t, ctx.SetBandwidthHz(2.5e7))
	p.SetPayload(Payload{Kind: PayloadKindContext, Context: *ctx})

	p.RecomputeSize()
	out, err := p.Serialize()
	require.NoError(t, err)
	assert.Equal(t, int(p.Header.PacketSize)*4, len(out))
}

// TestSerializeWithoutRecomputeFails proves SizeStale behavior.
func TestSerializeWithoutRecomputeFails(t *testing.T) {
	p := NewPacket(PacketTypeSignalData)
	_, err := p.Serialize()
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindSizeStale, verr.Kind)
}

// TestAccessorSafety: the wrong As* accessor for the active variant
// returns WrongPayloadKind.
func TestAccessorSafety(t *testing.T) {
	p := NewPacket(PacketTypeContext)
	_, err := p.Payload.AsCommand()
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindWrongPayloadKind, verr.Kind)

	_, err = p.Payload.AsSignalData()
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindWrongPayloadKind, verr.Kind)
}

// TestCIFSymmetry: a scalar field setter toggles the matching CIF
// indicator bit, and clearing the field clears the bit.
func TestCIFSymmetry(t *testing.T) {
	ctx := Context{}
	require.NoError(t, ctx.SetBandwidthHz(1e6))
	assert.True(t, cif0FromFields(&ctx.Fields).Bit(29))

	ctx.ClearBandwidthHz()
	assert.False(t, cif0FromFields(&ctx.Fields).Bit(29))
}

// TestFixedPointIdempotence: set-then-get through the wire encoding
// stays within one fixed-point step for a representative scalar field.
func TestFixedPointIdempotence(t *testing.T) {
	ctx := Context{}
	require.NoError(t, ctx.SetReferenceLevelDBm(-12.5))
	b := make([]byte, 4)
	op, ok := findOp(cif0Ops, 24)
	require.True(t, ok)
	op.encode(&ctx.Fields, b)

	ctx2 := Context{}
	_, err := op.decode(&ctx2.Fields, b)
	require.NoError(t, err)
	got, ok := ctx2.ReferenceLevelDBm()
	require.True(t, ok)
	assert.InDelta(t, -12.5, got, 1.0/128)
}

// TestFixedPointOverflowRejected: a setter value that cannot fit the
// field's fixed-point range is rejected rather than silently
// saturated, and the field is left unset.
func TestFixedPointOverflowRejected(t *testing.T) {
	ctx := Context{}
	err := ctx.SetReferenceLevelDBm(1.0e6) // far outside 16-bit radix-7 dBm range
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindFixedPointOverflow, verr.Kind)
	_, ok := ctx.ReferenceLevelDBm()
	assert.False(t, ok)

	err = ctx.SetGain(1.0e6, 0)
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindFixedPointOverflow, verr.Kind)

	err = ctx.SetThreshold(0, 1.0e6)
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindFixedPointOverflow, verr.Kind)
}

// TestParseNoPanicOnTruncatedInput: every truncation of a valid packet
// yields an error, never a panic.
func TestParseNoPanicOnTruncatedInput(t *testing.T) {
	for _, full := range [][]byte{
		ScenarioMinimalSignalData,
		ScenarioContextBandwidth,
		ScenarioContextWithCIF1,
		ScenarioCommandControl,
		ScenarioValidationAckError,
	} {
		for n := 0; n < len(full); n++ {
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("Parse panicked on %d-byte truncation: %v", n, r)
					}
				}()
				_, _ = Parse(full[:n])
			}()
		}
	}
}

func TestReservedPacketTypeRejected(t *testing.T) {
	b := []byte{0x70, 0x00, 0x00, 0x01} // type 0x7 is reserved
	_, err := Parse(b)
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindInvalidPacketType, verr.Kind)
}

func TestTrailerIncludedRejectedOnContext(t *testing.T) {
	b := []byte{0x44, 0x00, 0x00, 0x01} // Context with trailer_included bit set
	_, err := Parse(b)
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindInvalidHeader, verr.Kind)
}

// TestContextEmptyCIF1RoundTrips: a Context whose CIF0 enables CIF1
// while the CIF1 word itself has no field bits set must serialize back
// to its input rather than dropping the empty indicator word.
func TestContextEmptyCIF1RoundTrips(t *testing.T) {
	b := []byte{
		0x40, 0x00, 0x00, 0x04, // header: Context, size=4 words
		0x00, 0x00, 0x00, 0x09, // stream id
		0x00, 0x00, 0x00, 0x02, // CIF0: cif1_enable only
		0x00, 0x00, 0x00, 0x00, // CIF1: no field bits
	}
	p, err := Parse(b)
	require.NoError(t, err)

	before := p.Header.PacketSize
	p.RecomputeSize()
	assert.Equal(t, before, p.Header.PacketSize)

	out, err := p.Serialize()
	require.NoError(t, err)
	assert.Equal(t, b, out)
}

// TestAckEmptyCIF1EchoRoundTrips: the same holds for the echoed
// indicator words in a ValidationAck body.
func TestAckEmptyCIF1EchoRoundTrips(t *testing.T) {
	b := []byte{
		0x60, 0x00, 0x00, 0x06, // header: Command, size=6 words
		0x00, 0x00, 0x00, 0x05, // stream id
		0x02, 0x00, 0x00, 0x00, // control word: AckClass=ValidationAck
		0x00, 0x00, 0x00, 0x07, // message id
		0x00, 0x00, 0x00, 0x02, // CIF0 echo: cif1_enable only
		0x00, 0x00, 0x00, 0x00, // CIF1 echo: no field bits
	}
	p, err := Parse(b)
	require.NoError(t, err)

	before := p.Header.PacketSize
	p.RecomputeSize()
	assert.Equal(t, before, p.Header.PacketSize)

	out, err := p.Serialize()
	require.NoError(t, err)
	assert.Equal(t, b, out)
}

// TestControlWordUnmodeledBitsRoundTrip: reserved/user-defined control
// word bits survive a parse/serialize cycle verbatim.
func TestControlWordUnmodeledBitsRoundTrip(t *testing.T) {
	b := append([]byte(nil), ScenarioCommandControl...)
	b[11] |= 0x01 // set a reserved low bit in the control word
	p, err := Parse(b)
	require.NoError(t, err)
	out, err := p.Serialize()
	require.NoError(t, err)
	assert.Equal(t, b, out)
}
