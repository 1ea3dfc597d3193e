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

// ContextFields is the flat record of every CIF0/CIF1 data field this
// codec recognizes: one optional slot per field, nil meaning absent.
// Presence of a slot and presence of its CIF indicator bit are always
// in lockstep, because the indicator words are computed from slot
// presence rather than stored independently; see cif0Ops/cif1Ops below
// and Context.cif0Word/encodeContext in context.go.
type ContextFields struct {
	// CIF0 fields, ascending bit order.
	ContextAssociationLists      *ContextAssociationLists
	GPSASCII                     *string
	EphemerisRefID               *uint32
	RelativeEphemeris            *Ephemeris
	ECEFEphemeris                *Ephemeris
	FormattedINS                 *Geolocation
	FormattedGPS                 *Geolocation
	DataPayloadFormat            *DataPayloadFormat
	StateEventIndicators         *uint32
	DeviceID                     *DeviceIdentifier
	TemperatureC                 *float64
	TimestampCalibrationTime     *uint32
	TimestampAdjustment          *int64
	SampleRateHz                 *float64
	OverRangeCount               *uint32
	Gain                         *GainStages
	ReferenceLevelDBm            *float64
	IFBandOffsetHz               *float64
	RFReferenceFrequencyOffsetHz *float64
	RFReferenceFrequencyHz       *float64
	IFReferenceFrequencyHz       *float64
	BandwidthHz                  *float64
	ReferencePointID             *uint32
	ContextFieldChangeIndicator  *bool

	// CIF1 fields, ascending bit order.
	BufferSize     *uint32
	DiscreteIO32   *uint32
	RangeDistanceM *float64
	Threshold      *ThresholdPair
	PointingVector *PointingVector
	Polarization   *Polarization

	// ExtraAttrs holds the raw CIF7 per-field attribute vectors keyed by
	// field name, when the cif7 build tag is enabled and the CIF7
	// indicator carries attributes for that field. Composite and
	// variable-length fields never populate this map.
	ExtraAttrs map[string][]uint64
}

// fieldOp describes one CIF data-field slot: its bit position, how to
// test/clear its presence, and how to encode/decode its value. attrWidth
// is the per-attribute byte width for the CIF7 extension, 0 if the
// field doesn't support it (composite and variable-length fields).
type fieldOp struct {
	name      string
	bit       uint
	present   func(*ContextFields) bool
	length    func(*ContextFields) int
	encode    func(*ContextFields, []byte) int
	decode    func(*ContextFields, []byte) (int, error)
	attrWidth int
}

func scalarFixedOp(name string, bit uint, width int, fp bitfield.FixedPoint, get func(*ContextFields) *float64, set func(*ContextFields, float64)) fieldOp {
	return fieldOp{
		name:    name,
		bit:     bit,
		present: func(f *ContextFields) bool { return get(f) != nil },
		length:  func(*ContextFields) int { return width },
		encode: func(f *ContextFields, b []byte) int {
			raw := fp.FromFloat(*get(f))
			putSigned(b[:width], raw, width)
			return width
		},
		decode: func(f *ContextFields, b []byte) (int, error) {
			if len(b) < width {
				return 0, errShortBuffer(width, len(b))
			}
			raw := getSigned(b[:width], width)
			v := fp.ToFloat(raw)
			set(f, v)
			return width, nil
		},
		attrWidth: width,
	}
}

func rawU32Op(name string, bit uint, get func(*ContextFields) *uint32, set func(*ContextFields, uint32)) fieldOp {
	return fieldOp{
		name:    name,
		bit:     bit,
		present: func(f *ContextFields) bool { return get(f) != nil },
		length:  func(*ContextFields) int { return 4 },
		encode: func(f *ContextFields, b []byte) int {
			binary.BigEndian.PutUint32(b[:4], *get(f))
			return 4
		},
		decode: func(f *ContextFields, b []byte) (int, error) {
			if len(b) < 4 {
				return 0, errShortBuffer(4, len(b))
			}
			v := binary.BigEndian.Uint32(b[:4])
			set(f, v)
			return 4, nil
		},
		attrWidth: 4,
	}
}

func putSigned(b []byte, v int64, width int) {
	switch width {
	case 4:
		binary.BigEndian.PutUint32(b, uint32(int32(v)))
	case 8:
		binary.BigEndian.PutUint64(b, uint64(v))
	default:
		panic("vrt: unsupported fixed-point width")
	}
}

func getSigned(b []byte, width int) int64 {
	switch width {
	case 4:
		return int64(int32(binary.BigEndian.Uint32(b)))
	case 8:
		return int64(binary.BigEndian.Uint64(b))
	default:
		panic("vrt: unsupported fixed-point width")
	}
}

func encodeDeviceIdentifier(d DeviceIdentifier, b []byte) {
	binary.BigEndian.PutUint32(b[0:4], d.OUI&0xffffff)
	binary.BigEndian.PutUint32(b[4:8], uint32(d.DeviceCode))
}

func decodeDeviceIdentifier(b []byte) DeviceIdentifier {
	return DeviceIdentifier{
		OUI:        binary.BigEndian.Uint32(b[0:4]) & 0xffffff,
		DeviceCode: uint16(binary.BigEndian.Uint32(b[4:8])),
	}
}

func encodeDataPayloadFormat(d DataPayloadFormat, b []byte) {
	binary.BigEndian.PutUint32(b[0:4], d.Word1)
	binary.BigEndian.PutUint32(b[4:8], d.Word2)
}

func decodeDataPayloadFormat(b []byte) DataPayloadFormat {
	return DataPayloadFormat{
		Word1: binary.BigEndian.Uint32(b[0:4]),
		Word2: binary.BigEndian.Uint32(b[4:8]),
	}
}

// gpsASCIIEncodedLen rounds the character count up to the next 4-byte
// boundary and adds the leading count word.
func gpsASCIIEncodedLen(s string) int {
	n := len(s)
	pad := (4 - n%4) % 4
	return 4 + n + pad
}

func encodeGPSASCII(s string, b []byte) int {
	binary.BigEndian.PutUint32(b[0:4], uint32(len(s)))
	n := copy(b[4:4+len(s)], s)
	pos := 4 + n
	pad := (4 - n%4) % 4
	for i := 0; i < pad; i++ {
		b[pos+i] = 0
	}
	return pos + pad
}

func decodeGPSASCII(b []byte) (string, int, error) {
	if len(b) < 4 {
		return "", 0, errShortBuffer(4, len(b))
	}
	n := int(binary.BigEndian.Uint32(b[0:4]))
	pad := (4 - n%4) % 4
	need := 4 + n + pad
	if len(b) < need {
		return "", 0, errShortBuffer(need, len(b))
	}
	return string(b[4 : 4+n]), need, nil
}

// compositeOp builds a fieldOp for a fixed-size composite field whose
// encode/decode functions don't need attribute-vector support.
func compositeOp(name string, bit uint, size int, present func(*ContextFields) bool, encode func(*ContextFields, []byte), decode func(*ContextFields, []byte)) fieldOp {
	return fieldOp{
		name:    name,
		bit:     bit,
		present: present,
		length:  func(*ContextFields) int { return size },
		encode: func(f *ContextFields, b []byte) int {
			encode(f, b)
			return size
		},
		decode: func(f *ContextFields, b []byte) (int, error) {
			if len(b) < size {
				return 0, errShortBuffer(size, len(b))
			}
			decode(f, b)
			return size, nil
		},
	}
}

// cif0Ops is the CIF0 field schema, ascending bit order starting at bit
// 8 (bits 0/1 are the CIF7/CIF1 enables handled directly by CIF0, and
// bits 2-7 are reserved; any reserved bit set at decode time raises
// UnsupportedCIFField). Order matters: fields appear on the wire in
// the same ascending-bit order as their indicator bits.
var cif0Ops = []fieldOp{
	compositeOp("context_association_lists", 8,
		0, // variable length, length/encode/decode overridden in init below
		func(f *ContextFields) bool { return f.ContextAssociationLists != nil },
		nil, nil),
	{
		name:    "gps_ascii",
		bit:     9,
		present: func(f *ContextFields) bool { return f.GPSASCII != nil },
		length:  func(f *ContextFields) int { return gpsASCIIEncodedLen(*f.GPSASCII) },
		encode: func(f *ContextFields, b []byte) int {
			return encodeGPSASCII(*f.GPSASCII, b)
		},
		decode: func(f *ContextFields, b []byte) (int, error) {
			s, n, err := decodeGPSASCII(b)
			if err != nil {
				return 0, err
			}
			f.GPSASCII = &s
			return n, nil
		},
	},
	rawU32Op("ephemeris_ref_id", 10,
		func(f *ContextFields) *uint32 { return f.EphemerisRefID },
		func(f *ContextFields, v uint32) { f.EphemerisRefID = &v }),
	compositeOp("relative_ephemeris", 11, ephemerisSize,
		func(f *ContextFields) bool { return f.RelativeEphemeris != nil },
		func(f *ContextFields, b []byte) { encodeEphemeris(*f.RelativeEphemeris, b) },
		func(f *ContextFields, b []byte) { e := decodeEphemeris(b); f.RelativeEphemeris = &e }),
	compositeOp("ecef_ephemeris", 12, ephemerisSize,
		func(f *ContextFields) bool { return f.ECEFEphemeris != nil },
		func(f *ContextFields, b []byte) { encodeEphemeris(*f.ECEFEphemeris, b) },
		func(f *ContextFields, b []byte) { e := decodeEphemeris(b); f.ECEFEphemeris = &e }),
	compositeOp("formatted_ins", 13, geolocationSize,
		func(f *ContextFields) bool { return f.FormattedINS != nil },
		func(f *ContextFields, b []byte) { encodeGeolocation(*f.FormattedINS, b) },
		func(f *ContextFields, b []byte) { g := decodeGeolocation(b); f.FormattedINS = &g }),
	compositeOp("formatted_gps", 14, geolocationSize,
		func(f *ContextFields) bool { return f.FormattedGPS != nil },
		func(f *ContextFields, b []byte) { encodeGeolocation(*f.FormattedGPS, b) },
		func(f *ContextFields, b []byte) { g := decodeGeolocation(b); f.FormattedGPS = &g }),
	compositeOp("data_payload_format", 15, 8,
		func(f *ContextFields) bool { return f.DataPayloadFormat != nil },
		func(f *ContextFields, b []byte) { encodeDataPayloadFormat(*f.DataPayloadFormat, b) },
		func(f *ContextFields, b []byte) { d := decodeDataPayloadFormat(b); f.DataPayloadFormat = &d }),
	rawU32Op("state_event_indicators", 16,
		func(f *ContextFields) *uint32 { return f.StateEventIndicators },
		func(f *ContextFields, v uint32) { f.StateEventIndicators = &v }),
	compositeOp("device_identifier", 17, 8,
		func(f *ContextFields) bool { return f.DeviceID != nil },
		func(f *ContextFields, b []byte) { encodeDeviceIdentifier(*f.DeviceID, b) },
		func(f *ContextFields, b []byte) { d := decodeDeviceIdentifier(b); f.DeviceID = &d }),
	scalarFixedOp("temperature", 18, 4, fpTempC,
		func(f *ContextFields) *float64 { return f.TemperatureC },
		func(f *ContextFields, v float64) { f.TemperatureC = &v }),
	rawU32Op("timestamp_calibration_time", 19,
		func(f *ContextFields) *uint32 { return f.TimestampCalibrationTime },
		func(f *ContextFields, v uint32) { f.TimestampCalibrationTime = &v }),
	{
		name:    "timestamp_adjustment",
		bit:     20,
		present: func(f *ContextFields) bool { return f.TimestampAdjustment != nil },
		length:  func(*ContextFields) int { return 8 },
		encode: func(f *ContextFields, b []byte) int {
			binary.BigEndian.PutUint64(b[0:8], uint64(*f.TimestampAdjustment))
			return 8
		},
		decode: func(f *ContextFields, b []byte) (int, error) {
			if len(b) < 8 {
				return 0, errShortBuffer(8, len(b))
			}
			v := int64(binary.BigEndian.Uint64(b[0:8]))
			f.TimestampAdjustment = &v
			return 8, nil
		},
		attrWidth: 8,
	},
	scalarFixedOp("sample_rate", 21, 8, fpFrequencyHz,
		func(f *ContextFields) *float64 { return f.SampleRateHz },
		func(f *ContextFields, v float64) { f.SampleRateHz = &v }),
	rawU32Op("over_range_count", 22,
		func(f *ContextFields) *uint32 { return f.OverRangeCount },
		func(f *ContextFields, v uint32) { f.OverRangeCount = &v }),
	compositeOp("gain", 23, 4,
		func(f *ContextFields) bool { return f.Gain != nil },
		func(f *ContextFields, b []byte) { encodeGainStages(*f.Gain, b) },
		func(f *ContextFields, b []byte) { g := decodeGainStages(b); f.Gain = &g }),
	scalarFixedOp("reference_level", 24, 4, fpGainDB,
		func(f *ContextFields) *float64 { return f.ReferenceLevelDBm },
		func(f *ContextFields, v float64) { f.ReferenceLevelDBm = &v }),
	scalarFixedOp("if_band_offset", 25, 8, fpFrequencyHz,
		func(f *ContextFields) *float64 { return f.IFBandOffsetHz },
		func(f *ContextFields, v float64) { f.IFBandOffsetHz = &v }),
	scalarFixedOp("rf_reference_frequency_offset", 26, 8, fpFrequencyHz,
		func(f *ContextFields) *float64 { return f.RFReferenceFrequencyOffsetHz },
		func(f *ContextFields, v float64) { f.RFReferenceFrequencyOffsetHz = &v }),
	scalarFixedOp("rf_reference_frequency", 27, 8, fpFrequencyHz,
		func(f *ContextFields) *float64 { return f.RFReferenceFrequencyHz },
		func(f *ContextFields, v float64) { f.RFReferenceFrequencyHz = &v }),
	scalarFixedOp("if_reference_frequency", 28, 8, fpFrequencyHz,
		func(f *ContextFields) *float64 { return f.IFReferenceFrequencyHz },
		func(f *ContextFields, v float64) { f.IFReferenceFrequencyHz = &v }),
	scalarFixedOp("bandwidth", 29, 8, fpFrequencyHz,
		func(f *ContextFields) *float64 { return f.BandwidthHz },
		func(f *ContextFields, v float64) { f.BandwidthHz = &v }),
	rawU32Op("reference_point_id", 30,
		func(f *ContextFields) *uint32 { return f.ReferencePointID },
		func(f *ContextFields, v uint32) { f.ReferencePointID = &v }),
	{
		name:      "context_field_change_indicator",
		bit:       31,
		present:   func(f *ContextFields) bool { return f.ContextFieldChangeIndicator != nil && *f.ContextFieldChangeIndicator },
		length:    func(*ContextFields) int { return 0 },
		encode:    func(f *ContextFields, b []byte) int { return 0 },
		decode: func(f *ContextFields, b []byte) (int, error) {
			v := true
			f.ContextFieldChangeIndicator = &v
			return 0, nil
		},
	},
}

func init() {
	// context_association_lists is variable-length: its length()/encode()
	// need f, unlike the other compositeOp-built rows above.
	cif0Ops[0].length = func(f *ContextFields) int { return f.ContextAssociationLists.encodedLen() }
	cif0Ops[0].encode = func(f *ContextFields, b []byte) int {
		return encodeContextAssociationLists(*f.ContextAssociationLists, b)
	}
	cif0Ops[0].decode = func(f *ContextFields, b []byte) (int, error) {
		c, n, err := decodeContextAssociationLists(b)
		if err != nil {
			return 0, err
		}
		f.ContextAssociationLists = &c
		return n, nil
	}
}

// cif1Ops is the CIF1 field schema, ascending bit order. Bits with no
// entry here (including every bit below 9) are reserved in this build;
// a set reserved bit raises UnsupportedCIFField at decode time.
var cif1Ops = []fieldOp{
	rawU32Op("buffer_size", 9,
		func(f *ContextFields) *uint32 { return f.BufferSize },
		func(f *ContextFields, v uint32) { f.BufferSize = &v }),
	rawU32Op("discrete_io_32", 16,
		func(f *ContextFields) *uint32 { return f.DiscreteIO32 },
		func(f *ContextFields, v uint32) { f.DiscreteIO32 = &v }),
	scalarFixedOp("range_distance", 24, 4, fpDistanceM,
		func(f *ContextFields) *float64 { return f.RangeDistanceM },
		func(f *ContextFields, v float64) { f.RangeDistanceM = &v }),
	compositeOp("threshold", 26, 4,
		func(f *ContextFields) bool { return f.Threshold != nil },
		func(f *ContextFields, b []byte) { encodeThresholdPair(*f.Threshold, b) },
		func(f *ContextFields, b []byte) { t := decodeThresholdPair(b); f.Threshold = &t }),
	compositeOp("pointing_vector", 29, 4,
		func(f *ContextFields) bool { return f.PointingVector != nil },
		func(f *ContextFields, b []byte) { encodePointingVector(*f.PointingVector, b) },
		func(f *ContextFields, b []byte) { p := decodePointingVector(b); f.PointingVector = &p }),
	compositeOp("polarization", 30, 4,
		func(f *ContextFields) bool { return f.Polarization != nil },
		func(f *ContextFields, b []byte) { encodePolarization(*f.Polarization, b) },
		func(f *ContextFields, b []byte) { p := decodePolarization(b); f.Polarization = &p }),
}
