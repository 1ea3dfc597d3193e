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

// Semantic-unit accessors: per-field getters/setters in Hz, dBm,
// meters, or unitless float for the CIF0/CIF1 fields, on top of the
// bare *float64/*struct slots in ContextFields. Callers that want the
// raw slot can still reach ctx.Fields directly; these wrappers exist
// for the common case of working in engineering units.

// BandwidthHz returns the CIF0 bandwidth field in Hz and whether it is present.
func (ctx *Context) BandwidthHz() (float64, bool) {
	if ctx.Fields.BandwidthHz == nil {
		return 0, false
	}
	return *ctx.Fields.BandwidthHz, true
}

// SetBandwidthHz sets the bandwidth field in Hz. It returns
// FixedPointOverflow instead of setting the field if hz cannot be
// represented in the field's 64-bit radix-20 fixed point.
func (ctx *Context) SetBandwidthHz(hz float64) error {
	if !fpFrequencyHz.Fits(hz) {
		return errFixedPointOverflow(hz, fpFrequencyHz.Radix, fpFrequencyHz.Width)
	}
	ctx.Fields.BandwidthHz = &hz
	return nil
}

// ClearBandwidthHz removes the bandwidth field.
func (ctx *Context) ClearBandwidthHz() { ctx.Fields.BandwidthHz = nil }

// ReferenceLevelDBm returns the CIF0 reference_level field in dBm.
func (ctx *Context) ReferenceLevelDBm() (float64, bool) {
	if ctx.Fields.ReferenceLevelDBm == nil {
		return 0, false
	}
	return *ctx.Fields.ReferenceLevelDBm, true
}

// SetReferenceLevelDBm sets the reference_level field in dBm. It
// returns FixedPointOverflow instead of setting the field if dBm
// cannot be represented in the field's 16-bit radix-7 fixed point.
func (ctx *Context) SetReferenceLevelDBm(dBm float64) error {
	if !fpGainDB.Fits(dBm) {
		return errFixedPointOverflow(dBm, fpGainDB.Radix, fpGainDB.Width)
	}
	ctx.Fields.ReferenceLevelDBm = &dBm
	return nil
}

// ClearReferenceLevelDBm removes the reference_level field.
func (ctx *Context) ClearReferenceLevelDBm() { ctx.Fields.ReferenceLevelDBm = nil }

// RFReferenceFrequencyHz returns the CIF0 rf_reference_frequency field in Hz.
func (ctx *Context) RFReferenceFrequencyHz() (float64, bool) {
	if ctx.Fields.RFReferenceFrequencyHz == nil {
		return 0, false
	}
	return *ctx.Fields.RFReferenceFrequencyHz, true
}

// SetRFReferenceFrequencyHz sets the rf_reference_frequency field in
// Hz. It returns FixedPointOverflow instead of setting the field if hz
// cannot be represented in the field's 64-bit radix-20 fixed point.
func (ctx *Context) SetRFReferenceFrequencyHz(hz float64) error {
	if !fpFrequencyHz.Fits(hz) {
		return errFixedPointOverflow(hz, fpFrequencyHz.Radix, fpFrequencyHz.Width)
	}
	ctx.Fields.RFReferenceFrequencyHz = &hz
	return nil
}

// RFReferenceFrequencyOffsetHz returns the CIF0 rf_reference_frequency_offset field in Hz.
func (ctx *Context) RFReferenceFrequencyOffsetHz() (float64, bool) {
	if ctx.Fields.RFReferenceFrequencyOffsetHz == nil {
		return 0, false
	}
	return *ctx.Fields.RFReferenceFrequencyOffsetHz, true
}

// SetRFReferenceFrequencyOffsetHz sets the rf_reference_frequency_offset
// field in Hz. It returns FixedPointOverflow instead of setting the
// field if hz cannot be represented in the field's 64-bit radix-20
// fixed point.
func (ctx *Context) SetRFReferenceFrequencyOffsetHz(hz float64) error {
	if !fpFrequencyHz.Fits(hz) {
		return errFixedPointOverflow(hz, fpFrequencyHz.Radix, fpFrequencyHz.Width)
	}
	ctx.Fields.RFReferenceFrequencyOffsetHz = &hz
	return nil
}

// IFReferenceFrequencyHz returns the CIF0 if_reference_frequency field in Hz.
func (ctx *Context) IFReferenceFrequencyHz() (float64, bool) {
	if ctx.Fields.IFReferenceFrequencyHz == nil {
		return 0, false
	}
	return *ctx.Fields.IFReferenceFrequencyHz, true
}

// SetIFReferenceFrequencyHz sets the if_reference_frequency field in
// Hz. It returns FixedPointOverflow instead of setting the field if hz
// cannot be represented in the field's 64-bit radix-20 fixed point.
func (ctx *Context) SetIFReferenceFrequencyHz(hz float64) error {
	if !fpFrequencyHz.Fits(hz) {
		return errFixedPointOverflow(hz, fpFrequencyHz.Radix, fpFrequencyHz.Width)
	}
	ctx.Fields.IFReferenceFrequencyHz = &hz
	return nil
}

// IFBandOffsetHz returns the CIF0 if_band_offset field in Hz.
func (ctx *Context) IFBandOffsetHz() (float64, bool) {
	if ctx.Fields.IFBandOffsetHz == nil {
		return 0, false
	}
	return *ctx.Fields.IFBandOffsetHz, true
}

// SetIFBandOffsetHz sets the if_band_offset field in Hz. It returns
// FixedPointOverflow instead of setting the field if hz cannot be
// represented in the field's 64-bit radix-20 fixed point.
func (ctx *Context) SetIFBandOffsetHz(hz float64) error {
	if !fpFrequencyHz.Fits(hz) {
		return errFixedPointOverflow(hz, fpFrequencyHz.Radix, fpFrequencyHz.Width)
	}
	ctx.Fields.IFBandOffsetHz = &hz
	return nil
}

// SampleRateHz returns the CIF0 sample_rate field in Hz.
func (ctx *Context) SampleRateHz() (float64, bool) {
	if ctx.Fields.SampleRateHz == nil {
		return 0, false
	}
	return *ctx.Fields.SampleRateHz, true
}

// SetSampleRateHz sets the sample_rate field in Hz. It returns
// FixedPointOverflow instead of setting the field if hz cannot be
// represented in the field's 64-bit radix-20 fixed point.
func (ctx *Context) SetSampleRateHz(hz float64) error {
	if !fpFrequencyHz.Fits(hz) {
		return errFixedPointOverflow(hz, fpFrequencyHz.Radix, fpFrequencyHz.Width)
	}
	ctx.Fields.SampleRateHz = &hz
	return nil
}

// TemperatureC returns the CIF0 temperature field in degrees Celsius.
func (ctx *Context) TemperatureC() (float64, bool) {
	if ctx.Fields.TemperatureC == nil {
		return 0, false
	}
	return *ctx.Fields.TemperatureC, true
}

// SetTemperatureC sets the temperature field in degrees Celsius. It
// returns FixedPointOverflow instead of setting the field if c cannot
// be represented in the field's 16-bit radix-6 fixed point.
func (ctx *Context) SetTemperatureC(c float64) error {
	if !fpTempC.Fits(c) {
		return errFixedPointOverflow(c, fpTempC.Radix, fpTempC.Width)
	}
	ctx.Fields.TemperatureC = &c
	return nil
}

// Gain returns the two fixed-point stages of the CIF0 gain field, in dB.
func (ctx *Context) Gain() (GainStages, bool) {
	if ctx.Fields.Gain == nil {
		return GainStages{}, false
	}
	return *ctx.Fields.Gain, true
}

// SetGain sets the gain field's two stages, in dB. It returns
// FixedPointOverflow instead of setting the field if either stage
// cannot be represented in the field's 16-bit radix-7 fixed point.
func (ctx *Context) SetGain(stage1, stage2DB float64) error {
	if !fpGainDB.Fits(stage1) {
		return errFixedPointOverflow(stage1, fpGainDB.Radix, fpGainDB.Width)
	}
	if !fpGainDB.Fits(stage2DB) {
		return errFixedPointOverflow(stage2DB, fpGainDB.Radix, fpGainDB.Width)
	}
	ctx.Fields.Gain = &GainStages{Stage1DB: stage1, Stage2DB: stage2DB}
	return nil
}

// OverRangeCount returns the CIF0 over_range_count field, a unitless count.
func (ctx *Context) OverRangeCount() (uint32, bool) {
	if ctx.Fields.OverRangeCount == nil {
		return 0, false
	}
	return *ctx.Fields.OverRangeCount, true
}

// SetOverRangeCount sets the over_range_count field.
func (ctx *Context) SetOverRangeCount(n uint32) { ctx.Fields.OverRangeCount = &n }

// StateEventIndicators returns the CIF0 state_event_indicators bitmask.
func (ctx *Context) StateEventIndicators() (uint32, bool) {
	if ctx.Fields.StateEventIndicators == nil {
		return 0, false
	}
	return *ctx.Fields.StateEventIndicators, true
}

// SetStateEventIndicators sets the state_event_indicators bitmask.
func (ctx *Context) SetStateEventIndicators(bits uint32) { ctx.Fields.StateEventIndicators = &bits }

// ReferencePointID returns the CIF0 reference_point_id field.
func (ctx *Context) ReferencePointID() (uint32, bool) {
	if ctx.Fields.ReferencePointID == nil {
		return 0, false
	}
	return *ctx.Fields.ReferencePointID, true
}

// SetReferencePointID sets the reference_point_id field.
func (ctx *Context) SetReferencePointID(id uint32) { ctx.Fields.ReferencePointID = &id }

// RangeDistanceM returns the CIF1 range_distance field, in meters.
func (ctx *Context) RangeDistanceM() (float64, bool) {
	if ctx.Fields.RangeDistanceM == nil {
		return 0, false
	}
	return *ctx.Fields.RangeDistanceM, true
}

// SetRangeDistanceM sets the range_distance field, in meters. It
// returns FixedPointOverflow instead of setting the field if m cannot
// be represented in the field's 32-bit radix-5 fixed point.
func (ctx *Context) SetRangeDistanceM(m float64) error {
	if !fpDistanceM.Fits(m) {
		return errFixedPointOverflow(m, fpDistanceM.Radix, fpDistanceM.Width)
	}
	ctx.Fields.RangeDistanceM = &m
	return nil
}

// BufferSize returns the CIF1 buffer_size field, in bytes.
func (ctx *Context) BufferSize() (uint32, bool) {
	if ctx.Fields.BufferSize == nil {
		return 0, false
	}
	return *ctx.Fields.BufferSize, true
}

// SetBufferSize sets the buffer_size field, in bytes.
func (ctx *Context) SetBufferSize(n uint32) { ctx.Fields.BufferSize = &n }

// Threshold returns the CIF1 threshold field's lower/upper bounds, in dB.
func (ctx *Context) Threshold() (ThresholdPair, bool) {
	if ctx.Fields.Threshold == nil {
		return ThresholdPair{}, false
	}
	return *ctx.Fields.Threshold, true
}

// SetThreshold sets the threshold field's lower/upper bounds, in dB.
// It returns FixedPointOverflow instead of setting the field if either
// bound cannot be represented in the field's 16-bit radix-7 fixed point.
func (ctx *Context) SetThreshold(lower, upperDB float64) error {
	if !fpGainDB.Fits(lower) {
		return errFixedPointOverflow(lower, fpGainDB.Radix, fpGainDB.Width)
	}
	if !fpGainDB.Fits(upperDB) {
		return errFixedPointOverflow(upperDB, fpGainDB.Radix, fpGainDB.Width)
	}
	ctx.Fields.Threshold = &ThresholdPair{LowerDB: lower, UpperDB: upperDB}
	return nil
}

// FrequencyHz is the Command-body equivalent of Context's
// RFReferenceFrequencyHz: Control/Cancellation/QueryAck bodies reuse
// ContextFields, so the same rf_reference_frequency slot carries the
// commanded frequency.
func (c *Command) FrequencyHz() (float64, bool) {
	body := c.body()
	if body == nil || body.RFReferenceFrequencyHz == nil {
		return 0, false
	}
	return *body.RFReferenceFrequencyHz, true
}

// SetFrequencyHz sets the commanded rf_reference_frequency in Hz,
// allocating the body if the command doesn't have one yet. It only
// applies to Control/Cancellation/QueryAck bodies; it is a no-op on an
// ACK-class command, which has no ContextFields body to write. It
// returns FixedPointOverflow instead of setting the field if hz cannot
// be represented in the field's 64-bit radix-20 fixed point.
func (c *Command) SetFrequencyHz(hz float64) error {
	if !fpFrequencyHz.Fits(hz) {
		return errFixedPointOverflow(hz, fpFrequencyHz.Radix, fpFrequencyHz.Width)
	}
	if body := c.ensureBody(); body != nil {
		body.RFReferenceFrequencyHz = &hz
	}
	return nil
}

// body returns the fields of whichever of ControlBody/QueryAckBody is
// active for c.Control.AckClass, or nil for an ACK-class command.
func (c *Command) body() *ContextFields {
	switch c.Control.AckClass {
	case AckControl, AckCancellation:
		if c.ControlBody == nil {
			return nil
		}
		return &c.ControlBody.Fields
	case AckQueryAck:
		if c.QueryAckBody == nil {
			return nil
		}
		return &c.QueryAckBody.Fields
	default:
		return nil
	}
}

// ensureBody is body() plus allocation: for the ack classes that carry
// a ContextFields body it creates an empty one on first use, so typed
// setters work on a freshly-built command.
func (c *Command) ensureBody() *ContextFields {
	switch c.Control.AckClass {
	case AckControl, AckCancellation:
		if c.ControlBody == nil {
			c.ControlBody = &Context{}
		}
		return &c.ControlBody.Fields
	case AckQueryAck:
		if c.QueryAckBody == nil {
			c.QueryAckBody = &Context{}
		}
		return &c.QueryAckBody.Fields
	default:
		return nil
	}
}

// AckStatusFor returns the warning/error status word recorded for the
// named CIF field in a ValidationAck/ExecutionAck body, and whether
// that field was echoed at all.
func (c *Command) AckStatusFor(fieldName string) (CIFStatusWord, bool) {
	if c.Statuses == nil {
		return CIFStatusWord{}, false
	}
	sw, ok := c.Statuses[fieldName]
	return sw, ok
}
