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

// Hand-built packet fixtures, exercised by this package's tests and by
// cmd/vrtdump build-sample. Each covers one packet shape end to end:
// plain signal data, context with one field, context with CIF1,
// command control, validation ack with a status word, and a corrupted
// length for the error path.

// ScenarioMinimalSignalData: plain Signal Data w/ Stream ID, no
// CIF or payload interpretation at all.
var ScenarioMinimalSignalData = []byte{
	0x10, 0x00, 0x00, 0x04, // header: type=SignalDataWithStream, size=4 words
	0x00, 0x00, 0x00, 0x01, // stream_id = 1
	0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE, 0xBA, 0xBE, // 8 payload bytes
}

// ScenarioContextBandwidth: a Context packet with only the
// bandwidth field present (CIF0 bit 29), 100 MHz at radix-20.
var ScenarioContextBandwidth = []byte{
	0x40, 0x00, 0x00, 0x05, // header: type=Context, size=5 words
	0x00, 0x00, 0x00, 0x02, // stream_id = 2
	0x20, 0x00, 0x00, 0x00, // CIF0: bit 29 (bandwidth)
	0x00, 0x00, 0x5f, 0x5e, 0x10, 0x00, 0x00, 0x00, // bandwidth = 100_000_000 Hz, radix-20
}

// ScenarioContextWithCIF1: a Context packet whose CIF0 enables
// CIF1, which in turn selects the buffer_size field.
var ScenarioContextWithCIF1 = []byte{
	0x40, 0x00, 0x00, 0x05, // header: type=Context, size=5 words
	0x00, 0x00, 0x00, 0x03, // stream_id = 3
	0x00, 0x00, 0x00, 0x02, // CIF0: bit 1 (cif1_enable)
	0x00, 0x00, 0x02, 0x00, // CIF1: bit 9 (buffer_size)
	0x00, 0x00, 0x10, 0x00, // buffer_size = 4096
}

// ScenarioCommandControl: a Command packet in the Control
// acknowledgment class, 32-bit Controllee ID, one CIF field
// (rf_reference_frequency).
var ScenarioCommandControl = []byte{
	0x60, 0x00, 0x00, 0x08, // header: type=Command, size=8 words
	0x00, 0x00, 0x00, 0x04, // stream_id = 4
	0x00, 0x04, 0x00, 0x00, // control word: AckClass=Control, ControlleeIDWidth=Word32
	0x00, 0x00, 0x00, 0x2a, // message_id = 42
	0x00, 0x00, 0x00, 0x01, // controllee_id = 1
	0x08, 0x00, 0x00, 0x00, // CIF0: bit 27 (rf_reference_frequency)
	0x00, 0x09, 0x16, 0xf7, 0x20, 0x00, 0x00, 0x00, // 2.44 GHz, radix-20
}

// ScenarioValidationAckError: a Command packet in the
// ValidationAck class reporting one CIF field's status as an error.
var ScenarioValidationAckError = []byte{
	0x60, 0x00, 0x00, 0x06, // header: type=Command, size=6 words
	0x00, 0x00, 0x00, 0x05, // stream_id = 5
	0x02, 0x60, 0x00, 0x00, // control word: AckClass=ValidationAck, warnings+errors enabled
	0x00, 0x00, 0x00, 0x2a, // message_id = 42
	0x08, 0x00, 0x00, 0x00, // CIF0 echo: bit 27 (rf_reference_frequency)
	0x00, 0x01, 0x00, 0x01, // status word: indicator=bit0, state=bit0 (error set)
}

// ScenarioLengthMismatch: ScenarioMinimalSignalData with its
// header corrupted to claim 8 words (32 bytes) while the buffer is
// still 16 bytes. Parse must return LengthMismatch{HeaderSays: 32,
// Actual: 16}.
var ScenarioLengthMismatch = []byte{
	0x10, 0x00, 0x00, 0x08, // header: claims size=8 words (32 bytes)
	0x00, 0x00, 0x00, 0x01,
	0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE, 0xBA, 0xBE,
}
