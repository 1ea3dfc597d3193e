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

import "golang.org/x/exp/slices"

// Context is the Context payload: a CIF0 word, an optional CIF1 word,
// an optional CIF7 word, and the data fields those words select in
// ascending bit order.
type Context struct {
	Fields ContextFields

	// cif1Carried/cif7Carried record that the packet carried the CIF1
	// or CIF7 indicator word on the wire even when no field bit inside
	// it is set. Presence derived from Fields alone would drop such an
	// empty word on re-encode and break parse/serialize identity.
	// Built packets leave these false; the indicator words then appear
	// exactly when Fields populates them.
	cif1Carried bool
	cif7Carried bool
	cif7Word    CIF7
}

func cif0FromFields(f *ContextFields) CIF0 {
	var c CIF0
	for _, op := range cif0Ops {
		if op.present(f) {
			c.setBit(op.bit, true)
		}
	}
	return c
}

func cif1FromFields(f *ContextFields) CIF1 {
	var c CIF1
	for _, op := range cif1Ops {
		if op.present(f) {
			c.setBit(op.bit, true)
		}
	}
	return c
}

// cif0Word derives the CIF0 indicator to emit: data-field bits from
// slot presence, enable bits from either the carried wire state or the
// populated fields.
func (ctx *Context) cif0Word() CIF0 {
	c := cif0FromFields(&ctx.Fields)
	if ctx.cif1Carried || cif1FromFields(&ctx.Fields) != 0 {
		c.setCIF1Enable(true)
	}
	if cif7Supported && (ctx.cif7Carried || len(ctx.Fields.ExtraAttrs) > 0) {
		c.setCIF7Enable(true)
	}
	return c
}

// cif7Indicator returns the CIF7 word to emit: the decoded word when
// one was carried, else one derived from the attribute vectors.
func (ctx *Context) cif7Indicator() CIF7 {
	if ctx.cif7Carried {
		return ctx.cif7Word
	}
	return cif7FromFields(&ctx.Fields, numExtraAttrs(&ctx.Fields))
}

// cif7FromFields builds the CIF7 word for the fields that carry an
// attribute vector in ExtraAttrs. numExtraAttrs returns the shared
// attribute count across all present vectors (VITA 49.2 requires the
// count to be uniform per packet).
func cif7FromFields(f *ContextFields, numExtraAttrs uint8) CIF7 {
	var c CIF7
	c |= CIF7(numExtraAttrs & 0x7)
	for _, op := range cif0Ops {
		if op.attrWidth > 0 && len(f.ExtraAttrs[op.name]) > 0 {
			c |= CIF7(1 << op.bit)
		}
	}
	return c
}

func numExtraAttrs(f *ContextFields) uint8 {
	for _, v := range f.ExtraAttrs {
		if len(v) > 0 {
			return uint8(len(v))
		}
	}
	return 0
}

// encodedLen returns the total wire size of the Context payload body
// (CIF words plus data fields), excluding the prologue/trailer that
// Packet adds around it.
func (ctx Context) encodedLen() int {
	n := CIFWordSize // CIF0
	cif0 := ctx.cif0Word()
	if cif0.CIF1Enable() {
		n += CIFWordSize
	}
	attrs := cif7Supported && cif0.CIF7Enable()
	var cif7 CIF7
	if attrs {
		n += CIFWordSize
		cif7 = ctx.cif7Indicator()
	}
	for _, op := range cif0Ops {
		if op.present(&ctx.Fields) {
			n += op.length(&ctx.Fields)
			if attrs && op.attrWidth > 0 && cif7.AttributeBit(op.bit) {
				n += len(ctx.Fields.ExtraAttrs[op.name]) * op.attrWidth
			}
		}
	}
	for _, op := range cif1Ops {
		if op.present(&ctx.Fields) {
			n += op.length(&ctx.Fields)
		}
	}
	return n
}

func encodeContext(ctx Context, b []byte) (int, error) {
	cif0 := ctx.cif0Word()
	attrsOn := cif7Supported && cif0.CIF7Enable()
	pos := 0
	encodeCIF0(cif0, b[pos:])
	pos += CIFWordSize
	if cif0.CIF1Enable() {
		encodeCIF1(cif1FromFields(&ctx.Fields), b[pos:])
		pos += CIFWordSize
	}
	var cif7 CIF7
	if attrsOn {
		cif7 = ctx.cif7Indicator()
		encodeCIF7(cif7, b[pos:])
		pos += CIFWordSize
	}
	for _, op := range cif0Ops {
		if !op.present(&ctx.Fields) {
			continue
		}
		pos += op.encode(&ctx.Fields, b[pos:])
		if attrsOn && op.attrWidth > 0 && cif7.AttributeBit(op.bit) {
			for _, v := range ctx.Fields.ExtraAttrs[op.name] {
				putSigned(b[pos:pos+op.attrWidth], int64(v), op.attrWidth)
				pos += op.attrWidth
			}
		}
	}
	for _, op := range cif1Ops {
		if !op.present(&ctx.Fields) {
			continue
		}
		pos += op.encode(&ctx.Fields, b[pos:])
	}
	return pos, nil
}

// decodeContext parses a Context payload body from the front of b and
// returns the number of bytes it consumed, so callers (Parse, and
// decodeCommand for Control/Cancellation/QueryAck bodies that reuse
// this same layout) can check the remainder against the span the
// header declared rather than silently ignoring trailing residue.
func decodeContext(b []byte) (Context, int, error) {
	cif0, err := decodeCIF0(b)
	if err != nil {
		return Context{}, 0, err
	}
	pos := CIFWordSize

	if cif0.CIF7Enable() && !cif7Supported {
		return Context{}, 0, errCIF7NotSupported()
	}

	var cif1 CIF1
	if cif0.CIF1Enable() {
		cif1, err = decodeCIF1(b[pos:])
		if err != nil {
			return Context{}, 0, err
		}
		pos += CIFWordSize
	}

	var cif7 CIF7
	if cif7Supported && cif0.CIF7Enable() {
		cif7, err = decodeCIF7(b[pos:])
		if err != nil {
			return Context{}, 0, err
		}
		pos += CIFWordSize
	}

	fields := ContextFields{}
	if cif7Supported && cif0.CIF7Enable() && cif7.NumExtraAttrs() > 0 {
		fields.ExtraAttrs = make(map[string][]uint64)
	}

	for bit := uint(2); bit <= 31; bit++ {
		if !cif0.Bit(bit) {
			continue
		}
		op, ok := findOp(cif0Ops, bit)
		if !ok {
			return Context{}, 0, errUnsupportedCIFField(0, bit)
		}
		n, err := op.decode(&fields, b[pos:])
		if err != nil {
			return Context{}, 0, err
		}
		pos += n
		if cif7Supported && cif0.CIF7Enable() && cif7.AttributeBit(bit) && op.attrWidth > 0 {
			pos, err = decodeAttrVector(&fields, op, cif7, b, pos)
			if err != nil {
				return Context{}, 0, err
			}
		}
	}

	for bit := uint(0); bit <= 31; bit++ {
		if !cif1.Bit(bit) {
			continue
		}
		op, ok := findOp(cif1Ops, bit)
		if !ok {
			return Context{}, 0, errUnsupportedCIFField(1, bit)
		}
		n, err := op.decode(&fields, b[pos:])
		if err != nil {
			return Context{}, 0, err
		}
		pos += n
	}

	ctx := Context{Fields: fields, cif1Carried: cif0.CIF1Enable()}
	if cif7Supported && cif0.CIF7Enable() {
		ctx.cif7Carried = true
		ctx.cif7Word = cif7
	}
	return ctx, pos, nil
}

func findOp(ops []fieldOp, bit uint) (fieldOp, bool) {
	i := slices.IndexFunc(ops, func(op fieldOp) bool { return op.bit == bit })
	if i < 0 {
		return fieldOp{}, false
	}
	return ops[i], true
}

func decodeAttrVector(f *ContextFields, op fieldOp, cif7 CIF7, b []byte, pos int) (int, error) {
	count := int(cif7.NumExtraAttrs())
	if count == 0 {
		return pos, nil
	}
	width := op.attrWidth
	need := count * width
	if len(b[pos:]) < need {
		return 0, errShortBuffer(need, len(b[pos:]))
	}
	vals := make([]uint64, count)
	for i := 0; i < count; i++ {
		raw := getSigned(b[pos:pos+width], width)
		vals[i] = uint64(raw)
		pos += width
	}
	f.ExtraAttrs[op.name] = vals
	return pos, nil
}
