package lexkey

import "math"

// Sign bit patterns for each width. XORing a signed value with its width's
// pattern flips the sign bit, mapping the signed range onto the unsigned
// range in order: minInt becomes all zeroes, maxInt becomes all ones.
const (
	signBit8  = 1 << 7
	signBit16 = 1 << 15
	signBit32 = 1 << 31
	signBit64 = 1 << 63
)

func AppendBool(buf []byte, v bool) []byte {
	off, buf := grow(buf, 1)
	if v {
		buf[off] = 1
	} else {
		buf[off] = 0
	}
	return buf
}

func AppendUint8(buf []byte, v uint8) []byte {
	off, buf := grow(buf, 1)
	buf[off] = v
	return buf
}

func AppendUint16(buf []byte, v uint16) []byte {
	off, buf := grow(buf, 2)
	buf[off+0] = byte(v >> 8)
	buf[off+1] = byte(v)
	return buf
}

func AppendUint32(buf []byte, v uint32) []byte {
	off, buf := grow(buf, 4)
	buf[off+0] = byte(v >> 24)
	buf[off+1] = byte(v >> 16)
	buf[off+2] = byte(v >> 8)
	buf[off+3] = byte(v)
	return buf
}

func AppendUint64(buf []byte, v uint64) []byte {
	off, buf := grow(buf, 8)
	buf[off+0] = byte(v >> 56)
	buf[off+1] = byte(v >> 48)
	buf[off+2] = byte(v >> 40)
	buf[off+3] = byte(v >> 32)
	buf[off+4] = byte(v >> 24)
	buf[off+5] = byte(v >> 16)
	buf[off+6] = byte(v >> 8)
	buf[off+7] = byte(v)
	return buf
}

func AppendInt8(buf []byte, v int8) []byte {
	return AppendUint8(buf, uint8(v)^signBit8)
}

func AppendInt16(buf []byte, v int16) []byte {
	return AppendUint16(buf, uint16(v)^signBit16)
}

func AppendInt32(buf []byte, v int32) []byte {
	return AppendUint32(buf, uint32(v)^signBit32)
}

func AppendInt64(buf []byte, v int64) []byte {
	return AppendUint64(buf, uint64(v)^signBit64)
}

func AppendFloat32(buf []byte, v float32) []byte {
	return AppendUint32(buf, float32Key(v))
}

func AppendFloat64(buf []byte, v float64) []byte {
	return AppendUint64(buf, float64Key(v))
}

// float64Key maps a float's bit pattern onto a uint64 whose numeric order
// matches float comparison. Non-negative values (sign bit clear) only get
// the sign bit flipped, lifting them above all negatives; negative values
// get fully complemented, which reverses their relative order. The shift
// must be arithmetic: it produces the all-ones mask for negative patterns.
func float64Key(v float64) uint64 {
	bits := int64(math.Float64bits(v))
	return uint64(((bits >> 63) | math.MinInt64) ^ bits)
}

func keyFloat64(key uint64) float64 {
	if int64(key) < 0 {
		return math.Float64frombits(key ^ signBit64)
	}
	return math.Float64frombits(^key)
}

func float32Key(v float32) uint32 {
	bits := int32(math.Float32bits(v))
	return uint32(((bits >> 31) | math.MinInt32) ^ bits)
}

func keyFloat32(key uint32) float32 {
	if int32(key) < 0 {
		return math.Float32frombits(key ^ signBit32)
	}
	return math.Float32frombits(^key)
}
