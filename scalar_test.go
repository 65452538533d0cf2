package lexkey

import (
	"bytes"
	"math"
	"testing"
)

func TestScalarRoundTrips(t *testing.T) {
	roundTrip(t, true)
	roundTrip(t, false)
	roundTrip(t, uint8(0))
	roundTrip(t, uint8(255))
	roundTrip(t, uint16(12345))
	roundTrip(t, uint32(0xDEADBEEF))
	roundTrip(t, uint64(math.MaxUint64))
	roundTrip(t, int8(-128))
	roundTrip(t, int16(-1))
	roundTrip(t, int32(math.MinInt32))
	roundTrip(t, int64(math.MaxInt64))
	roundTrip(t, float32(3.5))
	roundTrip(t, float64(-2.25))
	roundTrip(t, "")
	roundTrip(t, "hello, wörld")
	roundTrip(t, []byte{0, 1, 2, 255})
}

func roundTrip[T Scalar](t *testing.T, v T) {
	t.Helper()
	back, err := Unmarshal[T](Marshal(v))
	if err != nil {
		t.Errorf("** Unmarshal(Marshal(%v)): %v", v, err)
		return
	}
	deepEqual(t, back, v)
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	data := Marshal(uint32(7))
	data = append(data, 0x00)
	_, err := Unmarshal[uint32](data)
	wantErr(t, err, ErrTrailingData)

	data = Marshal("abc")
	data = append(data, 0x41)
	_, err = Unmarshal[string](data)
	wantErr(t, err, ErrTrailingData)
}

func TestAppendMatchesTypedFunctions(t *testing.T) {
	if !bytes.Equal(Append(nil, int32(-5)), AppendInt32(nil, -5)) {
		t.Errorf("** generic Append diverges for int32")
	}
	if !bytes.Equal(Append(nil, "x\x00y"), AppendString(nil, "x\x00y")) {
		t.Errorf("** generic Append diverges for string")
	}
	if !bytes.Equal(Append(nil, []byte{1}), AppendBytes(nil, []byte{1})) {
		t.Errorf("** generic Append diverges for []byte")
	}
}

func TestAppendValuePanicsOnUnsupportedType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("** no panic for unsupported type")
		}
	}()
	appendValue(nil, struct{ X int }{1})
}
