package lexkey

import (
	"errors"
	"testing"
)

func TestDecoderTruncation(t *testing.T) {
	d := MakeDecoder(unhex("010203"))
	_, err := d.Uint32()
	wantErr(t, err, ErrTruncated)
	if d.Off() != 0 {
		t.Errorf("** failed read moved the cursor to %d", d.Off())
	}

	d = MakeDecoder(nil)
	_, err = d.Bool()
	wantErr(t, err, ErrTruncated)

	d = MakeDecoder(unhex("01020304050607"))
	_, err = d.Uint64()
	wantErr(t, err, ErrTruncated)

	d = MakeDecoder(unhex("0102030405060708"))
	if _, err := d.Uint64(); err != nil {
		t.Fatalf("** %v", err)
	}
	_, err = d.Uint8()
	wantErr(t, err, ErrTruncated)
}

func TestDecoderInvalidBool(t *testing.T) {
	d := MakeDecoder(unhex("02"))
	if _, err := d.Bool(); err == nil {
		t.Errorf("** decoding bool byte 0x02 succeeded")
	}
}

func TestDecoderFieldSequencing(t *testing.T) {
	var buf []byte
	buf = AppendUint16(buf, 500)
	buf = AppendString(buf, "mid")
	buf = AppendInt32(buf, -7)
	buf = AppendBytes(buf, []byte{0, 1})
	buf = AppendBool(buf, true)

	d := MakeDecoder(buf)
	deepEqual(t, must(d.Uint16()), 500)
	deepEqual(t, must(d.String()), "mid")
	deepEqual(t, must(d.Int32()), -7)
	deepEqual(t, must(d.Bytes()), []byte{0, 1})
	deepEqual(t, must(d.Bool()), true)
	if !d.Empty() {
		t.Errorf("** %d bytes left after the last field", d.Remaining())
	}
	if d.Off() != len(buf) {
		t.Errorf("** Off() = %d, wanted %d", d.Off(), len(buf))
	}
}

func TestDataErrorMessage(t *testing.T) {
	d := MakeDecoder(unhex("0102"))
	_, err := d.Uint32()
	if err == nil {
		t.Fatalf("** no error")
	}
	var de *DataError
	if !errors.As(err, &de) {
		t.Fatalf("** not a DataError: %T", err)
	}
	if de.Off != 0 || len(de.Data) != 2 {
		t.Errorf("** DataError{Off: %d, Data: %x}", de.Off, de.Data)
	}
	if de.Error() == "" {
		t.Errorf("** empty error message")
	}
}
