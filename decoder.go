package lexkey

import (
	"unicode/utf8"
)

// Decoder is a read cursor over an encoded key. Each typed read consumes
// exactly one field's encoding and leaves the remainder for the next field,
// which is how composite keys are decoded. The cursor borrows the buffer;
// it never copies or mutates it.
type Decoder struct {
	Orig []byte
	Buf  []byte
}

func MakeDecoder(buf []byte) Decoder {
	return Decoder{buf, buf}
}

// Off returns the number of bytes consumed so far.
func (d *Decoder) Off() int {
	return len(d.Orig) - len(d.Buf)
}

// Remaining returns the number of bytes not yet consumed.
func (d *Decoder) Remaining() int {
	return len(d.Buf)
}

func (d *Decoder) Empty() bool {
	return len(d.Buf) == 0
}

func (d *Decoder) raw(n int, what string) ([]byte, error) {
	if len(d.Buf) < n {
		return nil, dataErrf(d.Orig, d.Off(), ErrTruncated, "%s needs %d bytes, %d remaining", what, n, len(d.Buf))
	}
	v := d.Buf[:n]
	d.Buf = d.Buf[n:]
	return v, nil
}

func (d *Decoder) Bool() (bool, error) {
	b, err := d.raw(1, "bool")
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, dataErrf(d.Orig, d.Off()-1, nil, "invalid bool byte 0x%02x", b[0])
	}
}

func (d *Decoder) Uint8() (uint8, error) {
	b, err := d.raw(1, "uint8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) Uint16() (uint16, error) {
	b, err := d.raw(2, "uint16")
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (d *Decoder) Uint32() (uint32, error) {
	b, err := d.raw(4, "uint32")
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func (d *Decoder) Uint64() (uint64, error) {
	b, err := d.raw(8, "uint64")
	if err != nil {
		return 0, err
	}
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7]), nil
}

func (d *Decoder) Int8() (int8, error) {
	v, err := d.Uint8()
	return int8(v ^ signBit8), err
}

func (d *Decoder) Int16() (int16, error) {
	v, err := d.Uint16()
	return int16(v ^ signBit16), err
}

func (d *Decoder) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v ^ signBit32), err
}

func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v ^ signBit64), err
}

func (d *Decoder) Float32() (float32, error) {
	v, err := d.Uint32()
	return keyFloat32(v), err
}

func (d *Decoder) Float64() (float64, error) {
	v, err := d.Uint64()
	return keyFloat64(v), err
}

// Bytes consumes one escape-coded field and returns the original bytes.
// When the field contains no escape markers, the result aliases the
// decoder's buffer; otherwise it is freshly allocated.
func (d *Decoder) Bytes() ([]byte, error) {
	buf := d.Buf
	var out []byte
	var copied bool
	for {
		i := indexSpecial(buf)
		if i < 0 {
			return nil, dataErrf(d.Orig, len(d.Orig), ErrUnterminated, "bytes")
		}
		if buf[i] == terminator {
			if !copied {
				out = buf[:i:i]
			} else {
				out = append(out, buf[:i]...)
			}
			d.Buf = buf[i+1:]
			return out, nil
		}
		// Escape marker: the next byte is literal.
		if i+1 >= len(buf) {
			return nil, dataErrf(d.Orig, len(d.Orig), ErrUnterminated, "bytes: dangling escape")
		}
		out = append(out, buf[:i]...)
		out = append(out, buf[i+1])
		copied = true
		buf = buf[i+2:]
	}
}

// String consumes one escape-coded field and interprets it as UTF-8 text.
// Invalid UTF-8 is an error; we never substitute replacement characters.
func (d *Decoder) String() (string, error) {
	off := d.Off()
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", dataErrf(d.Orig, off, ErrInvalidUTF8, "string")
	}
	return string(b), nil
}
