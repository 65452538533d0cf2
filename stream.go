package lexkey

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

// Encoder writes key encodings to an io.Writer, producing exactly the same
// bytes as the Append functions. It exists to compose multi-field keys into
// a sink without an intermediate buffer per field.
type Encoder struct {
	w       io.Writer
	scratch []byte
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) write(buf []byte) error {
	e.scratch = buf[:0]
	_, err := e.w.Write(buf)
	return err
}

func (e *Encoder) Bool(v bool) error       { return e.write(AppendBool(e.scratch, v)) }
func (e *Encoder) Uint8(v uint8) error     { return e.write(AppendUint8(e.scratch, v)) }
func (e *Encoder) Uint16(v uint16) error   { return e.write(AppendUint16(e.scratch, v)) }
func (e *Encoder) Uint32(v uint32) error   { return e.write(AppendUint32(e.scratch, v)) }
func (e *Encoder) Uint64(v uint64) error   { return e.write(AppendUint64(e.scratch, v)) }
func (e *Encoder) Int8(v int8) error       { return e.write(AppendInt8(e.scratch, v)) }
func (e *Encoder) Int16(v int16) error     { return e.write(AppendInt16(e.scratch, v)) }
func (e *Encoder) Int32(v int32) error     { return e.write(AppendInt32(e.scratch, v)) }
func (e *Encoder) Int64(v int64) error     { return e.write(AppendInt64(e.scratch, v)) }
func (e *Encoder) Float32(v float32) error { return e.write(AppendFloat32(e.scratch, v)) }
func (e *Encoder) Float64(v float64) error { return e.write(AppendFloat64(e.scratch, v)) }
func (e *Encoder) String(v string) error   { return e.write(AppendString(e.scratch, v)) }
func (e *Encoder) Bytes(v []byte) error    { return e.write(AppendBytes(e.scratch, v)) }

func (e *Encoder) Key(v KeyMarshaler) error { return e.write(v.AppendKey(e.scratch)) }

type bufReader interface {
	io.Reader
	io.ByteReader
}

// StreamDecoder reads key encodings from an io.Reader. Readers that do not
// already support byte-at-a-time reads are wrapped in a bufio.Reader, the
// way msgpack's decoder does it.
type StreamDecoder struct {
	r       bufReader
	scratch [8]byte
}

func NewStreamDecoder(r io.Reader) *StreamDecoder {
	br, ok := r.(bufReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &StreamDecoder{r: br}
}

// raw reads exactly n bytes. io.EOF mid-field is truncation.
func (d *StreamDecoder) raw(n int, what string) ([]byte, error) {
	b := d.scratch[:n]
	if _, err := io.ReadFull(d.r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%s: %w", what, ErrTruncated)
		}
		return nil, err
	}
	return b, nil
}

func (d *StreamDecoder) Bool() (bool, error) {
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
		return false, fmt.Errorf("invalid bool byte 0x%02x", b[0])
	}
}

func (d *StreamDecoder) Uint8() (uint8, error) {
	b, err := d.raw(1, "uint8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *StreamDecoder) Uint16() (uint16, error) {
	b, err := d.raw(2, "uint16")
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (d *StreamDecoder) Uint32() (uint32, error) {
	b, err := d.raw(4, "uint32")
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func (d *StreamDecoder) Uint64() (uint64, error) {
	b, err := d.raw(8, "uint64")
	if err != nil {
		return 0, err
	}
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7]), nil
}

func (d *StreamDecoder) Int8() (int8, error) {
	v, err := d.Uint8()
	return int8(v ^ signBit8), err
}

func (d *StreamDecoder) Int16() (int16, error) {
	v, err := d.Uint16()
	return int16(v ^ signBit16), err
}

func (d *StreamDecoder) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v ^ signBit32), err
}

func (d *StreamDecoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v ^ signBit64), err
}

func (d *StreamDecoder) Float32() (float32, error) {
	v, err := d.Uint32()
	return keyFloat32(v), err
}

func (d *StreamDecoder) Float64() (float64, error) {
	v, err := d.Uint64()
	return keyFloat64(v), err
}

// Bytes reads one escape-coded field up to and including its terminator.
func (d *StreamDecoder) Bytes() ([]byte, error) {
	var out []byte
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("bytes: %w", ErrUnterminated)
			}
			return nil, err
		}
		switch b {
		case terminator:
			if out == nil {
				out = []byte{}
			}
			return out, nil
		case escape:
			b, err = d.r.ReadByte()
			if err != nil {
				if err == io.EOF {
					return nil, fmt.Errorf("bytes: dangling escape: %w", ErrUnterminated)
				}
				return nil, err
			}
			out = append(out, b)
		default:
			out = append(out, b)
		}
	}
}

func (d *StreamDecoder) String() (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("string: %w", ErrInvalidUTF8)
	}
	return string(b), nil
}
