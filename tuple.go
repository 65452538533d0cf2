package lexkey

// Packer builds a composite key by appending member encodings in call order.
// The zero value is ready to use. Because every member encoding is
// self-delimiting, the result needs no length or type tags, and two packed
// keys compare exactly like their member sequences.
type Packer struct {
	buf []byte
}

// NewPacker returns a packer reusing buf's capacity, which may be nil.
func NewPacker(buf []byte) *Packer {
	return &Packer{buf: buf[:0:cap(buf)]}
}

// Buf returns the key built so far. The slice aliases the packer's buffer.
func (p *Packer) Buf() []byte { return p.buf }

func (p *Packer) Reset() { p.buf = p.buf[:0] }

func (p *Packer) Bool(v bool) *Packer       { p.buf = AppendBool(p.buf, v); return p }
func (p *Packer) Uint8(v uint8) *Packer     { p.buf = AppendUint8(p.buf, v); return p }
func (p *Packer) Uint16(v uint16) *Packer   { p.buf = AppendUint16(p.buf, v); return p }
func (p *Packer) Uint32(v uint32) *Packer   { p.buf = AppendUint32(p.buf, v); return p }
func (p *Packer) Uint64(v uint64) *Packer   { p.buf = AppendUint64(p.buf, v); return p }
func (p *Packer) Int8(v int8) *Packer       { p.buf = AppendInt8(p.buf, v); return p }
func (p *Packer) Int16(v int16) *Packer     { p.buf = AppendInt16(p.buf, v); return p }
func (p *Packer) Int32(v int32) *Packer     { p.buf = AppendInt32(p.buf, v); return p }
func (p *Packer) Int64(v int64) *Packer     { p.buf = AppendInt64(p.buf, v); return p }
func (p *Packer) Float32(v float32) *Packer { p.buf = AppendFloat32(p.buf, v); return p }
func (p *Packer) Float64(v float64) *Packer { p.buf = AppendFloat64(p.buf, v); return p }
func (p *Packer) String(v string) *Packer   { p.buf = AppendString(p.buf, v); return p }
func (p *Packer) Bytes(v []byte) *Packer    { p.buf = AppendBytes(p.buf, v); return p }

// Key appends a nested composite value.
func (p *Packer) Key(v KeyMarshaler) *Packer { p.buf = v.AppendKey(p.buf); return p }

// Tuple2..Tuple5 are fixed-arity composite keys over scalars. Members may
// also be nested tuples or any other KeyMarshallable; an unsupported member
// type panics on first use. Higher arities are expressed by nesting, or by
// a struct key (see AppendStructKey).

type Tuple2[A, B any] struct {
	A A
	B B
}

func Tup2[A, B any](a A, b B) Tuple2[A, B] {
	return Tuple2[A, B]{a, b}
}

func (t Tuple2[A, B]) AppendKey(buf []byte) []byte {
	buf = appendValue(buf, t.A)
	return appendValue(buf, t.B)
}

func (t *Tuple2[A, B]) DecodeKey(d *Decoder) error {
	if err := decodeInto(d, &t.A); err != nil {
		return err
	}
	return decodeInto(d, &t.B)
}

type Tuple3[A, B, C any] struct {
	A A
	B B
	C C
}

func Tup3[A, B, C any](a A, b B, c C) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{a, b, c}
}

func (t Tuple3[A, B, C]) AppendKey(buf []byte) []byte {
	buf = appendValue(buf, t.A)
	buf = appendValue(buf, t.B)
	return appendValue(buf, t.C)
}

func (t *Tuple3[A, B, C]) DecodeKey(d *Decoder) error {
	if err := decodeInto(d, &t.A); err != nil {
		return err
	}
	if err := decodeInto(d, &t.B); err != nil {
		return err
	}
	return decodeInto(d, &t.C)
}

type Tuple4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

func Tup4[A, B, C, D any](a A, b B, c C, d D) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{a, b, c, d}
}

func (t Tuple4[A, B, C, D]) AppendKey(buf []byte) []byte {
	buf = appendValue(buf, t.A)
	buf = appendValue(buf, t.B)
	buf = appendValue(buf, t.C)
	return appendValue(buf, t.D)
}

func (t *Tuple4[A, B, C, D]) DecodeKey(d *Decoder) error {
	if err := decodeInto(d, &t.A); err != nil {
		return err
	}
	if err := decodeInto(d, &t.B); err != nil {
		return err
	}
	if err := decodeInto(d, &t.C); err != nil {
		return err
	}
	return decodeInto(d, &t.D)
}

type Tuple5[A, B, C, D, E any] struct {
	A A
	B B
	C C
	D D
	E E
}

func Tup5[A, B, C, D, E any](a A, b B, c C, d D, e E) Tuple5[A, B, C, D, E] {
	return Tuple5[A, B, C, D, E]{a, b, c, d, e}
}

func (t Tuple5[A, B, C, D, E]) AppendKey(buf []byte) []byte {
	buf = appendValue(buf, t.A)
	buf = appendValue(buf, t.B)
	buf = appendValue(buf, t.C)
	buf = appendValue(buf, t.D)
	return appendValue(buf, t.E)
}

func (t *Tuple5[A, B, C, D, E]) DecodeKey(d *Decoder) error {
	if err := decodeInto(d, &t.A); err != nil {
		return err
	}
	if err := decodeInto(d, &t.B); err != nil {
		return err
	}
	if err := decodeInto(d, &t.C); err != nil {
		return err
	}
	if err := decodeInto(d, &t.D); err != nil {
		return err
	}
	return decodeInto(d, &t.E)
}
