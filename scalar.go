package lexkey

import "fmt"

// Scalar is the closed set of types with a defined key encoding. Machine-size
// int and uint are deliberately excluded: the wire format is fixed-width, so
// the caller picks a width explicitly.
type Scalar interface {
	bool |
		uint8 | uint16 | uint32 | uint64 |
		int8 | int16 | int32 | int64 |
		float32 | float64 |
		string | []byte
}

// KeyMarshaler appends the value's key encoding to buf. Implemented by the
// Tuple types; implement it on your own types to use them as key members.
type KeyMarshaler interface {
	AppendKey(buf []byte) []byte
}

// KeyUnmarshaler consumes the value's key encoding from the decoder.
type KeyUnmarshaler interface {
	DecodeKey(d *Decoder) error
}

type KeyMarshallable interface {
	KeyMarshaler
	KeyUnmarshaler
}

// Append appends the key encoding of any supported scalar to buf.
func Append[T Scalar](buf []byte, v T) []byte {
	return appendValue(buf, v)
}

// DecodeValue consumes one scalar field from the decoder.
func DecodeValue[T Scalar](d *Decoder) (T, error) {
	var v T
	err := decodeInto(d, &v)
	return v, err
}

// Marshal encodes a single scalar value as a complete key.
func Marshal[T Scalar](v T) []byte {
	return Append(nil, v)
}

// Unmarshal decodes a complete key holding a single scalar value. Bytes left
// over after the value are an error.
func Unmarshal[T Scalar](data []byte) (T, error) {
	d := MakeDecoder(data)
	v, err := DecodeValue[T](&d)
	if err != nil {
		return v, err
	}
	if !d.Empty() {
		return v, dataErrf(data, d.Off(), ErrTrailingData, "%d bytes after value", d.Remaining())
	}
	return v, nil
}

// MarshalKey encodes a composite value as a complete key.
func MarshalKey(v KeyMarshaler) []byte {
	return v.AppendKey(nil)
}

// UnmarshalKey decodes a complete composite key into v. Bytes left over
// after the last member are an error.
func UnmarshalKey(data []byte, v KeyUnmarshaler) error {
	d := MakeDecoder(data)
	if err := v.DecodeKey(&d); err != nil {
		return err
	}
	if !d.Empty() {
		return dataErrf(data, d.Off(), ErrTrailingData, "%d bytes after key", d.Remaining())
	}
	return nil
}

// appendValue is the untyped dispatch behind Append, Packer and the Tuple
// types. Encoding is infallible over the supported set; anything else is a
// programmer error and panics.
func appendValue(buf []byte, v any) []byte {
	switch v := v.(type) {
	case bool:
		return AppendBool(buf, v)
	case uint8:
		return AppendUint8(buf, v)
	case uint16:
		return AppendUint16(buf, v)
	case uint32:
		return AppendUint32(buf, v)
	case uint64:
		return AppendUint64(buf, v)
	case int8:
		return AppendInt8(buf, v)
	case int16:
		return AppendInt16(buf, v)
	case int32:
		return AppendInt32(buf, v)
	case int64:
		return AppendInt64(buf, v)
	case float32:
		return AppendFloat32(buf, v)
	case float64:
		return AppendFloat64(buf, v)
	case string:
		return AppendString(buf, v)
	case []byte:
		return AppendBytes(buf, v)
	case KeyMarshaler:
		return v.AppendKey(buf)
	default:
		panic(fmt.Errorf("lexkey does not know how to encode %T", v))
	}
}

func decodeInto(d *Decoder, ptr any) error {
	var err error
	switch ptr := ptr.(type) {
	case *bool:
		*ptr, err = d.Bool()
	case *uint8:
		*ptr, err = d.Uint8()
	case *uint16:
		*ptr, err = d.Uint16()
	case *uint32:
		*ptr, err = d.Uint32()
	case *uint64:
		*ptr, err = d.Uint64()
	case *int8:
		*ptr, err = d.Int8()
	case *int16:
		*ptr, err = d.Int16()
	case *int32:
		*ptr, err = d.Int32()
	case *int64:
		*ptr, err = d.Int64()
	case *float32:
		*ptr, err = d.Float32()
	case *float64:
		*ptr, err = d.Float64()
	case *string:
		*ptr, err = d.String()
	case *[]byte:
		*ptr, err = d.Bytes()
	case KeyUnmarshaler:
		err = ptr.DecodeKey(d)
	default:
		panic(fmt.Errorf("lexkey does not know how to decode into %T", ptr))
	}
	return err
}
