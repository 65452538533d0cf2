package lexkey

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Struct keys: a struct's exported fields, taken in declared order, form a
// composite key, the same way a tuple does. This avoids hand-written
// marshalers for named multi-field keys.
//
// Supported field types: the scalar set, nested structs, pointers to those
// (nil pointers are not encodable), [N]byte arrays (fixed-width, emitted
// raw), time.Time (encoded as the int64 Unix seconds key, which preserves
// order), and KeyMarshallable types. Anything else panics on first use of
// the struct type.

var keyMarshallableType = reflect.TypeOf((*KeyMarshallable)(nil)).Elem()
var timeType = reflect.TypeOf((*time.Time)(nil)).Elem()
var byteType = reflect.TypeOf((byte)(0))
var byteSliceType = reflect.TypeOf(([]byte)(nil))

var structKeyEncodings sync.Map

type structKeyEncoding struct {
	typ        reflect.Type
	components []*keyComponent
}

type keyComponent struct {
	Type    reflect.Type
	Path    string
	Getters []func(v reflect.Value, init bool) reflect.Value
	Encode  func(buf []byte, v reflect.Value) []byte
	Decode  func(d *Decoder, v reflect.Value) error
}

// AppendStructKey appends the composite key formed by v's fields. v must be
// a struct or a pointer to one.
func AppendStructKey(buf []byte, v any) []byte {
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	enc := structKeyEncodingOf(val.Type())
	for _, kc := range enc.components {
		cval := kc.valueIn(val, false)
		buf = kc.Encode(buf, cval)
	}
	return buf
}

// MarshalStructKey encodes v's fields as a complete key.
func MarshalStructKey(v any) []byte {
	return AppendStructKey(nil, v)
}

// DecodeStructKey decodes a complete struct key into ptr, which must be a
// pointer to a struct. Bytes left over after the last field are an error.
func DecodeStructKey(data []byte, ptr any) error {
	d := MakeDecoder(data)
	if err := DecodeStructKeyFrom(&d, ptr); err != nil {
		return err
	}
	if !d.Empty() {
		return dataErrf(data, d.Off(), ErrTrailingData, "%d bytes after struct key", d.Remaining())
	}
	return nil
}

// DecodeStructKeyFrom consumes one struct key from the decoder, leaving any
// following fields in place.
func DecodeStructKeyFrom(d *Decoder, ptr any) error {
	val := reflect.ValueOf(ptr)
	if val.Kind() != reflect.Ptr {
		panic(fmt.Errorf("DecodeStructKey needs a pointer, got %v", val.Type()))
	}
	val = val.Elem()
	enc := structKeyEncodingOf(val.Type())
	for _, kc := range enc.components {
		cval := kc.valueIn(val, true)
		if !cval.IsValid() || !cval.CanSet() {
			panic(fmt.Errorf("unsettable field while decoding %v%s", enc.typ, kc.Path))
		}
		if err := kc.Decode(d, cval); err != nil {
			return fmt.Errorf("%s%w", pathPrefix(kc.Path), err)
		}
	}
	return nil
}

func (kc *keyComponent) valueIn(val reflect.Value, init bool) reflect.Value {
	for i := len(kc.Getters) - 1; i >= 0; i-- {
		if !val.IsValid() {
			return val
		}
		val = kc.Getters[i](val, init)
	}
	return val
}

func structKeyEncodingOf(typ reflect.Type) *structKeyEncoding {
	if e, ok := structKeyEncodings.Load(typ); ok {
		return e.(*structKeyEncoding)
	}
	enc := &structKeyEncoding{typ: typ}
	enumerateKeyComponents(typ, func(kc *keyComponent) {
		enc.components = append(enc.components, kc)
	})
	structKeyEncodings.LoadOrStore(typ, enc)
	return enc
}

func enumerateKeyComponents(typ reflect.Type, f func(kc *keyComponent)) {
	if typ == timeType {
		f(&keyComponent{
			Type: typ,
			Encode: func(buf []byte, v reflect.Value) []byte {
				return AppendInt64(buf, v.Interface().(time.Time).Unix())
			},
			Decode: func(d *Decoder, v reflect.Value) error {
				sec, err := d.Int64()
				if err != nil {
					return err
				}
				v.Set(reflect.ValueOf(time.Unix(sec, 0)))
				return nil
			},
		})
		return
	}
	if typ.ConvertibleTo(keyMarshallableType) {
		f(&keyComponent{
			Type: typ,
			Encode: func(buf []byte, v reflect.Value) []byte {
				return v.Interface().(KeyMarshaler).AppendKey(buf)
			},
			Decode: func(d *Decoder, v reflect.Value) error {
				// Decoded fields are always addressable; DecodeKey must see
				// the field itself, not a copy.
				return v.Addr().Interface().(KeyUnmarshaler).DecodeKey(d)
			},
		})
		return
	}
	if reflect.PointerTo(typ).ConvertibleTo(keyMarshallableType) && typ.Kind() != reflect.Ptr {
		f(&keyComponent{
			Type: typ,
			Encode: func(buf []byte, v reflect.Value) []byte {
				return v.Interface().(KeyMarshaler).AppendKey(buf)
			},
			Decode: func(d *Decoder, v reflect.Value) error {
				return v.Addr().Interface().(KeyUnmarshaler).DecodeKey(d)
			},
		})
		return
	}
	switch typ.Kind() {
	case reflect.Bool:
		f(&keyComponent{
			Type: typ,
			Encode: func(buf []byte, v reflect.Value) []byte {
				return AppendBool(buf, v.Bool())
			},
			Decode: func(d *Decoder, v reflect.Value) error {
				b, err := d.Bool()
				if err != nil {
					return err
				}
				v.SetBool(b)
				return nil
			},
		})
	case reflect.Uint8:
		f(uintComponent(typ, 1))
	case reflect.Uint16:
		f(uintComponent(typ, 2))
	case reflect.Uint32:
		f(uintComponent(typ, 4))
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		f(uintComponent(typ, 8))
	case reflect.Int8:
		f(intComponent(typ, 1))
	case reflect.Int16:
		f(intComponent(typ, 2))
	case reflect.Int32:
		f(intComponent(typ, 4))
	case reflect.Int64, reflect.Int:
		f(intComponent(typ, 8))
	case reflect.Float32:
		f(&keyComponent{
			Type: typ,
			Encode: func(buf []byte, v reflect.Value) []byte {
				return AppendFloat32(buf, float32(v.Float()))
			},
			Decode: func(d *Decoder, v reflect.Value) error {
				fv, err := d.Float32()
				if err != nil {
					return err
				}
				v.SetFloat(float64(fv))
				return nil
			},
		})
	case reflect.Float64:
		f(&keyComponent{
			Type: typ,
			Encode: func(buf []byte, v reflect.Value) []byte {
				return AppendFloat64(buf, v.Float())
			},
			Decode: func(d *Decoder, v reflect.Value) error {
				fv, err := d.Float64()
				if err != nil {
					return err
				}
				v.SetFloat(fv)
				return nil
			},
		})
	case reflect.String:
		f(&keyComponent{
			Type: typ,
			Encode: func(buf []byte, v reflect.Value) []byte {
				return AppendString(buf, v.String())
			},
			Decode: func(d *Decoder, v reflect.Value) error {
				s, err := d.String()
				if err != nil {
					return err
				}
				v.SetString(s)
				return nil
			},
		})
	case reflect.Slice:
		if typ.Elem() != byteType {
			panic(fmt.Errorf("lexkey does not know how to encode slice %v", typ))
		}
		f(&keyComponent{
			Type: typ,
			Encode: func(buf []byte, v reflect.Value) []byte {
				return AppendBytes(buf, v.Convert(byteSliceType).Interface().([]byte))
			},
			Decode: func(d *Decoder, v reflect.Value) error {
				b, err := d.Bytes()
				if err != nil {
					return err
				}
				v.Set(reflect.ValueOf(b).Convert(typ))
				return nil
			},
		})
	case reflect.Array:
		if typ.Elem() != byteType {
			panic(fmt.Errorf("lexkey does not know how to encode array %v", typ))
		}
		n := typ.Len()
		f(&keyComponent{
			Type: typ,
			Encode: func(buf []byte, v reflect.Value) []byte {
				if !v.CanAddr() {
					tmp := reflect.New(typ).Elem()
					tmp.Set(v)
					v = tmp
				}
				return appendRaw(buf, v.Slice(0, n).Convert(byteSliceType).Interface().([]byte))
			},
			Decode: func(d *Decoder, v reflect.Value) error {
				b, err := d.raw(n, typ.String())
				if err != nil {
					return err
				}
				reflect.Copy(v, reflect.ValueOf(b))
				return nil
			},
		})
	case reflect.Ptr:
		elemType := typ.Elem()
		get := func(v reflect.Value, init bool) reflect.Value {
			if init && v.IsNil() {
				v.Set(reflect.New(elemType))
			}
			return v.Elem()
		}
		enumerateKeyComponents(elemType, func(kc *keyComponent) {
			kc.Getters = append(kc.Getters, get)
			f(kc)
		})
	case reflect.Struct:
		n := typ.NumField()
		for i := 0; i < n; i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			i := i // per-iteration capture for Go <1.22 loop semantics
			get := func(v reflect.Value, init bool) reflect.Value {
				return v.Field(i)
			}
			enumerateKeyComponents(field.Type, func(kc *keyComponent) {
				kc.Getters = append(kc.Getters, get)
				kc.Path = kc.Path + "." + field.Name
				f(kc)
			})
		}
	default:
		panic(fmt.Errorf("lexkey does not know how to encode %v", typ))
	}
}

func uintComponent(typ reflect.Type, width int) *keyComponent {
	return &keyComponent{
		Type: typ,
		Encode: func(buf []byte, v reflect.Value) []byte {
			switch width {
			case 1:
				return AppendUint8(buf, uint8(v.Uint()))
			case 2:
				return AppendUint16(buf, uint16(v.Uint()))
			case 4:
				return AppendUint32(buf, uint32(v.Uint()))
			default:
				return AppendUint64(buf, v.Uint())
			}
		},
		Decode: func(d *Decoder, v reflect.Value) error {
			var u uint64
			var err error
			switch width {
			case 1:
				var b uint8
				b, err = d.Uint8()
				u = uint64(b)
			case 2:
				var b uint16
				b, err = d.Uint16()
				u = uint64(b)
			case 4:
				var b uint32
				b, err = d.Uint32()
				u = uint64(b)
			default:
				u, err = d.Uint64()
			}
			if err != nil {
				return err
			}
			v.SetUint(u)
			return nil
		},
	}
}

func intComponent(typ reflect.Type, width int) *keyComponent {
	return &keyComponent{
		Type: typ,
		Encode: func(buf []byte, v reflect.Value) []byte {
			switch width {
			case 1:
				return AppendInt8(buf, int8(v.Int()))
			case 2:
				return AppendInt16(buf, int16(v.Int()))
			case 4:
				return AppendInt32(buf, int32(v.Int()))
			default:
				return AppendInt64(buf, v.Int())
			}
		},
		Decode: func(d *Decoder, v reflect.Value) error {
			var i int64
			var err error
			switch width {
			case 1:
				var b int8
				b, err = d.Int8()
				i = int64(b)
			case 2:
				var b int16
				b, err = d.Int16()
				i = int64(b)
			case 4:
				var b int32
				b, err = d.Int32()
				i = int64(b)
			default:
				i, err = d.Int64()
			}
			if err != nil {
				return err
			}
			v.SetInt(i)
			return nil
		},
	}
}

func pathPrefix(p string) string {
	if p == "" {
		return ""
	}
	return p + ": "
}
