package kvidx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Values are msgpack with sorted map keys, so equal values encode to equal
// bytes.

func appendMsgpack(buf []byte, v any) []byte {
	bb := bytesBuilder{buf}
	enc := msgpack.GetEncoder()
	enc.Reset(&bb)
	enc.SetSortMapKeys(true)
	err := enc.Encode(v)
	msgpack.PutEncoder(enc)
	if err != nil {
		panic(fmt.Errorf("kvidx: failed to encode %T: %w", v, err))
	}
	return bb.Buf
}

func decodeMsgpack(data []byte, ptr any) error {
	var r bytes.Reader
	r.Reset(data)
	dec := msgpack.GetDecoder()
	dec.Reset(&r)
	err := dec.Decode(ptr)
	msgpack.PutDecoder(dec)
	if err != nil {
		return fmt.Errorf("kvidx: failed to decode msgpack into %T: %w", ptr, err)
	}
	return nil
}

// DecodeValue decodes a raw value passed to a Scan callback.
func DecodeValue(data []byte, ptr any) error {
	return decodeMsgpack(data, ptr)
}

type bytesBuilder struct {
	Buf []byte
}

var _ io.Writer = (*bytesBuilder)(nil)

func (bb *bytesBuilder) Write(b []byte) (int, error) {
	bb.Buf = append(bb.Buf, b...)
	return len(b), nil
}
