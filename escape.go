package lexkey

import "bytes"

// Variable-length fields are framed without a length prefix: bytes 0x00 and
// 0x01 in the source are preceded by the escape marker 0x01, and the field
// ends with an unescaped terminator 0x00. All other bytes pass through
// unchanged, so byte-wise order of two encoded fields matches byte-wise
// order of the sources, and a strict prefix always ends (with 0x00) where
// its extension continues with something greater.
const (
	terminator = 0x00
	escape     = 0x01
)

func AppendString(buf []byte, v string) []byte {
	return appendEscaped(buf, []byte(v))
}

func AppendBytes(buf []byte, v []byte) []byte {
	return appendEscaped(buf, v)
}

func appendEscaped(buf []byte, v []byte) []byte {
	for {
		i := indexSpecial(v)
		if i < 0 {
			break
		}
		buf = appendRaw(buf, v[:i])
		off, grown := grow(buf, 2)
		grown[off] = escape
		grown[off+1] = v[i]
		buf = grown
		v = v[i+1:]
	}
	buf = appendRaw(buf, v)
	off, buf := grow(buf, 1)
	buf[off] = terminator
	return buf
}

// indexSpecial returns the index of the first byte requiring an escape
// marker, or -1.
func indexSpecial(v []byte) int {
	i := bytes.IndexByte(v, terminator)
	j := bytes.IndexByte(v, escape)
	if i < 0 {
		return j
	}
	if j < 0 || i < j {
		return i
	}
	return j
}
