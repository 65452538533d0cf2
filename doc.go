/*
Package lexkey encodes typed values into binary keys whose byte-wise
lexicographic order matches the natural order of the original values.
This lets an ordered key-value store (Bolt, Pebble, an SSTable, a sorted
index) use integers, floats, strings, blobs and tuples of those directly
as keys, without a custom comparator.

We implement:

1. Fixed-width scalars: bool, uint8..uint64, int8..int64, float32, float64.

2. Variable-length fields: strings and raw byte blobs, via a self-delimiting
escape coding, so they can sit in the middle of a composite key.

3. Composite keys: plain concatenation of member encodings, built with a
Packer, fixed-arity Tuple types, or reflection over struct fields.

4. Streaming variants writing to an io.Writer / reading from an io.Reader,
producing the identical byte format.

# Binary encoding

**bool**: one byte, 0x00 for false, 0x01 for true.

**Unsigned integers**: big-endian bytes of the native width; big-endian
already sorts like the numbers do.

**Signed integers**: big-endian bytes of the value XOR'ed with the minimum
value for the width. This flips the sign bit, mapping the most negative
value to all zeroes and the most positive to all ones.

**Floats**: the IEEE-754 bit pattern, treated as a signed integer v, becomes
((v >> (width-1)) | minInt) ^ v, emitted big-endian. Non-negative floats get
the sign bit flipped; negative floats get fully complemented, which reverses
their order so that more-negative values sort first. Negative zero sorts
strictly below positive zero. NaNs with the sign bit clear sort above +Inf;
NaNs with the sign bit set sort below -Inf. Round trips are bit-exact, NaN
payloads included.

**Strings and blobs**: every source byte 0x00 or 0x01 is preceded by an
escape marker 0x01, and the field ends with an unescaped terminator 0x00.
A strict prefix therefore always sorts before its extensions, and the next
field of a composite key can never be mistaken for more of the current one.

**Composite keys** are the concatenation of member encodings in declared
order, with no length or type tags; every member encoding is either
fixed-width or self-delimiting, so the composite sorts exactly like the
member sequence compared lexicographically.

# Errors

Encoding never fails for supported types. Decoding returns a *DataError
that wraps one of ErrTruncated, ErrUnterminated, ErrInvalidUTF8 or
ErrTrailingData and carries the offending buffer and offset. Strings that
decode to invalid UTF-8 are always an error, never silently replaced.
Whole-value decoding (Unmarshal, UnmarshalKey) treats leftover bytes as an
error; the Decoder cursor leaves them for the next field instead.
*/
package lexkey
