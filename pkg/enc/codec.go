package enc

// A Codec concisely represents a reversible transformation that might
// be applied to a data stream. Codecs used here are length-preserving:
// Encode and Decode always return exactly len(in) bytes appended to out.
type Codec interface {
	Encode(out, in []byte) []byte
	Decode(out, in []byte) []byte
}

type reversedCodec struct {
	c Codec
}

// Reverse returns a new Codec with the opposite data transformation of
// the provided Codec
func Reverse(c Codec) Codec {
	return reversedCodec{c: c}
}

func (r reversedCodec) Encode(out, in []byte) []byte { return r.c.Decode(out, in) }
func (r reversedCodec) Decode(out, in []byte) []byte { return r.c.Encode(out, in) }

// ForDirection returns c unchanged for Forward and Reverse(c) for
// Inverse, so callers can always call Encode.
func ForDirection(c Codec, d Direction) Codec {
	if d == Inverse {
		return Reverse(c)
	}
	return c
}

// Apply runs the whole of in through c in the given direction and
// returns a newly allocated result.
func Apply(c Codec, d Direction, in []byte) []byte {
	return ForDirection(c, d).Encode(make([]byte, 0, len(in)), in)
}
