package enc

const (
	// DefaultKey is the shift applied when no key is configured.
	DefaultKey = 4
)

// ShiftCodec adds a fixed key to every byte on Encode and subtracts it on
// Decode. All arithmetic is on bytes, so it wraps mod 256 and the
// transform is a bijection on the byte alphabet.
//
// ShiftCodec is not encryption in any meaningful sense.
type ShiftCodec struct {
	key byte
}

var _ Codec = (*ShiftCodec)(nil)

// NewShiftCodec creates a ShiftCodec. Any int is accepted; it is reduced
// mod 256, so -4 and 252 are the same key.
func NewShiftCodec(key int) *ShiftCodec {
	return &ShiftCodec{key: byte(key & 0xff)}
}

// Key returns the shift, in [0, 255].
func (s *ShiftCodec) Key() int { return int(s.key) }

func (s *ShiftCodec) Encode(out, in []byte) []byte {
	out, dst := grow(out, len(in))
	for i, b := range in {
		dst[i] = b + s.key
	}
	return out
}

func (s *ShiftCodec) Decode(out, in []byte) []byte {
	out, dst := grow(out, len(in))
	for i, b := range in {
		dst[i] = b - s.key
	}
	return out
}

// grow extends out by n bytes and returns the extended slice along with
// the new n-byte tail. in and the tail may alias.
func grow(out []byte, n int) (extended, tail []byte) {
	l := len(out)
	if cap(out)-l < n {
		next := make([]byte, l, l+n)
		copy(next, out)
		out = next
	}
	out = out[:l+n]
	return out, out[l:]
}
