package enc

import (
	"github.com/zeebo/errs"
)

// Direction selects whether a Codec is applied forward (encode) or
// inverse (decode).
type Direction int

const (
	Forward Direction = iota
	Inverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "encode"
	case Inverse:
		return "decode"
	default:
		return "unknown"
	}
}

// Mode is the command line name for d: "encrypt" or "decrypt".
func (d Direction) Mode() string {
	switch d {
	case Forward:
		return "encrypt"
	case Inverse:
		return "decrypt"
	default:
		return "unknown"
	}
}

// ParseDirection is the inverse of Mode.
func ParseDirection(mode string) (Direction, error) {
	for _, d := range []Direction{Forward, Inverse} {
		if mode == d.Mode() {
			return d, nil
		}
	}
	return 0, errs.New("invalid mode '%s'", mode)
}
