package caesar

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// NewTransformer returns a transform.Transformer that applies Encode or Decode
// to a byte stream. Output matches Encode/Decode of the whole input however the
// stream is split: a rune cut at a buffer boundary is held until the rest arrives.
func NewTransformer(mode Mode, offset int) (transform.Transformer, error) {
	k := Offset(offset).Normalize()
	switch mode {
	case ModeEncode:
		return shifter{k: k}, nil
	case ModeDecode:
		return shifter{k: inverse(k)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

type shifter struct {
	k int
}

// Transform writes one byte to dst for every rune read from src.
func (s shifter) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := rune(src[nSrc]), 1
		if r >= utf8.RuneSelf {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				err = transform.ErrShortSrc
				break
			}
			r, size = utf8.DecodeRune(src[nSrc:])
		}
		if nDst >= len(dst) {
			err = transform.ErrShortDst
			break
		}
		dst[nDst] = shiftRune(r, s.k)
		nDst++
		nSrc += size
	}
	return nDst, nSrc, err
}

func (shifter) Reset() {}
