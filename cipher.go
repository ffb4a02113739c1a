package caesar

import (
	"fmt"

	"golang.org/x/text/transform"
)

// DefaultCipher, when set, is the process-wide cipher used by callers that
// do not carry their own offset. Set it once at startup.
var DefaultCipher *Cipher

// Cipher is a transform bound to a single offset. It is immutable and safe
// for concurrent use.
type Cipher struct {
	offset Offset
	k      int
}

// NewCipher creates a cipher that shifts by offset.
func NewCipher(offset int) *Cipher {
	o := Offset(offset)
	return &Cipher{offset: o, k: o.Normalize()}
}

// SetCipher sets DefaultCipher to a cipher with the given offset.
func SetCipher(offset int) {
	DefaultCipher = NewCipher(offset)
}

// Offset returns the offset the cipher was created with, before normalization.
func (c *Cipher) Offset() Offset {
	return c.offset
}

// Encode shifts text forward by the cipher's offset.
func (c *Cipher) Encode(text string) string {
	return shift(text, c.k)
}

// Decode shifts text back by the cipher's offset, reversing Encode for alphabet characters.
func (c *Cipher) Decode(text string) string {
	return shift(text, inverse(c.k))
}

// Apply runs Encode or Decode according to mode.
func (c *Cipher) Apply(mode Mode, text string) (string, error) {
	switch mode {
	case ModeEncode:
		return c.Encode(text), nil
	case ModeDecode:
		return c.Decode(text), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

// Transformer returns a streaming transformer for mode.
// It panics if mode is not ModeEncode or ModeDecode.
func (c *Cipher) Transformer(mode Mode) transform.Transformer {
	t, err := NewTransformer(mode, int(c.offset))
	if err != nil {
		panic(err)
	}
	return t
}
