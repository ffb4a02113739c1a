// Package caesar implements a Caesar-style substitution cipher over a fixed
// 94-character alphabet (see package alphabet).
//
// Each rune of the input is shifted independently by the offset, wrapping
// around the end of the alphabet. Runes outside the alphabet are replaced by
// a single space, so output always has one character per input rune.
// Encode and Decode are total: they accept any string and any int offset.
//
// This is a classical cipher with 94 possible keys. It provides no security.
package caesar

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paraglidehq/caesar/alphabet"
)

// Compile-time interface checks for Offset
var (
	_ fmt.Stringer               = Offset(0)
	_ driver.Valuer              = Offset(0)
	_ sql.Scanner                = (*Offset)(nil)
	_ encoding.TextMarshaler     = Offset(0)
	_ encoding.TextUnmarshaler   = (*Offset)(nil)
	_ encoding.BinaryMarshaler   = Offset(0)
	_ encoding.BinaryUnmarshaler = (*Offset)(nil)
	_ json.Marshaler             = Offset(0)
	_ json.Unmarshaler           = (*Offset)(nil)
	_ gob.GobEncoder             = Offset(0)
	_ gob.GobDecoder             = (*Offset)(nil)
)

// Placeholder is written in place of every rune that is not in the alphabet.
const Placeholder = ' '

var (
	// ErrInvalidOffset is returned when an offset string is not a base-10 integer.
	ErrInvalidOffset = errors.New("caesar: invalid offset")
	// ErrInvalidMode is returned for a Mode other than ModeEncode or ModeDecode.
	ErrInvalidMode = errors.New("caesar: invalid mode")
)

// Mode selects the direction of the cipher.
type Mode string

const (
	ModeEncode Mode = "encode"
	ModeDecode Mode = "decode"
)

// ParseMode returns the Mode named by s (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeEncode, ModeDecode:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// IndexOf returns the zero-based alphabet position of c, or -1 if c is not in the alphabet.
func IndexOf(c rune) int {
	return alphabet.Index(c)
}

// Encode shifts every alphabet rune of text forward by offset positions.
func Encode(text string, offset int) string {
	return shift(text, Offset(offset).Normalize())
}

// Decode shifts every alphabet rune of text back by offset positions.
// Decode(Encode(t, k), k) == t when every rune of t is in the alphabet.
func Decode(text string, offset int) string {
	return shift(text, inverse(Offset(offset).Normalize()))
}

// Apply runs Encode or Decode according to mode.
func Apply(mode Mode, text string, offset int) (string, error) {
	switch mode {
	case ModeEncode:
		return Encode(text, offset), nil
	case ModeDecode:
		return Decode(text, offset), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

// shift maps each rune of text through the alphabet rotated by k, with k in [0, alphabet.Size).
func shift(text string, k int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteByte(shiftRune(r, k))
	}
	return b.String()
}

func shiftRune(r rune, k int) byte {
	i := alphabet.Index(r)
	if i < 0 {
		return Placeholder
	}
	return alphabet.At((i + k) % alphabet.Size)
}

func inverse(k int) int {
	return (alphabet.Size - k) % alphabet.Size
}

// Offset is the number of alphabet positions each character is shifted by.
// Any int is valid; offsets that differ by a multiple of alphabet.Size are equivalent.
type Offset int

// Normalize returns the equivalent shift in [0, alphabet.Size).
// Negative offsets wrap around: Offset(-1).Normalize() == 93.
func (o Offset) Normalize() int {
	return mod(int(o), alphabet.Size)
}

// Int returns the offset as an int.
func (o Offset) Int() int {
	return int(o)
}

// String returns the offset in base 10.
func (o Offset) String() string {
	return strconv.Itoa(int(o))
}

// mod is floored modulo: the result has the sign of m.
func mod(n, m int) int {
	return (n%m + m) % m
}

// ParseOffset parses a base-10 integer, as typed into an offset field.
// Surrounding whitespace is ignored.
func ParseOffset(s string) (Offset, error) {
	t := strings.TrimSpace(s)
	if len(t) == 0 {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidOffset)
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}
	return Offset(n), nil
}

// offsetFromInt64 converts n, failing where int is narrower than int64.
func offsetFromInt64(n int64) (Offset, error) {
	if int64(int(n)) != n {
		return 0, fmt.Errorf("%w: %d overflows int", ErrInvalidOffset, n)
	}
	return Offset(n), nil
}

// MarshalText implements encoding.TextMarshaler
func (o Offset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Offset) UnmarshalText(b []byte) error {
	parsed, err := ParseOffset(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Offsets are written as JSON numbers.
func (o Offset) MarshalJSON() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Offset) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = 0
		return nil
	}
	// Numeric value
	if len(b) > 0 && b[0] != '"' {
		n, err := strconv.Atoi(string(b))
		if err != nil {
			return fmt.Errorf("%w: invalid JSON value", ErrInvalidOffset)
		}
		*o = Offset(n)
		return nil
	}
	if len(b) < 2 || b[len(b)-1] != '"' {
		return fmt.Errorf("%w: invalid JSON string", ErrInvalidOffset)
	}
	return o.UnmarshalText(b[1 : len(b)-1])
}

// MarshalBinary implements encoding.BinaryMarshaler as 8 big-endian bytes.
func (o Offset) MarshalBinary() ([]byte, error) {
	n := int64(o)
	return []byte{
		byte(n >> 56),
		byte(n >> 48),
		byte(n >> 40),
		byte(n >> 32),
		byte(n >> 24),
		byte(n >> 16),
		byte(n >> 8),
		byte(n),
	}, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Values outside the
// range of int fail with ErrInvalidOffset.
func (o *Offset) UnmarshalBinary(b []byte) error {
	if len(b) != 8 {
		return fmt.Errorf("caesar: offset must be exactly 8 bytes, got %d", len(b))
	}
	n := int64(b[0])<<56 | int64(b[1])<<48 | int64(b[2])<<40 | int64(b[3])<<32 |
		int64(b[4])<<24 | int64(b[5])<<16 | int64(b[6])<<8 | int64(b[7])
	parsed, err := offsetFromInt64(n)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// GobEncode implements gob.GobEncoder.
func (o Offset) GobEncode() ([]byte, error) {
	return o.MarshalBinary()
}

// GobDecode implements gob.GobDecoder.
func (o *Offset) GobDecode(data []byte) error {
	return o.UnmarshalBinary(data)
}
