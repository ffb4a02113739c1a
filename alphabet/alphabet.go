// Package alphabet provides the fixed 94-character table used by the caesar cipher.
// Uppercase letters come first, then lowercase letters, digits, and 32 ASCII symbols.
// Lookups are case-sensitive.
package alphabet

import "fmt"

// Chars is the ordered alphabet. Position in this string is the character's index.
const Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"~`!@#$%^&*()-_=+[]{}\\|;:'\"<>,.?/"

// Size is the number of characters in the alphabet.
const Size = 94

var encode [Size]byte

var decode [128]int8

func init() {
	if len(Chars) != Size {
		panic(fmt.Sprintf("caesar: alphabet must be %d bytes long, got %d", Size, len(Chars)))
	}
	for i := range decode {
		decode[i] = -1
	}
	for i := 0; i < Size; i++ {
		c := Chars[i]
		if c >= 128 {
			panic(fmt.Sprintf("caesar: alphabet byte %#x is not ASCII", c))
		}
		if decode[c] != -1 {
			panic(fmt.Sprintf("caesar: alphabet character %q repeated", c))
		}
		encode[i] = c
		decode[c] = int8(i)
	}
}

// Index returns the position of r in the alphabet, or -1 if r is not a member.
func Index(r rune) int {
	if r < 0 || r >= 128 {
		return -1
	}
	return int(decode[r])
}

// At returns the character at position i. It panics if i is outside [0, Size).
func At(i int) byte {
	return encode[i]
}

// Contains reports whether r is a member of the alphabet.
func Contains(r rune) bool {
	return Index(r) >= 0
}
