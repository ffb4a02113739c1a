package caesar

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/paraglidehq/caesar/alphabet"
)

func TestIndexOf(t *testing.T) {
	tests := []struct {
		c    rune
		want int
	}{
		{'A', 0},
		{'B', 1},
		{'Z', 25},
		{'a', 26},
		{'0', 52},
		{'/', 93},
		{' ', -1},
		{'\n', -1},
		{'é', -1},
	}
	for _, tt := range tests {
		if got := IndexOf(tt.c); got != tt.want {
			t.Errorf("IndexOf(%q) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		want   string
	}{
		{"AB", 1, "BC"},
		{"Z", 1, "a"},
		{"z", 1, "0"},
		{"9", 1, "~"},
		{"/", 1, "A"},
		{"A", 94, "A"},
		{"A", -1, "/"},
		{"abc", -95, "Zab"},
		{"xyz/", 47, "CDEu"},
		{"Tung", 1000, "]MF?"},
		{"Hello, World!", 5, "MjqqtB btwqi^"},
		{"Caesar Cipher", 3, "Fdhvdu Flskhu"},
		{"The quick brown fox", 13, "gur 37vpx o4190 s1~"},
		{"", 7, ""},
	}
	for _, tt := range tests {
		if got := Encode(tt.text, tt.offset); got != tt.want {
			t.Errorf("Encode(%q, %d) = %q, want %q", tt.text, tt.offset, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		want   string
	}{
		{"BC", 1, "AB"},
		{"a", 1, "Z"},
		{"A", 1, "/"},
		{"A", 93, "B"},
		{"A", 94, "A"},
		{"MjqqtB btwqi^", 5, "Hello, World!"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := Decode(tt.text, tt.offset); got != tt.want {
			t.Errorf("Decode(%q, %d) = %q, want %q", tt.text, tt.offset, got, tt.want)
		}
	}
}

func TestRoundtrip(t *testing.T) {
	texts := []string{
		alphabet.Chars,
		"Hello,World!",
		"'\"\\|;:<>?/",
		"",
	}
	offsets := []int{0, 1, 5, 47, 93, 94, 95, 1000, -1, -93, -94, -1000, math.MaxInt, math.MinInt, math.MaxInt32}
	for _, text := range texts {
		for _, k := range offsets {
			enc := Encode(text, k)
			if got := Decode(enc, k); got != text {
				t.Errorf("Decode(Encode(%q, %d), %d) = %q", text, k, k, got)
			}
		}
	}
}

func TestRoundtripHelloWorld(t *testing.T) {
	// Comma and exclamation mark are alphabet members; only the space is not,
	// and a space decodes back to a space.
	got := Decode(Encode("Hello, World!", 5), 5)
	if got != "Hello, World!" {
		t.Errorf("roundtrip = %q, want %q", got, "Hello, World!")
	}
}

func TestIdentityOffset(t *testing.T) {
	if got := Encode(alphabet.Chars, 0); got != alphabet.Chars {
		t.Errorf("Encode(alphabet, 0) = %q", got)
	}
	if got := Decode(alphabet.Chars, 0); got != alphabet.Chars {
		t.Errorf("Decode(alphabet, 0) = %q", got)
	}
	// Out-of-alphabet runes are still replaced at offset 0.
	if got := Encode("a\tb c\n", 0); got != "a b c " {
		t.Errorf("Encode(%q, 0) = %q", "a\tb c\n", got)
	}
}

func TestPeriodicity(t *testing.T) {
	text := alphabet.Chars + " mixed Text 123 !"
	for k := -300; k <= 300; k++ {
		if Encode(text, k) != Encode(text, k+alphabet.Size) {
			t.Fatalf("Encode(text, %d) != Encode(text, %d)", k, k+alphabet.Size)
		}
		if Decode(text, k) != Decode(text, k+alphabet.Size) {
			t.Fatalf("Decode(text, %d) != Decode(text, %d)", k, k+alphabet.Size)
		}
	}
}

func TestExtremeOffsets(t *testing.T) {
	text := alphabet.Chars
	for _, k := range []int{math.MaxInt, math.MinInt, math.MinInt + 1} {
		want := Encode(text, mod(k, alphabet.Size))
		if got := Encode(text, k); got != want {
			t.Errorf("Encode(text, %d) = %q, want %q", k, got, want)
		}
		if got := Decode(text, k); got != Encode(text, -mod(k, alphabet.Size)) {
			t.Errorf("Decode(text, %d) = %q", k, got)
		}
	}
}

func TestOutOfAlphabet(t *testing.T) {
	inputs := []string{" ", "\n", "\t", "é", "世", "😀", "\x00", "\x7f", "\xff"}
	for _, in := range inputs {
		for _, k := range []int{0, 1, 50, -7} {
			if got := Encode(in, k); got != " " {
				t.Errorf("Encode(%q, %d) = %q, want single space", in, k, got)
			}
			if got := Decode(in, k); got != " " {
				t.Errorf("Decode(%q, %d) = %q, want single space", in, k, got)
			}
		}
	}
}

func TestLengthPreserved(t *testing.T) {
	text := "naïve café – 東京 ok"
	got := Encode(text, 11)
	if want := len([]rune(text)); len(got) != want {
		t.Errorf("len(Encode(%q)) = %d, want %d", text, len(got), want)
	}
}

func TestLossyRoundtrip(t *testing.T) {
	got := Decode(Encode("a\nb", 3), 3)
	if got != "a b" {
		t.Errorf("roundtrip = %q, want %q", got, "a b")
	}
}

func TestMonoalphabetic(t *testing.T) {
	got := Encode("aaaa", 9)
	if strings.Count(got, got[:1]) != 4 {
		t.Errorf("Encode(%q) = %q, want one repeated character", "aaaa", got)
	}
}

func TestApply(t *testing.T) {
	t.Run("Encode", func(t *testing.T) {
		got, err := Apply(ModeEncode, "AB", 1)
		if err != nil {
			t.Fatal(err)
		}
		if got != "BC" {
			t.Errorf("Apply(encode) = %q, want %q", got, "BC")
		}
	})
	t.Run("Decode", func(t *testing.T) {
		got, err := Apply(ModeDecode, "BC", 1)
		if err != nil {
			t.Fatal(err)
		}
		if got != "AB" {
			t.Errorf("Apply(decode) = %q, want %q", got, "AB")
		}
	})
	t.Run("Invalid", func(t *testing.T) {
		_, err := Apply(Mode("rot13"), "AB", 1)
		if !errors.Is(err, ErrInvalidMode) {
			t.Errorf("Apply(rot13) err = %v, want ErrInvalidMode", err)
		}
	})
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"encode", ModeEncode},
		{"DECODE", ModeDecode},
		{" Encode ", ModeEncode},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ParseMode("encrypt"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("ParseMode(encrypt) err = %v, want ErrInvalidMode", err)
	}
}

func TestOffsetNormalize(t *testing.T) {
	tests := []struct {
		o    Offset
		want int
	}{
		{0, 0},
		{1, 1},
		{93, 93},
		{94, 0},
		{95, 1},
		{-1, 93},
		{-94, 0},
		{-95, 93},
		{Offset(math.MaxInt), 35},
		{Offset(math.MinInt), 58},
	}
	for _, tt := range tests {
		if got := tt.o.Normalize(); got != tt.want {
			t.Errorf("Offset(%d).Normalize() = %d, want %d", tt.o, got, tt.want)
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	const numGoroutines = 50

	text := strings.Repeat(alphabet.Chars, 10)
	want := Encode(text, 17)

	var wg sync.WaitGroup
	errs := make(chan string, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := Encode(text, 17); got != want {
					errs <- got
					return
				}
				if got := Decode(want, 17); got != text {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent result mismatch: %q", got)
	}
}

func BenchmarkEncode(b *testing.B) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Encode(text, 13)
	}
}

func BenchmarkDecodeParallel(b *testing.B) {
	text := Encode(strings.Repeat("Pack my box with five dozen liquor jugs! ", 20), 13)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = Decode(text, 13)
		}
	})
}
