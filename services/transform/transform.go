// Package transform holds the pure text transformations behind the text commands.
// Every function is total: it accepts any string, including the empty one.
package transform

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

// Reverse reverses the sequence of Unicode scalar values
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func Upper(s string) string {
	return strings.ToUpper(s)
}

func Lower(s string) string {
	return strings.ToLower(s)
}

var leetReplacer = strings.NewReplacer(
	"a", "4", "A", "4",
	"e", "3", "E", "3",
	"i", "1", "I", "1",
	"o", "0", "O", "0",
	"s", "5", "S", "5",
	"t", "7", "T", "7",
)

// Leet substitutes a4 e3 i1 o0 s5 t7 regardless of case
func Leet(s string) string {
	return leetReplacer.Replace(s)
}

// Binary renders each code point as zero-padded 8-bit binary, space separated
func Binary(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("%08b", r))
	}
	return strings.Join(parts, " ")
}

var morseTable = map[rune]string{
	'a': ".-", 'b': "-...", 'c': "-.-.", 'd': "-..", 'e': ".", 'f': "..-.",
	'g': "--.", 'h': "....", 'i': "..", 'j': ".---", 'k': "-.-", 'l': ".-..",
	'm': "--", 'n': "-.", 'o': "---", 'p': ".--.", 'q': "--.-", 'r': ".-.",
	's': "...", 't': "-", 'u': "..-", 'v': "...-", 'w': ".--", 'x': "-..-",
	'y': "-.--", 'z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	' ': "/",
}

// Morse encodes letters, digits and spaces; anything else passes through unchanged
func Morse(s string) string {
	lowered := strings.ToLower(s)
	parts := make([]string, 0, len(lowered))
	for _, r := range lowered {
		if code, ok := morseTable[r]; ok {
			parts = append(parts, code)
		} else {
			parts = append(parts, string(r))
		}
	}
	return strings.Join(parts, " ")
}

// Rot13 rotates ASCII letters by 13 within their own case
func Rot13(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+13)%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+13)%26
		default:
			return r
		}
	}, s)
}

// Mock alternates lower and upper case by rune index, starting lower
func Mock(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if i%2 == 0 {
			runes[i] = unicode.ToLower(r)
		} else {
			runes[i] = unicode.ToUpper(r)
		}
	}
	return string(runes)
}

// Emojify turns letters into regional indicator emoji and widens whitespace
func Emojify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteString(":regional_indicator_")
			b.WriteRune(r)
			b.WriteString(":")
		case unicode.IsSpace(r):
			b.WriteString("   ")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

const (
	fullwidthOffset  = 0xFEE0
	ideographicSpace = '\u3000'
)

// Vaporwave maps ASCII into the fullwidth block and spaces to ideographic spaces
func Vaporwave(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return ideographicSpace
		case r < 128:
			return r + fullwidthOffset
		default:
			return r
		}
	}, s)
}

// Clap joins words with a clapping hands emoji
func Clap(words []string) string {
	return strings.Join(words, " 👏 ")
}

// Space joins words with ideographic spaces
func Space(words []string) string {
	return strings.Join(words, string(ideographicSpace))
}

// zalgoMarks is the Combining Diacritical Marks block, U+0300 to U+036F
var zalgoMarks = func() []rune {
	marks := make([]rune, 0, 0x70)
	for r := rune(0x0300); r <= 0x036F; r++ {
		marks = append(marks, r)
	}
	return marks
}()

// Zalgo decorates every rune with one to five random combining marks.
// A nil rng uses the global source.
func Zalgo(s string, rng *rand.Rand) string {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	var b strings.Builder
	for _, r := range s {
		b.WriteRune(r)
		for n := intN(5) + 1; n > 0; n-- {
			b.WriteRune(zalgoMarks[intN(len(zalgoMarks))])
		}
	}
	return b.String()
}

// IsZalgoMark reports whether r is one of the combining marks Zalgo emits
func IsZalgoMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}
