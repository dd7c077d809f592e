package bpe

import "strings"

var (
	// bytesToUnicode maps byte values to printable unicode characters
	bytesToUnicode map[byte]rune
	// unicodeToBytes maps those characters back to byte values
	unicodeToBytes map[rune]byte
)

func init() {
	bytesToUnicode, unicodeToBytes = createByteMappings()
}

// createByteMappings builds the reversible GPT-2 byte-to-unicode mapping
// used to print arbitrary token bytes as text. Printable bytes map to
// themselves; the rest are shifted to 256+n.
func createByteMappings() (map[byte]rune, map[rune]byte) {
	bs := make([]int, 0, 256)

	// Printable ASCII (! to ~)
	for i := '!'; i <= '~'; i++ {
		bs = append(bs, int(i))
	}
	// Extended range (¡ to ¬)
	for i := '¡'; i <= '¬'; i++ {
		bs = append(bs, int(i))
	}
	// Extended range (® to ÿ)
	for i := '®'; i <= 'ÿ'; i++ {
		bs = append(bs, int(i))
	}

	cs := make([]int, len(bs))
	copy(cs, bs)

	n := 0
	for b := 0; b < 256; b++ {
		found := false
		for _, val := range bs {
			if val == b {
				found = true
				break
			}
		}
		if !found {
			bs = append(bs, b)
			cs = append(cs, 256+n)
			n++
		}
	}

	bToU := make(map[byte]rune, 256)
	uToB := make(map[rune]byte, 256)
	for i, b := range bs {
		bToU[byte(b)] = rune(cs[i])
		uToB[rune(cs[i])] = byte(b)
	}

	return bToU, uToB
}

// EncodeTokenString renders arbitrary token bytes as a printable string
// using the reversible byte-level mapping. Serialized vocabularies and
// merge lists use this form.
func EncodeTokenString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))

	for _, b := range data {
		sb.WriteRune(bytesToUnicode[b])
	}

	return sb.String()
}

// DecodeTokenString converts a printable token string back to the raw
// bytes it stands for. Runes outside the mapping are skipped.
func DecodeTokenString(token string) []byte {
	result := make([]byte, 0, len(token))

	for _, r := range token {
		if b, ok := unicodeToBytes[r]; ok {
			result = append(result, b)
		}
	}

	return result
}
