package scanmap

// A comparison element is a uint16. Real key bytes occupy 0x00..0xFF; a
// position past a key's end carries pastEnd|((p-len) mod 256), which can
// never equal a real byte and differs between keys whose lengths differ
// mod 256 at the same position. Queries go through the same functions, so
// at a past-end position a short query matches a short key only when
// their lengths agree mod 256.

// pastEnd flags a lane value as lying beyond the end of its key.
const pastEnd uint16 = 0x100

// effectiveValue returns the comparison element for k at position p.
func effectiveValue[T string | []byte](k T, p int) uint16 {
	if p < len(k) {
		return uint16(k[p])
	}
	return pastEnd | uint16((p-len(k))&0xff)
}

// foldValue is effectiveValue with ASCII case folding applied.
func foldValue[T string | []byte](k T, p int) uint16 {
	if p < len(k) {
		return uint16(toLower(k[p]))
	}
	return pastEnd | uint16((p-len(k))&0xff)
}

// toLower converts ASCII uppercase to lowercase.
func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 0x20
	}
	return b
}

// normalizeASCII lowercases s.
func normalizeASCII(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = toLower(s[i])
	}
	return string(b)
}

// equalFold reports whether a and b are equal under ASCII case folding.
func equalFold[T string | []byte](a string, b T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if toLower(a[i]) != toLower(b[i]) {
			return false
		}
	}
	return true
}

// keyTable holds the byte strings the solver and plan builder work from.
// In fold mode it holds the lowercased copies; Map keeps the originals
// for verification and iteration.
type keyTable struct {
	keys   []string
	maxLen int
}

func newKeyTable(keys []string, fold bool) *keyTable {
	kt := &keyTable{keys: keys}
	if fold {
		norm := make([]string, len(keys))
		for i, k := range keys {
			norm[i] = normalizeASCII(k)
		}
		kt.keys = norm
	}
	for _, k := range kt.keys {
		if len(k) > kt.maxLen {
			kt.maxLen = len(k)
		}
	}
	return kt
}

func (kt *keyTable) len() int { return len(kt.keys) }

// effective returns the comparison element for key i at position p.
func (kt *keyTable) effective(i, p int) uint16 {
	return effectiveValue(kt.keys[i], p)
}
