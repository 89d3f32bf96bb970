package scanner

import "unicode"

// IsCtrl reports whether r is an ASCII control character.
func IsCtrl[T byte | rune](r T) bool {
	return r < 32 || r == 0x7f
}

// IsSpace reports whether r has the Unicode White_Space property.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r)
}
