package classify

import "unicode/utf8"

// IsBinaryData reports whether the byte slice appears to contain binary
// data. Invalid UTF-8 or an embedded NUL byte marks the content binary.
func IsBinaryData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, currentByte := range data {
		if currentByte == 0 {
			return true
		}
	}
	return false
}
