package util

import (
	"errors"
	"strings"
)

var ErrUnsafeFileName = errors.New("invalid file name")

// SafeFileName keeps letters, digits, dot, dash and underscore and replaces
// anything else with an underscore. Traversal and hidden names are rejected.
func SafeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" || strings.Contains(s, "..") || strings.HasPrefix(s, ".") {
		return "", ErrUnsafeFileName
	}
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
	return out, nil
}
