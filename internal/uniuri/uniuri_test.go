package uniuri

import (
	"strings"
	"testing"
)

func TestNewLen(t *testing.T) {
	for _, length := range []int{0, 1, StdLen, SecretLen, 100} {
		s := NewLen(length)
		if len(s) != length {
			t.Errorf("NewLen(%d) returned string of length %d", length, len(s))
		}

		for _, c := range []byte(s) {
			if !strings.ContainsRune(string(StdChars), rune(c)) {
				t.Errorf("NewLen(%d) produced character %q outside the charset", length, c)
			}
		}
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		s := New()
		if seen[s] {
			t.Fatalf("duplicate random string %q", s)
		}

		seen[s] = true
	}
}

func TestNewLenCharsPanicsOnBadCharset(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for single-character charset")
		}
	}()

	NewLenChars(10, []byte("a"))
}
