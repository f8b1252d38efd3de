package object

import "testing"

func TestHashIsValid(t *testing.T) {
	valid := Hash("0123456789abcdef0123456789abcdef01234567")
	if !valid.IsValid() {
		t.Fatalf("IsValid(%q) = false, want true", valid)
	}

	invalid := []Hash{
		"",
		"0123456789abcdef0123456789abcdef0123456",   // 39
		"0123456789abcdef0123456789abcdef012345678", // 41
		"0123456789ABCDEF0123456789abcdef01234567",  // uppercase
		"0123456789abcdefg123456789abcdef01234567",  // g
		"0123456789abcdef 123456789abcdef01234567",  // space
		"../../../../etc/passwd0000000000000000000", // traversal attempt
	}
	for _, h := range invalid {
		if h.IsValid() {
			t.Fatalf("IsValid(%q) = true, want false", h)
		}
	}
}
