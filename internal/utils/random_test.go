package utils

import (
	"strings"
	"testing"
)

func TestRandomPassword_LengthAndClasses(t *testing.T) {
	pw, err := RandomPassword(16)
	if err != nil {
		t.Fatalf("random password: %v", err)
	}
	if len(pw) != 16 {
		t.Fatalf("length %d, want 16", len(pw))
	}
	for _, class := range []string{randLower, randUpper, randDigits, randSymbols} {
		if !strings.ContainsAny(pw, class) {
			t.Fatalf("password %q missing class %q", pw, class)
		}
	}
}

func TestRandomPassword_MinimumLength(t *testing.T) {
	pw, err := RandomPassword(3)
	if err != nil {
		t.Fatalf("random password: %v", err)
	}
	if len(pw) != 8 {
		t.Fatalf("length %d, want floor of 8", len(pw))
	}
}

func TestRandomPassword_NotConstant(t *testing.T) {
	a, _ := RandomPassword(16)
	b, _ := RandomPassword(16)
	if a == b {
		t.Fatal("two generated passwords were identical")
	}
}
