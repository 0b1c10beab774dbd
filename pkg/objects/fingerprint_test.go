package objects

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
)

var fingerprintPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

func TestComputeFingerprint(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Fingerprint
	}{
		{"empty input", "", EmptyFingerprint},
		{"hello", "hello", "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{"file1", "file1", ComputeFingerprint([]byte("file1"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFingerprint([]byte(tt.in))
			if got != tt.want {
				t.Errorf("ComputeFingerprint(%q) = %s, want %s", tt.in, got, tt.want)
			}
			if !fingerprintPattern.MatchString(got.String()) {
				t.Errorf("fingerprint %q is not 40 lowercase hex characters", got)
			}
		})
	}
}

func TestParseFingerprint(t *testing.T) {
	if _, e := ParseFingerprint(string(EmptyFingerprint)); e != nil {
		t.Fatalf("valid fingerprint rejected: %v", e)
	}

	bad := []string{
		"",
		"abc",
		strings.ToUpper(string(EmptyFingerprint)),
		strings.Repeat("g", 40),
		string(EmptyFingerprint) + "0",
	}
	for _, s := range bad {
		_, e := ParseFingerprint(s)
		if !errors.Is(e, err.ErrMalformedRecord) {
			t.Errorf("ParseFingerprint(%q) error = %v, want malformed record", s, e)
		}
	}
}

func TestParseOptionalFingerprint(t *testing.T) {
	f, e := ParseOptionalFingerprint("")
	if e != nil || !f.IsZero() {
		t.Fatalf("ParseOptionalFingerprint(\"\") = %q, %v", f, e)
	}
	if _, e := ParseOptionalFingerprint("nope"); e == nil {
		t.Fatal("expected error for invalid non-empty input")
	}
}

func TestShort(t *testing.T) {
	if got := EmptyFingerprint.Short(); got != "da39a3e" {
		t.Errorf("Short() = %q", got)
	}
	if got := Fingerprint("abc").Short(); got != "abc" {
		t.Errorf("Short() on a short value = %q", got)
	}
}

func TestParseObjectType(t *testing.T) {
	for _, s := range []string{"blob", "tree", "commit"} {
		if _, e := ParseObjectType(s); e != nil {
			t.Errorf("ParseObjectType(%q): %v", s, e)
		}
	}
	if _, e := ParseObjectType("tag"); !errors.Is(e, err.ErrMalformedRecord) {
		t.Errorf("unknown type error = %v", e)
	}
}
