package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseUint64(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"123", 123},
		{"  123\n", 123},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"-5", 0},
	}
	for _, tt := range tests {
		if got := ParseUint64(tt.in); got != tt.want {
			t.Errorf("ParseUint64(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in     string
		want   uint64
		wantOK bool
	}{
		{"05", 5, true},
		{"0x05", 5, true},
		{"0A", 10, true},
		{"ff", 255, true},
		{" 0x02 ", 2, true},
		{"", 0, false},
		{"0x", 0, false},
		{"zz", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseHex(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseHex(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestReadFileString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("122191872\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := ReadFileString(path)
	if err != nil {
		t.Fatal(err)
	}
	if s != "122191872\n" {
		t.Errorf("contents = %q", s)
	}

	if _, err := ReadFileString(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing file did not error")
	}
}
