package reader

import (
	"bytes"
	"testing"
)

func TestDetectContent(t *testing.T) {
	varied := []byte("noteSN_FILE_VER_20230015")
	varied = append(varied, bytes.Repeat([]byte{0}, 8)...)
	for i := 0; i < 64; i++ {
		varied = append(varied, byte(i*7+3))
	}

	headerOnly := []byte("SNSV")
	headerOnly = append(headerOnly, bytes.Repeat([]byte{0}, 200)...)

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"nil", nil, false},
		{"too short", []byte("NOTEv2.0"), false},
		{"all zeros", bytes.Repeat([]byte{0}, 100), false},
		{"repeated byte", bytes.Repeat([]byte{0xAA}, 100), true},
		{"header then zeros", headerOnly, false},
		{"header then strokes", varied, true},
		{"raw stroke bytes", bytes.Repeat([]byte{0x61, 0x62}, 32), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectContent(tt.data); got != tt.want {
				t.Errorf("DetectContent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistinctCapsAtBufferLength(t *testing.T) {
	if got := distinct([]byte{1, 2, 3}, 100); got != 3 {
		t.Errorf("distinct() = %d, want 3", got)
	}
}
