package format

import "testing"

func TestVariant_String(t *testing.T) {
	tests := []struct {
		variant Variant
		want    string
	}{
		{Legacy, "Legacy"},
		{Modern, "Modern"},
		{Unknown, "Unknown"},
		{Variant(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.variant.String(); got != tt.want {
			t.Errorf("Variant(%d).String() = %q, want %q", tt.variant, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		wantVariant Variant
		wantVersion string
	}{
		{"legacy v1", []byte("NOTEv1.0 rest of file"), Legacy, "1.0"},
		{"legacy v2", []byte("NOTEv2.0"), Legacy, "2.0"},
		{"legacy v3", []byte("NOTEv3.0"), Legacy, "3.0"},
		{"legacy unknown token", []byte("NOTEv9.9"), Legacy, "1.0"},
		{"legacy truncated token", []byte("NOTEv1"), Legacy, "1.0"},
		{"legacy bare signature", []byte("NOTE"), Legacy, "1.0"},
		{"modern", append([]byte("noteSN_FILE_VER_20230015"), 0x00, 0xAB), Modern, "20230015"},
		{"modern no terminator", []byte("noteSN_FILE_VER_20230015"), Modern, "20230015"},
		{"modern digits stop at non-digit", []byte("noteSN_FILE_VER_2023X"), Modern, "2023"},
		{"modern empty version", append([]byte("noteSN_FILE_VER_"), 0x00), Modern, ""},
		{"unknown", []byte("SNSV something"), Unknown, ""},
		{"empty", nil, Unknown, ""},
		{"short", []byte("NO"), Unknown, ""},
		{"lowercase note is not legacy", []byte("notebook"), Unknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.data)
			if got.Variant != tt.wantVariant {
				t.Errorf("Detect() variant = %v, want %v", got.Variant, tt.wantVariant)
			}
			if got.Version != tt.wantVersion {
				t.Errorf("Detect() version = %q, want %q", got.Version, tt.wantVersion)
			}
		})
	}
}

func TestDetect_NeverFails(t *testing.T) {
	// Adversarial prefixes must classify as some variant without panicking.
	inputs := [][]byte{
		{},
		{0x00},
		{0xFF, 0xFF, 0xFF, 0xFF},
		[]byte("NOTE"),
		[]byte("noteSN_FILE_VER_"),
	}
	for _, in := range inputs {
		_ = Detect(in)
	}
}
