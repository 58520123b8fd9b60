package colour

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestClassifySource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "wallpaper.png")
	if err := os.WriteFile(file, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   string
		want SourceKind
	}{
		{"#fff", SourceHex},
		{"#2c4f7c", SourceHex},
		{"rgba(1, 2, 3, 0.5)", SourceRGBA},
		{"RGB(1 2 3)", SourceRGBA},
		{"0xff2c4f7c", SourceARGB},
		{"4281110396", SourceARGB},
		{"https://example.com/images/a.jpg?w=400", SourceURL},
		{"http://localhost:8080/a.png", SourceURL},
		{file, SourceFile},
		{dir, SourceInvalid},
		{"", SourceInvalid},
		{"blue", SourceInvalid},
		{"ftp://example.com/a.png", SourceInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ClassifySource(tt.in); got != tt.want {
				t.Errorf("ClassifySource(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		in      string
		want    ARGB
		wantErr error
	}{
		{in: "#fff", want: 0xffffffff},
		{in: "#2C4F7C", want: 0xff2c4f7c},
		{in: " #2c4f7c ", want: 0xff2c4f7c},
		{in: "#802c4f7c", want: 0xff2c4f7c},
		{in: "rgb(255, 0, 0)", want: 0xffff0000},
		{in: "rgba(44, 79, 124, 0.3)", want: 0xff2c4f7c},
		{in: "rgba(0 128 255 / 0.5)", want: 0xff0080ff},
		{in: "rgb(100%, 0%, 50%)", want: 0xffff0080},
		{in: "rgb(300, 0, 0)", want: 0xffff0000},
		{in: "0xff2c4f7c", want: 0xff2c4f7c},
		{in: "0x2c4f7c", want: 0xff2c4f7c},
		{in: "16777215", want: 0xffffffff},
		{in: "https://example.com/a.png", wantErr: ErrNotAColour},
		{in: "blue", wantErr: ErrInvalidSource},
		{in: "#12345", wantErr: ErrInvalidSource},
		{in: "#ggg", wantErr: ErrInvalidSource},
		{in: "#12345g", wantErr: ErrInvalidSource},
		{in: "#12 345", wantErr: ErrInvalidSource},
		{in: "#12345-", wantErr: ErrInvalidSource},
		{in: "#1 2", wantErr: ErrInvalidSource},
		{in: "#+1234567", wantErr: ErrInvalidSource},
		{in: "rgb(1, 2)", wantErr: ErrInvalidSource},
		{in: "99999999999", wantErr: ErrInvalidSource},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColour(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseColour(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColour(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColour(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	for _, in := range []string{"2c4f7c", "#12345g", "#12 345", "#12345-", "#-12", "#0x1234"} {
		if got, err := ParseHex(in); !errors.Is(err, ErrInvalidSource) {
			t.Errorf("ParseHex(%q) = %s, %v, want ErrInvalidSource", in, got, err)
		}
	}
}
