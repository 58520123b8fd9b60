package security

import (
	"net/netip"
	"path/filepath"
	"testing"
)

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		allowPrivate bool
		wantErr      bool
	}{
		{name: "public https", url: "https://example.com/wall.png"},
		{name: "public http", url: "http://example.com/wall.png"},
		{name: "empty", url: "", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com/wall.png", wantErr: true},
		{name: "file scheme", url: "file:///etc/passwd", wantErr: true},
		{name: "localhost", url: "http://localhost:8080/a.png", wantErr: true},
		{name: "loopback ip", url: "http://127.0.0.1/a.png", wantErr: true},
		{name: "private range", url: "http://192.168.1.10/a.png", wantErr: true},
		{name: "private 172", url: "http://172.20.0.5/a.png", wantErr: true},
		{name: "link local", url: "http://169.254.169.254/latest", wantErr: true},
		{name: "ipv6 loopback", url: "http://[::1]/a.png", wantErr: true},
		{name: "ipv4 mapped loopback", url: "http://[::ffff:127.0.0.1]/a.png", wantErr: true},
		{name: "private allowed", url: "http://127.0.0.1/a.png", allowPrivate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageURL(tt.url, tt.allowPrivate)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestIsPrivateAddr(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"192.168.0.1", true},
		{"169.254.169.254", true},
		{"0.0.0.0", true},
		{"::1", true},
		{"fe80::1", true},
		{"fd00::1", true},
		{"::ffff:10.0.0.1", true},
		{"93.184.216.34", false},
		{"2606:2800:220:1::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := IsPrivateAddr(netip.MustParseAddr(tt.addr)); got != tt.want {
				t.Errorf("IsPrivateAddr(%s) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "plain file", path: "scheme.css"},
		{name: "nested file", path: "themes/scheme.css"},
		{name: "absolute", path: filepath.Join(base, "x.json")},
		{name: "traversal", path: "../escape.css", wantErr: true},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path, base)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
