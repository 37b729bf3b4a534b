package pkg

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Apple", "apple"},
		{"iPhone 15 Pro", "iphone-15-pro"},
		{"  OnePlus  Nord  ", "oneplus-nord"},
		{"Sony (Xperia)", "sony-xperia"},
		{"---", ""},
		{"", ""},
		{"Café Noir", "café-noir"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
