package core

import "testing"

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		extra  string
		want   string
	}{
		{"lowercase", "SKU", "", "sku"},
		{"trims whitespace", "  nombre  ", "", "nombre"},
		{"accent stripped", "Razón Social", "", "razon_social"},
		{"multiple accents", "categoría", "", "categoria"},
		{"specials become underscore", "price ($)", "", "price"},
		{"runs collapse", "stock - minimo", "", "stock_minimo"},
		{"leading and trailing trimmed", "__codigo__", "", "codigo"},
		{"enye stripped without extra", "contraseña", "", "contrasea"},
		{"enye survives as extra", "contraseña", "ñ", "contraseña"},
		{"uppercase enye survives as extra", "CONTRASEÑA", "ñ", "contraseña"},
		{"other accents still stripped with extra", "región", "ñ", "region"},
		{"digits kept", "bodega2", "", "bodega2"},
		{"empty input", "", "", ""},
		{"only specials", "(#$%)", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHeader(tt.header, tt.extra)
			if got != tt.want {
				t.Errorf("NormalizeHeader(%q, %q) = %q, want %q", tt.header, tt.extra, got, tt.want)
			}
		})
	}
}
