package sticker

import "testing"

func TestLayoutScalesEveryDimension(t *testing.T) {
	tests := []struct {
		scale  float64
		width  string
		height string
		qr     string
		font   string
	}{
		{1, "4in", "2.5in", "1.1in", "11pt"},
		{0.5, "2in", "1.25in", "0.55in", "5.5pt"},
		{2, "8in", "5in", "2.2in", "22pt"},
	}
	for _, tt := range tests {
		d := Layout{Scale: tt.scale}.Dimensions()
		if d.Width != tt.width || d.Height != tt.height {
			t.Errorf("scale %g: got %s x %s", tt.scale, d.Width, d.Height)
		}
		if d.QRSize != tt.qr {
			t.Errorf("scale %g: qr %s, want %s", tt.scale, d.QRSize, tt.qr)
		}
		if d.TitleFont != tt.font {
			t.Errorf("scale %g: title font %s, want %s", tt.scale, d.TitleFont, tt.font)
		}
	}
}

func TestLayoutDoesNotClamp(t *testing.T) {
	if d := (Layout{Scale: 0}).Dimensions(); d.Width != "0in" {
		t.Errorf("scale 0: width %s", d.Width)
	}
	if d := (Layout{Scale: 10}).Dimensions(); d.Width != "40in" {
		t.Errorf("scale 10: width %s", d.Width)
	}
}

func TestParseScale(t *testing.T) {
	tests := map[string]float64{
		"1":    1,
		"0.75": 0.75,
		" 0.5": 0.5,
		"abc":  1,
		"":     1,
		"3":    3,
	}
	for in, want := range tests {
		if got := ParseScale(in); got != want {
			t.Errorf("ParseScale(%q) = %g, want %g", in, got, want)
		}
	}
}
