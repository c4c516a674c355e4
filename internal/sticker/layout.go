// Package sticker lays out property stickers for preview and print.
package sticker

import (
	"strconv"
	"strings"
)

// Print size of one sticker card.
const (
	BaseWidth  = 4.0 // in
	BaseHeight = 2.5 // in
)

// Layout scales every sticker dimension by Scale. 1 is print size, values
// below 1 are used for on-screen previews. Scale is taken as given.
type Layout struct {
	Scale float64
}

// Dimensions are CSS lengths ready for the templates.
type Dimensions struct {
	Width     string
	Height    string
	Padding   string
	Gap       string
	Border    string
	QRSize    string
	TitleFont string
	BodyFont  string
	SmallFont string
	LineGap   string
}

func (l Layout) Dimensions() Dimensions {
	return Dimensions{
		Width:     l.length(BaseWidth, "in"),
		Height:    l.length(BaseHeight, "in"),
		Padding:   l.length(0.12, "in"),
		Gap:       l.length(0.08, "in"),
		Border:    l.length(1, "pt"),
		QRSize:    l.length(1.1, "in"),
		TitleFont: l.length(11, "pt"),
		BodyFont:  l.length(8, "pt"),
		SmallFont: l.length(6.5, "pt"),
		LineGap:   l.length(2, "pt"),
	}
}

func (l Layout) length(base float64, unit string) string {
	return strconv.FormatFloat(base*l.Scale, 'f', -1, 64) + unit
}

// ParseScale reads the ?scale= query value; anything unparsable is 1.
func ParseScale(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 1
	}
	return v
}
