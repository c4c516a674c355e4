package sticker

import (
	"fmt"

	"parms/internal/models"
)

// Sticker is the printable face of one property.
type Sticker struct {
	PropertyID      uint
	PropertyNumber  string
	ItemName        string
	SerialNo        string
	ModelNo         string
	AcquisitionDate string
	AcquisitionCost string
	Fund            string
	Location        string
	Condition       string
	Accountable     string
	LookupURL       string
	QRImage         string
}

func FromProperty(p *models.Property) Sticker {
	s := Sticker{
		PropertyID:      p.ID,
		PropertyNumber:  p.PropertyNumber,
		ItemName:        p.ItemName,
		SerialNo:        p.SerialNo,
		ModelNo:         p.ModelNo,
		AcquisitionCost: p.AcquisitionCost.StringFixed(2),
		Fund:            p.Fund,
		Location:        p.LocationName(),
		Condition:       p.ConditionName(),
		Accountable:     p.AccountableName(),
		LookupURL:       p.QRCodeURL,
		QRImage:         fmt.Sprintf("/properties/%d/qr.png", p.ID),
	}
	if p.AcquisitionDate != nil {
		s.AcquisitionDate = p.AcquisitionDate.Format("Jan 2, 2006")
	}
	return s
}

func FromProperties(props []models.Property) []Sticker {
	out := make([]Sticker, len(props))
	for i := range props {
		out[i] = FromProperty(&props[i])
	}
	return out
}

type Letterhead struct {
	Agency string
	Office string
}

// Document is what a Printer renders. A single sticker document sets
// Sticker; a sheet document sets Pages.
type Document struct {
	Title     string
	Layout    Layout
	Dims      Dimensions
	Header    Letterhead
	Pages     []Page
	Sticker   *Sticker
	AutoPrint bool
	ReturnTo  string
}

func (d Document) Count() int {
	if d.Sticker != nil {
		return 1
	}
	n := 0
	for _, p := range d.Pages {
		n += len(p.Items)
	}
	return n
}

func SingleDocument(head Letterhead, s Sticker, l Layout, autoPrint bool) Document {
	return Document{
		Title:     "Sticker " + s.PropertyNumber,
		Layout:    l,
		Dims:      l.Dimensions(),
		Header:    head,
		Sticker:   &s,
		AutoPrint: autoPrint,
	}
}

func SheetDocument(head Letterhead, stickers []Sticker) Document {
	l := Layout{Scale: 1}
	return Document{
		Title:     fmt.Sprintf("Stickers (%d)", len(stickers)),
		Layout:    l,
		Dims:      l.Dimensions(),
		Header:    head,
		Pages:     Pages(stickers),
		AutoPrint: true,
	}
}
