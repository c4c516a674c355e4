package sticker

import (
	"context"
	"sync"
)

// BulkPrint holds the stickers picked for printing and the open state of
// the print job. Printing happens once per closed to open transition.
type BulkPrint struct {
	mu        sync.Mutex
	printer   Printer
	header    Letterhead
	selection []Sticker
	open      bool

	// ReturnTo is copied onto every printed document.
	ReturnTo string
}

type Outcome struct {
	Printed bool
	Pages   int
	Cleared bool
}

func NewBulkPrint(p Printer, header Letterhead) *BulkPrint {
	return &BulkPrint{printer: p, header: header}
}

// Select replaces the selection. It never starts a print, even while open.
func (b *BulkPrint) Select(items []Sticker) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = append([]Sticker(nil), items...)
}

func (b *BulkPrint) Selection() []Sticker {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Sticker(nil), b.selection...)
}

func (b *BulkPrint) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// SetOpen opens or closes the job. Opening a closed job with a non-empty
// selection prints it; the job closes when printing finishes and the
// selection is cleared only when printing succeeded.
func (b *BulkPrint) SetOpen(ctx context.Context, open bool) (Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !open || b.open {
		b.open = open
		return Outcome{}, nil
	}
	b.open = true
	if len(b.selection) == 0 {
		return Outcome{}, nil
	}

	doc := SheetDocument(b.header, b.selection)
	doc.ReturnTo = b.ReturnTo
	printed, err := b.printer.Print(ctx, doc)
	b.open = false
	if err != nil {
		return Outcome{}, err
	}
	b.selection = nil
	return Outcome{Printed: true, Pages: printed.Pages, Cleared: true}, nil
}
