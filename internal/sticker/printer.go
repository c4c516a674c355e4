package sticker

import (
	"context"
	"errors"
)

var ErrEmptyDocument = errors.New("nothing to print")

type Printed struct {
	Pages    int
	Stickers int
}

// PrintError is returned by every Printer failure.
type PrintError struct {
	Op  string
	Err error
}

func (e *PrintError) Error() string { return "sticker " + e.Op + ": " + e.Err.Error() }

func (e *PrintError) Unwrap() error { return e.Err }

type Printer interface {
	Print(ctx context.Context, doc Document) (Printed, error)
}

// Renderer is the output target; *fiber.Ctx satisfies it.
type Renderer interface {
	Render(name string, bind interface{}, layouts ...string) error
}

const (
	singleTemplate = "stickers/single"
	sheetTemplate  = "stickers/sheet"
	printLayout    = "layouts/print"
)

// HTMLPrinter renders the document as a print-ready page. The page calls
// window.print once every image has loaded and closes itself afterwards.
type HTMLPrinter struct {
	Target Renderer
}

func (p HTMLPrinter) Print(ctx context.Context, doc Document) (Printed, error) {
	if err := ctx.Err(); err != nil {
		return Printed{}, &PrintError{Op: "print", Err: err}
	}
	name := sheetTemplate
	switch {
	case doc.Sticker != nil:
		name = singleTemplate
	case len(doc.Pages) == 0:
		return Printed{}, &PrintError{Op: "print", Err: ErrEmptyDocument}
	}
	if err := p.Target.Render(name, doc, printLayout); err != nil {
		return Printed{}, &PrintError{Op: "render " + name, Err: err}
	}
	return Printed{Pages: max(len(doc.Pages), 1), Stickers: doc.Count()}, nil
}
