package sticker

import (
	"context"
	"errors"
	"testing"
)

type fakePrinter struct {
	calls int
	docs  []Document
	err   error
}

func (f *fakePrinter) Print(_ context.Context, doc Document) (Printed, error) {
	f.calls++
	f.docs = append(f.docs, doc)
	if f.err != nil {
		return Printed{}, &PrintError{Op: "print", Err: f.err}
	}
	return Printed{Pages: len(doc.Pages), Stickers: doc.Count()}, nil
}

var head = Letterhead{Agency: "Agency", Office: "Office"}

func TestBulkPrintFiresOnceOnOpen(t *testing.T) {
	p := &fakePrinter{}
	job := NewBulkPrint(p, head)
	job.Select(stickers(9))

	out, err := job.SetOpen(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("expected 1 print, got %d", p.calls)
	}
	if !out.Printed || !out.Cleared || out.Pages != 2 {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if job.IsOpen() {
		t.Error("job should close after printing")
	}
	if len(job.Selection()) != 0 {
		t.Error("selection should be cleared after a successful print")
	}
	if got := p.docs[0].Pages[1].Items[0].PropertyID; got != 9 {
		t.Errorf("second page should start with item 9, got %d", got)
	}
}

func TestBulkPrintEmptySelectionNeverPrints(t *testing.T) {
	p := &fakePrinter{}
	job := NewBulkPrint(p, head)

	out, err := job.SetOpen(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if p.calls != 0 || out.Printed {
		t.Fatalf("empty selection must not print, got %d calls", p.calls)
	}
	if !job.IsOpen() {
		t.Fatal("job should stay open with nothing to print")
	}

	// selecting while open is not an open transition
	job.Select(stickers(3))
	if _, err := job.SetOpen(context.Background(), true); err != nil {
		t.Fatal(err)
	}
	if p.calls != 0 {
		t.Fatalf("selection changes while open must not print, got %d calls", p.calls)
	}

	// close and reopen prints the new selection
	if _, err := job.SetOpen(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if _, err := job.SetOpen(context.Background(), true); err != nil {
		t.Fatal(err)
	}
	if p.calls != 1 {
		t.Fatalf("reopen should print once, got %d calls", p.calls)
	}
}

func TestBulkPrintFailureKeepsSelection(t *testing.T) {
	p := &fakePrinter{err: errors.New("printer offline")}
	job := NewBulkPrint(p, head)
	job.Select(stickers(2))

	out, err := job.SetOpen(context.Background(), true)
	var perr *PrintError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PrintError, got %v", err)
	}
	if out.Printed || out.Cleared {
		t.Fatalf("failed print reported as done: %+v", out)
	}
	if job.IsOpen() {
		t.Error("job should close after a failed print")
	}
	if len(job.Selection()) != 2 {
		t.Errorf("selection should survive a failed print, got %d", len(job.Selection()))
	}
	if p.calls != 1 {
		t.Errorf("failed print must not be retried, got %d calls", p.calls)
	}
}

func TestSelectCopiesInput(t *testing.T) {
	job := NewBulkPrint(&fakePrinter{}, head)
	in := stickers(2)
	job.Select(in)
	in[0].PropertyID = 42
	if job.Selection()[0].PropertyID != 1 {
		t.Fatal("selection shares memory with the caller")
	}
}
