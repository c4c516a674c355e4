package sticker

import (
	"fmt"
	"testing"
)

func stickers(n int) []Sticker {
	out := make([]Sticker, n)
	for i := range out {
		out[i] = Sticker{PropertyID: uint(i + 1), PropertyNumber: fmt.Sprintf("PN-%03d", i+1)}
	}
	return out
}

func TestPaginateCounts(t *testing.T) {
	tests := []struct {
		n     int
		pages int
		last  int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{8, 1, 8},
		{9, 2, 1},
		{16, 2, 8},
		{17, 3, 1},
	}
	for _, tt := range tests {
		got := Paginate(stickers(tt.n), PageCapacity)
		if len(got) != tt.pages {
			t.Errorf("N=%d: expected %d pages, got %d", tt.n, tt.pages, len(got))
			continue
		}
		if tt.pages > 0 && len(got[len(got)-1]) != tt.last {
			t.Errorf("N=%d: expected %d items on last page, got %d", tt.n, tt.last, len(got[len(got)-1]))
		}
	}
}

func TestPaginateKeepsSelectionOrder(t *testing.T) {
	in := stickers(19)
	// selection order is not sorted
	in[0], in[18] = in[18], in[0]

	var flat []Sticker
	for k, page := range Paginate(in, PageCapacity) {
		for i, s := range page {
			if want := in[k*PageCapacity+i]; s.PropertyID != want.PropertyID {
				t.Fatalf("page %d slot %d: expected %d, got %d", k, i, want.PropertyID, s.PropertyID)
			}
		}
		flat = append(flat, page...)
	}
	if len(flat) != len(in) {
		t.Fatalf("expected %d items after concatenation, got %d", len(in), len(flat))
	}
}

func TestPaginateDoesNotAlias(t *testing.T) {
	pages := Paginate(stickers(9), PageCapacity)
	pages[0] = append(pages[0], Sticker{PropertyID: 99})
	if pages[1][0].PropertyID != 9 {
		t.Fatalf("appending to page 0 overwrote page 1: %+v", pages[1][0])
	}
}

func TestPageCellsAlwaysFull(t *testing.T) {
	pages := Pages(stickers(9))
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Last || !pages[1].Last {
		t.Fatalf("only the final page may be last: %v %v", pages[0].Last, pages[1].Last)
	}

	cells := pages[1].Cells()
	if len(cells) != PageCapacity {
		t.Fatalf("expected %d cells, got %d", PageCapacity, len(cells))
	}
	if cells[0] == nil || cells[0].PropertyID != 9 {
		t.Fatalf("first cell should hold item 9, got %+v", cells[0])
	}
	for i := 1; i < PageCapacity; i++ {
		if cells[i] != nil {
			t.Errorf("cell %d should be empty", i)
		}
	}

	rows := pages[1].CellRows()
	if len(rows) != Rows || len(rows[0]) != Columns {
		t.Fatalf("expected %dx%d grid, got %d rows", Rows, Columns, len(rows))
	}
}

func TestPagesNumbering(t *testing.T) {
	for i, p := range Pages(stickers(24)) {
		if p.Number != i+1 {
			t.Errorf("page %d numbered %d", i, p.Number)
		}
	}
	if got := Pages(nil); len(got) != 0 {
		t.Fatalf("expected no pages for an empty selection, got %d", len(got))
	}
}
