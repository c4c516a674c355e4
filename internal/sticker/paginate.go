package sticker

// Sheet grid: 2 columns by 4 rows on A4.
const (
	Columns      = 2
	Rows         = 4
	PageCapacity = Columns * Rows
)

// Paginate splits items into consecutive pages of size, keeping order.
// Page k holds items [k*size, k*size+size).
func Paginate[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = PageCapacity
	}
	pages := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}

type Page struct {
	Number int
	Items  []Sticker
	Last   bool
}

// Cells always returns PageCapacity entries; nil marks an empty cell.
func (p Page) Cells() []*Sticker {
	cells := make([]*Sticker, PageCapacity)
	for i := range p.Items {
		if i == PageCapacity {
			break
		}
		cells[i] = &p.Items[i]
	}
	return cells
}

// CellRows groups Cells into grid rows for the sheet template.
func (p Page) CellRows() [][]*Sticker {
	cells := p.Cells()
	rows := make([][]*Sticker, 0, Rows)
	for i := 0; i < len(cells); i += Columns {
		rows = append(rows, cells[i:i+Columns])
	}
	return rows
}

func Pages(stickers []Sticker) []Page {
	chunks := Paginate(stickers, PageCapacity)
	pages := make([]Page, len(chunks))
	for i, items := range chunks {
		pages[i] = Page{Number: i + 1, Items: items, Last: i == len(chunks)-1}
	}
	return pages
}
