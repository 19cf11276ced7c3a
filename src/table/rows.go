package table

//Rows is a non-owning row window over a flat row-major buffer
//Next yields rows from the top, NextBack from the bottom, the cursors are independent
type Rows struct {
	cells   []CellState
	width   int
	cursor  int
	reverse int
}

//NewRows creates the row window over cells
//panics if width is not positive or doesn't divide len(cells)
func NewRows(cells []CellState, width int) *Rows {
	if width <= 0 || len(cells)%width != 0 {
		panic("table: invalid row width")
	}
	return &Rows{
		cells:   cells,
		width:   width,
		reverse: len(cells),
	}
}

//Next returns the next row from the top
//the returned slice shares the buffer and is capped to the row width
func (r *Rows) Next() ([]CellState, bool) {
	if r.cursor >= len(r.cells) {
		return nil, false
	}
	start := r.cursor
	r.cursor += r.width
	return r.cells[start:r.cursor:r.cursor], true
}

//NextBack returns the next row from the bottom
func (r *Rows) NextBack() ([]CellState, bool) {
	if r.reverse <= 0 {
		return nil, false
	}
	end := r.reverse
	r.reverse -= r.width
	return r.cells[r.reverse:end:end], true
}

//Clone returns a fresh window over the same data, both cursors are reset
func (r *Rows) Clone() *Rows {
	return NewRows(r.cells, r.width)
}

//Width returns the row width
func (r *Rows) Width() int {
	return r.width
}

//Count returns the total number of rows in the window regardless of the cursors
func (r *Rows) Count() int {
	return len(r.cells) / r.width
}

//Collect drains a fresh copy of the window and returns all rows from the top
func (r *Rows) Collect() [][]CellState {
	c := r.Clone()
	rows := make([][]CellState, 0, c.Count())
	for row, ok := c.Next(); ok; row, ok = c.Next() {
		rows = append(rows, row)
	}
	return rows
}
