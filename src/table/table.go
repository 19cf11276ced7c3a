//Package table implements Conway's Game of Life on a toroidal grid
//stored as a flat row-major buffer of CellState
package table

import (
	"fmt"
	"strings"
)

//MinSize is the minimal width and height of a table
//with less than 3 positions the wrapped prev/next neighbour coincides with the cell itself
const MinSize = 3

const maxInt = int(^uint(0) >> 1)

//Table is the toroidal grid
//not safe for concurrent use, callers serialize access themselves
type Table struct {
	width  int
	height int
	values []CellState
	//next is the successor buffer, swapped with values on every tick
	next []CellState
}

//New creates the square all-Dead table of size x size
func New(size int) (*Table, error) {
	return OfSize(size, size)
}

//OfSize creates the all-Dead table of width x height
func OfSize(width int, height int) (*Table, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &Table{
		width:  width,
		height: height,
		values: make([]CellState, width*height),
		next:   make([]CellState, width*height),
	}, nil
}

//FromBooleanGrid creates the table from row-major boolean rows
//the width is taken from the first row, every row must have the same width
func FromBooleanGrid(rows [][]bool) (*Table, error) {
	if len(rows) < MinSize {
		return nil, fmt.Errorf("%w: height %d, min %d", ErrTooSmall, len(rows), MinSize)
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrRagged, y, len(row), width)
		}
	}
	t, err := OfSize(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		for x, b := range row {
			t.values[t.index(x, y)] = FromBool(b)
		}
	}
	return t, nil
}

//FromBytes creates the table from the flat row-major host buffer (1 - Alive, other - Dead)
func FromBytes(values []byte, width int, height int) (*Table, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: got %d values for %dx%d", ErrLength, len(values), width, height)
	}
	t, err := OfSize(width, height)
	if err != nil {
		return nil, err
	}
	for i, b := range values {
		t.values[i] = FromByte(b)
	}
	return t, nil
}

func checkSize(width int, height int) error {
	if width < MinSize || height < MinSize {
		return fmt.Errorf("%w: %dx%d, min %dx%d", ErrTooSmall, width, height, MinSize, MinSize)
	}
	//width*height must fit into int, otherwise the buffer length is wrapped
	if width > maxInt/height {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	return nil
}

//Width returns the number of columns
func (t *Table) Width() int {
	return t.width
}

//Height returns the number of rows
func (t *Table) Height() int {
	return t.height
}

//Len returns the number of cells (width*height)
func (t *Table) Len() int {
	return len(t.values)
}

//index converts x, y to the linear buffer index, the only place doing this arithmetic
func (t *Table) index(x int, y int) int {
	return y*t.width + x
}

//row returns row y of the current generation, capped to the row width
func (t *Table) row(y int) []CellState {
	start := t.index(0, y)
	end := start + t.width
	return t.values[start:end:end]
}

//checkedIndex is index with the range check
func (t *Table) checkedIndex(x int, y int) (int, error) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, x, y, t.width, t.height)
	}
	return t.index(x, y), nil
}

//Get returns the state of the cell at x, y
func (t *Table) Get(x int, y int) (CellState, error) {
	i, err := t.checkedIndex(x, y)
	if err != nil {
		return Dead, err
	}
	return t.values[i], nil
}

//Set sets the state of the cell at x, y
func (t *Table) Set(x int, y int, s CellState) error {
	i, err := t.checkedIndex(x, y)
	if err != nil {
		return err
	}
	t.values[i] = s
	return nil
}

//SetPoint sets the state of the cell at p
func (t *Table) SetPoint(p Point, s CellState) error {
	return t.Set(p.X, p.Y, s)
}

//Toggle inverts the cell at x, y and returns the new state
func (t *Table) Toggle(x int, y int) (CellState, error) {
	i, err := t.checkedIndex(x, y)
	if err != nil {
		return Dead, err
	}
	if t.values[i] == Alive {
		t.values[i] = Dead
	} else {
		t.values[i] = Alive
	}
	return t.values[i], nil
}

//Clear kills all cells
func (t *Table) Clear() {
	for i := range t.values {
		t.values[i] = Dead
	}
}

//IsAliveAnywhere reports whether at least one cell is Alive
func (t *Table) IsAliveAnywhere() bool {
	for _, v := range t.values {
		if v == Alive {
			return true
		}
	}
	return false
}

//Population returns the count of live cells
func (t *Table) Population() int {
	n := 0
	for _, v := range t.values {
		n += v.Count()
	}
	return n
}

//Rows returns a fresh row window over the current generation
//the window must not be used across Tick
func (t *Table) Rows() *Rows {
	return NewRows(t.values, t.width)
}

//ToBooleanGrid exports the table as height rows of width booleans
func (t *Table) ToBooleanGrid() [][]bool {
	grid := make([][]bool, 0, t.height)
	rows := t.Rows()
	for row, ok := rows.Next(); ok; row, ok = rows.Next() {
		r := make([]bool, len(row))
		for x, v := range row {
			r[x] = v.Bool()
		}
		grid = append(grid, r)
	}
	return grid
}

//Bytes exports the table as the flat row-major host buffer, inverse of FromBytes
func (t *Table) Bytes() []byte {
	b := make([]byte, len(t.values))
	for i, v := range t.values {
		b[i] = v.Byte()
	}
	return b
}

//Clone returns the deep copy of the table
func (t *Table) Clone() *Table {
	c := &Table{
		width:  t.width,
		height: t.height,
		values: make([]CellState, len(t.values)),
		next:   make([]CellState, len(t.next)),
	}
	copy(c.values, t.values)
	return c
}

//Equal reports whether both tables have the same size and cells, nil is never equal
func (t *Table) Equal(o *Table) bool {
	if o == nil || t.width != o.width || t.height != o.height {
		return false
	}
	for i := range t.values {
		if t.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

//Render formats the table as the bordered text block
//
//	+-----+
//	|  *  |
//	+-----+
//
//the lines are separated by '\n', no trailing line feed
func (t *Table) Render() string {
	var b strings.Builder
	border := "+-" + strings.Repeat("-", t.width) + "-+"
	b.Grow((t.height + 2) * (len(border) + 1))
	b.WriteString(border)
	rows := t.Rows()
	for row, ok := rows.Next(); ok; row, ok = rows.Next() {
		b.WriteString("\n| ")
		for _, v := range row {
			b.WriteByte(v.Glyph())
		}
		b.WriteString(" |")
	}
	b.WriteByte('\n')
	b.WriteString(border)
	return b.String()
}

//String is Render, implements fmt.Stringer
func (t *Table) String() string {
	return t.Render()
}
