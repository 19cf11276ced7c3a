package table

//Block is the per-cell snapshot used during one tick
type Block struct {
	Value     CellState
	LiveCount int
}

//Next applies the Game of Life rules to the block
func (b Block) Next() CellState {
	switch {
	case b.Value == Alive && (b.LiveCount == 2 || b.LiveCount == 3):
		return Alive
	case b.Value == Dead && b.LiveCount == 3:
		return Alive
	default:
		return Dead
	}
}

//wrapPrev returns i-1 wrapped into [0, n)
func wrapPrev(i int, n int) int {
	if i == 0 {
		return n - 1
	}
	return i - 1
}

//wrapNext returns i+1 wrapped into [0, n)
func wrapNext(i int, n int) int {
	if i >= n-1 {
		return 0
	}
	return i + 1
}

//liveCount sums the 8 neighbours of column c, the center curr[c] is excluded
func liveCount(prev, curr, next []CellState, c int) int {
	w := len(curr)
	pc, nc := wrapPrev(c, w), wrapNext(c, w)
	return prev[pc].Count() + prev[c].Count() + prev[nc].Count() +
		curr[pc].Count() + curr[nc].Count() +
		next[pc].Count() + next[c].Count() + next[nc].Count()
}

//blockRows returns prev, curr, next row windows for every row of the table
func (t *Table) blockRows() (prev, curr, next [][]CellState) {
	curr = t.Rows().Collect()
	h := len(curr)
	prev = make([][]CellState, h)
	next = make([][]CellState, h)
	for r := range curr {
		prev[r] = curr[wrapPrev(r, h)]
		next[r] = curr[wrapNext(r, h)]
	}
	return
}

//fillBlocks writes the row-major block snapshot of the current generation into dst
func (t *Table) fillBlocks(dst []Block) {
	prev, curr, next := t.blockRows()
	for r := range curr {
		for c, v := range curr[r] {
			dst[t.index(c, r)] = Block{Value: v, LiveCount: liveCount(prev[r], curr[r], next[r], c)}
		}
	}
}

//Blocks returns the row-major block snapshot of the current generation
func (t *Table) Blocks() []Block {
	blocks := make([]Block, len(t.values))
	t.fillBlocks(blocks)
	return blocks
}

//Neighbors returns the live-neighbour count of the cell at x, y
func (t *Table) Neighbors(x int, y int) (int, error) {
	if _, err := t.checkedIndex(x, y); err != nil {
		return 0, err
	}
	return liveCount(t.row(wrapPrev(y, t.height)), t.row(y), t.row(wrapNext(y, t.height)), x), nil
}

//Tick advances the table by one generation
//all blocks are computed from the current buffer first, then the successor
//buffer is filled and swapped in, so no cell sees an updated neighbour
//returns true if at least one cell changed
func (t *Table) Tick() (changed bool) {
	blocks := t.Blocks()
	for i, b := range blocks {
		s := b.Next()
		t.next[i] = s
		changed = changed || s != b.Value
	}
	t.values, t.next = t.next, t.values
	return
}
