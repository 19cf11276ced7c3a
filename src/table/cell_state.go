package table

//CellState is the state of a single cell, the zero value is Dead
type CellState uint8

const (
	Dead  CellState = 0
	Alive CellState = 1
)

const (
	aliveGlyph = '*'
	deadGlyph  = ' '
)

//FromBool converts the boolean to the CellState (true is Alive)
func FromBool(b bool) CellState {
	if b {
		return Alive
	}
	return Dead
}

//FromByte converts the host byte to the CellState
//1 is Alive, any other value is Dead
func FromByte(b byte) CellState {
	if b == 1 {
		return Alive
	}
	return Dead
}

//Bool converts the CellState to boolean (Alive is true)
func (s CellState) Bool() bool {
	return s == Alive
}

//Count returns the cell contribution to the live-neighbor sum (0 or 1)
func (s CellState) Count() int {
	if s == Alive {
		return 1
	}
	return 0
}

//Byte converts the CellState to the host byte (Alive is 1)
func (s CellState) Byte() byte {
	return byte(s.Count())
}

//Glyph returns the display char: '*' for Alive, space for Dead
func (s CellState) Glyph() byte {
	if s == Alive {
		return aliveGlyph
	}
	return deadGlyph
}

//String returns the state name
func (s CellState) String() string {
	if s == Alive {
		return "Alive"
	}
	return "Dead"
}
