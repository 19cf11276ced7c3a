package table

//Point addresses a single cell, X is the column, Y is the row (zero based)
type Point struct {
	X int
	Y int
}

//NewPoint creates the Point at x, y
func NewPoint(x int, y int) Point {
	return Point{X: x, Y: y}
}
