package table

import "errors"

var (
	//ErrTooSmall is returned when any dimension is less than MinSize
	ErrTooSmall = errors.New("table: dimension too small")
	//ErrTooLarge is returned when width*height doesn't fit into int
	ErrTooLarge = errors.New("table: dimensions too large")
	//ErrOutOfRange is returned on access outside the table
	ErrOutOfRange = errors.New("table: coordinates out of range")
	//ErrRagged is returned when the imported rows have different widths
	ErrRagged = errors.New("table: ragged rows")
	//ErrLength is returned when a flat buffer doesn't match width*height
	ErrLength = errors.New("table: buffer length mismatch")
)
