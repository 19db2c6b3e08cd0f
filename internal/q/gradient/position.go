package gradient

import "math"

// PositionStrategy maps a cell position to a phase in [0, 1). rows and cols describe the whole block being colored.
type PositionStrategy interface {
	Phase(row, col, rows, cols int) float64
}

// Vertical runs top to bottom: row / (rows-1). A single row is phase 0.
type Vertical struct{}

func (Vertical) Phase(row, col, rows, cols int) float64 {
	if rows <= 1 {
		return 0
	}
	return float64(row) / float64(rows-1)
}

// Horizontal runs left to right: col / (cols-1). A single column is phase 0.
type Horizontal struct{}

func (Horizontal) Phase(row, col, rows, cols int) float64 {
	if cols <= 1 {
		return 0
	}
	return float64(col) / float64(cols-1)
}

// Diagonal runs from the top-left corner: (row + col) / (rows + cols). The phase never reaches 1.
type Diagonal struct{}

func (Diagonal) Phase(row, col, rows, cols int) float64 {
	if rows+cols <= 0 {
		return 0
	}
	return float64(row+col) / float64(rows+cols)
}

// Offset shifts Inner by Offset, wrapping around: (inner + offset) mod 1. An Offset of 0 is the identity. Animations advance Offset between frames; the strategy itself keeps no
// state.
type Offset struct {
	Inner  PositionStrategy
	Offset float64
}

func (o Offset) Phase(row, col, rows, cols int) float64 {
	p := o.Inner.Phase(row, col, rows, cols)
	if o.Offset == 0 {
		return p
	}
	return wrap(p + o.Offset)
}

// CyclePhase advances phase by step, wrapping into [0, 1).
func CyclePhase(phase, step float64) float64 {
	return wrap(phase + step)
}

func wrap(p float64) float64 {
	p = math.Mod(p, 1)
	if p < 0 {
		p++
	}
	if p >= 1 {
		p = 0
	}
	return p
}

// Direction names a PositionStrategy.
type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
	DirectionDiagonal   Direction = "diagonal"
)

// Strategy returns the strategy for d. Unknown directions are vertical.
func (d Direction) Strategy() PositionStrategy {
	switch d {
	case DirectionHorizontal:
		return Horizontal{}
	case DirectionDiagonal:
		return Diagonal{}
	default:
		return Vertical{}
	}
}
