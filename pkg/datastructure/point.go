package datastructure

import (
	"math"
)

const (
	EPS = 1e-6
)

// Point. a point in projected (planar) space. comparable, so it can key a map by value.
type Point struct {
	X, Y float64
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) GetX() float64 {
	return p.X
}

func (p Point) GetY() float64 {
	return p.Y
}

// Coord. coordinate of the point along axis (0 = x, 1 = y).
func (p Point) Coord(axis uint8) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

func (p Point) DistanceSquaredTo(x, y float64) float64 {
	return DistanceSquared(p.X, p.Y, x, y)
}

// equal operator
func Eq(a, b float64) bool {
	return math.Abs(a-b) <= EPS
}

// less than operator
func Lt(a, b float64) bool {
	return a+EPS < b
}
