package domain

import "math"

// TileSize - размер одной клетки карты в пикселях непрерывной системы координат.
const TileSize = 64

// Tile - целочисленная координата клетки сетки.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point - непрерывная позиция агента (в пикселях).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TileOf вычисляет клетку, в которой находится точка (деление на размер тайла).
func TileOf(p Point) Tile {
	return Tile{
		X: int(math.Floor(p.X / TileSize)),
		Y: int(math.Floor(p.Y / TileSize)),
	}
}

// Origin возвращает непрерывную позицию начала клетки.
func (t Tile) Origin() Point {
	return Point{X: float64(t.X * TileSize), Y: float64(t.Y * TileSize)}
}

// SnapToGrid выравнивает позицию по началу клетки, в которой стоит агент.
// Клетка не меняется: TileOf(SnapToGrid(p)) == TileOf(p).
func SnapToGrid(p Point) Point {
	return TileOf(p).Origin()
}
