package domain

import "math"

// DistanceTo возвращает точное расстояние до другой клетки (float)
func (t Tile) DistanceTo(other Tile) float64 {
	return math.Sqrt(math.Pow(float64(t.X-other.X), 2) + math.Pow(float64(t.Y-other.Y), 2))
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (t Tile) DistanceSquaredTo(other Tile) int {
	dx := t.X - other.X
	dy := t.Y - other.Y
	return dx*dx + dy*dy
}

// TilesTo - расстояние в целых клетках, как его зачитываем игроку.
func (t Tile) TilesTo(other Tile) int {
	return int(math.Round(t.DistanceTo(other)))
}

// IsAdjacent возвращает true, если цель в соседней клетке (без диагоналей)
func (t Tile) IsAdjacent(other Tile) bool {
	dx := t.X - other.X
	dy := t.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Shift возвращает новую клетку со смещением (текущая не меняется)
func (t Tile) Shift(dx, dy int) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy}
}

// Step возвращает соседнюю клетку в направлении d.
func (t Tile) Step(d Direction) Tile {
	off := d.Offset()
	return t.Shift(off.X, off.Y)
}
