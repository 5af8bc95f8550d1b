package domain

import (
	"math"
	"strings"
)

// Direction - направление взгляда/шага. Числовые значения совпадают с индексами,
// которые хранит игровой агент (0..3), и должны с ними сходиться в обе стороны.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// NoDirection - "направление не задано" (например, для автопути без финального поворота).
const NoDirection Direction = -1

var directionNames = map[Direction]string{
	North: "North",
	East:  "East",
	South: "South",
	West:  "West",
}

// DirectionFromIndex конвертирует индекс агента в Direction.
func DirectionFromIndex(i int) (Direction, bool) {
	d := Direction(i)
	return d, d.Valid()
}

// Index - обратное преобразование для API движения.
func (d Direction) Index() int { return int(d) }

func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// Offset - единичное смещение клетки. Ось Y направлена на юг.
func (d Direction) Offset() Tile {
	switch d {
	case North:
		return Tile{X: 0, Y: -1}
	case East:
		return Tile{X: 1, Y: 0}
	case South:
		return Tile{X: 0, Y: 1}
	case West:
		return Tile{X: -1, Y: 0}
	}
	return Tile{}
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "None"
}

// ParseDirection нечувствительна к регистру.
func ParseDirection(s string) (Direction, bool) {
	for d, name := range directionNames {
		if strings.EqualFold(name, s) {
			return d, true
		}
	}
	return NoDirection, false
}

// DominantDirection - кардинальное направление от from к to по преобладающей оси.
// При равенстве осей выбирается вертикаль.
func DominantDirection(from, to Tile) (Direction, bool) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx == 0 && dy == 0 {
		return NoDirection, false
	}
	if abs(dx) > abs(dy) {
		if dx > 0 {
			return East, true
		}
		return West, true
	}
	if dy > 0 {
		return South, true
	}
	return North, true
}

// Compass - одно из восьми направлений для зачитывания положения объекта.
type Compass string

const (
	CompassHere      Compass = "Here"
	CompassNorth     Compass = "North"
	CompassNorthEast Compass = "Northeast"
	CompassEast      Compass = "East"
	CompassSouthEast Compass = "Southeast"
	CompassSouth     Compass = "South"
	CompassSouthWest Compass = "Southwest"
	CompassWest      Compass = "West"
	CompassNorthWest Compass = "Northwest"
)

// Сектора по 45 градусов, начиная с востока против часовой стрелки.
var compassSectors = [...]Compass{
	CompassEast, CompassNorthEast, CompassNorth, CompassNorthWest,
	CompassWest, CompassSouthWest, CompassSouth, CompassSouthEast,
}

// CompassBetween возвращает, в какой стороне света to находится относительно from.
func CompassBetween(from, to Tile) Compass {
	dx := float64(to.X - from.X)
	dy := float64(from.Y - to.Y) // экранная Y растет на юг
	if dx == 0 && dy == 0 {
		return CompassHere
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Floor((deg+22.5)/45)) % len(compassSectors)
	return compassSectors[idx]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
