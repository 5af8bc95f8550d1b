package sandbox

import (
	"accessible-tiles/internal/domain"
	"container/heap"
)

type pathNode struct {
	tile   domain.Tile
	g      int
	f      int
	parent *pathNode
	index  int
}

// openSet - min-heap узлов по f.
type openSet []*pathNode

func (s openSet) Len() int { return len(s) }

func (s openSet) Less(i, j int) bool {
	if s[i].f == s[j].f {
		return s[i].g > s[j].g
	}
	return s[i].f < s[j].f
}

func (s openSet) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}

func (s *openSet) Push(x interface{}) {
	n := x.(*pathNode)
	n.index = len(*s)
	*s = append(*s, n)
}

func (s *openSet) Pop() interface{} {
	old := *s
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*s = old[:n-1]
	return item
}

var pathOffsets = [...]domain.Direction{domain.North, domain.East, domain.South, domain.West}

// route ищет путь A* по 4 соседям. Возвращает клетки после from, включая to.
// Переходы проходимы только как конечная точка. Цель может быть занята
// сущностью: тогда Walk останавливается на соседней клетке.
func route(loc *Location, from, to domain.Tile) ([]domain.Tile, bool) {
	if !loc.Kind(to).walkable() {
		return nil, false
	}
	if from == to {
		return []domain.Tile{}, true
	}

	open := &openSet{}
	heap.Init(open)
	start := &pathNode{tile: from, f: manhattan(from, to)}
	heap.Push(open, start)

	best := map[domain.Tile]*pathNode{from: start}
	closed := make(map[domain.Tile]bool)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if cur.tile == to {
			return unwind(cur), true
		}
		if closed[cur.tile] {
			continue
		}
		closed[cur.tile] = true

		for _, d := range pathOffsets {
			next := cur.tile.Step(d)
			if closed[next] || !stepAllowed(loc, next, to) {
				continue
			}
			g := cur.g + 1
			if n, ok := best[next]; ok {
				if g >= n.g {
					continue
				}
				n.g = g
				n.f = g + manhattan(next, to)
				n.parent = cur
				if n.index >= 0 {
					heap.Fix(open, n.index)
				} else {
					heap.Push(open, n)
				}
				continue
			}
			n := &pathNode{tile: next, g: g, f: g + manhattan(next, to), parent: cur}
			best[next] = n
			heap.Push(open, n)
		}
	}
	return nil, false
}

func stepAllowed(loc *Location, t, goal domain.Tile) bool {
	if t == goal {
		return true
	}
	if _, isWarp := loc.warps[t]; isWarp {
		return false
	}
	return loc.Passable(t)
}

func unwind(n *pathNode) []domain.Tile {
	var out []domain.Tile
	for ; n.parent != nil; n = n.parent {
		out = append(out, n.tile)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func manhattan(a, b domain.Tile) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
