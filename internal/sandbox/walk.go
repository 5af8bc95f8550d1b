package sandbox

import (
	"accessible-tiles/internal/domain"
	"time"
)

// Walk - сессия автоходьбы по найденному пути. Пока не установлена
// контроллером игрока, ничего не делает.
type Walk struct {
	path     []domain.Tile
	next     int
	target   domain.Tile
	facing   domain.Direction
	onArrive func()

	lastStep   time.Time
	checkpoint time.Time
	now        func() time.Time
}

func (w *Walk) Target() domain.Tile { return w.target }

// Steps - сколько клеток осталось.
func (w *Walk) Steps() int { return len(w.path) - w.next }

// SinceCheckpoint - сколько агент не продвигался по пути.
func (w *Walk) SinceCheckpoint() time.Duration {
	return w.now().Sub(w.checkpoint)
}

// advance делает не больше одного шага за interval. true - путь пройден.
func (w *Walk) advance(loc *Location, p *Player, interval time.Duration) bool {
	now := w.now()
	if w.next >= len(w.path) {
		w.finish(p)
		return true
	}
	if now.Sub(w.lastStep) < interval {
		return false
	}
	tile := w.path[w.next]
	if !loc.Passable(tile) {
		if w.next == len(w.path)-1 && loc.Kind(tile).walkable() {
			// На цели стоит сущность: подошли вплотную
			w.finish(p)
			return true
		}
		// Кто-то встал на пути: стоим, SinceCheckpoint растет
		return false
	}
	from := domain.AgentTile(p)
	if d, ok := domain.DominantDirection(from, tile); ok {
		p.Face(d)
	}
	p.SetPosition(tile.Origin())
	w.next++
	w.lastStep = now
	w.checkpoint = now

	if w.next >= len(w.path) {
		w.finish(p)
		return true
	}
	return false
}

func (w *Walk) finish(p *Player) {
	if w.facing.Valid() {
		p.Face(w.facing)
	}
}
