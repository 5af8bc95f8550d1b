package sandbox

import "accessible-tiles/internal/domain"

// Player - агент песочницы.
type Player struct {
	pos        domain.Point
	facing     domain.Direction
	canMove    bool
	speedBonus int
	busy       bool
	controller domain.PathSession

	pendingWarp *domain.Warp
}

func (p *Player) Position() domain.Point             { return p.pos }
func (p *Player) SetPosition(pt domain.Point)        { p.pos = pt }
func (p *Player) Facing() domain.Direction           { return p.facing }
func (p *Player) Face(d domain.Direction)            { p.facing = d }
func (p *Player) CanMove() bool                      { return p.canMove }
func (p *Player) SetCanMove(v bool)                  { p.canMove = v }
func (p *Player) SpeedBonus() int                    { return p.speedBonus }
func (p *Player) Busy() bool                         { return p.busy }
func (p *Player) Controller() domain.PathSession     { return p.controller }
func (p *Player) SetController(s domain.PathSession) { p.controller = s }

// SetBusy - диалог или катсцена, во время которых ходить нельзя.
func (p *Player) SetBusy(v bool) { p.busy = v }

func (p *Player) SetSpeedBonus(v int) { p.speedBonus = v }

// Warp ставит переход в очередь; он применяется на следующем тике мира.
func (p *Player) Warp(w domain.Warp) {
	p.pendingWarp = &w
	p.canMove = false
}
