package systems

import (
	"accessible-tiles/internal/domain"
	"time"
)

type fakeAgent struct {
	pos        domain.Point
	facing     domain.Direction
	canMove    bool
	speed      int
	busy       bool
	warps      []domain.Warp
	controller domain.PathSession
}

func newFakeAgent(tile domain.Tile, facing domain.Direction) *fakeAgent {
	return &fakeAgent{pos: tile.Origin(), facing: facing, canMove: true}
}

func (a *fakeAgent) Position() domain.Point             { return a.pos }
func (a *fakeAgent) SetPosition(p domain.Point)         { a.pos = p }
func (a *fakeAgent) Facing() domain.Direction           { return a.facing }
func (a *fakeAgent) Face(d domain.Direction)            { a.facing = d }
func (a *fakeAgent) CanMove() bool                      { return a.canMove }
func (a *fakeAgent) SetCanMove(v bool)                  { a.canMove = v }
func (a *fakeAgent) SpeedBonus() int                    { return a.speed }
func (a *fakeAgent) Busy() bool                         { return a.busy }
func (a *fakeAgent) Controller() domain.PathSession     { return a.controller }
func (a *fakeAgent) SetController(s domain.PathSession) { a.controller = s }

func (a *fakeAgent) Warp(w domain.Warp) {
	a.warps = append(a.warps, w)
	a.canMove = false
}

type fakeLocation struct {
	warps    map[domain.Tile]domain.Warp
	doors    map[domain.Tile]bool
	consume  map[domain.Tile]bool
	terrain  []domain.Tile
	interact int
}

func newFakeLocation() *fakeLocation {
	return &fakeLocation{
		warps:   map[domain.Tile]domain.Warp{},
		doors:   map[domain.Tile]bool{},
		consume: map[domain.Tile]bool{},
	}
}

func (l *fakeLocation) Name() string { return "Farm" }

func (l *fakeLocation) WarpAt(tile domain.Tile, _ domain.Agent) (domain.Warp, bool) {
	w, ok := l.warps[tile]
	return w, ok
}

func (l *fakeLocation) IsDoor(tile domain.Tile) bool { return l.doors[tile] }

func (l *fakeLocation) TryInteract(tile domain.Tile, _ domain.Agent) bool {
	l.interact++
	return l.consume[tile]
}

func (l *fakeLocation) PlayTerrainSound(tile domain.Tile) { l.terrain = append(l.terrain, tile) }
func (l *fakeLocation) Characters() []domain.Character    { return nil }
func (l *fakeLocation) ObjectSignature() int              { return 0 }

type fakeWorld struct {
	agent   *fakeAgent
	loc     *fakeLocation
	presses int
}

func (w *fakeWorld) Player() domain.Agent      { return w.agent }
func (w *fakeWorld) Location() domain.Location { return w.loc }
func (w *fakeWorld) PressAction()              { w.presses++ }

type fakeSession struct{ target domain.Tile }

func (s fakeSession) Target() domain.Tile            { return s.target }
func (s fakeSession) Steps() int                     { return 1 }
func (s fakeSession) SinceCheckpoint() time.Duration { return 0 }

// fakePaths разрешает любой путь, кроме клеток из blocked.
type fakePaths struct {
	blocked  map[domain.Tile]bool
	requests []domain.PathRequest
}

func (p *fakePaths) FindPath(req domain.PathRequest) domain.PathSession {
	p.requests = append(p.requests, req)
	if p.blocked[req.Target] {
		return nil
	}
	return fakeSession{target: req.Target}
}

type report struct {
	text   string
	spoken bool
}

type recorder struct {
	reports []report
	sounds  []string
}

func (r *recorder) Report(text string, spoken bool) {
	r.reports = append(r.reports, report{text: text, spoken: spoken})
}

func (r *recorder) PlaySound(cue string) { r.sounds = append(r.sounds, cue) }

func (r *recorder) countSpoken(text string) int {
	n := 0
	for _, rep := range r.reports {
		if rep.spoken && rep.text == text {
			n++
		}
	}
	return n
}

func (r *recorder) countSound(cue string) int {
	n := 0
	for _, s := range r.sounds {
		if s == cue {
			n++
		}
	}
	return n
}
