package tracker

import (
	"accessible-tiles/internal/domain"
	"time"
)

type fakeAgent struct {
	pos        domain.Point
	facing     domain.Direction
	controller domain.PathSession
}

func (a *fakeAgent) Position() domain.Point             { return a.pos }
func (a *fakeAgent) SetPosition(p domain.Point)         { a.pos = p }
func (a *fakeAgent) Facing() domain.Direction           { return a.facing }
func (a *fakeAgent) Face(d domain.Direction)            { a.facing = d }
func (a *fakeAgent) CanMove() bool                      { return true }
func (a *fakeAgent) SetCanMove(bool)                    {}
func (a *fakeAgent) SpeedBonus() int                    { return 0 }
func (a *fakeAgent) Busy() bool                         { return false }
func (a *fakeAgent) Warp(domain.Warp)                   {}
func (a *fakeAgent) Controller() domain.PathSession     { return a.controller }
func (a *fakeAgent) SetController(s domain.PathSession) { a.controller = s }

type fakeCharacter struct {
	id        string
	name      string
	tile      domain.Tile
	animal    bool
	invisible bool
	hidden    int
}

func (c *fakeCharacter) ID() string        { return c.id }
func (c *fakeCharacter) Name() string      { return c.name }
func (c *fakeCharacter) Tile() domain.Tile { return c.tile }
func (c *fakeCharacter) IsAnimal() bool    { return c.animal }
func (c *fakeCharacter) Invisible() bool   { return c.invisible }

func (c *fakeCharacter) SetInvisible(v bool) {
	if v {
		c.hidden++
	}
	c.invisible = v
}

type fakeLocation struct {
	chars   []*fakeCharacter
	terrain int
}

func (l *fakeLocation) Name() string                                         { return "Town" }
func (l *fakeLocation) WarpAt(domain.Tile, domain.Agent) (domain.Warp, bool) { return domain.Warp{}, false }
func (l *fakeLocation) IsDoor(domain.Tile) bool                              { return false }
func (l *fakeLocation) TryInteract(domain.Tile, domain.Agent) bool           { return false }
func (l *fakeLocation) PlayTerrainSound(domain.Tile)                         { l.terrain++ }
func (l *fakeLocation) ObjectSignature() int                                 { return len(l.chars) }

func (l *fakeLocation) Characters() []domain.Character {
	out := make([]domain.Character, 0, len(l.chars))
	for _, c := range l.chars {
		out = append(out, c)
	}
	return out
}

func (l *fakeLocation) Character(id string) (domain.Character, bool) {
	for _, c := range l.chars {
		if c.id == id {
			return c, true
		}
	}
	return nil, false
}

func (l *fakeLocation) CharactersAt(tile domain.Tile) []domain.Character {
	var out []domain.Character
	for _, c := range l.chars {
		if c.tile == tile {
			out = append(out, c)
		}
	}
	return out
}

type fakeWorld struct {
	agent *fakeAgent
	loc   *fakeLocation
}

func (w *fakeWorld) Player() domain.Agent      { return w.agent }
func (w *fakeWorld) Location() domain.Location { return w.loc }
func (w *fakeWorld) PressAction()              {}

type fakeSession struct {
	target domain.Tile
	paths  *fakePaths
}

func (s *fakeSession) Target() domain.Tile            { return s.target }
func (s *fakeSession) Steps() int                     { return 1 }
func (s *fakeSession) SinceCheckpoint() time.Duration { return s.paths.stalled }

// fakePaths отдает сессии, которые "стоят" stalled; последний OnArrive сохраняется.
type fakePaths struct {
	unreachable bool
	stalled     time.Duration
	calls       int
	last        domain.PathRequest
}

func (p *fakePaths) FindPath(req domain.PathRequest) domain.PathSession {
	p.calls++
	p.last = req
	if p.unreachable {
		return nil
	}
	return &fakeSession{target: req.Target, paths: p}
}

type report struct {
	text   string
	spoken bool
}

type recorder struct {
	reports []report
}

func (r *recorder) Report(text string, spoken bool) {
	r.reports = append(r.reports, report{text: text, spoken: spoken})
}

func (r *recorder) last() string {
	if len(r.reports) == 0 {
		return ""
	}
	return r.reports[len(r.reports)-1].text
}

func (r *recorder) count(text string) int {
	n := 0
	for _, rep := range r.reports {
		if rep.text == text {
			n++
		}
	}
	return n
}

func (r *recorder) countSpoken(text string) int {
	n := 0
	for _, rep := range r.reports {
		if rep.text == text && rep.spoken {
			n++
		}
	}
	return n
}

// staticProvider отдает заранее заданные объекты в порядке добавления.
type staticProvider struct {
	name    string
	entries []staticEntry
}

type staticEntry struct {
	category string
	object   domain.SpecialObject
}

func (p *staticProvider) Name() string     { return p.name }
func (p *staticProvider) HasObjects() bool { return len(p.entries) > 0 }

func (p *staticProvider) Objects() *Collection {
	c := NewCollection()
	for _, e := range p.entries {
		c.Add(e.category, e.object)
	}
	return c
}

func (p *staticProvider) add(category, name string, x, y int) *staticProvider {
	p.entries = append(p.entries, staticEntry{
		category: category,
		object:   domain.SpecialObject{Name: name, Tile: domain.Tile{X: x, Y: y}},
	})
	return p
}
