package sandbox

import (
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/tracker/providers"
)

// TileKind - тип поверхности клетки.
type TileKind byte

const (
	KindVoid  TileKind = ' '
	KindWall  TileKind = '#'
	KindFloor TileKind = '.'
	KindGrass TileKind = ','
	KindWood  TileKind = '='
	KindWater TileKind = '~'
)

// Звуки шагов по типу поверхности.
var footstepCues = map[TileKind]string{
	KindFloor: "stoneStep",
	KindGrass: "grassyStep",
	KindWood:  "woodyStep",
}

func (k TileKind) walkable() bool {
	_, ok := footstepCues[k]
	return ok
}

// Location - карта песочницы.
type Location struct {
	name        string
	rows        []string
	warps       map[domain.Tile]WarpDef
	characters  []*Character
	annotations []providers.Annotation
	signature   int

	world *World
}

func newLocation(def LocationDef, world *World) *Location {
	loc := &Location{
		name:        def.Name,
		rows:        def.Rows,
		warps:       make(map[domain.Tile]WarpDef, len(def.Warps)),
		annotations: def.Annotations,
		world:       world,
	}
	for _, w := range def.Warps {
		loc.warps[domain.Tile{X: w.X, Y: w.Y}] = w
	}
	for _, c := range def.Characters {
		loc.characters = append(loc.characters, &Character{
			id:     c.ID,
			name:   c.Name,
			tile:   domain.Tile{X: c.X, Y: c.Y},
			animal: c.Animal,
		})
	}
	return loc
}

func (l *Location) Name() string { return l.name }

func (l *Location) Kind(t domain.Tile) TileKind {
	if t.Y < 0 || t.Y >= len(l.rows) || t.X < 0 || t.X >= len(l.rows[t.Y]) {
		return KindVoid
	}
	return TileKind(l.rows[t.Y][t.X])
}

// Passable - по клетке можно пройти: подходящая поверхность и никто
// видимый не стоит на ней.
func (l *Location) Passable(t domain.Tile) bool {
	if !l.Kind(t).walkable() {
		return false
	}
	for _, c := range l.characters {
		if c.tile == t && !c.invisible {
			return false
		}
	}
	return true
}

func (l *Location) WarpAt(tile domain.Tile, _ domain.Agent) (domain.Warp, bool) {
	w, ok := l.warps[tile]
	if !ok {
		return domain.Warp{}, false
	}
	return w.warp(), true
}

func (l *Location) IsDoor(tile domain.Tile) bool {
	w, ok := l.warps[tile]
	return ok && w.Door
}

// TryInteract поглощает действие, если на клетке событие.
func (l *Location) TryInteract(tile domain.Tile, _ domain.Agent) bool {
	w, ok := l.warps[tile]
	if !ok || w.Event == "" {
		return false
	}
	l.world.out.Report(w.Event, true)
	return true
}

func (l *Location) PlayTerrainSound(tile domain.Tile) {
	if cue, ok := footstepCues[l.Kind(tile)]; ok {
		l.world.sounds.PlaySound(cue)
	}
}

func (l *Location) Characters() []domain.Character {
	out := make([]domain.Character, 0, len(l.characters))
	for _, c := range l.characters {
		out = append(out, c)
	}
	return out
}

func (l *Location) ObjectSignature() int { return l.signature }

func (l *Location) character(id string) (*Character, bool) {
	for _, c := range l.characters {
		if c.id == id {
			return c, true
		}
	}
	return nil, false
}

func (l *Location) addCharacter(c *Character) {
	l.characters = append(l.characters, c)
	l.signature++
}

func (l *Location) removeCharacter(id string) bool {
	for i, c := range l.characters {
		if c.id == id {
			l.characters = append(l.characters[:i], l.characters[i+1:]...)
			l.signature++
			return true
		}
	}
	return false
}
