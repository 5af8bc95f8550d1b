package providers

import (
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/tracker"
	"accessible-tiles/pkg/logger"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type stubAgent struct{ tile domain.Tile }

func (a *stubAgent) Position() domain.Point           { return a.tile.Origin() }
func (a *stubAgent) SetPosition(domain.Point)         {}
func (a *stubAgent) Facing() domain.Direction         { return domain.South }
func (a *stubAgent) Face(domain.Direction)            {}
func (a *stubAgent) CanMove() bool                    { return true }
func (a *stubAgent) SetCanMove(bool)                  {}
func (a *stubAgent) SpeedBonus() int                  { return 0 }
func (a *stubAgent) Busy() bool                       { return false }
func (a *stubAgent) Warp(domain.Warp)                 {}
func (a *stubAgent) Controller() domain.PathSession   { return nil }
func (a *stubAgent) SetController(domain.PathSession) {}

type stubCharacter struct {
	id, name string
	tile     domain.Tile
	animal   bool
}

func (c *stubCharacter) ID() string        { return c.id }
func (c *stubCharacter) Name() string      { return c.name }
func (c *stubCharacter) Tile() domain.Tile { return c.tile }
func (c *stubCharacter) IsAnimal() bool    { return c.animal }
func (c *stubCharacter) Invisible() bool   { return false }
func (c *stubCharacter) SetInvisible(bool) {}

type stubLocation struct {
	name  string
	chars []domain.Character
}

func (l *stubLocation) Name() string                                         { return l.name }
func (l *stubLocation) WarpAt(domain.Tile, domain.Agent) (domain.Warp, bool) { return domain.Warp{}, false }
func (l *stubLocation) IsDoor(domain.Tile) bool                              { return false }
func (l *stubLocation) TryInteract(domain.Tile, domain.Agent) bool           { return false }
func (l *stubLocation) PlayTerrainSound(domain.Tile)                         {}
func (l *stubLocation) Characters() []domain.Character                       { return l.chars }
func (l *stubLocation) ObjectSignature() int                                 { return len(l.chars) }

type stubWorld struct {
	agent *stubAgent
	loc   *stubLocation
}

func (w *stubWorld) Player() domain.Agent      { return w.agent }
func (w *stubWorld) Location() domain.Location { return w.loc }
func (w *stubWorld) PressAction()              {}

type stubConditions struct {
	quests map[int]bool
	hooks  map[int]bool
}

func (c stubConditions) HasQuest(id int) bool     { return c.quests[id] }
func (c stubConditions) ExtraCheck(hook int) bool { return c.hooks[hook] }

type stubAccess map[string][]Annotation

func (s stubAccess) Annotations(location string) []Annotation { return s[location] }

func newStubWorld(location string, at domain.Tile) *stubWorld {
	return &stubWorld{agent: &stubAgent{tile: at}, loc: &stubLocation{name: location}}
}

func intPtr(v int) *int { return &v }

func TestLoadSpecialPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	data := `{"Town": [
		{"Name": "Well", "XPos": 10, "YPos": 10},
		{"Name": "Counter", "XPos": 5, "YPos": 5, "NavXPos": 5, "NavYPos": 6, "CategoryOverride": "shops"}
	]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := LoadSpecialPoints(path)
	if err != nil {
		t.Fatalf("LoadSpecialPoints failed: %v", err)
	}
	if len(file["Town"]) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(file["Town"]))
	}
	if _, err := LoadSpecialPoints(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSpecialPoints_Objects(t *testing.T) {
	shops := "shops"
	file := SpecialPointsFile{
		"Town": {
			{Name: "Well", XPos: 10, YPos: 10},
			{Name: "Counter", XPos: 2, YPos: 0, NavXPos: intPtr(2), NavYPos: intPtr(1), CategoryOverride: &shops},
			{Name: "Bulletin", XPos: 1, YPos: 1, RequiresQuest: intPtr(7)},
			{Name: "Bush", XPos: 3, YPos: 3, ExtraChecksHook: intPtr(HookMagnifyingGlass)},
		},
		"Farm": {{Name: "Barn", XPos: 1, YPos: 1}},
	}
	world := newStubWorld("Town", domain.Tile{})
	cond := stubConditions{quests: map[int]bool{7: true}, hooks: map[int]bool{}}

	p := NewSpecialPoints(file, world, cond)
	if !p.HasObjects() {
		t.Fatal("Expected objects in Town")
	}
	c := p.Objects()

	special, ok := c.Category(domain.CategorySpecial)
	if !ok {
		t.Fatal("Expected special category")
	}
	if got := special.Names(); !reflect.DeepEqual(got, []string{"Bulletin", "Well"}) {
		t.Errorf("Expected quest point included and hook point skipped, got %v", got)
	}

	shop, ok := c.Category("shops")
	if !ok {
		t.Fatal("Expected category override")
	}
	counter, _ := shop.Object("Counter")
	if counter.NavigationTile() != (domain.Tile{X: 2, Y: 1}) {
		t.Errorf("Expected navigation tile (2,1), got %v", counter.NavigationTile())
	}

	world.loc.name = "Cave"
	if p.HasObjects() {
		t.Error("Expected no objects for unknown location")
	}
}

func TestSpecialPoints_NoConditionsHidesGatedPoints(t *testing.T) {
	file := SpecialPointsFile{"Town": {
		{Name: "Well", XPos: 1, YPos: 1},
		{Name: "Bulletin", XPos: 2, YPos: 2, RequiresQuest: intPtr(1)},
	}}
	p := NewSpecialPoints(file, newStubWorld("Town", domain.Tile{}), nil)

	if got := p.Objects().Len(); got != 1 {
		t.Errorf("Expected only ungated point, got %d", got)
	}
}

func TestEntities_Objects(t *testing.T) {
	world := newStubWorld("Farm", domain.Tile{})
	world.loc.chars = []domain.Character{
		&stubCharacter{id: "1", name: "Ava", tile: domain.Tile{X: 9, Y: 0}},
		&stubCharacter{id: "2", name: "Cow", tile: domain.Tile{X: 2, Y: 0}, animal: true},
		&stubCharacter{id: "3", name: "Ben", tile: domain.Tile{X: 1, Y: 0}},
		&stubCharacter{id: "4", name: "Ava", tile: domain.Tile{X: 3, Y: 0}},
	}

	c := NewEntities(world).Objects()

	chars, _ := c.Category(domain.CategoryCharacters)
	if got := chars.Names(); !reflect.DeepEqual(got, []string{"Ben", "Ava"}) {
		t.Errorf("Expected characters by distance, got %v", got)
	}
	ava, _ := chars.Object("Ava")
	if ava.Character == nil || ava.Character.ID() != "4" {
		t.Error("Expected nearest Ava with back-reference")
	}
	animals, _ := c.Category(domain.CategoryAnimals)
	if animals.Len() != 1 {
		t.Errorf("Expected one animal, got %d", animals.Len())
	}
}

func TestExternal_FirstInRegistry(t *testing.T) {
	world := newStubWorld("Town", domain.Tile{})
	access := stubAccess{"Town": {{Category: domain.CategorySpecial, Name: "Well", Tile: domain.Tile{X: 4, Y: 4}}}}
	points := SpecialPointsFile{"Town": {{Name: "Well", XPos: 10, YPos: 10}}}

	reg := tracker.NewRegistry(
		NewExternal(access, world),
		NewSpecialPoints(points, world, nil),
		NewEntities(world),
	)
	reg.Rebuild(true, domain.Tile{})

	well, ok := reg.Get().Object(domain.CategorySpecial, "Well")
	if !ok {
		t.Fatal("Expected Well")
	}
	if well.Tile != (domain.Tile{X: 4, Y: 4}) {
		t.Errorf("Expected external Well to win, got %v", well.Tile)
	}
}

func TestExternal_NilSource(t *testing.T) {
	p := NewExternal(nil, newStubWorld("Town", domain.Tile{}))
	if p.HasObjects() {
		t.Error("Expected no objects without a source")
	}
}


func TestLoadSpecialPoints_Asset(t *testing.T) {
	file, err := LoadSpecialPoints(filepath.Join("..", "..", "..", "assets", "special_points.json"))
	if err != nil {
		t.Fatalf("LoadSpecialPoints failed: %v", err)
	}
	for _, location := range []string{"Farm", "Town"} {
		if len(file[location]) == 0 {
			t.Errorf("Expected points for %s", location)
		}
		for _, sp := range file[location] {
			if sp.Name == "" {
				t.Errorf("Point without name in %s", location)
			}
		}
	}
}
