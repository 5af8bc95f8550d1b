package sandbox

import "accessible-tiles/internal/domain"

// Character - NPC или животное на карте.
type Character struct {
	id        string
	name      string
	tile      domain.Tile
	animal    bool
	invisible bool
}

func NewCharacter(id, name string, tile domain.Tile, animal bool) *Character {
	return &Character{id: id, name: name, tile: tile, animal: animal}
}

func (c *Character) ID() string          { return c.id }
func (c *Character) Name() string        { return c.name }
func (c *Character) Tile() domain.Tile   { return c.tile }
func (c *Character) IsAnimal() bool      { return c.animal }
func (c *Character) Invisible() bool     { return c.invisible }
func (c *Character) SetInvisible(v bool) { c.invisible = v }
