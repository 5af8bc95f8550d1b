package providers

import (
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/tracker"
)

// Entities - живые сущности текущей карты: животные и персонажи.
// Объекты держат ссылку на сущность, чтобы зачитывать ее текущую позицию.
type Entities struct {
	world domain.World
}

func NewEntities(world domain.World) *Entities {
	return &Entities{world: world}
}

func (p *Entities) Name() string { return "entities" }

func (p *Entities) HasObjects() bool {
	return len(p.world.Location().Characters()) > 0
}

func (p *Entities) Objects() *tracker.Collection {
	var items []candidate
	for _, ch := range p.world.Location().Characters() {
		category := domain.CategoryCharacters
		if ch.IsAnimal() {
			category = domain.CategoryAnimals
		}
		items = append(items, candidate{
			category: category,
			object:   domain.SpecialObject{Name: ch.Name(), Tile: ch.Tile(), Character: ch},
		})
	}
	sortByDistance(items, domain.AgentTile(p.world.Player()))

	c := tracker.NewCollection()
	for _, it := range items {
		c.Add(it.category, it.object)
	}
	return c
}
