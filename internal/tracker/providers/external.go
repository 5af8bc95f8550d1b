package providers

import (
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/tracker"
)

// Annotation - объект, опубликованный внешним источником данных доступности.
type Annotation struct {
	Category string       `json:"category"`
	Name     string       `json:"name"`
	Tile     domain.Tile  `json:"tile"`
	NavTile  *domain.Tile `json:"navTile,omitempty"`
}

// AccessData - внешний источник аннотаций по имени карты.
type AccessData interface {
	Annotations(location string) []Annotation
}

// External - самый точный провайдер, опрашивается первым.
type External struct {
	source AccessData
	world  domain.World
}

func NewExternal(source AccessData, world domain.World) *External {
	return &External{source: source, world: world}
}

func (p *External) Name() string { return "external" }

func (p *External) HasObjects() bool {
	return p.source != nil && len(p.source.Annotations(p.world.Location().Name())) > 0
}

func (p *External) Objects() *tracker.Collection {
	var items []candidate
	for _, a := range p.source.Annotations(p.world.Location().Name()) {
		items = append(items, candidate{
			category: a.Category,
			object:   domain.SpecialObject{Name: a.Name, Tile: a.Tile, NavTile: a.NavTile},
		})
	}
	sortByDistance(items, domain.AgentTile(p.world.Player()))

	c := tracker.NewCollection()
	for _, it := range items {
		c.Add(it.category, it.object)
	}
	return c
}
