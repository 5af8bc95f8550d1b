package domain

// SpecialObject - одна отслеживаемая точка интереса.
type SpecialObject struct {
	// Name уникально в пределах категории.
	Name string `json:"name"`
	// Tile - клетка для зачитывания.
	Tile Tile `json:"tile"`
	// NavTile - клетка для автоходьбы, если отличается от Tile.
	NavTile *Tile `json:"navTile,omitempty"`
	// Character - ссылка на живую сущность; nil для статичных объектов.
	Character Character `json:"-"`
}

// NavigationTile - куда идти автопутем.
func (o *SpecialObject) NavigationTile() Tile {
	if o.NavTile != nil {
		return *o.NavTile
	}
	return o.Tile
}
