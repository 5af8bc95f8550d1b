// Package providers - источники отслеживаемых объектов для реестра трекера.
// Каждый провайдер отдает объекты текущей карты, упорядоченные по расстоянию
// от агента.
package providers

import (
	"accessible-tiles/internal/domain"
	"sort"
)

type candidate struct {
	category string
	object   domain.SpecialObject
}

func sortByDistance(items []candidate, origin domain.Tile) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].object.Tile.DistanceSquaredTo(origin) < items[j].object.Tile.DistanceSquaredTo(origin)
	})
}
