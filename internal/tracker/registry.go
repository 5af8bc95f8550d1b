package tracker

import (
	"accessible-tiles/internal/domain"
	"accessible-tiles/pkg/logger"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Provider - источник отслеживаемых объектов для текущей карты.
type Provider interface {
	Name() string
	HasObjects() bool
	Objects() *Collection
}

// Registry собирает объекты всех провайдеров в один снимок.
// Провайдеры опрашиваются в фиксированном порядке (самый точный первым),
// при совпадении (категория, имя) побеждает первый. Каждая пересборка
// полностью заменяет снимок.
type Registry struct {
	providers []Provider
	current   *Collection
	collator  *collate.Collator
	log       *logrus.Entry
}

func NewRegistry(providers ...Provider) *Registry {
	return &Registry{
		providers: providers,
		current:   NewCollection(),
		collator:  collate.New(language.English, collate.IgnoreCase),
		log:       logger.Log.WithField("component", "registry"),
	}
}

// Rebuild пересобирает реестр.
// Категории всегда идут по алфавиту. Объекты внутри категории - по алфавиту,
// либо (sortByProximity) по расстоянию от origin; при равном расстоянии
// сохраняется порядок провайдеров.
func (r *Registry) Rebuild(sortByProximity bool, origin domain.Tile) {
	next := NewCollection()
	for _, p := range r.providers {
		if !p.HasObjects() {
			continue
		}
		if dropped := next.Merge(p.Objects()); dropped > 0 {
			r.log.WithFields(logrus.Fields{
				"provider": p.Name(),
				"dropped":  dropped,
			}).Debug("Duplicate objects ignored")
		}
	}

	sort.SliceStable(next.order, func(i, j int) bool {
		return r.collator.CompareString(next.order[i], next.order[j]) < 0
	})
	for _, name := range next.order {
		cat := next.categories[name]
		if sortByProximity {
			cat.reorder(func(objs []*domain.SpecialObject) {
				sort.SliceStable(objs, func(i, j int) bool {
					return objs[i].Tile.DistanceSquaredTo(origin) < objs[j].Tile.DistanceSquaredTo(origin)
				})
			})
		} else {
			cat.reorder(func(objs []*domain.SpecialObject) {
				sort.SliceStable(objs, func(i, j int) bool {
					return r.collator.CompareString(objs[i].Name, objs[j].Name) < 0
				})
			})
		}
	}

	r.current = next
	r.log.WithFields(logrus.Fields{
		"categories": len(next.order),
		"objects":    next.Len(),
		"proximity":  sortByProximity,
	}).Debug("Registry rebuilt")
}

// Get возвращает текущий снимок только для чтения.
func (r *Registry) Get() Snapshot {
	return Snapshot{c: r.current}
}

// Snapshot - неизменяемое представление реестра.
type Snapshot struct {
	c *Collection
}

func (s Snapshot) Empty() bool {
	return s.c == nil || s.c.Empty()
}

func (s Snapshot) Categories() []string {
	if s.c == nil {
		return nil
	}
	return s.c.Categories()
}

func (s Snapshot) HasCategory(name string) bool {
	if s.c == nil {
		return false
	}
	_, ok := s.c.Category(name)
	return ok
}

// Names - имена объектов категории в текущем порядке.
func (s Snapshot) Names(category string) []string {
	if s.c == nil {
		return nil
	}
	cat, ok := s.c.Category(category)
	if !ok {
		return nil
	}
	return cat.Names()
}

// Object возвращает копию объекта, чтобы снимок нельзя было изменить снаружи.
func (s Snapshot) Object(category, name string) (domain.SpecialObject, bool) {
	if s.c == nil {
		return domain.SpecialObject{}, false
	}
	cat, ok := s.c.Category(category)
	if !ok {
		return domain.SpecialObject{}, false
	}
	obj, ok := cat.Object(name)
	if !ok {
		return domain.SpecialObject{}, false
	}
	return *obj, true
}

func (s Snapshot) Len() int {
	if s.c == nil {
		return 0
	}
	return s.c.Len()
}

// CategoryView - категория в JSON-представлении для отладки.
type CategoryView struct {
	Name    string                 `json:"name"`
	Objects []domain.SpecialObject `json:"objects"`
}

func (s Snapshot) View() []CategoryView {
	var out []CategoryView
	for _, name := range s.Categories() {
		cat, _ := s.c.Category(name)
		view := CategoryView{Name: name}
		for _, o := range cat.objects {
			view.Objects = append(view.Objects, *o)
		}
		out = append(out, view)
	}
	return out
}
