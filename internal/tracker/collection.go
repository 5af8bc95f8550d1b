package tracker

import "accessible-tiles/internal/domain"

// Collection - упорядоченный набор категорий с объектами.
// Внутри категории имя объекта уникально; повторное добавление игнорируется.
type Collection struct {
	order      []string
	categories map[string]*Category
}

// Category - именованный упорядоченный список объектов.
type Category struct {
	name    string
	objects []*domain.SpecialObject
	index   map[string]int
}

func NewCollection() *Collection {
	return &Collection{categories: make(map[string]*Category)}
}

// Add добавляет объект в категорию. Первый записавший побеждает:
// false, если объект с таким именем в категории уже есть.
func (c *Collection) Add(category string, obj domain.SpecialObject) bool {
	if category == "" || obj.Name == "" {
		return false
	}
	cat, ok := c.categories[category]
	if !ok {
		cat = &Category{name: category, index: make(map[string]int)}
		c.categories[category] = cat
		c.order = append(c.order, category)
	}
	if _, exists := cat.index[obj.Name]; exists {
		return false
	}
	o := obj
	cat.index[o.Name] = len(cat.objects)
	cat.objects = append(cat.objects, &o)
	return true
}

// Merge переносит объекты other в c с тем же правилом "первый побеждает".
// Возвращает число отброшенных дублей.
func (c *Collection) Merge(other *Collection) int {
	if other == nil {
		return 0
	}
	dropped := 0
	for _, name := range other.order {
		for _, obj := range other.categories[name].objects {
			if !c.Add(name, *obj) {
				dropped++
			}
		}
	}
	return dropped
}

func (c *Collection) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Collection) Category(name string) (*Category, bool) {
	cat, ok := c.categories[name]
	return cat, ok
}

func (c *Collection) Empty() bool { return len(c.order) == 0 }

// Len - общее число объектов.
func (c *Collection) Len() int {
	n := 0
	for _, cat := range c.categories {
		n += len(cat.objects)
	}
	return n
}

func (cat *Category) Name() string { return cat.name }
func (cat *Category) Len() int     { return len(cat.objects) }

func (cat *Category) Names() []string {
	out := make([]string, len(cat.objects))
	for i, o := range cat.objects {
		out[i] = o.Name
	}
	return out
}

func (cat *Category) Object(name string) (*domain.SpecialObject, bool) {
	i, ok := cat.index[name]
	if !ok {
		return nil, false
	}
	return cat.objects[i], true
}

// reorder переставляет объекты по less и пересчитывает индекс.
func (cat *Category) reorder(sortFn func(objs []*domain.SpecialObject)) {
	sortFn(cat.objects)
	for i, o := range cat.objects {
		cat.index[o.Name] = i
	}
}
