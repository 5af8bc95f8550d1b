package tracker

import "fmt"

// Axis - по чему двигается курсор.
type Axis uint8

const (
	AxisCategory Axis = iota
	AxisObject
)

// Step - направление прокрутки.
type Step int

const (
	Backward Step = -1
	Forward  Step = 1
)

const (
	suffixListStart = "start of list"
	suffixListEnd   = "end of list"
)

// Cycle сдвигает курсор по категориям или по объектам текущей категории
// с переходом через край. Пустой реестр или пустая ось - ничего не делаем.
func (t *Tracker) Cycle(axis Axis, step Step) {
	snap := t.registry.Get()
	if snap.Empty() {
		t.log.Debug("Cycle on empty registry")
		return
	}

	switch axis {
	case AxisCategory:
		keys := snap.Categories()
		next, wrapped := rotate(keys, t.category, step)
		t.category = keys[next]
		t.object = first(snap.Names(t.category))
		t.announce(fmt.Sprintf("%s, %s", t.category, t.object), wrapped, step)

	case AxisObject:
		keys := snap.Names(t.category)
		if len(keys) == 0 {
			return
		}
		next, wrapped := rotate(keys, t.object, step)
		t.object = keys[next]
		t.announce(t.object, wrapped, step)
	}
}

func (t *Tracker) announce(text string, wrapped bool, step Step) {
	if wrapped {
		suffix := suffixListStart
		if step == Backward {
			suffix = suffixListEnd
		}
		text = fmt.Sprintf("%s, %s", text, suffix)
	}
	t.out.Report(text, true)
}

// rotate возвращает индекс следующего ключа и признак перехода через край.
// Если текущего ключа нет в списке, берется первый (или последний при Backward).
func rotate(keys []string, current string, step Step) (int, bool) {
	idx := -1
	for i, k := range keys {
		if k == current {
			idx = i
			break
		}
	}
	n := len(keys)
	if idx < 0 {
		if step == Backward {
			return n - 1, false
		}
		return 0, false
	}
	next := idx + int(step)
	switch {
	case next >= n:
		return 0, true
	case next < 0:
		return n - 1, true
	}
	return next, false
}
