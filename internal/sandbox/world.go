package sandbox

import (
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/timer"
	"accessible-tiles/internal/tracker/providers"
	"accessible-tiles/pkg/logger"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Deps - зависимости мира.
type Deps struct {
	Output domain.Reporter
	Sounds domain.SoundPlayer
	Clock  timer.Scheduler
	// StepInterval - время одного шага автоходьбы.
	StepInterval time.Duration
}

// World - состояние песочницы. Как и ядро, живет на одном логическом потоке.
type World struct {
	locations map[string]*Location
	current   *Location
	player    *Player

	quests          map[int]bool
	magnifyingGlass bool
	eventActive     bool

	out          domain.Reporter
	sounds       domain.SoundPlayer
	clock        timer.Scheduler
	stepInterval time.Duration

	log *logrus.Entry
}

func NewWorld(m *MapFile, deps Deps) (*World, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	w := &World{
		locations:       make(map[string]*Location, len(m.Locations)),
		quests:          make(map[int]bool, len(m.Player.Quests)),
		magnifyingGlass: m.Player.MagnifyingGlass,
		out:             deps.Output,
		sounds:          deps.Sounds,
		clock:           deps.Clock,
		stepInterval:    deps.StepInterval,
		log:             logger.Log.WithField("component", "sandbox"),
	}
	for _, def := range m.Locations {
		w.locations[def.Name] = newLocation(def, w)
	}
	for _, q := range m.Player.Quests {
		w.quests[q] = true
	}

	facing, ok := domain.ParseDirection(m.Start.Facing)
	if !ok {
		facing = domain.South
	}
	w.current = w.locations[m.Start.Location]
	w.player = &Player{
		pos:        domain.Tile{X: m.Start.X, Y: m.Start.Y}.Origin(),
		facing:     facing,
		canMove:    true,
		speedBonus: m.Player.SpeedBonus,
	}
	return w, nil
}

func (w *World) Player() domain.Agent      { return w.player }
func (w *World) Location() domain.Location { return w.current }

// Agent и Current - конкретные типы для хоста и тестов.
func (w *World) Agent() *Player     { return w.player }
func (w *World) Current() *Location { return w.current }

// PressAction - действие перед игроком: открыть дверь или запустить событие.
func (w *World) PressAction() {
	front := domain.AgentTile(w.player).Step(w.player.facing)
	def, ok := w.current.warps[front]
	if !ok {
		w.log.WithField("tile", front).Debug("Nothing to act on")
		return
	}
	switch {
	case def.Event != "":
		w.current.TryInteract(front, w.player)
	case def.Locked:
		w.out.Report("The door is locked.", true)
	default:
		w.player.Warp(def.warp())
	}
}

// Tick продвигает мир: применяет отложенный переход и ведет автоходьбу.
// Возвращает true, если на этом тике завершился переход.
func (w *World) Tick() bool {
	if p := w.player.pendingWarp; p != nil {
		w.player.pendingWarp = nil
		return w.applyWarp(*p)
	}

	walk, ok := w.player.controller.(*Walk)
	if !ok {
		return false
	}
	if walk.advance(w.current, w.player, w.stepInterval) {
		if walk.onArrive != nil {
			walk.onArrive()
		}
		if w.player.controller == walk {
			w.player.controller = nil
		}
	}
	return false
}

func (w *World) applyWarp(warp domain.Warp) bool {
	dest, ok := w.locations[warp.TargetLocation]
	if !ok {
		// Игрок остается замороженным; движение восстановится по таймауту
		w.log.WithField("location", warp.TargetLocation).Error("Warp to unknown location")
		return false
	}
	w.current = dest
	w.player.pos = warp.Target.Origin()
	w.player.canMove = true
	w.player.controller = nil
	w.log.WithFields(logrus.Fields{
		"location": dest.name,
		"tile":     warp.Target,
	}).Info("Warped")
	return true
}

// FindPath - примитив поиска пути для ядра.
func (w *World) FindPath(req domain.PathRequest) domain.PathSession {
	loc, ok := req.Location.(*Location)
	if !ok || loc == nil {
		loc = w.current
	}
	// Автоходьба может вести к занятой клетке, шаг по сетке - нет
	if req.Step && !loc.Passable(req.Target) {
		return nil
	}
	from := domain.AgentTile(req.Agent)
	path, ok := route(loc, from, req.Target)
	if !ok {
		return nil
	}
	now := w.clock.Now()
	return &Walk{
		path:       path,
		target:     req.Target,
		facing:     req.Facing,
		onArrive:   req.OnArrive,
		checkpoint: now,
		now:        w.clock.Now,
	}
}

// Character ищет сущность на текущей карте.
func (w *World) Character(id string) (domain.Character, bool) {
	c, ok := w.current.character(id)
	if !ok {
		return nil, false
	}
	return c, true
}

func (w *World) CharactersAt(tile domain.Tile) []domain.Character {
	var out []domain.Character
	for _, c := range w.current.characters {
		if c.tile == tile {
			out = append(out, c)
		}
	}
	return out
}

// Annotations - внешние данные доступности для карты.
func (w *World) Annotations(location string) []providers.Annotation {
	loc, ok := w.locations[location]
	if !ok {
		return nil
	}
	return loc.annotations
}

func (w *World) HasQuest(id int) bool { return w.quests[id] }

func (w *World) ExtraCheck(hook int) bool {
	switch hook {
	case providers.HookMagnifyingGlass:
		return w.magnifyingGlass
	case providers.HookEventTarget:
		return w.eventActive
	}
	return false
}

func (w *World) SetEventActive(v bool)     { w.eventActive = v }
func (w *World) SetMagnifyingGlass(v bool) { w.magnifyingGlass = v }
func (w *World) AddQuest(id int)           { w.quests[id] = true }

// AddCharacter помещает сущность на карту.
func (w *World) AddCharacter(location string, c *Character) error {
	loc, ok := w.locations[location]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLocation, location)
	}
	loc.addCharacter(c)
	return nil
}

func (w *World) RemoveCharacter(location, id string) bool {
	loc, ok := w.locations[location]
	if !ok {
		return false
	}
	return loc.removeCharacter(id)
}

// MoveCharacter переставляет сущность текущей карты.
func (w *World) MoveCharacter(id string, tile domain.Tile) bool {
	c, ok := w.current.character(id)
	if !ok {
		return false
	}
	c.tile = tile
	return true
}
