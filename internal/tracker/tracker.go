// Package tracker ведет реестр отслеживаемых объектов текущей карты,
// курсор выбора, зачитывание выбранного объекта и автопуть к нему.
package tracker

import (
	"accessible-tiles/internal/config"
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/timer"
	"accessible-tiles/pkg/logger"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNilConfig - трекер нельзя собрать без конфига.
var ErrNilConfig = errors.New("tracker: config is required")

// Deps - коллабораторы трекера.
type Deps struct {
	World      domain.World
	Pathfinder domain.Pathfinder
	Characters domain.CharacterLookup
	Output     domain.Reporter
	Scheduler  timer.Scheduler
	// Deferred - общий планировщик отложенных задач; переживает сессии автопути.
	Deferred  *timer.Deferred
	Providers []Provider
	// StepInterval - текущая задержка ручного шага; nil - StepCooldown из конфига.
	StepInterval func() time.Duration
}

// Tracker - курсор (категория, объект) над реестром и сессия автопути.
type Tracker struct {
	cfg      *config.Config
	world    domain.World
	paths    domain.Pathfinder
	chars    domain.CharacterLookup
	out      domain.Reporter
	sched    timer.Scheduler
	deferred *timer.Deferred
	stepFn   func() time.Duration

	registry        *Registry
	sortByProximity bool

	category string
	object   string

	nav       *navigation
	stall     *timer.Timer
	footsteps *timer.Timer

	log *logrus.Entry
}

func New(cfg *config.Config, deps Deps) (*Tracker, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	t := &Tracker{
		cfg:             cfg,
		world:           deps.World,
		paths:           deps.Pathfinder,
		chars:           deps.Characters,
		out:             deps.Output,
		sched:           deps.Scheduler,
		deferred:        deps.Deferred,
		stepFn:          deps.StepInterval,
		registry:        NewRegistry(deps.Providers...),
		sortByProximity: cfg.SortByProximity,
		log:             logger.Log.WithField("component", "tracker"),
	}
	if t.deferred == nil {
		t.deferred = timer.NewDeferred(deps.Scheduler)
	}
	if t.stepFn == nil {
		t.stepFn = func() time.Duration { return cfg.StepCooldown }
	}
	t.stall = timer.NewPeriodic(deps.Scheduler, cfg.StallCheckInterval, t.checkStall)
	t.footsteps = timer.NewPeriodic(deps.Scheduler, cfg.FootstepInterval(), t.footstep)
	return t, nil
}

// Refresh пересобирает реестр и выправляет курсор:
// сброс на первую категорию и первый объект, если resetFocus или категории
// больше нет; только объект, если пропал объект; иначе курсор не трогаем.
func (t *Tracker) Refresh(resetFocus bool) {
	t.registry.Rebuild(t.sortByProximity, t.agentTile())
	snap := t.registry.Get()

	if snap.Empty() {
		t.category, t.object = "", ""
		return
	}

	if resetFocus || !snap.HasCategory(t.category) {
		t.category = snap.Categories()[0]
		t.object = first(snap.Names(t.category))
		return
	}

	if _, ok := snap.Object(t.category, t.object); !ok {
		t.object = first(snap.Names(t.category))
	}
}

// ToggleSortMode переключает сортировку по расстоянию/алфавиту и пересобирает реестр.
func (t *Tracker) ToggleSortMode() {
	t.sortByProximity = !t.sortByProximity
	state := "Disabled"
	if t.sortByProximity {
		state = "Enabled"
	}
	t.out.Report(fmt.Sprintf("Sort By Proximity: %s", state), true)
	t.Refresh(false)
}

func (t *Tracker) SortByProximity() bool { return t.sortByProximity }

// Cursor - текущий выбор; пустые строки, если ничего не выбрано.
func (t *Tracker) Cursor() (category, object string) {
	return t.category, t.object
}

// Selection - выбранный объект, если курсор указывает на существующую запись.
func (t *Tracker) Selection() (domain.SpecialObject, bool) {
	if t.category == "" || t.object == "" {
		return domain.SpecialObject{}, false
	}
	return t.registry.Get().Object(t.category, t.object)
}

// Registry - снимок для чтения (зачитывание, отладка).
func (t *Tracker) Registry() Snapshot {
	return t.registry.Get()
}

func (t *Tracker) agentTile() domain.Tile {
	return domain.AgentTile(t.world.Player())
}

// liveTile - клетка объекта; у живых сущностей берется их текущая позиция.
func liveTile(obj domain.SpecialObject) domain.Tile {
	if obj.Character != nil {
		return obj.Character.Tile()
	}
	return obj.Tile
}

func first(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
