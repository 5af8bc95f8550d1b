package tracker

import (
	"accessible-tiles/internal/domain"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const msgNoPath = "Could not find path to object."

// navigation - активная сессия автопути к выбранному объекту.
type navigation struct {
	id       string
	category string
	object   string
	target   domain.Tile
	session  domain.PathSession
	retries  int
	started  time.Time
}

// NavigateToSelection запускает автопуть к выбранному объекту:
// к клетке навигации, если она задана, иначе к клетке объекта.
func (t *Tracker) NavigateToSelection() {
	obj, ok := t.Selection()
	if !ok {
		t.log.Debug("Nothing selected to navigate to")
		t.out.Report(msgNoPath, true)
		return
	}
	// Новая ходьба всегда начинается с нулевого счетчика попыток
	t.stopNavigation()

	target := obj.NavigationTile()
	if obj.NavTile == nil && obj.Character != nil {
		target = obj.Character.Tile()
	}

	t.out.Report("Attempt pathfinding.", true)
	nav := &navigation{
		id:       uuid.NewString(),
		category: t.category,
		object:   t.object,
		target:   target,
		started:  t.sched.Now(),
	}

	session := t.findPath(nav)
	if session == nil {
		t.out.Report(msgNoPath, true)
		return
	}
	nav.session = session
	t.nav = nav
	t.world.Player().SetController(session)

	t.stall.SetInterval(t.cfg.StallCheckInterval)
	t.stall.Start()
	t.footsteps.SetInterval(t.stepFn() + t.cfg.FootstepOffset)
	t.footsteps.Start()

	t.out.Report(fmt.Sprintf("Moving to %d-%d.", target.X, target.Y), true)
	t.log.WithFields(logrus.Fields{
		"session": nav.id,
		"object":  nav.object,
		"target":  target,
	}).Info("Navigation started")
}

func (t *Tracker) findPath(nav *navigation) domain.PathSession {
	id := nav.id
	return t.paths.FindPath(domain.PathRequest{
		Agent:    t.world.Player(),
		Location: t.world.Location(),
		Target:   nav.target,
		Facing:   domain.NoDirection,
		OnArrive: func() { t.arrived(id) },
	})
}

// checkStall - проверка застревания по таймеру.
func (t *Tracker) checkStall() {
	nav := t.nav
	if nav == nil {
		t.stopTimers()
		return
	}
	if t.released(nav) {
		return
	}
	if nav.session == nil || nav.session.SinceCheckpoint() < t.cfg.StallThreshold {
		return
	}

	if _, ok := t.registry.Get().Object(nav.category, nav.object); !ok {
		t.abandon("selection gone")
		return
	}

	nav.retries++
	if nav.retries >= t.cfg.MaxRetries {
		t.abandon("retries exhausted")
		return
	}

	entry := t.log.WithFields(logrus.Fields{"session": nav.id, "retry": nav.retries})
	t.out.Report(fmt.Sprintf("Attempting to restart pathfinding attempt %d", nav.retries), false)
	if nav.retries == 1 {
		t.out.Report("Target unreachable, re-trying...", true)
		t.unblock()
	}

	session := t.findPath(nav)
	if session == nil {
		entry.Debug("Retry found no path")
		return
	}
	nav.session = session
	t.world.Player().SetController(session)
	entry.Debug("Path re-issued")
}

// unblock временно делает прозрачными сущности на клетке агента и
// возвращает им видимость через короткую задержку. Восстановление
// переживает конец сессии и ничего не делает, если сущности уже нет.
func (t *Tracker) unblock() {
	if t.chars == nil {
		return
	}
	for _, c := range t.chars.CharactersAt(t.agentTile()) {
		if c.Invisible() {
			continue
		}
		c.SetInvisible(true)
		id := c.ID()
		t.deferred.After(id, t.cfg.VisibilityRestoreDelay, func() {
			if ch, ok := t.chars.Character(id); ok {
				ch.SetInvisible(false)
			}
		})
		t.log.WithField("character", id).Debug("Blocking character hidden")
	}
}

// abandon - принудительная остановка: цель потеряна.
func (t *Tracker) abandon(reason string) {
	nav := t.nav
	t.stopNavigation()
	t.out.Report("Pathfinding forcibly stopped. Target Lost.", true)
	if nav != nil {
		t.log.WithFields(logrus.Fields{
			"session": nav.id,
			"reason":  reason,
		}).Warn("Navigation abandoned")
	}
	t.Refresh(true)
}

func (t *Tracker) arrived(id string) {
	nav := t.nav
	if nav == nil || nav.id != id {
		return
	}
	t.stopNavigation()
	t.faceToward(nav)
	t.log.WithFields(logrus.Fields{
		"session": nav.id,
		"elapsed": t.sched.Now().Sub(nav.started),
	}).Info("Navigation arrived")
	t.ReadSelection(false)
}

// CancelNavigation синхронно останавливает автопуть. false, если его не было.
func (t *Tracker) CancelNavigation() bool {
	nav := t.nav
	if nav == nil {
		return false
	}
	t.stopNavigation()
	t.faceToward(nav)
	t.out.Report("Auto-walk cancelled.", true)
	return true
}

// EndNavigation молча завершает сессию, если она есть (например, после
// перехода на другую карту). false, если сессии не было.
func (t *Tracker) EndNavigation() bool {
	nav := t.nav
	if nav == nil {
		return false
	}
	t.stopNavigation()
	t.log.WithField("session", nav.id).Info("Navigation ended")
	return true
}

// released - игра сняла наш контроллер с агента (переход, катсцена):
// сессия завершается без сообщений.
func (t *Tracker) released(nav *navigation) bool {
	if t.world.Player().Controller() == nav.session {
		return false
	}
	t.stopTimers()
	t.nav = nil
	t.log.WithField("session", nav.id).Debug("Controller released externally")
	return true
}

// stopNavigation останавливает таймеры, освобождает контроллер и сбрасывает сессию.
func (t *Tracker) stopNavigation() {
	if t.nav == nil {
		return
	}
	t.stopTimers()
	t.world.Player().SetController(nil)
	t.nav = nil
}

func (t *Tracker) stopTimers() {
	t.stall.Stop()
	t.footsteps.Stop()
}

// faceToward поворачивает агента к объекту по преобладающей оси;
// если агент стоит на клетке объекта - к клетке навигации.
func (t *Tracker) faceToward(nav *navigation) {
	agent := t.world.Player()
	from := domain.AgentTile(agent)
	to := nav.target
	if obj, ok := t.registry.Get().Object(nav.category, nav.object); ok && liveTile(obj) != from {
		to = liveTile(obj)
	}
	if dir, ok := domain.DominantDirection(from, to); ok {
		agent.Face(dir)
	}
}

func (t *Tracker) footstep() {
	if t.nav == nil || t.released(t.nav) {
		return
	}
	t.world.Location().PlayTerrainSound(t.agentTile())
}

func (t *Tracker) Navigating() bool { return t.nav != nil }

// Retries - счетчик попыток текущей сессии; 0 без сессии.
func (t *Tracker) Retries() int {
	if t.nav == nil {
		return 0
	}
	return t.nav.retries
}

// NavigationSnapshot - состояние автопути для отладки.
type NavigationSnapshot struct {
	Active   bool        `json:"active"`
	Session  string      `json:"session,omitempty"`
	Category string      `json:"category,omitempty"`
	Object   string      `json:"object,omitempty"`
	Target   domain.Tile `json:"target"`
	Retries  int         `json:"retries"`
	Stalled  string      `json:"stalled,omitempty"`
}

func (t *Tracker) NavigationSnapshot() NavigationSnapshot {
	nav := t.nav
	if nav == nil {
		return NavigationSnapshot{}
	}
	s := NavigationSnapshot{
		Active:   true,
		Session:  nav.id,
		Category: nav.category,
		Object:   nav.object,
		Target:   nav.target,
		Retries:  nav.retries,
	}
	if nav.session != nil {
		s.Stalled = nav.session.SinceCheckpoint().String()
	}
	return s
}
