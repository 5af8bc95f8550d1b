package systems

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

// ErrNilConfig - контроллер нельзя собрать без конфига.
var ErrNilConfig = errors.New("systems: config is required")

// MovementState - состояние контроллера движения по сетке.
type MovementState uint8

const (
	StateIdle MovementState = iota
	StateFacing
	StateStepping
	StateWarping
)

var movementStateNames = map[MovementState]string{
	StateIdle:     "IDLE",
	StateFacing:   "FACING",
	StateStepping: "STEPPING",
	StateWarping:  "WARPING",
}

func (s MovementState) String() string {
	if name, ok := movementStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// MovementDeps - коллабораторы контроллера.
type MovementDeps struct {
	World      domain.World
	Pathfinder domain.Pathfinder
	Sounds     domain.SoundPlayer
	Output     domain.Reporter
	Scheduler  timer.Scheduler
}

// GridMovement превращает направленный ввод ровно в один шаг на клетку.
// Между шагами действует задержка; повторный ввод во время нее отбрасывается
// (без очереди), так движение остается предсказуемым.
type GridMovement struct {
	cfg    *config.Config
	world  domain.World
	paths  domain.Pathfinder
	sounds domain.SoundPlayer
	out    domain.Reporter

	// cooldown - задержка шага; во время перехода на другую карту
	// переиспользуется как таймаут перехода.
	cooldown *timer.Timer

	state   MovementState
	moving  bool
	warping bool

	lastDirection domain.Direction
	lastButton    string
	hasLast       bool

	log *logrus.Entry
}

func NewGridMovement(cfg *config.Config, deps MovementDeps) (*GridMovement, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	g := &GridMovement{
		cfg:           cfg,
		world:         deps.World,
		paths:         deps.Pathfinder,
		sounds:        deps.Sounds,
		out:           deps.Output,
		lastDirection: domain.NoDirection,
		log:           logger.Log.WithField("component", "grid_movement"),
	}
	g.cooldown = timer.New(deps.Scheduler, cfg.StepCooldown, g.onCooldownElapsed)
	return g, nil
}

// CooldownFor - задержка шага с учетом бонуса скорости:
// base - speed*(base/9), но не меньше MinStepCooldown.
func (g *GridMovement) CooldownFor(speedBonus int) time.Duration {
	base := g.cfg.StepCooldown
	d := base - time.Duration(speedBonus)*(base/9)
	if d < g.cfg.MinStepCooldown {
		d = g.cfg.MinStepCooldown
	}
	return d
}

// Handle обрабатывает нажатие направления.
// Если агент смотрит в другую сторону - только поворот, без смены клетки.
func (g *GridMovement) Handle(dir domain.Direction, button string) {
	if !dir.Valid() {
		return
	}
	g.lastDirection = dir
	g.lastButton = button
	g.hasLast = true

	// Дубли во время задержки или перехода не копим
	if g.warping || g.moving {
		return
	}

	agent := g.world.Player()
	g.cooldown.SetInterval(g.CooldownFor(agent.SpeedBonus()))

	if agent.Facing() != dir {
		agent.Face(dir)
		g.sounds.PlaySound(domain.SoundBlocked)
		g.begin(StateFacing)
		return
	}

	if agent.Busy() || !agent.CanMove() {
		return
	}

	g.begin(StateStepping)
	g.step(agent, dir)
}

func (g *GridMovement) step(agent domain.Agent, dir domain.Direction) {
	loc := g.world.Location()

	// Выравниваем до шага, чтобы клетка считалась от чистой позиции
	agent.SetPosition(domain.SnapToGrid(agent.Position()))
	from := domain.AgentTile(agent)
	dest := from.Step(dir)

	g.out.Report(fmt.Sprintf("Move direction: %s", dir), false)
	g.out.Report(fmt.Sprintf("Move to: %d-%d", dest.X, dest.Y), false)

	if warp, ok := loc.WarpAt(dest, agent); ok {
		g.enterWarp(agent, loc, dest, warp)
		return
	}

	req := domain.PathRequest{Agent: agent, Location: loc, Target: dest, Facing: dir, Step: true}
	if g.paths.FindPath(req) == nil {
		g.log.WithFields(logrus.Fields{"from": from, "to": dest}).Debug("Step blocked")
		return
	}

	agent.SetPosition(dest.Origin())
	loc.PlayTerrainSound(dest)
	agent.SetPosition(domain.SnapToGrid(agent.Position()))
}

func (g *GridMovement) enterWarp(agent domain.Agent, loc domain.Location, dest domain.Tile, warp domain.Warp) {
	// Двери открываем действием, а не переходом: у некоторых дверей есть часы
	// работы, которые прямой переход бы обошел.
	if loc.IsDoor(dest) {
		g.out.Report("Collides with door", false)
		g.world.PressAction()
		return
	}

	g.out.Report("Collides with warp", false)
	if loc.TryInteract(dest, agent) {
		// Действие поглощено (диалог, событие) - задержку снимаем сразу
		g.cooldown.Stop()
		g.moving = false
		g.state = StateIdle
		return
	}

	// Таймер становится таймаутом перехода: не даем спамить переходом
	// и не оставляем агента замороженным, если переход не случился.
	g.cooldown.Stop()
	g.cooldown.SetInterval(g.cfg.WarpTimeout)
	g.cooldown.Start()

	g.sounds.PlaySound(domain.SoundDoorOpen)
	g.warping = true
	g.state = StateWarping
	agent.Warp(warp)

	g.log.WithFields(logrus.Fields{
		"location": warp.TargetLocation,
		"target":   warp.Target,
	}).Debug("Warp requested")
}

func (g *GridMovement) begin(state MovementState) {
	g.moving = true
	g.state = state
	g.cooldown.Start()
}

func (g *GridMovement) onCooldownElapsed() {
	g.moving = false
	// Переход так и не завершился сам - восстанавливаемся, чтобы агент не завис
	if g.warping {
		g.finishWarp(true)
	}
	g.state = StateIdle
}

// WarpCompleted - сигнал движка о завершенном переходе.
func (g *GridMovement) WarpCompleted() {
	g.cooldown.Stop()
	g.finishWarp(false)
}

func (g *GridMovement) finishWarp(failed bool) {
	g.world.Player().SetCanMove(true)
	g.moving = false
	g.state = StateIdle
	if !g.warping {
		return
	}
	g.warping = false
	if failed {
		g.log.Warn("Warp timed out")
		g.out.Report("Failed to walk through entrance.", true)
		return
	}
	g.sounds.PlaySound(domain.SoundDoorClose)
}

// IsMoving - идет задержка после шага или поворота.
func (g *GridMovement) IsMoving() bool { return g.moving }

// IsWarping - ждем завершения перехода на другую карту.
func (g *GridMovement) IsWarping() bool { return g.warping }

// State - текущее состояние автомата.
func (g *GridMovement) State() MovementState { return g.state }

// LastInput - последнее направление и кнопка, вызвавшие движение
// (для повтора при удержании кнопки).
func (g *GridMovement) LastInput() (domain.Direction, string, bool) {
	return g.lastDirection, g.lastButton, g.hasLast
}

// MovementSnapshot - состояние для отладки.
type MovementSnapshot struct {
	State         string        `json:"state"`
	Moving        bool          `json:"moving"`
	Warping       bool          `json:"warping"`
	LastDirection string        `json:"last_direction,omitempty"`
	LastButton    string        `json:"last_button,omitempty"`
	Cooldown      time.Duration `json:"cooldown"`
}

// Snapshot - копия состояния для /debug/movement.
func (g *GridMovement) Snapshot() MovementSnapshot {
	s := MovementSnapshot{
		State:    g.state.String(),
		Moving:   g.moving,
		Warping:  g.warping,
		Cooldown: g.cooldown.Interval(),
	}
	if g.hasLast {
		s.LastDirection = g.lastDirection.String()
		s.LastButton = g.lastButton
	}
	return s
}
