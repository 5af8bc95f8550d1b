package systems

import (
	"accessible-tiles/internal/config"
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/timer"
	"testing"
	"time"
)

var epoch = time.Date(2024, time.March, 1, 6, 0, 0, 0, time.UTC)

type movementRig struct {
	cfg   *config.Config
	clock *timer.ManualClock
	world *fakeWorld
	paths *fakePaths
	out   *recorder
	gm    *GridMovement
}

func newMovementRig(t *testing.T, start domain.Tile, facing domain.Direction) *movementRig {
	t.Helper()
	r := &movementRig{
		cfg:   config.Default(),
		clock: timer.NewManualClock(epoch),
		world: &fakeWorld{agent: newFakeAgent(start, facing), loc: newFakeLocation()},
		paths: &fakePaths{blocked: map[domain.Tile]bool{}},
		out:   &recorder{},
	}
	gm, err := NewGridMovement(r.cfg, MovementDeps{
		World:      r.world,
		Pathfinder: r.paths,
		Sounds:     r.out,
		Output:     r.out,
		Scheduler:  r.clock,
	})
	if err != nil {
		t.Fatalf("NewGridMovement failed: %v", err)
	}
	r.gm = gm
	return r
}

func (r *movementRig) tile() domain.Tile { return domain.AgentTile(r.world.agent) }

func TestNewGridMovement_RequiresConfig(t *testing.T) {
	if _, err := NewGridMovement(nil, MovementDeps{}); err != ErrNilConfig {
		t.Errorf("Expected ErrNilConfig, got %v", err)
	}
}

func TestGridMovement_FacingChangeDoesNotMove(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 5, Y: 5}, domain.South)

	r.gm.Handle(domain.East, "D")

	if got := r.tile(); got != (domain.Tile{X: 5, Y: 5}) {
		t.Errorf("Expected tile to stay (5,5), got %v", got)
	}
	if r.world.agent.facing != domain.East {
		t.Errorf("Expected facing East, got %v", r.world.agent.facing)
	}
	if r.gm.State() != StateFacing || !r.gm.IsMoving() {
		t.Errorf("Expected FACING with cooldown active, got %v moving=%v", r.gm.State(), r.gm.IsMoving())
	}
	if r.out.countSound(domain.SoundBlocked) != 1 {
		t.Errorf("Expected facing cue once, got %v", r.out.sounds)
	}

	r.clock.Advance(r.cfg.StepCooldown)
	if r.gm.IsMoving() || r.gm.State() != StateIdle {
		t.Errorf("Expected idle after cooldown, got %v", r.gm.State())
	}
}

func TestGridMovement_StepChangesTileOnce(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 5, Y: 5}, domain.East)

	r.gm.Handle(domain.East, "D")

	if got := r.tile(); got != (domain.Tile{X: 6, Y: 5}) {
		t.Fatalf("Expected tile (6,5), got %v", got)
	}
	if !r.gm.IsMoving() || r.gm.State() != StateStepping {
		t.Fatalf("Expected STEPPING with cooldown active, got %v", r.gm.State())
	}
	if len(r.world.loc.terrain) != 1 || r.world.loc.terrain[0] != (domain.Tile{X: 6, Y: 5}) {
		t.Errorf("Expected one terrain sound at destination, got %v", r.world.loc.terrain)
	}

	// Повторы во время задержки отбрасываются, не копятся
	r.gm.Handle(domain.East, "D")
	r.gm.Handle(domain.East, "D")
	r.clock.Advance(r.cfg.StepCooldown)
	if got := r.tile(); got != (domain.Tile{X: 6, Y: 5}) {
		t.Errorf("Expected dropped duplicates, got tile %v", got)
	}
	if r.gm.IsMoving() {
		t.Error("Expected cooldown to be over")
	}

	r.gm.Handle(domain.East, "D")
	if got := r.tile(); got != (domain.Tile{X: 7, Y: 5}) {
		t.Errorf("Expected tile (7,5) after cooldown, got %v", got)
	}
}

func TestGridMovement_SnapsDriftBeforeStep(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 2, Y: 2}, domain.South)
	r.world.agent.pos = domain.Point{X: 2*domain.TileSize + 3, Y: 2*domain.TileSize + 5}

	r.gm.Handle(domain.South, "S")

	want := domain.Tile{X: 2, Y: 3}.Origin()
	if r.world.agent.pos != want {
		t.Errorf("Expected snapped position %v, got %v", want, r.world.agent.pos)
	}
}

func TestGridMovement_StepRequestIsExact(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 5, Y: 5}, domain.East)

	r.gm.Handle(domain.East, "D")

	if len(r.paths.requests) != 1 {
		t.Fatalf("Expected one path request, got %d", len(r.paths.requests))
	}
	if req := r.paths.requests[0]; !req.Step || req.Target != (domain.Tile{X: 6, Y: 5}) {
		t.Errorf("Expected exact step request to (6,5), got %+v", req)
	}
}

func TestGridMovement_LargeDriftStillStepsOneTile(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 1, Y: 1}, domain.East)
	// Больше половины клетки, но агент все еще в (1,1)
	r.world.agent.pos = domain.Point{X: domain.TileSize + 40, Y: domain.TileSize}

	r.gm.Handle(domain.East, "D")

	if got := r.tile(); got != (domain.Tile{X: 2, Y: 1}) {
		t.Errorf("Expected exactly one tile to (2,1), got %v", got)
	}
	if r.world.agent.pos != (domain.Tile{X: 2, Y: 1}).Origin() {
		t.Errorf("Expected snapped position, got %v", r.world.agent.pos)
	}
}

func TestGridMovement_BlockedStepKeepsTile(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 1, Y: 1}, domain.North)
	r.paths.blocked[domain.Tile{X: 1, Y: 0}] = true

	r.gm.Handle(domain.North, "W")

	if got := r.tile(); got != (domain.Tile{X: 1, Y: 1}) {
		t.Errorf("Expected to stay on (1,1), got %v", got)
	}
	if len(r.world.loc.terrain) != 0 {
		t.Errorf("Expected no terrain sound, got %v", r.world.loc.terrain)
	}
}

func TestGridMovement_Guards(t *testing.T) {
	tests := []struct {
		name  string
		setup func(a *fakeAgent)
	}{
		{"busy", func(a *fakeAgent) { a.busy = true }},
		{"cannot move", func(a *fakeAgent) { a.canMove = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newMovementRig(t, domain.Tile{X: 3, Y: 3}, domain.West)
			tt.setup(r.world.agent)

			r.gm.Handle(domain.West, "A")

			if got := r.tile(); got != (domain.Tile{X: 3, Y: 3}) {
				t.Errorf("Expected no step, got %v", got)
			}
			if r.gm.IsMoving() {
				t.Error("Guarded input should not start the cooldown")
			}
			if len(r.paths.requests) != 0 {
				t.Errorf("Expected no pathfinding probe, got %d", len(r.paths.requests))
			}
		})
	}
}

func TestGridMovement_InvalidDirectionIgnored(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 3, Y: 3}, domain.West)

	r.gm.Handle(domain.NoDirection, "X")

	if _, _, ok := r.gm.LastInput(); ok {
		t.Error("Invalid direction should not be recorded")
	}
	if r.gm.IsMoving() {
		t.Error("Invalid direction should be a no-op")
	}
}

func TestGridMovement_DoorPressesAction(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 4, Y: 4}, domain.North)
	door := domain.Tile{X: 4, Y: 3}
	r.world.loc.warps[door] = domain.Warp{Tile: door, TargetLocation: "House", Target: domain.Tile{X: 1, Y: 1}}
	r.world.loc.doors[door] = true

	r.gm.Handle(domain.North, "W")

	if r.world.presses != 1 {
		t.Errorf("Expected 1 action press, got %d", r.world.presses)
	}
	if len(r.world.agent.warps) != 0 {
		t.Error("Door should not warp the agent directly")
	}
	if r.gm.IsWarping() {
		t.Error("Door should not enter WARPING")
	}
}

func TestGridMovement_ConsumedInteractionCancelsCooldown(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 4, Y: 4}, domain.North)
	sign := domain.Tile{X: 4, Y: 3}
	r.world.loc.warps[sign] = domain.Warp{Tile: sign, TargetLocation: "Cave"}
	r.world.loc.consume[sign] = true

	r.gm.Handle(domain.North, "W")

	if r.gm.IsMoving() || r.gm.IsWarping() {
		t.Errorf("Expected controller released, moving=%v warping=%v", r.gm.IsMoving(), r.gm.IsWarping())
	}
	if r.clock.Pending() != 0 {
		t.Errorf("Expected cooldown cancelled, %d jobs pending", r.clock.Pending())
	}
	if len(r.world.agent.warps) != 0 {
		t.Error("Consumed interaction should not warp")
	}
}

func TestGridMovement_WarpTimeoutRecovers(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 4, Y: 4}, domain.North)
	gate := domain.Tile{X: 4, Y: 3}
	r.world.loc.warps[gate] = domain.Warp{Tile: gate, TargetLocation: "Town", Target: domain.Tile{X: 10, Y: 10}}

	r.gm.Handle(domain.North, "W")

	if !r.gm.IsWarping() || r.gm.State() != StateWarping {
		t.Fatalf("Expected WARPING, got %v", r.gm.State())
	}
	if len(r.world.agent.warps) != 1 {
		t.Fatalf("Expected agent warp invoked once, got %d", len(r.world.agent.warps))
	}
	if r.out.countSound(domain.SoundDoorOpen) != 1 {
		t.Errorf("Expected door open cue, got %v", r.out.sounds)
	}

	// Пока идет переход, ввод игнорируется
	r.gm.Handle(domain.North, "W")
	if len(r.world.agent.warps) != 1 {
		t.Error("Input during warp should be dropped")
	}

	r.clock.Advance(r.cfg.WarpTimeout - time.Millisecond)
	if !r.gm.IsWarping() {
		t.Fatal("Warp timeout fired too early")
	}
	r.clock.Advance(time.Millisecond)

	if r.gm.IsWarping() || r.gm.IsMoving() {
		t.Errorf("Expected flags cleared after timeout, warping=%v moving=%v", r.gm.IsWarping(), r.gm.IsMoving())
	}
	if !r.world.agent.canMove {
		t.Error("Expected can-move restored")
	}
	if n := r.out.countSpoken("Failed to walk through entrance."); n != 1 {
		t.Errorf("Expected failure reported once, got %d", n)
	}

	r.clock.Advance(5 * time.Second)
	if n := r.out.countSpoken("Failed to walk through entrance."); n != 1 {
		t.Errorf("Failure reported again: %d", n)
	}
}

func TestGridMovement_WarpCompleted(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 4, Y: 4}, domain.North)
	gate := domain.Tile{X: 4, Y: 3}
	r.world.loc.warps[gate] = domain.Warp{Tile: gate, TargetLocation: "Town"}

	r.gm.Handle(domain.North, "W")
	r.gm.WarpCompleted()

	if r.gm.IsWarping() || r.gm.IsMoving() {
		t.Error("Expected both flags cleared on completion")
	}
	if r.out.countSound(domain.SoundDoorClose) != 1 {
		t.Errorf("Expected completion cue once, got %v", r.out.sounds)
	}
	r.clock.Advance(2 * r.cfg.WarpTimeout)
	if n := r.out.countSpoken("Failed to walk through entrance."); n != 0 {
		t.Errorf("Completed warp should not report failure, got %d", n)
	}
}

func TestGridMovement_CooldownFor(t *testing.T) {
	r := newMovementRig(t, domain.Tile{}, domain.South)
	base := r.cfg.StepCooldown

	tests := []struct {
		speed int
		want  time.Duration
	}{
		{0, base},
		{1, base - base/9},
		{3, base - 3*(base/9)},
		{9, r.cfg.MinStepCooldown},
		{20, r.cfg.MinStepCooldown},
	}
	for _, tt := range tests {
		if got := r.gm.CooldownFor(tt.speed); got != tt.want {
			t.Errorf("CooldownFor(%d): expected %v, got %v", tt.speed, tt.want, got)
		}
	}
}

func TestGridMovement_SpeedShortensCooldown(t *testing.T) {
	r := newMovementRig(t, domain.Tile{X: 0, Y: 0}, domain.East)
	r.world.agent.speed = 2

	r.gm.Handle(domain.East, "D")
	want := r.gm.CooldownFor(2)
	r.clock.Advance(want)

	if r.gm.IsMoving() {
		t.Errorf("Expected cooldown of %v to be over", want)
	}
	if r.gm.Snapshot().Cooldown != want {
		t.Errorf("Expected snapshot cooldown %v, got %v", want, r.gm.Snapshot().Cooldown)
	}
}
