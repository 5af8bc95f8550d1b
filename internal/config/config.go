package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix - префикс всех переменных окружения сервиса.
const EnvPrefix = "AT_"

var ErrInvalid = errors.New("invalid config")

// Config хранит параметры запуска. Загружается один раз при старте
// и дальше только читается.
type Config struct {
	// Движение по сетке
	GridMovementActive bool          `env:"GRID_MOVEMENT" envDefault:"true"`
	StepCooldown       time.Duration `env:"STEP_COOLDOWN" envDefault:"210ms"`
	MinStepCooldown    time.Duration `env:"MIN_STEP_COOLDOWN" envDefault:"40ms"`
	WarpTimeout        time.Duration `env:"WARP_TIMEOUT" envDefault:"1s"`

	// Автопуть к объекту
	StallCheckInterval     time.Duration `env:"STALL_CHECK_INTERVAL" envDefault:"1s"`
	StallThreshold         time.Duration `env:"STALL_THRESHOLD" envDefault:"500ms"`
	MaxRetries             int           `env:"MAX_RETRIES" envDefault:"5"`
	FootstepOffset         time.Duration `env:"FOOTSTEP_OFFSET" envDefault:"50ms"`
	VisibilityRestoreDelay time.Duration `env:"VISIBILITY_RESTORE_DELAY" envDefault:"100ms"`

	// Трекер объектов
	AutoRefresh                bool   `env:"AUTO_REFRESH" envDefault:"true"`
	SortByProximity            bool   `env:"SORT_BY_PROXIMITY" envDefault:"true"`
	ReadSelectedObjectText     string `env:"READ_OBJECT_TEXT" envDefault:"{object}, {direction}, {distance} tiles"`
	ReadSelectedObjectTileText string `env:"READ_OBJECT_TILE_TEXT" envDefault:"{object} at {objectX}-{objectY}, player at {playerX}-{playerY}"`
	SpecialPointsPath          string `env:"SPECIAL_POINTS" envDefault:"assets/special_points.json"`

	// Хост
	MapPath        string `env:"MAP" envDefault:"assets/maps/valley.json"`
	Port           string `env:"PORT" envDefault:"8080"`
	TicksPerSecond int    `env:"TPS" envDefault:"60"`

	Keys KeyBindings `envPrefix:"KEY_"`
}

// KeyBindings - привязки клавиш.
type KeyBindings struct {
	ToggleGridMovement   Keybind `env:"TOGGLE_GRID_MOVEMENT" envDefault:"LeftControl+G"`
	GridMovementOverride Keybind `env:"GRID_MOVEMENT_OVERRIDE" envDefault:"LeftShift"`

	MoveUp    Keybind `env:"MOVE_UP" envDefault:"W, Up, DPadUp"`
	MoveRight Keybind `env:"MOVE_RIGHT" envDefault:"D, Right, DPadRight"`
	MoveDown  Keybind `env:"MOVE_DOWN" envDefault:"S, Down, DPadDown"`
	MoveLeft  Keybind `env:"MOVE_LEFT" envDefault:"A, Left, DPadLeft"`

	CycleUpCategory        Keybind `env:"CYCLE_UP_CATEGORY" envDefault:"LeftControl+PageUp"`
	CycleDownCategory      Keybind `env:"CYCLE_DOWN_CATEGORY" envDefault:"LeftControl+PageDown"`
	CycleUpObject          Keybind `env:"CYCLE_UP_OBJECT" envDefault:"PageUp"`
	CycleDownObject        Keybind `env:"CYCLE_DOWN_OBJECT" envDefault:"PageDown"`
	ReadSelectedObject     Keybind `env:"READ_OBJECT" envDefault:"Home"`
	ReadSelectedObjectTile Keybind `env:"READ_OBJECT_TILE" envDefault:"LeftAlt+Home"`
	SwitchSortingMode      Keybind `env:"SWITCH_SORTING" envDefault:"LeftControl+End"`
	MoveToSelectedObject   Keybind `env:"MOVE_TO_OBJECT" envDefault:"End"`
	CancelAutoWalking      Keybind `env:"CANCEL_AUTO_WALK" envDefault:"Escape"`
}

// Load читает конфиг из окружения (AT_*) и проверяет его.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// Default - конфиг только из значений по умолчанию, окружение не читается.
func Default() *Config {
	cfg, err := parse(env.Options{Prefix: EnvPrefix, Environment: map[string]string{}})
	if err != nil {
		// значения по умолчанию зашиты в теги и валидны
		panic(err)
	}
	return cfg
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет числовые параметры.
func (c *Config) Validate() error {
	switch {
	case c.StepCooldown <= 0:
		return fmt.Errorf("%w: step cooldown must be positive", ErrInvalid)
	case c.MinStepCooldown < 0 || c.MinStepCooldown > c.StepCooldown:
		return fmt.Errorf("%w: min step cooldown must be within [0, step cooldown]", ErrInvalid)
	case c.WarpTimeout <= 0:
		return fmt.Errorf("%w: warp timeout must be positive", ErrInvalid)
	case c.StallCheckInterval <= 0:
		return fmt.Errorf("%w: stall check interval must be positive", ErrInvalid)
	case c.MaxRetries < 1:
		return fmt.Errorf("%w: max retries must be at least 1", ErrInvalid)
	case c.TicksPerSecond < 1:
		return fmt.Errorf("%w: ticks per second must be at least 1", ErrInvalid)
	}
	return nil
}

// FootstepInterval - ритм звука шагов при автопути. Длиннее задержки шага,
// чтобы не накладываться на ручной шаг по сетке.
func (c *Config) FootstepInterval() time.Duration {
	return c.StepCooldown + c.FootstepOffset
}

// TickInterval - период тика хоста.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}
