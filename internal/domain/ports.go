package domain

import "time"

// Контракты внешних коллабораторов: игровой движок, поиск пути, вывод речи.
// Ядро (движение по сетке и трекер объектов) работает только через них.

// Reporter - приемник пользовательских сообщений.
// spoken=false - сообщение только для лога, диктор его не читает.
type Reporter interface {
	Report(text string, spoken bool)
}

// SoundPlayer проигрывает звуковые подсказки (см. Sound* константы).
type SoundPlayer interface {
	PlaySound(cue string)
}

// Agent - управляемый игроком персонаж. Ядро не владеет его жизненным циклом.
type Agent interface {
	Position() Point
	SetPosition(p Point)
	Facing() Direction
	Face(d Direction)
	CanMove() bool
	SetCanMove(v bool)
	// SpeedBonus - добавочная скорость; линейно сокращает задержку шага.
	SpeedBonus() int
	// Busy - непрерываемый диалог, чат или катсцена.
	Busy() bool
	Warp(w Warp)
	// Controller - активный контроллер автоходьбы (nil, если нет).
	Controller() PathSession
	SetController(s PathSession)
}

// AgentTile - клетка, в которой стоит агент.
func AgentTile(a Agent) Tile {
	return TileOf(a.Position())
}

// Warp - переход на другую карту, привязанный к клетке.
type Warp struct {
	Tile           Tile   `json:"tile"`
	TargetLocation string `json:"targetLocation"`
	Target         Tile   `json:"target"`
}

// Location - текущая карта с примитивами коллизий и взаимодействия.
type Location interface {
	Name() string
	// WarpAt - warp_or_door_at: переход, пересекающий клетку, если есть.
	WarpAt(tile Tile, agent Agent) (Warp, bool)
	IsDoor(tile Tile) bool
	// TryInteract - общий обработчик действия; true, если действие поглощено
	// (диалог, событие и т.п.).
	TryInteract(tile Tile, agent Agent) bool
	PlayTerrainSound(tile Tile)
	// Characters - живые сущности на карте.
	Characters() []Character
	// ObjectSignature меняется, когда меняется набор объектов на карте.
	ObjectSignature() int
}

// World - точка доступа к текущему агенту и карте.
type World interface {
	Player() Agent
	Location() Location
	// PressAction - нажатие кнопки действия перед агентом (открыть дверь и т.п.).
	PressAction()
}

// PathRequest - запрос к примитиву поиска пути.
type PathRequest struct {
	Agent    Agent
	Location Location
	Target   Tile
	// Facing - куда повернуться по прибытии; NoDirection - без поворота.
	Facing Direction
	// Step - одиночный шаг по сетке: цель должна быть свободна целиком,
	// в том числе от видимых сущностей.
	Step bool
	// OnArrive вызывается на логическом потоке по прибытии в цель.
	OnArrive func()
}

// Pathfinder - внешний примитив поиска пути. Возвращает nil, если пути нет.
type Pathfinder interface {
	FindPath(req PathRequest) PathSession
}

// PathSession - найденный путь / контроллер автоходьбы.
type PathSession interface {
	Target() Tile
	Steps() int
	// SinceCheckpoint - сколько агент стоит на текущей контрольной точке.
	SinceCheckpoint() time.Duration
}

// Character - живая сущность карты (NPC, животное).
type Character interface {
	ID() string
	Name() string
	Tile() Tile
	IsAnimal() bool
	Invisible() bool
	SetInvisible(v bool)
}

// CharacterLookup ищет живые сущности текущей карты.
type CharacterLookup interface {
	// Character - по ID; ok=false, если сущности уже нет.
	Character(id string) (Character, bool)
	CharactersAt(tile Tile) []Character
}
