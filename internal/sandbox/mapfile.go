// Package sandbox - headless игровой мир: карты из JSON, игрок, поиск пути
// и переходы между картами. Реализует все контракты коллабораторов ядра,
// чтобы сервис можно было запускать и тестировать без игры.
package sandbox

import (
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/tracker/providers"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrUnknownLocation = errors.New("sandbox: unknown location")
	ErrBadMap          = errors.New("sandbox: bad map")
)

// MapFile - описание мира.
type MapFile struct {
	Start     StartDef      `json:"start"`
	Player    PlayerDef     `json:"player"`
	Locations []LocationDef `json:"locations"`
}

type StartDef struct {
	Location string `json:"location"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Facing   string `json:"facing"`
}

type PlayerDef struct {
	SpeedBonus      int   `json:"speedBonus"`
	Quests          []int `json:"quests"`
	MagnifyingGlass bool  `json:"magnifyingGlass"`
}

// LocationDef - одна карта. Строки rows: '#' стена, '.' пол, ',' трава,
// '=' дерево, '~' вода; пробел - пустота.
type LocationDef struct {
	Name        string                 `json:"name"`
	Rows        []string               `json:"rows"`
	Warps       []WarpDef              `json:"warps"`
	Characters  []CharacterDef         `json:"characters"`
	Annotations []providers.Annotation `json:"annotations"`
}

// WarpDef - переход. Door - дверь открывается действием; Locked - закрыта;
// Event - текст события, которое поглощает действие вместо перехода.
type WarpDef struct {
	X              int    `json:"x"`
	Y              int    `json:"y"`
	TargetLocation string `json:"targetLocation"`
	TargetX        int    `json:"targetX"`
	TargetY        int    `json:"targetY"`
	Door           bool   `json:"door,omitempty"`
	Locked         bool   `json:"locked,omitempty"`
	Event          string `json:"event,omitempty"`
}

func (w WarpDef) warp() domain.Warp {
	return domain.Warp{
		Tile:           domain.Tile{X: w.X, Y: w.Y},
		TargetLocation: w.TargetLocation,
		Target:         domain.Tile{X: w.TargetX, Y: w.TargetY},
	}
}

type CharacterDef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Animal bool   `json:"animal,omitempty"`
}

// LoadMap читает файл мира.
func LoadMap(path string) (*MapFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	return DecodeMap(f)
}

func DecodeMap(r io.Reader) (*MapFile, error) {
	var m MapFile
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *MapFile) validate() error {
	names := make(map[string]bool, len(m.Locations))
	for _, loc := range m.Locations {
		if loc.Name == "" {
			return fmt.Errorf("%w: location without name", ErrBadMap)
		}
		if names[loc.Name] {
			return fmt.Errorf("%w: duplicate location %q", ErrBadMap, loc.Name)
		}
		names[loc.Name] = true
	}
	for _, loc := range m.Locations {
		for _, w := range loc.Warps {
			if w.Event == "" && !names[w.TargetLocation] {
				return fmt.Errorf("%w: warp in %s to %q", ErrUnknownLocation, loc.Name, w.TargetLocation)
			}
		}
	}
	if !names[m.Start.Location] {
		return fmt.Errorf("%w: start %q", ErrUnknownLocation, m.Start.Location)
	}
	return nil
}
