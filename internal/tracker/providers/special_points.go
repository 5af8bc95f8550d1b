package providers

import (
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/tracker"
	"accessible-tiles/pkg/logger"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Хуки дополнительных проверок точки.
const (
	// HookMagnifyingGlass - точка видна только с лупой.
	HookMagnifyingGlass = 1
	// HookEventTarget - точка видна только во время события с управлением игроком.
	HookEventTarget = 2
)

// SpecialPoint - одна запись файла особых точек.
type SpecialPoint struct {
	Name             string  `json:"Name" jsonschema:"title=Name,description=Spoken name; unique within its category"`
	CategoryOverride *string `json:"CategoryOverride,omitempty" jsonschema:"description=Category instead of special"`
	XPos             int     `json:"XPos"`
	YPos             int     `json:"YPos"`
	NavXPos          *int    `json:"NavXPos,omitempty" jsonschema:"description=Tile to walk to when it differs from the point itself"`
	NavYPos          *int    `json:"NavYPos,omitempty"`
	RequiresQuest    *int    `json:"RequiresQuest,omitempty" jsonschema:"description=Quest the player must have"`
	ExtraChecksHook  *int    `json:"ExtraChecksHook,omitempty" jsonschema:"minimum=1,maximum=2"`
}

// SpecialPointsFile - точки по именам карт.
type SpecialPointsFile map[string][]SpecialPoint

// LoadSpecialPoints читает файл особых точек.
func LoadSpecialPoints(path string) (SpecialPointsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read special points: %w", err)
	}
	var file SpecialPointsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode special points %s: %w", path, err)
	}
	return file, nil
}

// Conditions - состояние игрока, от которого зависит видимость точек.
type Conditions interface {
	HasQuest(id int) bool
	ExtraCheck(hook int) bool
}

// SpecialPoints - статичные точки интереса из файла.
type SpecialPoints struct {
	points SpecialPointsFile
	world  domain.World
	cond   Conditions
	log    *logrus.Entry
}

func NewSpecialPoints(points SpecialPointsFile, world domain.World, cond Conditions) *SpecialPoints {
	return &SpecialPoints{
		points: points,
		world:  world,
		cond:   cond,
		log:    logger.Log.WithField("component", "special_points"),
	}
}

func (p *SpecialPoints) Name() string { return "special_points" }

func (p *SpecialPoints) HasObjects() bool {
	return len(p.points[p.world.Location().Name()]) > 0
}

func (p *SpecialPoints) Objects() *tracker.Collection {
	var items []candidate
	for _, sp := range p.points[p.world.Location().Name()] {
		if sp.Name == "" || !p.visible(sp) {
			continue
		}
		category := domain.CategorySpecial
		if sp.CategoryOverride != nil && *sp.CategoryOverride != "" {
			category = *sp.CategoryOverride
		}
		obj := domain.SpecialObject{Name: sp.Name, Tile: domain.Tile{X: sp.XPos, Y: sp.YPos}}
		if sp.NavXPos != nil && sp.NavYPos != nil {
			obj.NavTile = &domain.Tile{X: *sp.NavXPos, Y: *sp.NavYPos}
		}
		items = append(items, candidate{category: category, object: obj})
	}
	sortByDistance(items, domain.AgentTile(p.world.Player()))

	c := tracker.NewCollection()
	for _, it := range items {
		c.Add(it.category, it.object)
	}
	return c
}

func (p *SpecialPoints) visible(sp SpecialPoint) bool {
	if p.cond == nil {
		return sp.RequiresQuest == nil && sp.ExtraChecksHook == nil
	}
	if sp.RequiresQuest != nil && !p.cond.HasQuest(*sp.RequiresQuest) {
		return false
	}
	if sp.ExtraChecksHook != nil && !p.cond.ExtraCheck(*sp.ExtraChecksHook) {
		p.log.WithFields(logrus.Fields{
			"point": sp.Name,
			"hook":  *sp.ExtraChecksHook,
		}).Debug("Point hidden by extra check")
		return false
	}
	return true
}
