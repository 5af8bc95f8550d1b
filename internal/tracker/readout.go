package tracker

import (
	"accessible-tiles/internal/domain"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Плейсхолдеры шаблонов зачитывания.
const (
	placeholderObject    = "{object}"
	placeholderObjectX   = "{objectX}"
	placeholderObjectY   = "{objectY}"
	placeholderPlayerX   = "{playerX}"
	placeholderPlayerY   = "{playerY}"
	placeholderDirection = "{direction}"
	placeholderDistance  = "{distance}"
)

// Describe форматирует выбранный объект по шаблону из конфига.
// Шаблон приводится к единому регистру до подстановки, поэтому
// плейсхолдеры нечувствительны к регистру. ok=false, если ничего не выбрано.
func (t *Tracker) Describe(tileOnly bool) (string, bool) {
	obj, ok := t.Selection()
	if !ok {
		return "", false
	}

	template := t.cfg.ReadSelectedObjectText
	if tileOnly {
		template = t.cfg.ReadSelectedObjectTileText
	}

	player := t.agentTile()
	target := liveTile(obj)
	return render(template, map[string]string{
		placeholderObject:    obj.Name,
		placeholderObjectX:   strconv.Itoa(target.X),
		placeholderObjectY:   strconv.Itoa(target.Y),
		placeholderPlayerX:   strconv.Itoa(player.X),
		placeholderPlayerY:   strconv.Itoa(player.Y),
		placeholderDirection: string(domain.CompassBetween(player, target)),
		placeholderDistance:  strconv.Itoa(player.TilesTo(target)),
	}), true
}

// ReadSelection зачитывает выбранный объект. Без выбора ничего не говорит.
func (t *Tracker) ReadSelection(tileOnly bool) {
	text, ok := t.Describe(tileOnly)
	if !ok {
		t.log.Debug("Nothing selected to read")
		return
	}
	t.out.Report(text, true)
}

func render(template string, values map[string]string) string {
	fold := cases.Fold()
	pairs := make([]string, 0, len(values)*2)
	for key, val := range values {
		pairs = append(pairs, fold.String(key), val)
	}
	return strings.NewReplacer(pairs...).Replace(fold.String(template))
}
