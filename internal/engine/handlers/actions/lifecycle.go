package actions

import "accessible-tiles/internal/engine/handlers"

// HandleSaveLoaded - игра загрузила сохранение: можно строить реестр.
func HandleSaveLoaded(ctx handlers.Context) error {
	ctx.Input.SaveLoaded()
	return nil
}
