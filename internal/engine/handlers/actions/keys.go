package actions

import (
	"accessible-tiles/internal/engine/handlers"
	"accessible-tiles/pkg/api"
)

func HandleKeyDown(ctx handlers.Context, p api.KeyPayload) error {
	ctx.Input.KeyDown(p.Button)
	return nil
}

func HandleKeyUp(ctx handlers.Context, p api.KeyPayload) error {
	ctx.Input.KeyUp(p.Button)
	return nil
}
