package handlers

import "encoding/json"

// Input - события моста, которые принимает движок.
// Service неявно реализует этот интерфейс.
type Input interface {
	KeyDown(button string)
	KeyUp(button string)
	SaveLoaded()
}

// Context передает хендлеру получателя событий.
type Context struct {
	Input Input
}

// HandlerFunc - контракт для любой команды моста (KEY_DOWN, SAVE_LOADED, ...).
type HandlerFunc func(ctx Context, payload json.RawMessage) error
