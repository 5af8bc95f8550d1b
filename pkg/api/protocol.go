package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы исходящих сообщений
const (
	MessageSpeech = "SPEECH" // текст для экранного диктора
	MessageSound  = "SOUND"  // звуковая подсказка
)

// ServerResponse - сообщение, которое сервер отправляет мосту игры / диктору.
type ServerResponse struct {
	// Type - SPEECH или SOUND.
	Type string `json:"type"`

	// ID уникален для каждого сообщения (клиент может дедуплицировать).
	ID string `json:"id"`

	// Text - текст для SPEECH.
	Text string `json:"text,omitempty"`

	// Spoken - false для сообщений "только в лог"; такие рассылаются
	// лишь подписчикам с включенным verbose.
	Spoken bool `json:"spoken"`

	// Cue - имя звука для SOUND.
	Cue string `json:"cue,omitempty"`

	Timestamp int64 `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название события: KEY_DOWN, KEY_UP, SAVE_LOADED.
	Action string `json:"action"`

	// Payload JSON-объект с данными. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// KeyPayload используется для KEY_DOWN / KEY_UP.
type KeyPayload struct {
	// Button - имя кнопки ("W", "PageUp", "DPadLeft", "LeftControl").
	Button string `json:"button"`
}

// Команды моста игры
const (
	ActionKeyDown    = "KEY_DOWN"
	ActionKeyUp      = "KEY_UP"
	ActionSaveLoaded = "SAVE_LOADED"
)
