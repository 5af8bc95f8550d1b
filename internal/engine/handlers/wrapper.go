package handlers

import (
	"accessible-tiles/pkg/api"
	"encoding/json"
	"fmt"
)

// TypedHandlerFunc - "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) error

// EmptyHandlerFunc - хендлер, которому не нужны данные (SAVE_LOADED)
type EmptyHandlerFunc func(ctx Context) error

// WithPayload превращает типизированный хендлер в HandlerFunc:
// распаковывает JSON и проверяет его, если T реализует api.Validator.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) error {
		var payload T

		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("invalid payload format: %w", err)
		}

		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}

		return handler(ctx, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) error {
		return handler(ctx)
	}
}
