// Package agent - headless клиент моста. Подключается по WebSocket так же,
// как мод в игре, проигрывает сценарий нажатий и получает речь и звуки.
// Нужен для ручной проверки сервера без игры.
package agent

import (
	"accessible-tiles/pkg/api"
	"accessible-tiles/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 5 * time.Second

// Bot - один клиент моста.
//
// Жизненный цикл:
//  1. Dial - подключение к /ws.
//  2. Run - читает входящие сообщения в отдельной горутине и по очереди
//     отправляет шаги сценария.
//  3. Close - закрывает соединение, горутина чтения завершается.
type Bot struct {
	conn *websocket.Conn
	log  *logrus.Entry
}

func Dial(ctx context.Context, url string) (*Bot, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Bot{
		conn: conn,
		log:  logger.Log.WithField("component", "bot"),
	}, nil
}

// Run проигрывает сценарий. onMessage вызывается из горутины чтения
// для каждого сообщения сервера.
func (b *Bot) Run(ctx context.Context, steps []Step, onMessage func(api.ServerResponse)) error {
	go b.readLoop(onMessage)

	for i, step := range steps {
		if err := b.play(ctx, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
	}
	return nil
}

func (b *Bot) play(ctx context.Context, step Step) error {
	switch step.Kind {
	case StepLoad:
		return b.send(api.ClientCommand{Action: api.ActionSaveLoaded})
	case StepDown:
		return b.sendKey(api.ActionKeyDown, step.Button)
	case StepUp:
		return b.sendKey(api.ActionKeyUp, step.Button)
	case StepTap:
		if err := b.sendKey(api.ActionKeyDown, step.Button); err != nil {
			return err
		}
		return b.sendKey(api.ActionKeyUp, step.Button)
	case StepWait:
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step.Wait):
			return nil
		}
	}
	return fmt.Errorf("%w: unknown step kind %d", ErrBadScript, step.Kind)
}

func (b *Bot) sendKey(action, button string) error {
	payload, err := json.Marshal(api.KeyPayload{Button: button})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return b.send(api.ClientCommand{Action: action, Payload: payload})
}

func (b *Bot) send(cmd api.ClientCommand) error {
	if err := b.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	b.log.WithField("action", cmd.Action).Debug("send")
	return b.conn.WriteJSON(cmd)
}

func (b *Bot) readLoop(onMessage func(api.ServerResponse)) {
	for {
		var msg api.ServerResponse
		if err := b.conn.ReadJSON(&msg); err != nil {
			if !errors.Is(err, websocket.ErrCloseSent) &&
				websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				b.log.WithError(err).Warn("read failed")
			}
			return
		}
		if onMessage != nil {
			onMessage(msg)
		}
	}
}

// Close вежливо закрывает соединение.
func (b *Bot) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := b.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		b.log.WithError(err).Debug("write close message failed")
	}
	return b.conn.Close()
}
