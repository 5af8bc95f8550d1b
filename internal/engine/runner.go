package engine

import (
	"accessible-tiles/internal/timer"
	"accessible-tiles/pkg/api"
	"accessible-tiles/pkg/logger"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner крутит Service на логическом потоке: команды моста, тики хоста
// и срабатывания таймеров приходят в один цикл и выполняются по очереди.
type Runner struct {
	loop *timer.Loop
	svc  *Service
	tick time.Duration
	log  *logrus.Entry
}

// NewRunner - loop должен быть тем же Scheduler, что передан в Service.
func NewRunner(loop *timer.Loop, svc *Service, tick time.Duration) *Runner {
	return &Runner{
		loop: loop,
		svc:  svc,
		tick: tick,
		log:  logger.Log.WithField("component", "engine"),
	}
}

// Run блокирует до отмены контекста.
func (r *Runner) Run(ctx context.Context) {
	r.log.WithField("tick", r.tick).Info("Engine loop started")
	go r.ticker(ctx)
	r.loop.Run(ctx)
	r.log.Info("Engine loop stopped")
}

func (r *Runner) ticker(ctx context.Context) {
	t := time.NewTicker(r.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !r.loop.Post(r.svc.Tick) {
				return
			}
		}
	}
}

// Submit ставит команду моста в очередь. false - цикл уже остановлен.
func (r *Runner) Submit(cmd api.ClientCommand) bool {
	return r.loop.Post(func() {
		if err := r.svc.Handle(cmd); err != nil {
			r.log.WithError(err).WithField("action", cmd.Action).Warn("Command rejected")
		}
	})
}

// Inspect выполняет fn на логическом потоке и возвращает результат.
// Нельзя вызывать из самого цикла.
func (r *Runner) Inspect(fn func(s *Service) any) (any, bool) {
	return r.loop.Call(func() any { return fn(r.svc) })
}
