package timer

import (
	"context"
	"time"
)

// Loop - логический поток. Любое изменение состояния (ввод, тик, срабатывание
// таймера) приходит сюда сообщением и выполняется строго по очереди.
type Loop struct {
	queue chan func()
	done  chan struct{}
}

func NewLoop(size int) *Loop {
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post ставит fn в очередь. Блокируется, если очередь полна;
// возвращает false после остановки цикла.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call выполняет fn на логическом потоке и ждет результат.
// Нельзя вызывать из самого цикла.
func (l *Loop) Call(fn func() any) (any, bool) {
	reply := make(chan any, 1)
	if !l.Post(func() { reply <- fn() }) {
		return nil, false
	}
	select {
	case v := <-reply:
		return v, true
	case <-l.done:
		return nil, false
	}
}

// Run обрабатывает очередь до отмены контекста.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// AfterFunc реализует Scheduler: системный таймер лишь кладет fn в очередь.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	return time.AfterFunc(d, func() { l.Post(fn) })
}

func (l *Loop) Now() time.Time {
	return time.Now()
}
