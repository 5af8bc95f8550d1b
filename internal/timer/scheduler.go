// Package timer - таймеры ядра: задержка шага, таймаут перехода,
// проверка застревания автопути и ритм шагов.
//
// Все колбэки выполняются на одном логическом потоке (Loop), поэтому
// состояние контроллеров не требует блокировок.
package timer

import "time"

// Handle - отмена запланированного вызова.
type Handle interface {
	// Stop возвращает false, если вызов уже произошел или был отменен.
	Stop() bool
}

// Scheduler планирует вызов fn через d на логическом потоке.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
	Now() time.Time
}
