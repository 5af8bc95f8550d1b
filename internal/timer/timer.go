package timer

import "time"

// Timer - одноразовый или периодический таймер поверх Scheduler.
// Start на запущенном таймере сначала останавливает его, поэтому интервалы
// не накладываются. Остановленный таймер не срабатывает, даже если его вызов
// уже стоит в очереди логического потока.
type Timer struct {
	sched    Scheduler
	interval time.Duration
	periodic bool
	fn       func()

	handle  Handle
	gen     uint64
	running bool
}

// New создает одноразовый таймер.
func New(s Scheduler, interval time.Duration, fn func()) *Timer {
	return &Timer{sched: s, interval: interval, fn: fn}
}

// NewPeriodic создает таймер, который перезапускается после каждого срабатывания.
func NewPeriodic(s Scheduler, interval time.Duration, fn func()) *Timer {
	return &Timer{sched: s, interval: interval, fn: fn, periodic: true}
}

func (t *Timer) Interval() time.Duration { return t.interval }

// SetInterval действует со следующего Start (или следующего периода).
func (t *Timer) SetInterval(d time.Duration) { t.interval = d }

func (t *Timer) Running() bool { return t.running }

func (t *Timer) Start() {
	t.Stop()
	t.running = true
	t.arm()
}

func (t *Timer) Stop() {
	t.gen++
	t.running = false
	if t.handle != nil {
		t.handle.Stop()
		t.handle = nil
	}
}

func (t *Timer) arm() {
	gen := t.gen
	t.handle = t.sched.AfterFunc(t.interval, func() { t.fire(gen) })
}

func (t *Timer) fire(gen uint64) {
	if !t.running || gen != t.gen {
		return
	}
	if t.periodic {
		t.arm()
	} else {
		t.running = false
		t.handle = nil
	}
	t.fn()
}
