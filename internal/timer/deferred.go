package timer

import "time"

// Deferred - отложенные одноразовые задачи с ключом (обычно ID сущности).
// Повторное планирование того же ключа заменяет прежнюю задачу.
type Deferred struct {
	sched Scheduler
	jobs  map[string]*deferredJob
}

type deferredJob struct {
	handle Handle
}

func NewDeferred(s Scheduler) *Deferred {
	return &Deferred{sched: s, jobs: make(map[string]*deferredJob)}
}

func (d *Deferred) After(key string, delay time.Duration, fn func()) {
	d.Cancel(key)
	job := &deferredJob{}
	job.handle = d.sched.AfterFunc(delay, func() {
		// задачу могли отменить или заменить, пока вызов стоял в очереди
		if d.jobs[key] != job {
			return
		}
		delete(d.jobs, key)
		fn()
	})
	d.jobs[key] = job
}

func (d *Deferred) Cancel(key string) bool {
	job, ok := d.jobs[key]
	if !ok {
		return false
	}
	delete(d.jobs, key)
	job.handle.Stop()
	return true
}

func (d *Deferred) Pending(key string) bool {
	_, ok := d.jobs[key]
	return ok
}

func (d *Deferred) Len() int { return len(d.jobs) }
