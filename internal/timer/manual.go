package timer

import (
	"sort"
	"time"
)

// ManualClock - детерминированный Scheduler для тестов и реплея.
// Вызовы выполняются синхронно внутри Advance, в порядке времени срабатывания.
type ManualClock struct {
	now  time.Time
	seq  uint64
	jobs []*manualJob
}

type manualJob struct {
	clock *ManualClock
	at    time.Time
	seq   uint64
	fn    func()
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	c.seq++
	job := &manualJob{clock: c, at: c.now.Add(d), seq: c.seq, fn: fn}
	c.jobs = append(c.jobs, job)
	return job
}

// Advance сдвигает время и выполняет все созревшие вызовы, включая те,
// что были запланированы по ходу.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		job := c.nextDue(target)
		if job == nil {
			break
		}
		c.remove(job)
		c.now = job.at
		job.fn()
	}
	c.now = target
}

// Pending - количество ожидающих вызовов.
func (c *ManualClock) Pending() int { return len(c.jobs) }

func (c *ManualClock) nextDue(target time.Time) *manualJob {
	if len(c.jobs) == 0 {
		return nil
	}
	sort.SliceStable(c.jobs, func(i, j int) bool {
		if c.jobs[i].at.Equal(c.jobs[j].at) {
			return c.jobs[i].seq < c.jobs[j].seq
		}
		return c.jobs[i].at.Before(c.jobs[j].at)
	})
	if c.jobs[0].at.After(target) {
		return nil
	}
	return c.jobs[0]
}

func (c *ManualClock) remove(job *manualJob) bool {
	for i, j := range c.jobs {
		if j == job {
			c.jobs = append(c.jobs[:i], c.jobs[i+1:]...)
			return true
		}
	}
	return false
}

func (j *manualJob) Stop() bool {
	return j.clock.remove(j)
}
