// File: internal/worker/worker.go
package worker

import "sync"

// Job 為背景任務，例如疫苗逾期狀態掃描
type Job func()

// Pool 提供非同步背景任務的執行
type Pool interface {
	// Submit 將任務排入佇列；佇列已滿時丟棄並回傳 false
	Submit(Job) bool
	Stop()
}

// NewPool 建立 n 個 worker 的池。n<=0 時視為 1。
func NewPool(n, queueSize int) Pool {
	if n <= 0 {
		n = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	p := &pool{jobs: make(chan Job, queueSize)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

func (p *pool) Submit(j Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobs <- j:
		return true
	default:
		return false
	}
}

func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
