package pipelineimpl

import "sync"

// Guard admits one run at a time. Share it by pointer between every entry point.
type Guard struct {
	mu      sync.Mutex
	running bool
}

func NewGuard() *Guard {
	return &Guard{}
}

// TryAcquire marks a run as started. It returns false when one is already running.
func (g *Guard) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return false
	}
	g.running = true
	return true
}

func (g *Guard) Release() {
	g.mu.Lock()
	g.running = false
	g.mu.Unlock()
}

func (g *Guard) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}
