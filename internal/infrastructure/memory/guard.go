// Package memory holds single-process implementations used when Redis is not
// configured.
package memory

import (
	"context"
	"sync"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// InflightGuard tracks held keys in a map.
type InflightGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewInflightGuard() *InflightGuard {
	return &InflightGuard{held: make(map[string]struct{})}
}

func (g *InflightGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[key]; busy {
		return nil, domain.ErrActionInFlight
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}
