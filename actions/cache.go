package actions

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/touchgestures/gesture"
)

type resolveKey struct {
	fingers   int
	kind      gesture.Kind
	phase     gesture.Phase
	direction gesture.Direction
}

type resolved struct {
	action Action
	ok     bool
}

// CachedResolver memoizes lookups of another resolver, misses included
type CachedResolver struct {
	next  Resolver
	cache *lru.Cache[resolveKey, resolved]
}

func NewCachedResolver(next Resolver, size int) (*CachedResolver, error) {
	cache, err := lru.New[resolveKey, resolved](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver cache: %w", err)
	}

	return &CachedResolver{
		next:  next,
		cache: cache,
	}, nil
}

func (c *CachedResolver) Resolve(fingers int, kind gesture.Kind, phase gesture.Phase, direction gesture.Direction) (Action, bool) {
	key := resolveKey{fingers: fingers, kind: kind, phase: phase, direction: direction}
	if hit, ok := c.cache.Get(key); ok {
		return hit.action, hit.ok
	}

	action, ok := c.next.Resolve(fingers, kind, phase, direction)
	c.cache.Add(key, resolved{action: action, ok: ok})
	return action, ok
}

// Purge drops every cached lookup
func (c *CachedResolver) Purge() {
	c.cache.Purge()
}
