package runtime

import (
	"context"
	"sync"
)

// KeyedMutex serializes critical sections per key.
//
// Callers for the same key run one at a time, in the order they called Lock.
// Callers for different keys never wait on each other.
// An entry exists only while the key is held or awaited, so the table does not
// grow with the number of keys ever seen.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyEntry
}

// keyEntry is held by exactly one caller; waiters get ownership through their channel.
type keyEntry struct {
	waiters []chan struct{}
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyEntry)}
}

// Lock blocks until the caller owns key, or ctx is done.
// The returned unlock must be called exactly once, extra calls are no-ops.
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	entry, held := k.entries[key]
	if !held {
		k.entries[key] = &keyEntry{}
		k.mu.Unlock()
		return k.unlocker(key), nil
	}
	turn := make(chan struct{})
	entry.waiters = append(entry.waiters, turn)
	k.mu.Unlock()

	select {
	case <-turn:
		return k.unlocker(key), nil
	case <-ctx.Done():
		k.mu.Lock()
		for i, w := range entry.waiters {
			if w == turn {
				entry.waiters = append(entry.waiters[:i], entry.waiters[i+1:]...)
				k.mu.Unlock()
				return nil, ctx.Err()
			}
		}
		k.mu.Unlock()
		// Ownership was handed over while ctx expired: pass it on.
		k.release(key)
		return nil, ctx.Err()
	}
}

// WithLock runs fn while owning key. The key is released on every exit path,
// including a panic in fn.
func (k *KeyedMutex) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	unlock, err := k.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()
	return fn(ctx)
}

// Len is the number of keys currently held.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

func (k *KeyedMutex) unlocker(key string) func() {
	var once sync.Once
	return func() {
		once.Do(func() { k.release(key) })
	}
}

func (k *KeyedMutex) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry, ok := k.entries[key]
	if !ok {
		return
	}
	if len(entry.waiters) == 0 {
		delete(k.entries, key)
		return
	}
	next := entry.waiters[0]
	entry.waiters = entry.waiters[1:]
	close(next)
}
