package memory

import (
	"context"
	"errors"
	"sync"
)

// ErrReadOnly は読み取り専用トランザクション内で書き込もうとした場合に返却されます。
var ErrReadOnly = errors.New("memory: write inside read-only transaction")

// locker は RWMutex をトランザクションとして扱います。
// ロック取得済みのコンテキストではリポジトリ操作は再ロックしません。
type locker struct {
	mu sync.RWMutex
}

type lockKey struct {
	l *locker
}

type lockState struct {
	writable bool
}

func (l *locker) state(ctx context.Context) (lockState, bool) {
	if ctx == nil {
		return lockState{}, false
	}
	st, ok := ctx.Value(lockKey{l: l}).(lockState)
	return st, ok
}

// WithinReadOnly は読み取りロックを保持したまま fn を実行します。
func (l *locker) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	if _, ok := l.state(ctx); ok {
		return fn(ctx)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(context.WithValue(ctx, lockKey{l: l}, lockState{}))
}

// WithinReadWrite は書き込みロックを保持したまま fn を実行します。
func (l *locker) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	if st, ok := l.state(ctx); ok {
		if !st.writable {
			return ErrReadOnly
		}
		return fn(ctx)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(context.WithValue(ctx, lockKey{l: l}, lockState{writable: true}))
}

func (l *locker) read(ctx context.Context, fn func() error) error {
	if _, ok := l.state(ctx); ok {
		return fn()
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn()
}

func (l *locker) write(ctx context.Context, fn func() error) error {
	if st, ok := l.state(ctx); ok {
		if !st.writable {
			return ErrReadOnly
		}
		return fn()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}
