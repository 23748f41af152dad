package lock

import (
	"context"
	"sync"
)

// LocalSlotLocker блокировка слота в памяти процесса
// Используется, когда Redis не настроен; защищает только один экземпляр сервиса
type LocalSlotLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewLocalSlotLocker создает блокировку в памяти процесса
func NewLocalSlotLocker() *LocalSlotLocker {
	return &LocalSlotLocker{
		locks: make(map[string]*entry),
	}
}

// WithSlotLock выполняет fn, удерживая мьютекс ключа key
// Если мьютекс занят, сразу возвращает ErrLockNotAcquired
func (l *LocalSlotLocker) WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	e := l.acquire(key)
	defer l.forget(key, e)

	if !e.mu.TryLock() {
		return ErrLockNotAcquired
	}
	defer e.mu.Unlock()

	return fn(ctx)
}

func (l *LocalSlotLocker) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	return e
}

// forget удаляет запись, когда на ключ больше никто не ссылается
func (l *LocalSlotLocker) forget(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
