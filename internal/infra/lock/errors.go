package lock

import "errors"

var (
	// ErrLockNotAcquired возвращается, когда слот уже заблокирован другим запросом
	ErrLockNotAcquired = errors.New("lock: slot lock not acquired")

	// ErrAcquire возвращается при ошибке хранилища блокировок
	ErrAcquire = errors.New("lock: failed to acquire slot lock")
)
