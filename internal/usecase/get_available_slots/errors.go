package get_available_slots

import (
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: %w", domain.ErrInvalidInput)

	// ErrStorageUnavailable возвращается при ошибках хранилища
	ErrStorageUnavailable = fmt.Errorf("get_available_slots: %w", domain.ErrStorageUnavailable)
)
