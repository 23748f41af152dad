package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrSlotUnavailable возвращается, когда слот занят в момент записи
	ErrSlotUnavailable = fmt.Errorf("appointments: %w", domain.ErrSlotUnavailable)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = fmt.Errorf("appointments: %w", domain.ErrInvalidTransition)

	// ErrAccessDenied возвращается, когда пользователь не участник записи
	ErrAccessDenied = fmt.Errorf("appointments: access denied: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("appointments: %w", domain.ErrInvalidInput)

	// ErrStorageUnavailable возвращается при ошибках хранилища
	ErrStorageUnavailable = fmt.Errorf("appointments: %w", domain.ErrStorageUnavailable)
)
