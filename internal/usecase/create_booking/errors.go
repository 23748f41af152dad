package create_booking

import (
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrInvalidInput)

	// ErrSlotNotAvailable возвращается, когда слота нет среди свободных
	ErrSlotNotAvailable = fmt.Errorf("create_booking: %w", domain.ErrSlotUnavailable)
)
