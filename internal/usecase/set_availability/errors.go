package set_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("set_availability: %w", domain.ErrInvalidInput)

	// ErrInvalidTemplate возвращается при неизвестном дне недели
	ErrInvalidTemplate = fmt.Errorf("set_availability: %w", domain.ErrInvalidTemplate)

	// ErrAccessDenied возвращается, когда расписание меняет не сам врач
	ErrAccessDenied = errors.New("set_availability: access denied")
)
