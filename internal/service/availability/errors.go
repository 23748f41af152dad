package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

var (
	// ErrInvalidTemplate возвращается, когда шаблон нарушает инварианты
	ErrInvalidTemplate = fmt.Errorf("availability: %w", domain.ErrInvalidTemplate)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("availability: %w", domain.ErrInvalidInput)

	// ErrTemplateNotConfigured возвращается, когда на день нет активного шаблона
	ErrTemplateNotConfigured = errors.New("availability: template not configured")

	// ErrStorageUnavailable возвращается при ошибках хранилища
	ErrStorageUnavailable = fmt.Errorf("availability: %w", domain.ErrStorageUnavailable)
)
