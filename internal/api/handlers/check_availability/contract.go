package check_availability

import (
	"context"

	getAvailableSlots "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
)

type SlotChecker interface {
	IsSlotAvailable(ctx context.Context, req *getAvailableSlots.CheckRequest) (*getAvailableSlots.CheckResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
