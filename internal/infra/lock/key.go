package lock

import (
	"fmt"
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// SlotKey ключ блокировки слота врача на дату
// "9:00" и "09:00" дают один ключ
func SlotKey(doctorID int64, date time.Time, slot types.TimeString) string {
	return fmt.Sprintf("lock:slot:%d:%s:%s", doctorID, date.Format(domain.DateFormat), slot.Canonical())
}
