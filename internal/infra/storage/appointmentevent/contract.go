package appointmentevent

import (
	"github.com/m04kA/clinic-scheduling-service/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
