package event

import "github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
