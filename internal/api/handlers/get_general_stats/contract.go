package get_general_stats

import (
	"context"

	"github.com/m04kA/SMC-LabReservationService/internal/service/stats"
)

type StatsService interface {
	General(ctx context.Context) (*stats.GeneralStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
