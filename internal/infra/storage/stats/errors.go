package stats

import "errors"

var (
	ErrBuildQuery = errors.New("stats.repository: failed to build query")
	ErrScanRow    = errors.New("stats.repository: failed to scan row")
)
