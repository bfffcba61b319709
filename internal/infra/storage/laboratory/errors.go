package laboratory

import "errors"

var (
	// ErrLaboratoryNotFound возвращается, когда лаборатория не найдена
	ErrLaboratoryNotFound = errors.New("laboratory.repository: laboratory not found")

	// ErrDuplicateName возвращается при создании лаборатории с существующим именем
	ErrDuplicateName = errors.New("laboratory.repository: laboratory name already exists")

	ErrBuildQuery = errors.New("laboratory.repository: failed to build query")
	ErrExecQuery  = errors.New("laboratory.repository: failed to execute query")
	ErrScanRow    = errors.New("laboratory.repository: failed to scan row")
)
